package service

import (
	"regexp"
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// minChunkLen is the minimum length of a noun chunk accepted as an ad-hoc
// aspect during fallback extraction.
const minChunkLen = 2

// extractAspects returns the set of aspects mentioned in text. Known aspects
// are matched case-insensitively on whole-word boundaries, which keeps the
// curated vocabulary precise; when none match, noun-chunk fallback guarantees
// the review still yields some aspect signal. The result is de-duplicated and
// sorted for deterministic output.
func extractAspects(text string, known []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	textLower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var found []string

	for _, aspect := range known {
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(aspect)) + `\b`)
		if err != nil {
			continue
		}
		if pattern.MatchString(textLower) {
			if _, ok := seen[strings.ToLower(aspect)]; !ok {
				seen[strings.ToLower(aspect)] = struct{}{}
				found = append(found, aspect)
			}
		}
	}

	if len(found) == 0 {
		for _, chunk := range nounChunks(text) {
			chunk = strings.TrimSpace(strings.ToLower(chunk))
			if len(chunk) <= minChunkLen {
				continue
			}
			if _, ok := seen[chunk]; !ok {
				seen[chunk] = struct{}{}
				found = append(found, chunk)
			}
		}
	}

	sort.Strings(found)
	return found
}

// chunkTag reports whether a POS tag can belong to a noun chunk: determiners,
// possessives, adjectives, cardinal numbers, and nouns.
func chunkTag(tag string) bool {
	if strings.HasPrefix(tag, "NN") || strings.HasPrefix(tag, "JJ") {
		return true
	}
	switch tag {
	case "DT", "PDT", "PRP$", "POS", "CD":
		return true
	}
	return false
}

// nounChunks extracts syntactic noun phrases by collecting maximal runs of
// chunk-eligible tokens that contain at least one noun.
func nounChunks(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	var chunks []string
	var current []string
	hasNoun := false

	flush := func() {
		if hasNoun && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}
		current = current[:0]
		hasNoun = false
	}

	for _, tok := range doc.Tokens() {
		if chunkTag(tok.Tag) {
			current = append(current, tok.Text)
			if strings.HasPrefix(tok.Tag, "NN") {
				hasNoun = true
			}
			continue
		}
		flush()
	}
	flush()

	return chunks
}

// splitSentences segments text into sentences in original order.
func splitSentences(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return []string{text}
	}
	sentences := doc.Sentences()
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, s.Text)
	}
	if len(out) == 0 {
		return []string{text}
	}
	return out
}
