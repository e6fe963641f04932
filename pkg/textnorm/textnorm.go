// Package textnorm produces the cleaned, tokenized, and processed
// representations of raw review text used for display and aspect matching.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Result holds the three derived forms of a text.
type Result struct {
	Cleaned   string
	Tokenized string
	Processed string
}

// Normalizer cleans and lemmatizes review text. Construct once with New and
// inject; it is safe for concurrent use.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

// New loads the English lemma dictionary and returns a ready Normalizer.
func New() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Normalizer{lemmatizer: lemmatizer}, nil
}

// Tokens lowercases text, replaces non-alphanumeric runs with whitespace,
// lemmatizes each token, and drops stopwords and empty lemmas.
func (n *Normalizer) Tokens(text string) []string {
	text = strings.ToLower(text)
	text = nonAlnumRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	var tokens []string
	for _, word := range strings.Fields(text) {
		lemma := n.lemmatizer.Lemma(word)
		if strings.TrimSpace(lemma) == "" || isStopword(lemma) {
			continue
		}
		tokens = append(tokens, lemma)
	}
	return tokens
}

// CleanedString returns the cleaned form as a single space-joined string.
func (n *Normalizer) CleanedString(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Normalize computes all three derived forms. Empty or blank input yields
// empty strings, never an error.
//
// Tokenized is the whitespace re-split/re-join of Cleaned, so normalizing an
// already tokenized string is a no-op. Processed is Cleaned lowercased and
// trimmed; Cleaned is already lowercase, so that step is idempotent too.
func (n *Normalizer) Normalize(text string) Result {
	cleaned := n.CleanedString(text)
	tokenized := strings.Join(strings.Fields(cleaned), " ")
	processed := strings.TrimSpace(strings.ToLower(tokenized))
	return Result{
		Cleaned:   cleaned,
		Tokenized: tokenized,
		Processed: processed,
	}
}
