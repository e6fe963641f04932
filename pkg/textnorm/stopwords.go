package textnorm

// stopwords contains English function words and high-frequency auxiliaries
// filtered out of the cleaned representation. The set mirrors the usual
// corpus stopword lists (articles, pronouns, prepositions, auxiliaries).
var stopwords = map[string]struct{}{
	// Articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"each": {}, "every": {}, "some": {}, "any": {}, "no": {}, "both": {}, "few": {},
	"more": {}, "most": {}, "other": {}, "such": {}, "own": {}, "same": {}, "all": {},
	// Personal pronouns
	"i": {}, "me": {}, "my": {}, "myself": {}, "we": {}, "us": {}, "our": {}, "ours": {},
	"ourselves": {}, "you": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},
	"he": {}, "him": {}, "his": {}, "himself": {}, "she": {}, "her": {}, "hers": {},
	"herself": {}, "it": {}, "its": {}, "itself": {}, "they": {}, "them": {}, "their": {},
	"theirs": {}, "themselves": {},
	// Interrogatives and relatives
	"what": {}, "which": {}, "who": {}, "whom": {}, "whose": {}, "when": {}, "where": {},
	"why": {}, "how": {},
	// Auxiliaries and copulas
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "having": {}, "do": {}, "does": {}, "did": {},
	"doing": {}, "will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {},
	// Conjunctions
	"and": {}, "but": {}, "or": {}, "nor": {}, "so": {}, "yet": {}, "because": {},
	"although": {}, "while": {}, "if": {}, "than": {}, "as": {},
	// Prepositions
	"at": {}, "by": {}, "for": {}, "from": {}, "in": {}, "into": {}, "of": {}, "off": {},
	"on": {}, "onto": {}, "out": {}, "over": {}, "to": {}, "under": {}, "up": {}, "down": {},
	"with": {}, "without": {}, "about": {}, "above": {}, "after": {}, "against": {},
	"before": {}, "below": {}, "between": {}, "during": {}, "through": {}, "until": {},
	// Adverbial fillers
	"again": {}, "further": {}, "then": {}, "once": {}, "here": {}, "there": {},
	"just": {}, "now": {}, "only": {}, "too": {}, "very": {}, "not": {},
	// Misc high-frequency
	"s": {}, "t": {}, "don": {}, "o": {},
}

func isStopword(lemma string) bool {
	_, ok := stopwords[lemma]
	return ok
}
