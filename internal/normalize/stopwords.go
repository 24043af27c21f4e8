package normalize

// defaultStopWords is the fixed English stop-word list dropped from
// processed text before lemmatization.
var defaultStopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"because": {}, "as": {}, "what": {}, "which": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "then": {}, "just": {}, "so": {}, "than": {},
	"such": {}, "both": {}, "through": {}, "about": {}, "for": {}, "is": {},
	"of": {}, "while": {}, "during": {}, "to": {}, "from": {}, "in": {},
	"on": {}, "by": {}, "at": {}, "be": {}, "with": {}, "into": {}, "has": {},
	"are": {}, "have": {}, "had": {}, "was": {}, "were": {}, "been": {},
	"being": {}, "do": {}, "does": {}, "did": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "shall": {}, "should": {}, "will": {}, "would": {},
	"not": {}, "up": {}, "down": {}, "no": {}, "yes": {},
}

func isStopWord(word string) bool {
	_, ok := defaultStopWords[word]
	return ok
}
