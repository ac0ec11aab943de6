package nlu

import "strings"

// defaultVegetables is the known produce vocabulary, scanned in this fixed
// priority order. First substring hit in the query wins, so plural and
// inflected forms ("tomatoes") resolve to their base name.
var defaultVegetables = []string{
	"tomato",
	"potato",
	"onion",
	"carrot",
	"cabbage",
	"cauliflower",
	"spinach",
	"brinjal",
	"okra",
	"capsicum",
	"cucumber",
	"beans",
	"peas",
	"garlic",
	"ginger",
	"chilli",
	"coriander",
	"beetroot",
	"lemon",
}

// Vocabulary is the fixed set of vegetable names the price lookup knows.
type Vocabulary struct {
	names []string
}

// NewVocabulary builds a Vocabulary; with no arguments the default produce
// list is used. Names are lowercased and kept in the given priority order.
func NewVocabulary(names ...string) *Vocabulary {
	if len(names) == 0 {
		names = defaultVegetables
	}
	ns := make([]string, len(names))
	for i, n := range names {
		ns[i] = strings.ToLower(n)
	}
	return &Vocabulary{names: ns}
}

// Find returns the first vocabulary name present as a substring of the
// lowercased text, or "" when none is.
func (v *Vocabulary) Find(text string) string {
	t := strings.ToLower(text)
	for _, n := range v.names {
		if strings.Contains(t, n) {
			return n
		}
	}
	return ""
}

// Names returns the vocabulary in priority order. Callers must not mutate
// the returned slice.
func (v *Vocabulary) Names() []string {
	return v.names
}
