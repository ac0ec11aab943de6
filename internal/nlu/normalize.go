package nlu

import (
	"sort"
	"strings"
	"unicode"
)

// defaultFillers are courtesy phrases stripped from utterances before
// matching. Longer phrases come first so "show me" is removed before
// "show" gets a chance to leave a dangling "me".
var defaultFillers = []string{
	"take me to",
	"navigate to",
	"could you",
	"can you",
	"show me",
	"please",
	"go to",
	"show",
	"open",
}

// Normalizer lowercases utterances, strips punctuation and filler phrases
// and collapses whitespace. Normalize is idempotent.
type Normalizer struct {
	fillers []string
}

// NewNormalizer builds a Normalizer. With no arguments the default filler
// set is used; custom fillers are lowercased and applied longest-first.
func NewNormalizer(fillers ...string) *Normalizer {
	if len(fillers) == 0 {
		fillers = defaultFillers
	}
	fs := make([]string, len(fillers))
	for i, f := range fillers {
		fs[i] = strings.ToLower(f)
	}
	sort.SliceStable(fs, func(i, j int) bool { return len(fs[i]) > len(fs[j]) })
	return &Normalizer{fillers: fs}
}

// Normalize returns the canonical form of an utterance. Filler removal
// runs to a fixed point: removing one phrase can splice the surrounding
// text into another filler occurrence, so a single pass is not enough to
// guarantee Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToLower(s)
	s = stripPunctuation(s)
	for {
		s = collapseSpaces(s)
		out := s
		for _, f := range n.fillers {
			out = strings.ReplaceAll(out, f, " ")
		}
		if out == s {
			return s
		}
		s = out
	}
}

func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
