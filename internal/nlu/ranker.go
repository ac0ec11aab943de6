package nlu

import (
	"sort"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// Ranker resolves a set of transcript alternatives to a command. It tries
// the matcher on each alternative in descending-confidence order and stops
// at the first success, so a higher-confidence interpretation always wins
// over a lower-confidence one even when both would match. Confidence
// ordering dominates catalog order.
type Ranker struct {
	normalizer *Normalizer
	matcher    *Matcher
}

// NewRanker builds a Ranker over a normalizer and matcher pair.
func NewRanker(normalizer *Normalizer, matcher *Matcher) *Ranker {
	return &Ranker{normalizer: normalizer, matcher: matcher}
}

// Resolve returns the first matching alternative's command, plus the
// transcript it came from. When nothing matches, the command is nil and
// the returned transcript is the top-confidence candidate, kept for
// diagnostic display. The input slice is never mutated; the sort is
// stable, so equal confidences keep their original order.
func (r *Ranker) Resolve(alts []domain.TranscriptAlternative) (*domain.ResolvedCommand, string) {
	if len(alts) == 0 {
		return nil, ""
	}

	ranked := make([]domain.TranscriptAlternative, len(alts))
	copy(ranked, alts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	for _, alt := range ranked {
		m := r.matcher.Match(r.normalizer.Normalize(alt.Transcript))
		if m == nil {
			continue
		}
		return &domain.ResolvedCommand{
			Key:        m.Key,
			Action:     m.Action,
			Transcript: alt.Transcript,
			Confidence: alt.Confidence,
		}, alt.Transcript
	}

	return nil, ranked[0].Transcript
}
