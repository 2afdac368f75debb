package match

import (
	"slices"
	"sort"
)

// SuggestThreshold is the minimal normalized similarity for a suggestion.
const SuggestThreshold = 0.6

// Suggestion is a candidate name with its similarity score in [0, 1].
type Suggestion struct {
	Name  string
	Score float64
}

// Suggest returns up to limit candidates resembling name, best first.
// Ties keep the order of candidates. A non-positive limit means no limit.
func Suggest(name string, candidates []string, limit int) []Suggestion {
	var res []Suggestion

	nameTokens := LowerTokens(name)

	for _, candidate := range candidates {
		score := Score(name, candidate)

		// sharing the leading token ("shipping_addr" vs "ShippingAddress") is a strong hint
		if tokens := LowerTokens(candidate); len(tokens) > 1 && len(nameTokens) > 1 &&
			tokens[0] == nameTokens[0] && score < SuggestThreshold {
			score = SuggestThreshold
		}

		if score >= SuggestThreshold {
			res = append(res, Suggestion{Name: candidate, Score: score})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Score > res[j].Score
	})

	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}

	return slices.Clip(res)
}

// SuggestNames is Suggest reduced to the candidate names.
func SuggestNames(name string, candidates []string, limit int) []string {
	suggestions := Suggest(name, candidates, limit)

	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		names = append(names, s.Name)
	}

	return names
}
