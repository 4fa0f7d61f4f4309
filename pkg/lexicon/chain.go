package lexicon

import "context"

// Chain asks its sources in order and returns the first non-empty result.
type Chain []Source

func (c Chain) Lookup(ctx context.Context, lemma string) ([]Candidate, error) {
	for _, source := range c {
		candidates, err := source.Lookup(ctx, lemma)
		if err != nil {
			return nil, err
		}
		if len(candidates) != 0 {
			return candidates, nil
		}
	}
	return []Candidate{}, nil
}

// Suggest merges the suggestions of every source implementing Suggester,
// keeping the source order.
func (c Chain) Suggest(lemma string, limit int) []string {
	var result []string
	seen := make(map[string]struct{})
	for _, source := range c {
		s, ok := source.(Suggester)
		if !ok {
			continue
		}
		for _, suggestion := range s.Suggest(lemma, limit) {
			if _, ok := seen[suggestion]; ok {
				continue
			}
			seen[suggestion] = struct{}{}
			result = append(result, suggestion)
			if limit > 0 && len(result) == limit {
				return result
			}
		}
	}
	return result
}
