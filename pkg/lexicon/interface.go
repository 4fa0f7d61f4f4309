package lexicon

import (
	"context"
	"strings"
)

//go:generate go run github.com/vektra/mockery/cmd/mockery -name Source -output ../mocks/
//go:generate go run github.com/vektra/mockery/cmd/mockery -name Lexicon -output ../mocks/

// Source returns the raw candidates stored for a lemma. An unknown lemma is
// not an error: implementations return an empty slice.
type Source interface {
	Lookup(ctx context.Context, lemma string) ([]Candidate, error)
}

// Lexicon returns the entry of a lemma. It never reports "not found";
// absence is an empty Entry.
type Lexicon interface {
	Query(ctx context.Context, lemma string) (*Entry, error)
}

// Preferences carries the user's choices relevant to transcription.
type Preferences interface {
	PreferredVariety() Variety
}

// Tables exposes the punctuation and currency tables. *Registry implements it.
type Tables interface {
	PunctuationRules() []PunctuationRule
	CurrencyRules() []CurrencyRule
}

// Suggester is implemented by sources able to propose known lemmas close to
// an unknown one.
type Suggester interface {
	Suggest(lemma string, limit int) []string
}

type StaticPreferences struct {
	Variety Variety
}

func (p StaticPreferences) PreferredVariety() Variety {
	return p.Variety
}

type sourceLexicon struct {
	source Source
	prefs  Preferences
}

// FromSource builds a Lexicon whose entries apply the selection rules with
// the preferred variety of prefs.
func FromSource(source Source, prefs Preferences) Lexicon {
	return &sourceLexicon{source: source, prefs: prefs}
}

func (l *sourceLexicon) Query(ctx context.Context, lemma string) (*Entry, error) {
	lemma = strings.ToLower(lemma)
	candidates, err := l.source.Lookup(ctx, lemma)
	if err != nil {
		return nil, err
	}
	entry := NewEntry(lemma, l.prefs.PreferredVariety())
	for _, c := range candidates {
		entry.Add(c)
	}
	return entry, nil
}
