package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

type seedPunctuation struct {
	Character     string `yaml:"character"`
	DelimiterMode int    `yaml:"delimiter_mode"`
}

type seedCurrency struct {
	Character string `yaml:"character"`
	Singular  string `yaml:"singular"`
	Plural    string `yaml:"plural"`
}

type seedTranscription struct {
	ID       int64             `yaml:"id"`
	Phonetic string            `yaml:"phonetic"`
	Type     TranscriptionType `yaml:"type"`
	Class    string            `yaml:"class"`
	Variety  string            `yaml:"variety"`
}

// Seed is the YAML document describing a small lexicon. Tables left out
// fall back to DefaultRegistry.
type Seed struct {
	Varieties   []Variety                      `yaml:"varieties"`
	WordClasses []WordClass                    `yaml:"word_classes"`
	Punctuation []seedPunctuation              `yaml:"punctuation"`
	Currency    []seedCurrency                 `yaml:"currency"`
	Lemmas      map[string][]seedTranscription `yaml:"lemmas"`
}

// LoadSeedFile opens path and passes it to LoadSeed.
func LoadSeedFile(path string) (*Registry, *Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("can not open seed %s: %w", path, err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a YAML seed into a registry and an in-memory source.
// Unknown fields are rejected.
func LoadSeed(r io.Reader) (*Registry, *Memory, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("can not decode seed: %w", err)
	}
	registry, err := seed.registry()
	if err != nil {
		return nil, nil, err
	}
	memory, err := seed.memory(registry)
	if err != nil {
		return nil, nil, err
	}
	return registry, memory, nil
}

func (s *Seed) registry() (*Registry, error) {
	varieties := s.Varieties
	if len(varieties) == 0 {
		varieties = defaultVarieties
	}
	wordClasses := s.WordClasses
	if len(wordClasses) == 0 {
		wordClasses = defaultWordClasses
	}
	punctuation := defaultPunctuation
	if len(s.Punctuation) != 0 {
		punctuation = make([]PunctuationRule, 0, len(s.Punctuation))
		for _, p := range s.Punctuation {
			ch, err := singleRune(p.Character)
			if err != nil {
				return nil, fmt.Errorf("punctuation: %w", err)
			}
			punctuation = append(punctuation, PunctuationRule{Character: ch, DelimiterMode: p.DelimiterMode})
		}
	}
	currency := defaultCurrency
	if len(s.Currency) != 0 {
		currency = make([]CurrencyRule, 0, len(s.Currency))
		for _, c := range s.Currency {
			ch, err := singleRune(c.Character)
			if err != nil {
				return nil, fmt.Errorf("currency: %w", err)
			}
			currency = append(currency, CurrencyRule{Character: ch, Singular: c.Singular, Plural: c.Plural})
		}
	}
	return NewRegistry(varieties, wordClasses, punctuation, currency)
}

func (s *Seed) memory(registry *Registry) (*Memory, error) {
	memory := NewMemory()
	// sorted so generated IDs do not depend on map order
	lemmas := make([]string, 0, len(s.Lemmas))
	for lemma := range s.Lemmas {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	for _, lemma := range lemmas {
		for _, t := range s.Lemmas[lemma] {
			wc, ok := registry.WordClass(t.Class)
			if !ok {
				return nil, fmt.Errorf("lemma %q: unknown word class %q", lemma, t.Class)
			}
			variety, ok := registry.Variety(t.Variety)
			if !ok {
				return nil, fmt.Errorf("lemma %q: unknown variety %q", lemma, t.Variety)
			}
			if t.Phonetic == "" {
				return nil, fmt.Errorf("lemma %q: empty phonetic string", lemma)
			}
			memory.Add(Candidate{
				ID:        t.ID,
				Lemma:     lemma,
				Phonetic:  t.Phonetic,
				Type:      t.Type,
				WordClass: wc,
				Variety:   variety,
			})
		}
	}
	return memory, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q must be exactly one character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
