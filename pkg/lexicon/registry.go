package lexicon

import (
	"fmt"
	"strings"
)

// Delimiter modes of a punctuation rule.
const (
	DelimiterNone   = 0
	DelimiterSingle = 1
	DelimiterDouble = 2
)

// PunctuationRule maps a punctuation character to the notational bar it
// produces: none, "|" or "||".
type PunctuationRule struct {
	Character     rune `json:"character"`
	DelimiterMode int  `json:"delimiter_mode"`
}

func (r PunctuationRule) String() string {
	return fmt.Sprintf("%c (%d)", r.Character, r.DelimiterMode)
}

// CurrencyRule names the lemmas a currency symbol is read as.
type CurrencyRule struct {
	Character rune   `json:"character"`
	Singular  string `json:"singular"`
	Plural    string `json:"plural"`
}

func (r CurrencyRule) String() string {
	return fmt.Sprintf("%c (%s, %s)", r.Character, r.Singular, r.Plural)
}

// Registry holds the varieties, word classes and character tables known to
// a lexicon. It is filled once and read-only afterwards.
type Registry struct {
	varieties        []Variety
	varietyByID      map[int]Variety
	varietyByAbbr    map[string]Variety
	wordClasses      []WordClass
	wordClassByID    map[int]WordClass
	wordClassByAbbr  map[string]WordClass
	punctuation      []PunctuationRule
	punctuationByChr map[rune]PunctuationRule
	currency         []CurrencyRule
	currencyByChr    map[rune]CurrencyRule
}

func NewRegistry(
	varieties []Variety,
	wordClasses []WordClass,
	punctuation []PunctuationRule,
	currency []CurrencyRule,
) (*Registry, error) {
	r := &Registry{
		varietyByID:      make(map[int]Variety, len(varieties)),
		varietyByAbbr:    make(map[string]Variety, len(varieties)),
		wordClassByID:    make(map[int]WordClass, len(wordClasses)),
		wordClassByAbbr:  make(map[string]WordClass, len(wordClasses)),
		punctuationByChr: make(map[rune]PunctuationRule, len(punctuation)),
		currencyByChr:    make(map[rune]CurrencyRule, len(currency)),
	}
	for _, v := range varieties {
		if _, ok := r.varietyByID[v.ID]; ok {
			return nil, fmt.Errorf("duplicate variety id: %d", v.ID)
		}
		r.varieties = append(r.varieties, v)
		r.varietyByID[v.ID] = v
		r.varietyByAbbr[strings.ToLower(v.Abbreviation)] = v
	}
	for _, wc := range wordClasses {
		if _, ok := r.wordClassByID[wc.ID]; ok {
			return nil, fmt.Errorf("duplicate word class id: %d", wc.ID)
		}
		r.wordClasses = append(r.wordClasses, wc)
		r.wordClassByID[wc.ID] = wc
		r.wordClassByAbbr[strings.ToLower(wc.Abbreviation)] = wc
	}
	for _, p := range punctuation {
		if p.DelimiterMode < DelimiterNone || p.DelimiterMode > DelimiterDouble {
			return nil, fmt.Errorf("invalid delimiter mode for %q: %d", p.Character, p.DelimiterMode)
		}
		if _, ok := r.punctuationByChr[p.Character]; ok {
			return nil, fmt.Errorf("duplicate punctuation character: %q", p.Character)
		}
		r.punctuation = append(r.punctuation, p)
		r.punctuationByChr[p.Character] = p
	}
	for _, c := range currency {
		if _, ok := r.currencyByChr[c.Character]; ok {
			return nil, fmt.Errorf("duplicate currency character: %q", c.Character)
		}
		r.currency = append(r.currency, c)
		r.currencyByChr[c.Character] = c
	}
	return r, nil
}

func (r *Registry) Varieties() []Variety {
	return append([]Variety(nil), r.varieties...)
}

func (r *Registry) WordClasses() []WordClass {
	return append([]WordClass(nil), r.wordClasses...)
}

func (r *Registry) VarietyByID(id int) (Variety, bool) {
	v, ok := r.varietyByID[id]
	return v, ok
}

// Variety looks a variety up by its abbreviation (case insensitive) or its
// proper name.
func (r *Registry) Variety(name string) (Variety, bool) {
	name = strings.TrimSpace(name)
	if v, ok := r.varietyByAbbr[strings.ToLower(name)]; ok {
		return v, true
	}
	for _, v := range r.varieties {
		if v.Name == name {
			return v, true
		}
	}
	return Variety{}, false
}

func (r *Registry) WordClassByID(id int) (WordClass, bool) {
	wc, ok := r.wordClassByID[id]
	return wc, ok
}

// WordClass looks a word class up by its abbreviation (case insensitive) or
// its proper name.
func (r *Registry) WordClass(name string) (WordClass, bool) {
	name = strings.TrimSpace(name)
	if wc, ok := r.wordClassByAbbr[strings.ToLower(name)]; ok {
		return wc, true
	}
	for _, wc := range r.wordClasses {
		if wc.Name == name {
			return wc, true
		}
	}
	return WordClass{}, false
}

func (r *Registry) PunctuationRules() []PunctuationRule {
	return append([]PunctuationRule(nil), r.punctuation...)
}

func (r *Registry) CurrencyRules() []CurrencyRule {
	return append([]CurrencyRule(nil), r.currency...)
}

func (r *Registry) Punctuation(ch rune) (PunctuationRule, bool) {
	p, ok := r.punctuationByChr[ch]
	return p, ok
}

func (r *Registry) Currency(ch rune) (CurrencyRule, bool) {
	c, ok := r.currencyByChr[ch]
	return c, ok
}

// DefaultRegistry returns a fresh registry with the varieties, word classes
// and character tables of the stock lexicon.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultVarieties, defaultWordClasses, defaultPunctuation, defaultCurrency)
	if err != nil {
		panic("invalid default registry: " + err.Error())
	}
	return r
}

var defaultVarieties = []Variety{
	{ID: 1, Name: "British English", Abbreviation: "BrE"},
	{ID: 2, Name: "American English", Abbreviation: "AmE"},
	{ID: 3, Name: "Australian English", Abbreviation: "AuE"},
}

var defaultWordClasses = []WordClass{
	{ID: 1, Name: "Adjective", Abbreviation: "adj", ContentWord: true},
	{ID: 2, Name: "Adverb", Abbreviation: "rb", ContentWord: true},
	{ID: 3, Name: "Conjunction", Abbreviation: "conj"},
	{ID: 4, Name: "Determiner", Abbreviation: "det"},
	{ID: 5, Name: "Exclamation", Abbreviation: "excl", ContentWord: true},
	{ID: 6, Name: "Negator", Abbreviation: "neg"},
	{ID: 7, Name: "Proper Noun", Abbreviation: "propN", ContentWord: true},
	{ID: 8, Name: "Common Noun", Abbreviation: "comN", ContentWord: true},
	{ID: 9, Name: "Pronoun", Abbreviation: "proN"},
	{ID: 10, Name: "Numeral", Abbreviation: "num"},
	{ID: 11, Name: "Preposition", Abbreviation: "prep"},
	{ID: 12, Name: "To-Infinitive Marker", Abbreviation: "to-inf"},
	{ID: 13, Name: "Lexical Verb", Abbreviation: "lexV", ContentWord: true},
	{ID: 14, Name: "Modal Auxiliary", Abbreviation: "modAux"},
	{ID: 15, Name: "Primary Auxiliary", Abbreviation: "primAux"},
	{ID: 16, Name: "Catenative Verbs", Abbreviation: "catV"},
}

var defaultPunctuation = []PunctuationRule{
	{Character: ',', DelimiterMode: DelimiterSingle},
	{Character: ':', DelimiterMode: DelimiterSingle},
	{Character: '"', DelimiterMode: DelimiterSingle},
	{Character: '-', DelimiterMode: DelimiterNone},
	{Character: '‐', DelimiterMode: DelimiterSingle},
	{Character: '‑', DelimiterMode: DelimiterSingle},
	{Character: '‒', DelimiterMode: DelimiterSingle},
	{Character: '–', DelimiterMode: DelimiterSingle},
	{Character: '—', DelimiterMode: DelimiterSingle},
	{Character: '―', DelimiterMode: DelimiterSingle},
	{Character: '−', DelimiterMode: DelimiterNone},
	{Character: '.', DelimiterMode: DelimiterDouble},
	{Character: '!', DelimiterMode: DelimiterDouble},
	{Character: '?', DelimiterMode: DelimiterDouble},
}

var defaultCurrency = []CurrencyRule{
	{Character: '$', Singular: "dollar", Plural: "dollars"},
	{Character: '€', Singular: "euro", Plural: "euros"},
	{Character: '£', Singular: "pound", Plural: "pounds"},
}
