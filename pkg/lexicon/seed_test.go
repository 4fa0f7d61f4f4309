package lexicon

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed(t *testing.T) {
	const seed = `
varieties:
  - {id: 7, name: Scottish English, abbreviation: ScE}
word_classes:
  - {id: 1, name: Noun, abbreviation: n, content_word: true}
  - {id: 2, name: Determiner, abbreviation: det}
punctuation:
  - {character: ";", delimiter_mode: 1}
currency:
  - {character: "¥", singular: yen, plural: yen}
lemmas:
  Loch:
    - {id: 10, phonetic: lɒx, class: n, variety: ScE}
  the:
    - {phonetic: ðə, type: weak, class: det, variety: Scottish English}
    - {phonetic: ðiː, type: strong, class: Determiner, variety: sce}
`
	registry, memory, err := LoadSeed(strings.NewReader(seed))
	require.NoError(t, err)

	assert.Equal(t, []Variety{{ID: 7, Name: "Scottish English", Abbreviation: "ScE"}}, registry.Varieties())
	assert.Len(t, registry.WordClasses(), 2)
	assert.Equal(t, []PunctuationRule{{Character: ';', DelimiterMode: DelimiterSingle}}, registry.PunctuationRules())
	assert.Equal(t, []CurrencyRule{{Character: '¥', Singular: "yen", Plural: "yen"}}, registry.CurrencyRules())
	assert.Equal(t, 2, memory.Len())

	loch, err := memory.Lookup(context.Background(), "LOCH")
	require.NoError(t, err)
	require.Len(t, loch, 1)
	assert.Equal(t, int64(10), loch[0].ID)
	assert.Equal(t, "loch", loch[0].Lemma)
	assert.True(t, loch[0].IsContentWord())

	// "loch" sorts first, so generated IDs continue after its explicit one
	the, err := memory.Lookup(context.Background(), "the")
	require.NoError(t, err)
	require.Len(t, the, 2)
	assert.Equal(t, int64(11), the[0].ID)
	assert.Equal(t, TypeWeak, the[0].Type)
	assert.Equal(t, int64(12), the[1].ID)
	assert.Equal(t, TypeStrong, the[1].Type)
}

func TestLoadSeedDefaults(t *testing.T) {
	registry, memory, err := LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultRegistry().Varieties(), registry.Varieties())
	assert.Equal(t, DefaultRegistry().PunctuationRules(), registry.PunctuationRules())
	assert.Equal(t, 0, memory.Len())

	unknown, err := memory.Lookup(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestLoadSeedErrors(t *testing.T) {
	testCases := map[string]struct {
		Seed  string
		Error string
	}{
		"unknown field": {
			Seed:  "lemmas:\n  cat:\n    - {phonetic: kæt, class: comN, variety: BrE, stress: 1}\n",
			Error: "can not decode seed",
		},
		"unknown word class": {
			Seed:  "lemmas:\n  cat:\n    - {phonetic: kæt, class: noun, variety: BrE}\n",
			Error: `lemma "cat": unknown word class "noun"`,
		},
		"unknown variety": {
			Seed:  "lemmas:\n  cat:\n    - {phonetic: kæt, class: comN, variety: CaE}\n",
			Error: `lemma "cat": unknown variety "CaE"`,
		},
		"empty phonetic": {
			Seed:  "lemmas:\n  cat:\n    - {class: comN, variety: BrE}\n",
			Error: `lemma "cat": empty phonetic string`,
		},
		"unknown type": {
			Seed:  "lemmas:\n  cat:\n    - {phonetic: kæt, type: reduced, class: comN, variety: BrE}\n",
			Error: "can not decode seed",
		},
		"long punctuation character": {
			Seed:  "punctuation:\n  - {character: \"..\", delimiter_mode: 2}\n",
			Error: `punctuation: ".." must be exactly one character`,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			_, _, err := LoadSeed(strings.NewReader(tc.Seed))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.Error)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	_, _, err := LoadSeedFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)

	registry, memory, err := LoadSeedFile("../../configs/seed.yaml")
	require.NoError(t, err)
	assert.NotZero(t, memory.Len())
	_, ok := registry.Variety("BrE")
	assert.True(t, ok)
}
