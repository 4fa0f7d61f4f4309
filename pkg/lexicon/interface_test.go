package lexicon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/mocks"
)

func TestFromSource(t *testing.T) {
	registry := lexicon.DefaultRegistry()
	bre, _ := registry.Variety("BrE")
	ame, _ := registry.Variety("AmE")
	det, _ := registry.WordClass("det")
	candidates := []lexicon.Candidate{
		{ID: 1, Lemma: "the", Phonetic: "ðə", Type: lexicon.TypeWeak, WordClass: det, Variety: ame},
		{ID: 2, Lemma: "the", Phonetic: "ðiː", Type: lexicon.TypeStrong, WordClass: det, Variety: bre},
	}

	source := &mocks.Source{}
	source.On("Lookup", mock.Anything, "the").Return(candidates, nil)
	source.On("Lookup", mock.Anything, "xyzzy").Return([]lexicon.Candidate{}, nil)
	source.On("Lookup", mock.Anything, "broken").Return(nil, errors.New("disk failure"))

	lex := lexicon.FromSource(source, lexicon.StaticPreferences{Variety: bre})

	entry, err := lex.Query(context.Background(), "The")
	require.NoError(t, err)
	assert.Equal(t, "the", entry.Lemma())
	assert.Equal(t, candidates, entry.Candidates())
	selected, ok := entry.Selected()
	require.True(t, ok)
	assert.Equal(t, candidates[1], selected)

	entry, err = lex.Query(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.True(t, entry.IsEmpty())

	_, err = lex.Query(context.Background(), "broken")
	assert.EqualError(t, err, "disk failure")

	source.AssertExpectations(t)
}
