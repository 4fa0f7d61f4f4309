package transcriber

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/mocks"
)

const testSeed = `
lemmas:
  the:
    - {phonetic: ðə, type: weak, class: det, variety: BrE}
    - {phonetic: ði, type: weak, class: det, variety: BrE}
    - {phonetic: ðiː, type: strong, class: det, variety: BrE}
  cat:
    - {phonetic: kæt, class: comN, variety: BrE}
  apple:
    - {phonetic: ˈæpl, class: comN, variety: BrE}
  sat:
    - {phonetic: sæt, class: lexV, variety: BrE}
  hello:
    - {phonetic: həˈləʊ, class: excl, variety: BrE}
  world:
    - {phonetic: wɜːld, class: comN, variety: BrE}
  record:
    - {phonetic: ˈrekɔːd, class: comN, variety: BrE}
    - {phonetic: rɪˈkɔːd, class: lexV, variety: BrE}
  well-known:
    - {phonetic: ˌwelˈnəʊn, class: adj, variety: BrE}
  one:
    - {phonetic: wʌn, class: num, variety: BrE}
  five:
    - {phonetic: faɪv, class: num, variety: BrE}
  eight:
    - {phonetic: eɪt, class: num, variety: BrE}
  eighteen:
    - {phonetic: ˌeɪˈtiːn, class: num, variety: BrE}
  hundred:
    - {phonetic: ˈhʌndrəd, class: num, variety: BrE}
  thousand:
    - {phonetic: ˈθaʊznd, class: num, variety: BrE}
  dot:
    - {phonetic: dɒt, class: comN, variety: BrE}
  minus:
    - {phonetic: ˈmaɪnəs, class: prep, variety: BrE}
  dollar:
    - {phonetic: ˈdɒlə, class: comN, variety: BrE}
  dollars:
    - {phonetic: ˈdɒləz, class: comN, variety: BrE}
`

func newTestTranscriber(t *testing.T, variety string, opts ...Option) (*Transcriber, *lexicon.Registry) {
	registry, memory, err := lexicon.LoadSeed(strings.NewReader(testSeed))
	require.NoError(t, err)
	preferred, _ := registry.Variety(variety)
	prefs := lexicon.StaticPreferences{Variety: preferred}
	return New(lexicon.FromSource(memory, prefs), prefs, registry, opts...), registry
}

func transcribe(t *testing.T, tr *Transcriber, input string) []*Segment {
	segments, err := tr.Transcribe(context.Background(), input)
	require.NoError(t, err)
	return segments
}

func TestTranscribe(t *testing.T) {
	testCases := map[string]struct {
		Input    string
		Expected string
	}{
		"empty input":                   {Input: "", Expected: "/ /"},
		"sentence final punctuation":    {Input: "The cat sat.", Expected: "/ ðə kæt sæt /"},
		"comma":                         {Input: "The cat, the apple.", Expected: "/ ðə kæt | ði ˈæpl /"},
		"whitespace is normalized":      {Input: "  The   cat \t sat  ", Expected: "/ ðə kæt sæt /"},
		"separate punctuation token":    {Input: "hello . world", Expected: "/ həˈləʊ || wɜːld /"},
		"no delimiter after delimiter":  {Input: "hello. .world", Expected: "/ həˈləʊ || wɜːld /"},
		"lone punctuation suppressed":   {Input: "hello. , world", Expected: "/ həˈləʊ || wɜːld /"},
		"first token has no delimiter":  {Input: ", hello", Expected: "/ həˈləʊ /"},
		"paired quotes":                 {Input: `cat "hello" world`, Expected: "/ kæt həˈləʊ wɜːld /"},
		"opening quote only":            {Input: `cat "hello world"`, Expected: "/ kæt | həˈləʊ wɜːld /"},
		"hyphenated lemma":              {Input: "well-known", Expected: "/ ˌwelˈnəʊn /"},
		"unknown lemma":                 {Input: "the xyzzy", Expected: "/ ði <xyzzy?> /"},
		"unparsable numeral":            {Input: "5x5", Expected: "/ <5x5?> /"},
		"decimal":                       {Input: "5.5", Expected: "/ faɪv dɒt faɪv /"},
		"thousands separator":           {Input: "5,000", Expected: "/ faɪv ˈθaʊznd /"},
		"minus":                         {Input: "-5", Expected: "/ ˈmaɪnəs faɪv /"},
		"year reading by default":       {Input: "1800", Expected: "/ ˌeɪˈtiːn ˈhʌndrəd /"},
		"negative year is common":       {Input: "-1800", Expected: "/ ˈmaɪnəs wʌn ˈθaʊznd eɪt ˈhʌndrəd /"},
		"singular currency token":       {Input: "1 $", Expected: "/ wʌn ˈdɒlə /"},
		"plural currency token":         {Input: "5 $", Expected: "/ faɪv ˈdɒləz /"},
		"singular trailing currency":    {Input: "1$", Expected: "/ wʌn ˈdɒlə /"},
		"plural trailing currency":      {Input: "5$.", Expected: "/ faɪv ˈdɒləz /"},
		"currency then punctuation":     {Input: "5$, hello", Expected: "/ faɪv ˈdɒləz | həˈləʊ /"},
		"article before vocalic onset":  {Input: "the apple", Expected: "/ ði ˈæpl /"},
		"article before consonant":      {Input: "the cat", Expected: "/ ðə kæt /"},
		"article before unknown lemma":  {Input: "the xyzzy cat", Expected: "/ ði <xyzzy?> kæt /"},
		"article at the end":            {Input: "the", Expected: "/ ði /"},
		"article before delimiter only": {Input: "the , cat", Expected: "/ ði | kæt /"},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			tr, _ := newTestTranscriber(t, "BrE")
			assert.Equal(t, tc.Expected, Render(transcribe(t, tr, tc.Input)))
		})
	}
}

func TestTranscribeSegments(t *testing.T) {
	tr, _ := newTestTranscriber(t, "BrE")

	t.Run("enclosing slashes", func(t *testing.T) {
		segments := transcribe(t, tr, "cat")
		require.Len(t, segments, 3)
		for _, i := range []int{0, 2} {
			assert.True(t, segments[i].IsDelimiter())
			assert.Equal(t, "", segments[i].Lemma)
			assert.Equal(t, EnclosingDelimiter, segments[i].Items[0].Delimiter)
		}
		assert.Equal(t, "cat", segments[1].Lemma)
	})
	t.Run("dissection is kept", func(t *testing.T) {
		segments := transcribe(t, tr, `"hello!", cat`)
		require.Len(t, segments, 4)
		assert.Equal(t, `"`, segments[1].Leading)
		assert.Equal(t, "hello", segments[1].Lemma)
		assert.Equal(t, `!",`, segments[1].Trailing)
		// the quote is paired, "!" gives the strongest trailing delimiter
		assert.Equal(t, DoubleDelimiter, segments[1].Items[len(segments[1].Items)-1].Delimiter)
	})
	t.Run("minus moves into the core", func(t *testing.T) {
		segments := transcribe(t, tr, "(-5")
		require.Len(t, segments, 3)
		assert.Equal(t, "(", segments[1].Leading)
		assert.Equal(t, "-5", segments[1].Lemma)
	})
	t.Run("trailing currency moves into the core", func(t *testing.T) {
		segments := transcribe(t, tr, "5$.")
		require.Len(t, segments, 3)
		assert.Equal(t, "5$", segments[1].Lemma)
		assert.Equal(t, ".", segments[1].Trailing)
	})
	t.Run("lone mode zero punctuation", func(t *testing.T) {
		segments := transcribe(t, tr, "cat - cat")
		require.Len(t, segments, 5)
		assert.Equal(t, "-", segments[2].Lemma)
		assert.False(t, segments[2].HasItems())
	})
	t.Run("currency without previous token", func(t *testing.T) {
		segments := transcribe(t, tr, "$ cat")
		require.Len(t, segments, 4)
		require.Len(t, segments[1].Items, 1)
		entry := segments[1].Items[0].Entry
		phonetics := make([]string, 0, 2)
		for _, c := range entry.Candidates() {
			phonetics = append(phonetics, c.Phonetic)
		}
		assert.Equal(t, []string{"ˈdɒlə", "ˈdɒləz"}, phonetics)
	})
	t.Run("word class conflict", func(t *testing.T) {
		segments := transcribe(t, tr, "record cat")
		require.Len(t, segments, 4)
		assert.True(t, segments[1].Items[0].Conflict)
		assert.False(t, segments[2].Items[0].Conflict)
	})
	t.Run("article without following word", func(t *testing.T) {
		segments := transcribe(t, tr, "the")
		assert.True(t, segments[1].Items[0].Conflict)
	})
}

func TestNoConsecutiveDelimiters(t *testing.T) {
	tr, _ := newTestTranscriber(t, "BrE")
	inputs := []string{
		"hello. .world",
		"hello! ? world",
		"cat, , , cat",
		`cat, "hello" ,world`,
		"cat: —cat",
	}
	for _, input := range inputs {
		segments := transcribe(t, tr, input)
		previous := false
		for _, segment := range segments[1 : len(segments)-1] {
			for _, item := range segment.Items {
				assert.False(t, previous && item.IsDelimiter(), "input %q", input)
				previous = item.IsDelimiter()
			}
		}
	}
}

func TestUseReading(t *testing.T) {
	tr, _ := newTestTranscriber(t, "BrE")
	segments := transcribe(t, tr, "1800, cat")
	year := segments[1]
	require.NotNil(t, year.Readings)
	assert.Equal(t, ReadingYear, year.Readings.Active)
	assert.Equal(t, "/ ˌeɪˈtiːn ˈhʌndrəd | kæt /", Render(segments))

	require.NoError(t, year.UseReading(ReadingCommon))
	assert.Equal(t, ReadingCommon, year.Readings.Active)
	assert.Equal(t, "/ wʌn ˈθaʊznd eɪt ˈhʌndrəd | kæt /", Render(segments))

	require.NoError(t, year.UseReading(ReadingYear))
	assert.Equal(t, "/ ˌeɪˈtiːn ˈhʌndrəd | kæt /", Render(segments))

	assert.Equal(t, ErrNoReadings, segments[3].UseReading(ReadingCommon))
}

func TestDefaultReading(t *testing.T) {
	tr, _ := newTestTranscriber(t, "BrE", WithDefaultReading(ReadingCommon))
	assert.Equal(t, "/ wʌn ˈθaʊznd eɪt ˈhʌndrəd /", Render(transcribe(t, tr, "1800")))
}

func TestArticleWithoutPreferredVariety(t *testing.T) {
	tr, _ := newTestTranscriber(t, "AmE")
	segments := transcribe(t, tr, "the cat")
	item := segments[1].Items[0]
	assert.True(t, item.Conflict)
	// selection is left as the entry made it
	selected, ok := item.Entry.Selected()
	require.True(t, ok)
	assert.Equal(t, "ðə", selected.Phonetic)
}

func TestProgress(t *testing.T) {
	var events []Progress
	tr, _ := newTestTranscriber(t, "BrE", WithProgress(func(p Progress) {
		events = append(events, p)
	}))
	segments := transcribe(t, tr, "the cat sat")
	require.Len(t, events, 3+len(segments))
	assert.Equal(t, Progress{Fraction: 1.0 / 3, Status: "Transcribing segment 1 of 3 ..."}, events[0])
	assert.Equal(t, 1.0, events[2].Fraction)
	last := events[len(events)-1]
	assert.Equal(t, 1.0, last.Fraction)
	assert.Equal(t, "Doing post-processing 5 of 5 ...", last.Status)
}

func TestLexiconFailure(t *testing.T) {
	registry := lexicon.DefaultRegistry()
	bre, _ := registry.Variety("BrE")
	failure := errors.New("database is locked")

	lex := &mocks.Lexicon{}
	lex.On("Query", mock.Anything, "the").Return(lexicon.NewEntry("the", bre), nil)
	lex.On("Query", mock.Anything, "cat").Return(lexicon.NewEntry("cat", bre), nil)
	lex.On("Query", mock.Anything, "sat").Return(nil, failure)

	var streamed []*Segment
	tr := New(lex, lexicon.StaticPreferences{Variety: bre}, registry, WithSegmentFunc(func(s *Segment) {
		streamed = append(streamed, s)
	}))
	segments, err := tr.Transcribe(context.Background(), "the cat sat on the mat")
	lex.AssertExpectations(t)

	assert.True(t, errors.Is(err, ErrLexiconFailure))
	assert.True(t, errors.Is(err, failure))
	var lexErr *LexiconError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "sat", lexErr.Lemma)

	require.Len(t, segments, 3)
	assert.Equal(t, segments, streamed)
	assert.Equal(t, "cat", segments[2].Lemma)
}
