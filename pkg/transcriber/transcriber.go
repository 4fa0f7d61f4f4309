// Package transcriber turns English text into a broad phonetic transcription.
//
// Input is split at whitespace into tokens. Every token is dissected into
// leading punctuation, a lemma core and trailing punctuation; the core is
// looked up in a lexicon, with numerals spelled out word by word and currency
// symbols read as their singular or plural name. Punctuation becomes "|" and
// "||" delimiters and the whole transcription is enclosed in slashes. A final
// pass flags word class conflicts and picks the weak form of "the" that fits
// the following sound.
package transcriber

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

// Progress reports how far a transcription has come.
type Progress struct {
	Fraction float64
	Status   string
}

type ProgressFunc func(Progress)

type Option func(*Transcriber)

func WithLogger(logger *zap.Logger) Option {
	return func(t *Transcriber) {
		t.logger = logger
	}
}

// WithProgress registers f to be called after every token and every
// post-processed segment.
func WithProgress(f ProgressFunc) Option {
	return func(t *Transcriber) {
		t.progress = f
	}
}

// WithSegmentFunc registers f to be called for every finished segment as soon
// as it is added, before post-processing.
func WithSegmentFunc(f func(*Segment)) Option {
	return func(t *Transcriber) {
		t.onSegment = f
	}
}

// WithDefaultReading sets which reading of a possible year numeral is active
// initially. The default is ReadingYear.
func WithDefaultReading(r Reading) Option {
	return func(t *Transcriber) {
		t.defaultReading = r
	}
}

// Transcriber is safe for concurrent use as long as its Lexicon is; every
// call works on its own segments.
type Transcriber struct {
	lexicon     lexicon.Lexicon
	prefs       lexicon.Preferences
	punctuation map[rune]lexicon.PunctuationRule
	currency    map[rune]lexicon.CurrencyRule

	logger         *zap.Logger
	progress       ProgressFunc
	onSegment      func(*Segment)
	defaultReading Reading
}

func New(lex lexicon.Lexicon, prefs lexicon.Preferences, tables lexicon.Tables, opts ...Option) *Transcriber {
	t := &Transcriber{
		lexicon:        lex,
		prefs:          prefs,
		punctuation:    make(map[rune]lexicon.PunctuationRule),
		currency:       make(map[rune]lexicon.CurrencyRule),
		logger:         zap.NewNop(),
		defaultReading: ReadingYear,
	}
	for _, p := range tables.PunctuationRules() {
		t.punctuation[p.Character] = p
	}
	for _, c := range tables.CurrencyRules() {
		t.currency[c.Character] = c
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize trims input and splits it at runs of whitespace.
func Tokenize(input string) []string {
	return strings.Fields(input)
}

// Transcribe converts input into an ordered list of segments, enclosed by
// slash delimiter segments.
//
// A lexicon failure aborts the call. The returned error then matches
// ErrLexiconFailure and the segments finished so far are returned with it.
func (t *Transcriber) Transcribe(ctx context.Context, input string) ([]*Segment, error) {
	tokens := Tokenize(input)
	t.logger.Info("Transcribing", zap.String("input", strings.Join(tokens, " ")))

	r := &resolution{
		t:      t,
		ctx:    ctx,
		tokens: tokens,
	}
	r.add(newDelimiterSegment("", EnclosingDelimiter))
	for i, token := range tokens {
		t.logger.Debug("Analysing token", zap.Int("index", i), zap.String("token", token))
		segment, err := r.resolve(i, token)
		if err != nil {
			t.logger.Error("Transcription aborted", zap.Error(err), zap.String("token", token))
			return r.segments, err
		}
		r.add(segment)
		r.prevToken = segment
		t.report(float64(i+1)/float64(len(tokens)),
			fmt.Sprintf("Transcribing segment %d of %d ...", i+1, len(tokens)))
	}
	r.add(newDelimiterSegment("", EnclosingDelimiter))

	t.postProcess(r.segments)
	return r.segments, nil
}

func (t *Transcriber) report(fraction float64, status string) {
	if t.progress != nil {
		t.progress(Progress{Fraction: fraction, Status: status})
	}
}

// highestPunctuation returns the rule with the highest delimiter mode among
// the characters of s. Ties go to the first character.
func (t *Transcriber) highestPunctuation(s string) (lexicon.PunctuationRule, bool) {
	var best lexicon.PunctuationRule
	found := false
	for _, ch := range s {
		rule, ok := t.punctuation[ch]
		if !ok {
			continue
		}
		if !found || rule.DelimiterMode > best.DelimiterMode {
			best = rule
			found = true
		}
	}
	return best, found
}
