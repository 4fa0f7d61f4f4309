package querier

import (
	"io"

	"github.com/darkclainer/camtrans/pkg/parser"
)

type Parser interface {
	ParsePronunciation(page io.Reader) ([]*parser.Pronunciation, error)
	ParseSuggestion(page io.Reader) ([]string, error)
}

type HTMLParser struct{}

func (p *HTMLParser) ParsePronunciation(page io.Reader) ([]*parser.Pronunciation, error) {
	return parser.ParsePronunciationHTML(page)
}
func (p *HTMLParser) ParseSuggestion(page io.Reader) ([]string, error) {
	return parser.ParseSuggestionHTML(page)
}
