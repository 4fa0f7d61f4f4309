package querier

import (
	"encoding/json"
	"io"

	"github.com/darkclainer/camtrans/pkg/parser"
)

// JSONParser parses pronunciations or suggestions from JSON format. Use it for testing
type JSONParser struct{}

func (p *JSONParser) ParsePronunciation(page io.Reader) ([]*parser.Pronunciation, error) {
	var pronunciations []*parser.Pronunciation
	if err := json.NewDecoder(page).Decode(&pronunciations); err != nil {
		return nil, err
	}
	return pronunciations, nil
}

func (p *JSONParser) ParseSuggestion(page io.Reader) ([]string, error) {
	var suggestions []string
	if err := json.NewDecoder(page).Decode(&suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
