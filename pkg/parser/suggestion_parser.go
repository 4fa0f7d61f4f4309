package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	suggestionListMatcher = cascadia.MustCompile(`h1 ~ ul.hul-u`)
	suggestionMatcher     = cascadia.MustCompile(`li`)
)

// ErrNoSuggestions is returned for a spellcheck page without any entry.
var ErrNoSuggestions = errors.New("no suggestions found")

// ParseSuggestionHTML returns the distinct spelling suggestions of a
// spellcheck page in page order.
func ParseSuggestionHTML(page io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	var suggestions []string
	seen := make(map[string]struct{})
	doc.FindMatcher(suggestionListMatcher).
		ChildrenMatcher(suggestionMatcher).
		Each(func(i int, li *goquery.Selection) {
			suggestion := strings.Join(strings.Fields(li.Text()), " ")
			if suggestion == "" {
				return
			}
			if _, ok := seen[suggestion]; ok {
				return
			}
			seen[suggestion] = struct{}{}
			suggestions = append(suggestions, suggestion)
		})
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	return suggestions, nil
}
