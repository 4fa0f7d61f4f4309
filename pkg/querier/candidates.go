package querier

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"sort"
	"strings"

	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/parser"
)

// partOfSpeechClasses maps dictionary parts of speech to word class
// abbreviations of the default registry.
var partOfSpeechClasses = map[string]string{
	"adjective":      "adj",
	"adverb":         "rb",
	"conjunction":    "conj",
	"determiner":     "det",
	"exclamation":    "excl",
	"noun":           "comN",
	"pronoun":        "proN",
	"number":         "num",
	"ordinal number": "num",
	"preposition":    "prep",
	"verb":           "lexV",
	"phrasal verb":   "lexV",
	"modal verb":     "modAux",
	"auxiliary verb": "primAux",
}

// candidates converts the pronunciations of the headword lemma into
// candidates, one per word class, variety and transcription.
func (q *Remote) candidates(lemma string, pronunciations []*parser.Pronunciation) []lexicon.Candidate {
	result := []lexicon.Candidate{}
	seen := make(map[lexicon.Candidate]struct{})
	for _, p := range pronunciations {
		if !strings.EqualFold(strings.TrimSpace(p.Lemma), lemma) {
			continue
		}
		classes := q.wordClasses(p.PartOfSpeech)

		regions := make([]string, 0, len(p.Transcriptions))
		for region := range p.Transcriptions {
			regions = append(regions, region)
		}
		sort.Strings(regions)

		for _, region := range regions {
			variety, ok := q.registry.Variety(q.config.RegionVarieties[region])
			if !ok {
				continue
			}
			for _, ipa := range p.Transcriptions[region] {
				// syllable separators are not part of a broad transcription
				phonetic := strings.ReplaceAll(ipa, ".", "")
				if phonetic == "" {
					continue
				}
				for _, wc := range classes {
					c := lexicon.Candidate{
						ID:        -1,
						Lemma:     lemma,
						Phonetic:  phonetic,
						Type:      lexicon.TypeNone,
						WordClass: wc,
						Variety:   variety,
					}
					if _, ok := seen[c]; ok {
						continue
					}
					seen[c] = struct{}{}
					result = append(result, c)
				}
			}
		}
	}
	return result
}

// wordClasses maps parts of speech to word classes. Parts of speech without
// a matching class keep their name as an unregistered class.
func (q *Remote) wordClasses(partOfSpeech []string) []lexicon.WordClass {
	if len(partOfSpeech) == 0 {
		return []lexicon.WordClass{{}}
	}
	var classes []lexicon.WordClass
	for _, pos := range partOfSpeech {
		wc, ok := q.registry.WordClass(partOfSpeechClasses[pos])
		if !ok {
			wc = lexicon.WordClass{Name: pos, Abbreviation: pos}
		}
		duplicate := false
		for _, known := range classes {
			if known == wc {
				duplicate = true
				break
			}
		}
		if !duplicate {
			classes = append(classes, wc)
		}
	}
	return classes
}

func readBody(response *http.Response) (io.ReadCloser, error) {
	defer response.Body.Close()
	data, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("can not read response body: %w", err)
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}
