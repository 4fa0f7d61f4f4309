package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

type enrichFunc func(pctx *Pronunciation, sel *goquery.Selection) ([]*Pronunciation, error)

func enrichPronunciations(pctx *Pronunciation, sel *goquery.Selection, f enrichFunc) ([]*Pronunciation, error) {
	var lastError error
	result := make([]*Pronunciation, 0, sel.Length())
	sel.EachWithBreak(func(i int, s *goquery.Selection) bool {
		newContext := *pctx
		found, err := f(&newContext, s)
		if err != nil {
			lastError = err
			return false
		}
		result = append(result, found...)
		return true
	})
	return result, lastError
}

var dictionaryMatcher = cascadia.MustCompile(`div[class*="dictionary"][data-id]`)

// ParsePronunciationHTML extracts every headword with its transcriptions
// from a dictionary page. Headwords without any transcription are skipped.
func ParsePronunciationHTML(page io.Reader) ([]*Pronunciation, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	dictionaries := doc.FindMatcher(dictionaryMatcher)
	return enrichPronunciations(new(Pronunciation), dictionaries, parseDictionary)
}

var dataIDToLanguage = map[string]string{
	"unknown": "unknown",
	"cald4":   "british",
	"cacd":    "american-english",
	"cbed":    "business-english",
}

func getLanguageFromDataID(dictionary *goquery.Selection) (string, error) {
	dataID := dictionary.AttrOr("data-id", "unknown")
	language, ok := dataIDToLanguage[dataID]
	if !ok {
		return "", fmt.Errorf("div.dictionary has unknown data-id attr: %s", dataID)
	}
	return language, nil
}

var dictionaryEntryMatcher = cascadia.MustCompile(strings.Join([]string{
	`div[class*="entry-body__el"]>div[class*="pos-header"]`,
	`div[class="pv-block"]`,
}, ", "))

func parseDictionary(pctx *Pronunciation, dictionary *goquery.Selection) ([]*Pronunciation, error) {
	language, err := getLanguageFromDataID(dictionary)
	if err != nil {
		return nil, err
	}
	pctx.Language = language
	/*
		pronunciations live in two kinds of headers:
		1. div.pos-header for simple words like "record"
		2. div.pv-block for phrasal verbs
		idioms carry no transcription and are ignored
	*/
	entries := dictionary.FindMatcher(dictionaryEntryMatcher)
	return enrichPronunciations(pctx, entries, func(pctx *Pronunciation, sel *goquery.Selection) ([]*Pronunciation, error) {
		var err error
		if sel.HasClass("pv-block") {
			err = updateWithPVBlock(pctx, sel)
		} else {
			err = updateWithHeader(pctx, sel)
		}
		if err != nil {
			return nil, err
		}
		if len(pctx.Transcriptions) == 0 {
			return nil, nil
		}
		return []*Pronunciation{pctx}, nil
	})
}

var (
	posHeaderMatcher = cascadia.MustCompile(`div.pos-header`)
	headwordMatcher  = cascadia.MustCompile(`span[class^=headword]`)
	posgramMatcher   = cascadia.MustCompile(`div[class^=posgram]`)
)

func updateWithHeader(pctx *Pronunciation, header *goquery.Selection) error {
	headword := header.FindMatcher(headwordMatcher)
	if headword.Length() == 0 {
		return fmt.Errorf(".pos-header has not .headword elements")
	}
	pctx.Lemma = strings.TrimSpace(headword.First().Text())
	pctx.PartOfSpeech = getPartOfSpeech(header.ChildrenMatcher(posgramMatcher))
	pctx.Transcriptions = getTranscriptions(header)
	return nil
}

var (
	diTitleMatcher     = cascadia.MustCompile(`div.di-title`)
	diInfoMatcher      = cascadia.MustCompile(`span.di-info`)
	ancInfoHeadMatcher = cascadia.MustCompile(`span.anc-info-head`)
)

func updateWithPVBlock(pctx *Pronunciation, pvBlock *goquery.Selection) error {
	diTitle := strings.TrimSpace(pvBlock.ChildrenMatcher(diTitleMatcher).Text())
	if diTitle == "" {
		return fmt.Errorf(".pv-block has not .di-title element")
	}
	pctx.Lemma = diTitle

	posHeader := pvBlock.ChildrenMatcher(diInfoMatcher).ChildrenMatcher(posHeaderMatcher)
	pctx.PartOfSpeech = getPartOfSpeech(posHeader.ChildrenMatcher(ancInfoHeadMatcher))
	pctx.Transcriptions = getTranscriptions(posHeader)
	return nil
}

var partOfSpeechMatcher = cascadia.MustCompile(`span[class^=pos]`)

// getPartOfSpeech extracts POS from childrens span.pos elements
func getPartOfSpeech(sel *goquery.Selection) []string {
	pos := sel.ChildrenMatcher(partOfSpeechMatcher)
	partOfSpeech := pos.Map(func(i int, sel *goquery.Selection) string {
		return strings.TrimSpace(sel.Text())
	})
	sort.Strings(partOfSpeech)
	return partOfSpeech
}

var (
	transcriptionFullMatcher   = cascadia.MustCompile(`span[class*="dpron-i"]`)
	transcriptionRegionMatcher = cascadia.MustCompile(`span[class^="region"]`)
	transcriptionIPAMatcher    = cascadia.MustCompile(`span[class^="ipa"]`)
)

// getTranscriptions extracts transcriptions from children of sel
func getTranscriptions(sel *goquery.Selection) map[string][]string {
	dprons := sel.ChildrenMatcher(transcriptionFullMatcher)
	transcriptions := make(map[string][]string, dprons.Length())
	dprons.Each(func(i int, dpron *goquery.Selection) {
		region := strings.ToLower(strings.TrimSpace(dpron.ChildrenMatcher(transcriptionRegionMatcher).First().Text()))
		if region == "" {
			return
		}
		ipas := dpron.FindMatcher(transcriptionIPAMatcher).Map(transformIPAToString)
		for _, ipa := range ipas {
			if ipa != "" {
				transcriptions[region] = append(transcriptions[region], ipa)
			}
		}
	})
	return transcriptions
}

func transformIPAToString(i int, ipa *goquery.Selection) string {
	var parts []string
	ipa.Contents().Each(func(i int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "#text":
			parts = append(parts, sel.Text())
		case "span":
			parts = append(parts, transformIPASpan(sel))
		}
	})
	return strings.TrimSpace(strings.Join(parts, ""))
}

// transformIPASpan drops superscript optional sounds, which a broad
// transcription leaves out.
func transformIPASpan(ipaSpan *goquery.Selection) string {
	if ipaSpan.HasClass("sp") {
		return ""
	}
	return ipaSpan.Text()
}
