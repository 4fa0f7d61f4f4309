package transcriber

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

const (
	definiteArticle = "the"
	schwaEnding     = "ə"
	vocalicEnding   = "i"
)

// postProcess flags word class conflicts and resolves the weak form of the
// definite article in place.
func (t *Transcriber) postProcess(segments []*Segment) {
	for i, segment := range segments {
		t.report(float64(i+1)/float64(len(segments)),
			fmt.Sprintf("Doing post-processing %d of %d ...", i+1, len(segments)))
		if segment.IsDelimiter() {
			continue
		}
		for _, item := range segment.Items {
			if item.IsDelimiter() {
				continue
			}
			item.Conflict = item.Entry.MatchesMultipleWordClasses()
			selected, ok := item.Entry.Selected()
			if !ok || selected.Lemma != definiteArticle {
				continue
			}
			t.resolveArticle(item, nextOnset(segments, i))
		}
	}
}

// resolveArticle selects the weak form of "the" in the preferred variety:
// the schwa form by default and the "i" form before a vocalic sound.
func (t *Transcriber) resolveArticle(item *Item, onset string) {
	var weak []lexicon.Candidate
	preferred := t.prefs.PreferredVariety()
	for _, c := range item.Entry.Candidates() {
		if c.Type == lexicon.TypeWeak && c.Variety.ID == preferred.ID && !preferred.IsZero() {
			weak = append(weak, c)
		}
	}
	if len(weak) == 0 {
		t.logger.Warn("No weak form of the definite article in the preferred variety",
			zap.Stringer("variety", preferred))
		item.Conflict = true
		return
	}
	if onset == "" {
		t.logger.Debug("Definite article is not followed by a transcribed word")
		item.Conflict = true
		return
	}

	ending := schwaEnding
	if r, _ := utf8.DecodeRuneInString(onset); IsVocalicSound(r) {
		ending = vocalicEnding
	}
	for _, c := range weak {
		if strings.HasSuffix(c.Phonetic, ending) {
			item.Entry.Select(c)
			return
		}
	}
	item.Conflict = true
}

// nextOnset returns the phonetic string of the first transcribed entry in the
// segment following segments[i], without leading stress marks.
func nextOnset(segments []*Segment, i int) string {
	if i+1 >= len(segments) {
		return ""
	}
	for _, item := range segments[i+1].Items {
		phonetic, ok := item.Phonetic()
		if !ok {
			continue
		}
		phonetic = strings.TrimLeftFunc(phonetic, isStressMark)
		if phonetic != "" {
			return phonetic
		}
	}
	return ""
}
