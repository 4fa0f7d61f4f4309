package transcriber

import (
	"strings"
)

// Render joins the items of segments into a single line such as
// "/ ðə kæt | sæt /". Entries without a selected candidate are written as
// "<lemma?>" so gaps in the lexicon stay visible.
func Render(segments []*Segment) string {
	var parts []string
	for _, segment := range segments {
		for _, item := range segment.Items {
			if item.IsDelimiter() {
				if item.Delimiter != NoDelimiter {
					parts = append(parts, string(item.Delimiter))
				}
				continue
			}
			if phonetic, ok := item.Phonetic(); ok {
				parts = append(parts, phonetic)
				continue
			}
			parts = append(parts, "<"+item.Entry.Lemma()+"?>")
		}
	}
	return strings.Join(parts, " ")
}
