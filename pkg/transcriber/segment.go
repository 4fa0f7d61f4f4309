package transcriber

import (
	"errors"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

// Delimiter is a notational marker of the transcription.
type Delimiter string

const (
	NoDelimiter        Delimiter = ""
	EnclosingDelimiter Delimiter = "/"
	SingleDelimiter    Delimiter = "|"
	DoubleDelimiter    Delimiter = "||"
)

func delimiterForMode(mode int) Delimiter {
	switch mode {
	case lexicon.DelimiterSingle:
		return SingleDelimiter
	case lexicon.DelimiterDouble:
		return DoubleDelimiter
	default:
		return NoDelimiter
	}
}

// Item is one element of a segment: either a lexicon entry or a delimiter.
type Item struct {
	Entry     *lexicon.Entry
	Delimiter Delimiter
	// Conflict marks items the user should look at, e.g. an entry matching
	// several word classes.
	Conflict bool
}

func entryItem(e *lexicon.Entry) *Item {
	return &Item{Entry: e}
}

func delimiterItem(d Delimiter) *Item {
	return &Item{Delimiter: d}
}

func (i *Item) IsDelimiter() bool {
	return i.Entry == nil
}

// Phonetic returns the phonetic string of the selected candidate, if any.
func (i *Item) Phonetic() (string, bool) {
	if i.Entry == nil {
		return "", false
	}
	c, ok := i.Entry.Selected()
	if !ok || c.Phonetic == "" {
		return "", false
	}
	return c.Phonetic, true
}

// Reading selects how an ambiguous numeral such as 1800 is read.
type Reading int

const (
	ReadingYear Reading = iota
	ReadingCommon
)

func (r Reading) String() string {
	if r == ReadingYear {
		return "year"
	}
	return "common"
}

var ErrNoReadings = errors.New("segment has no alternative numeral readings")

// NumeralReadings holds both readings of a numeral that may be a year.
type NumeralReadings struct {
	Year   []*Item
	Common []*Item
	Active Reading
	// start is the index in Segment.Items of the first numeral item.
	start int
}

func (n *NumeralReadings) items(r Reading) []*Item {
	if r == ReadingYear {
		return n.Year
	}
	return n.Common
}

// Segment is the transcription of one input token. Enclosing slashes and
// inner bar delimiters are segments of their own without a lemma.
type Segment struct {
	Leading  string
	Lemma    string
	Trailing string
	Items    []*Item
	// Readings is set for numerals that may be read as a year.
	Readings *NumeralReadings
}

func newDelimiterSegment(lemma string, d Delimiter) *Segment {
	return &Segment{Lemma: lemma, Items: []*Item{delimiterItem(d)}}
}

func (s *Segment) HasItems() bool {
	return len(s.Items) != 0
}

// IsDelimiter reports whether the segment consists of delimiters only.
func (s *Segment) IsDelimiter() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, item := range s.Items {
		if !item.IsDelimiter() {
			return false
		}
	}
	return true
}

func (s *Segment) HasTrailingDelimiter() bool {
	return len(s.Items) != 0 && s.Items[len(s.Items)-1].IsDelimiter()
}

// Entries returns the entry backed items of the segment.
func (s *Segment) Entries() []*Item {
	var result []*Item
	for _, item := range s.Items {
		if !item.IsDelimiter() {
			result = append(result, item)
		}
	}
	return result
}

// UseReading switches a year candidate numeral to reading r. Items around
// the numeral, such as delimiters or a currency, are kept.
func (s *Segment) UseReading(r Reading) error {
	if s.Readings == nil {
		return ErrNoReadings
	}
	if s.Readings.Active == r {
		return nil
	}
	current := s.Readings.items(s.Readings.Active)
	start := s.Readings.start
	end := start + len(current)

	items := make([]*Item, 0, len(s.Items)-len(current)+len(s.Readings.items(r)))
	items = append(items, s.Items[:start]...)
	items = append(items, s.Readings.items(r)...)
	items = append(items, s.Items[end:]...)
	s.Items = items
	s.Readings.Active = r
	return nil
}
