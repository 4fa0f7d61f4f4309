package transcriber

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

var (
	digitRegexp   = regexp.MustCompile(`\d`)
	decimalRegexp = regexp.MustCompile(`\A\d+\.\d+\z`)
)

// resolution is the state of a single Transcribe call.
type resolution struct {
	t        *Transcriber
	ctx      context.Context
	tokens   []string
	segments []*Segment
	// prevToken is the segment of the previous token; nil for the first one.
	prevToken *Segment
}

func (r *resolution) add(s *Segment) {
	r.segments = append(r.segments, s)
	if r.t.onSegment != nil {
		r.t.onSegment(s)
	}
}

// canDelimit reports whether a bar delimiter may be added now, that is the
// last segment does not already end in one.
func (r *resolution) canDelimit() bool {
	if len(r.segments) == 0 {
		return false
	}
	return !r.segments[len(r.segments)-1].HasTrailingDelimiter()
}

func (r *resolution) query(lemma string) (*Item, error) {
	entry, err := r.t.lexicon.Query(r.ctx, lemma)
	if err != nil {
		return nil, &LexiconError{Lemma: lemma, Err: err}
	}
	return entryItem(entry), nil
}

func (r *resolution) queryAll(keys []string) ([]*Item, error) {
	items := make([]*Item, 0, len(keys))
	for _, key := range keys {
		item, err := r.query(key)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *resolution) resolve(i int, token string) (*Segment, error) {
	d := Dissect(token)
	isLast := i == len(r.tokens)-1
	if !d.HasWord() {
		return r.resolveNonWord(token, isLast)
	}
	logger := r.t.logger.With(zap.String("token", token))
	logger.Debug("Dissected",
		zap.String("leading", d.Leading),
		zap.String("core", d.Core),
		zap.String("trailing", d.Trailing),
	)

	segment := &Segment{}
	leading, core, trailing := d.Leading, d.Core, d.Trailing
	var items []*Item

	if leading != "" {
		if rule, ok := r.t.highestPunctuation(leading); ok {
			switch {
			case isQuotationMark(rule.Character) && strings.ContainsRune(trailing, rule.Character):
				logger.Debug("Token is enclosed in quotation marks, no leading delimiter")
			case rule.DelimiterMode > lexicon.DelimiterNone && r.canDelimit():
				items = append(items, delimiterItem(delimiterForMode(rule.DelimiterMode)))
			}
		}
	}

	if digitRegexp.MatchString(core) {
		var err error
		items, leading, core, err = r.resolveNumeral(segment, items, leading, core)
		if err != nil {
			return nil, err
		}
	} else {
		item, err := r.query(core)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if trailing != "" {
		first, size := utf8.DecodeRuneInString(trailing)
		if rule, ok := r.t.currency[first]; ok {
			lemma := rule.Plural
			if IsSingularTrigger(core) {
				lemma = rule.Singular
			}
			item, err := r.query(lemma)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			core += string(first)
			trailing = trailing[size:]
		}
		if rule, ok := r.t.highestPunctuation(trailing); ok {
			switch {
			case isQuotationMark(rule.Character) && strings.ContainsRune(leading, rule.Character):
				logger.Debug("Token is enclosed in quotation marks, no trailing delimiter")
			case rule.DelimiterMode > lexicon.DelimiterNone && !isLast:
				items = append(items, delimiterItem(delimiterForMode(rule.DelimiterMode)))
			}
		}
	}

	segment.Leading = leading
	segment.Lemma = core
	segment.Trailing = trailing
	segment.Items = items
	return segment, nil
}

// resolveNumeral transcribes a core containing digits. It returns the
// extended items together with leading and core, which change when a minus
// sign moves from the leading part into the core.
func (r *resolution) resolveNumeral(
	segment *Segment,
	items []*Item,
	leading, core string,
) ([]*Item, string, string, error) {
	integer, decimal, ok := parseNumeral(core)
	if !ok {
		r.t.logger.Warn("Unable to parse numeral, looking it up literally", zap.String("core", core))
		item, err := r.query(core)
		if err != nil {
			return nil, "", "", err
		}
		return append(items, item), leading, core, nil
	}

	negative := endsWithMinusLike(leading)
	if IsYearCandidate(integer, decimal, negative) {
		r.t.logger.Debug("Numeral may be a year", zap.Int64("numeral", integer))
		yearKeys, err := SpellYear(integer)
		if err != nil {
			return nil, "", "", err
		}
		year, err := r.queryAll(yearKeys)
		if err != nil {
			return nil, "", "", err
		}
		common, err := r.queryAll(Spell(integer, ""))
		if err != nil {
			return nil, "", "", err
		}
		segment.Readings = &NumeralReadings{
			Year:   year,
			Common: common,
			Active: r.t.defaultReading,
			start:  len(items),
		}
		return append(items, segment.Readings.items(r.t.defaultReading)...), leading, core, nil
	}

	if negative {
		minus, size := utf8.DecodeLastRuneInString(leading)
		core = string(minus) + core
		leading = leading[:len(leading)-size]
		item, err := r.query(keyMinus)
		if err != nil {
			return nil, "", "", err
		}
		items = append(items, item)
	}
	spelled, err := r.queryAll(Spell(integer, decimal))
	if err != nil {
		return nil, "", "", err
	}
	return append(items, spelled...), leading, core, nil
}

// parseNumeral reads "12,345" or "3.14" after dropping thousands separators.
func parseNumeral(core string) (integer int64, decimal string, ok bool) {
	s := strings.ReplaceAll(core, ",", "")
	if decimalRegexp.MatchString(s) {
		dot := strings.IndexByte(s, '.')
		s, decimal = s[:dot], s[dot+1:]
	}
	integer, err := strconv.ParseInt(s, 10, 64)
	if err != nil || integer < 0 {
		return 0, "", false
	}
	return integer, decimal, true
}

// resolveNonWord handles tokens without any word character: a lone
// punctuation mark, a lone currency symbol or anything else, which is looked
// up as it is.
func (r *resolution) resolveNonWord(token string, isLast bool) (*Segment, error) {
	segment := &Segment{Lemma: token}
	if utf8.RuneCountInString(token) == 1 {
		ch, _ := utf8.DecodeRuneInString(token)
		if rule, ok := r.t.punctuation[ch]; ok {
			if rule.DelimiterMode > lexicon.DelimiterNone && r.canDelimit() && !isLast {
				return newDelimiterSegment(token, delimiterForMode(rule.DelimiterMode)), nil
			}
			return segment, nil
		}
		if rule, ok := r.t.currency[ch]; ok {
			item, err := r.currencyItem(rule)
			if err != nil {
				return nil, err
			}
			segment.Items = []*Item{item}
			return segment, nil
		}
	}
	item, err := r.query(token)
	if err != nil {
		return nil, err
	}
	segment.Items = []*Item{item}
	return segment, nil
}

// currencyItem reads a standalone currency symbol. Without a previous token
// to tell singular from plural, both are offered in one entry.
func (r *resolution) currencyItem(rule lexicon.CurrencyRule) (*Item, error) {
	if r.prevToken != nil {
		lemma := rule.Plural
		if IsSingularTrigger(r.prevToken.Lemma) {
			lemma = rule.Singular
		}
		return r.query(lemma)
	}
	singular, err := r.query(rule.Singular)
	if err != nil {
		return nil, err
	}
	plural, err := r.query(rule.Plural)
	if err != nil {
		return nil, err
	}
	for _, c := range plural.Entry.Candidates() {
		singular.Entry.Add(c)
	}
	return singular, nil
}
