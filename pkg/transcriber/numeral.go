package transcriber

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidArgument is returned for numbers outside the range an operation
// supports.
var ErrInvalidArgument = errors.New("invalid argument")

var belowTwenty = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	2: "twenty", 3: "thirty", 4: "forty", 5: "fifty",
	6: "sixty", 7: "seventy", 8: "eighty", 9: "ninety",
}

// scales is indexed by the position of a three digit group counted from the
// right. Nineteen digits are the most an int64 can hold.
var scales = [...]string{
	"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion",
}

const (
	keyZero    = "zero"
	keyHundred = "hundred"
	keyDot     = "dot"
	keyMinus   = "minus"
)

// numeralBelowTwenty falls back to "zero" for anything outside [0, 19].
func numeralBelowTwenty(n int) string {
	if n < 0 || n >= len(belowTwenty) {
		return keyZero
	}
	return belowTwenty[n]
}

// SpellTensAndOnes returns the lookup keys of a number in [0, 99]: a single
// word below twenty, otherwise the tens word followed by the ones word unless
// the ones digit is zero.
func SpellTensAndOnes(n int) ([]string, error) {
	if n < 0 || n > 99 {
		return nil, fmt.Errorf("%w: %d is not in [0, 99]", ErrInvalidArgument, n)
	}
	if n < 20 {
		return []string{belowTwenty[n]}, nil
	}
	keys := []string{tens[n/10]}
	if n%10 != 0 {
		keys = append(keys, belowTwenty[n%10])
	}
	return keys, nil
}

// tensAndOnes is SpellTensAndOnes for callers that already guarantee the range.
func tensAndOnes(n int) []string {
	keys, err := SpellTensAndOnes(n)
	if err != nil {
		panic(err)
	}
	return keys
}

// Spell returns the lookup keys reading integer followed by the digits of
// decimal, e.g. 12345 and "678" become "twelve thousand three hundred forty
// five dot six seven eight". Negative numbers are prefixed with "minus".
func Spell(integer int64, decimal string) []string {
	var keys []string
	if integer == 0 {
		keys = append(keys, keyZero)
	} else {
		magnitude := uint64(integer)
		if integer < 0 {
			keys = append(keys, keyMinus)
			magnitude = uint64(-(integer + 1)) + 1
		}
		keys = append(keys, spellMagnitude(magnitude)...)
	}
	if decimal != "" {
		keys = append(keys, keyDot)
		for _, d := range decimal {
			keys = append(keys, numeralBelowTwenty(int(d-'0')))
		}
	}
	return keys
}

func spellMagnitude(n uint64) []string {
	digits := strconv.FormatUint(n, 10)
	// left pad to full groups of three
	if pad := (3 - len(digits)%3) % 3; pad != 0 {
		digits = "00"[:pad] + digits
	}
	groups := len(digits) / 3

	var keys []string
	for g := 0; g < groups; g++ {
		group := digits[g*3 : g*3+3]
		hundreds := int(group[0] - '0')
		rest := int(group[1]-'0')*10 + int(group[2]-'0')
		if hundreds != 0 {
			keys = append(keys, tensAndOnes(hundreds)...)
			keys = append(keys, keyHundred)
		}
		if rest != 0 {
			keys = append(keys, tensAndOnes(rest)...)
		}
		if scale := scales[groups-1-g]; scale != "" && (hundreds != 0 || rest != 0) {
			keys = append(keys, scale)
		}
	}
	return keys
}

// IsYearCandidate reports whether a numeral may be read as a year: an
// integer strictly between 100 and 2000 with no decimal part and no minus.
func IsYearCandidate(integer int64, decimal string, negative bool) bool {
	return !negative && decimal == "" && integer > 100 && integer < 2000
}

// SpellYear reads integer the way years are spoken: 1800 becomes "eighteen
// hundred", 1066 "ten hundred sixty six". It is only defined for year
// candidates.
func SpellYear(integer int64) ([]string, error) {
	if integer <= 100 || integer >= 2000 {
		return nil, fmt.Errorf("%w: %d is not a year candidate", ErrInvalidArgument, integer)
	}
	n := int(integer)
	keys := append(tensAndOnes(n/100), keyHundred)
	if n%100 != 0 {
		keys = append(keys, tensAndOnes(n%100)...)
	}
	return keys, nil
}
