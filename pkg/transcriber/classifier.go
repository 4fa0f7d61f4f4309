package transcriber

import (
	"unicode"
)

// IsWordChar reports whether ch belongs to a lemma: letters and digits, but
// not the underscore.
func IsWordChar(ch rune) bool {
	return ch != '_' && (unicode.IsLetter(ch) || unicode.IsNumber(ch))
}

// IsVocalicSound reports whether ch is one of the vowel symbols of the broad
// transcription alphabet. Diphthongs are covered by their first symbol.
func IsVocalicSound(ch rune) bool {
	switch ch {
	case 'a', 'ɑ', 'ʌ', 'æ', 'ɜ', 'e', 'ə', 'i', 'ɪ', 'ɔ', 'ɒ', 'u', 'ʊ':
		return true
	default:
		return false
	}
}

// IsMinusLike reports whether ch reads as "minus" in front of a numeral.
// Only the hyphen-minus and the minus sign qualify; hyphens and dashes that
// merely look alike do not.
func IsMinusLike(ch rune) bool {
	return ch == '-' || ch == '−'
}

// IsSingularTrigger reports whether text requires a following currency to be
// read in the singular, as in "1 $" or "a £".
func IsSingularTrigger(text string) bool {
	switch text {
	case "a", "one", "1", "-1", "1.00", "-1.00", "1.-", "single":
		return true
	default:
		return false
	}
}

func isQuotationMark(ch rune) bool {
	return ch == '"'
}

func isStressMark(ch rune) bool {
	return ch == 'ˈ' || ch == 'ˌ'
}

func endsWithMinusLike(s string) bool {
	runes := []rune(s)
	return len(runes) != 0 && IsMinusLike(runes[len(runes)-1])
}
