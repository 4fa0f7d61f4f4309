package transcriber

import (
	"regexp"
)

var (
	wordRunRegexp = regexp.MustCompile(`[\p{L}\p{N}]+`)
	nonWordRegexp = regexp.MustCompile(`[^\p{L}\p{N}]`)
)

// Dissection is a token split into the non-word characters in front of the
// lemma, the lemma core and the non-word characters behind it.
type Dissection struct {
	Leading  string
	Core     string
	Trailing string
	// WordRuns is the number of maximal word character runs in the token.
	WordRuns int
	// NonWord holds every single non-word character of the token in order.
	NonWord []string
}

// HasWord reports whether the token contains at least one word character.
func (d Dissection) HasWord() bool {
	return d.WordRuns != 0
}

// Dissect splits token at the first and the last word character run. The
// core reaches from the start of the first run to the end of the last one,
// so inner non-word characters stay in the core: "well-known" has an empty
// leading and trailing part. A token without word characters is returned
// whole in Core.
func Dissect(token string) Dissection {
	runs := wordRunRegexp.FindAllStringIndex(token, -1)
	d := Dissection{
		WordRuns: len(runs),
		NonWord:  nonWordRegexp.FindAllString(token, -1),
	}
	if len(runs) == 0 {
		d.Core = token
		return d
	}
	start, end := runs[0][0], runs[len(runs)-1][1]
	d.Leading = token[:start]
	d.Core = token[start:end]
	d.Trailing = token[end:]
	return d
}
