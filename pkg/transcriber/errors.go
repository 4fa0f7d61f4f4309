package transcriber

import (
	"errors"
	"fmt"
)

// ErrLexiconFailure matches every error caused by the lexicon being
// unreachable or corrupt. Such errors abort the whole transcription.
var ErrLexiconFailure = errors.New("lexicon failure")

type LexiconError struct {
	Lemma string
	Err   error
}

func (e *LexiconError) Error() string {
	return fmt.Sprintf("lexicon query for %q failed: %v", e.Lemma, e.Err)
}

func (e *LexiconError) Unwrap() error {
	return e.Err
}

func (e *LexiconError) Is(target error) bool {
	return target == ErrLexiconFailure
}
