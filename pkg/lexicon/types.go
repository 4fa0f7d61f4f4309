package lexicon

import (
	"fmt"
	"strings"
)

// Variety is a dialect of English, e.g. British English (BrE).
type Variety struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Abbreviation string `json:"abbreviation" yaml:"abbreviation"`
}

func (v Variety) IsZero() bool {
	return v == Variety{}
}

func (v Variety) String() string {
	return fmt.Sprintf("%s (%s, %d)", v.Name, v.Abbreviation, v.ID)
}

// WordClass is a grammatical category used to tell homographs apart.
type WordClass struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Abbreviation string `json:"abbreviation" yaml:"abbreviation"`
	ContentWord  bool   `json:"content_word" yaml:"content_word"`
}

func (w WordClass) String() string {
	return fmt.Sprintf("%s (%s, %d)", w.Name, w.Abbreviation, w.ID)
}

type TranscriptionType int

const (
	TypeNone TranscriptionType = iota
	TypeWeak
	TypeStrong
)

var transcriptionTypeNames = map[TranscriptionType]string{
	TypeNone:   "none",
	TypeWeak:   "weak",
	TypeStrong: "strong",
}

func (t TranscriptionType) String() string {
	name, ok := transcriptionTypeNames[t]
	if !ok {
		return fmt.Sprintf("TranscriptionType(%d)", int(t))
	}
	return name
}

func (t TranscriptionType) MarshalText() ([]byte, error) {
	name, ok := transcriptionTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown transcription type: %d", int(t))
	}
	return []byte(name), nil
}

func (t *TranscriptionType) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" {
		*t = TypeNone
		return nil
	}
	for k, name := range transcriptionTypeNames {
		if name == s {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown transcription type: %q", s)
}

// Candidate is one transcription of a lemma. Candidates are values and
// never change after construction; ID is -1 for candidates not backed by
// a persisted row.
type Candidate struct {
	ID        int64             `json:"id"`
	Lemma     string            `json:"lemma"`
	Phonetic  string            `json:"phonetic"`
	Type      TranscriptionType `json:"type"`
	WordClass WordClass         `json:"word_class"`
	Variety   Variety           `json:"variety"`
}

func (c Candidate) HasID() bool {
	return c.ID > 0
}

func (c Candidate) IsContentWord() bool {
	return c.WordClass.ContentWord
}

func (c Candidate) String() string {
	return fmt.Sprintf("/%s/ (%s, %s, %s)", c.Phonetic, c.Type, c.WordClass.Abbreviation, c.Variety.Abbreviation)
}
