package parser

// Pronunciation is the headword block of a dictionary page: the lemma, its
// parts of speech and the IPA transcriptions keyed by region ("uk", "us").
type Pronunciation struct {
	Lemma          string              `json:"lemma"`
	PartOfSpeech   []string            `json:"part_of_speech,omitempty"`
	Language       string              `json:"language"`
	Transcriptions map[string][]string `json:"transcriptions,omitempty"`
}
