package model

import (
	"errors"
	"fmt"
	"strings"
)

// WordDefinition is the structured lookup result for a single English word.
// Field names follow the wire format the front end consumes. None of the
// fields carry omitempty: every key is required in the generated response
// schema, and a field with nothing to say serializes as an empty string or
// empty array rather than a missing key.
type WordDefinition struct {
	Word          string    `json:"word"`
	Phonetic      string    `json:"phonetic"`
	PartsOfSpeech []string  `json:"partsOfSpeech"`
	Meanings      []Meaning `json:"meanings"`
	Synonyms      []string  `json:"synonyms"`
}

// Meaning is one sense of a word for one part of speech.
type Meaning struct {
	POS            string    `json:"pos"`
	Definition     string    `json:"definition"`
	KoreanMeanings []string  `json:"koreanMeanings"`
	Examples       []Example `json:"examples"`
	Synonyms       []string  `json:"synonyms"`
	Antonyms       []string  `json:"antonyms"`
}

// Example pairs an English sentence with its Korean translation.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// Validate rejects definitions that are missing the fields the UI cannot
// render without. It reports the first problem found.
func (d WordDefinition) Validate() error {
	if strings.TrimSpace(d.Word) == "" {
		return errors.New("word is empty")
	}
	if len(d.Meanings) == 0 {
		return errors.New("definition has no meanings")
	}
	for i, meaning := range d.Meanings {
		if strings.TrimSpace(meaning.Definition) == "" {
			return fmt.Errorf("meaning %d has an empty definition", i)
		}
		for j, example := range meaning.Examples {
			if strings.TrimSpace(example.Sentence) == "" {
				return fmt.Errorf("meaning %d example %d has an empty sentence", i, j)
			}
		}
	}
	return nil
}

// Normalize replaces nil slices with empty ones so that an absent sequence
// and an empty sequence are indistinguishable to consumers.
func (d *WordDefinition) Normalize() {
	if d == nil {
		return
	}
	if d.PartsOfSpeech == nil {
		d.PartsOfSpeech = []string{}
	}
	if d.Meanings == nil {
		d.Meanings = []Meaning{}
	}
	if d.Synonyms == nil {
		d.Synonyms = []string{}
	}
	for i := range d.Meanings {
		meaning := &d.Meanings[i]
		if meaning.KoreanMeanings == nil {
			meaning.KoreanMeanings = []string{}
		}
		if meaning.Examples == nil {
			meaning.Examples = []Example{}
		}
		if meaning.Synonyms == nil {
			meaning.Synonyms = []string{}
		}
		if meaning.Antonyms == nil {
			meaning.Antonyms = []string{}
		}
	}
}

// Speech is a synthesized pronunciation payload as returned by the speech
// backend, before any decoding.
type Speech struct {
	MIMEType string
	Data     []byte
}
