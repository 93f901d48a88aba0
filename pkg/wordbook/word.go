package wordbook

import (
	"fmt"
	"time"

	"github.com/minseok4171/aidict/pkg/model"
)

// Proficiency tracks how well the student knows a saved word.
type Proficiency string

const (
	ProficiencyNew      Proficiency = "new"
	ProficiencyLearning Proficiency = "learning"
	ProficiencyMastered Proficiency = "mastered"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyNew, ProficiencyLearning, ProficiencyMastered:
		return true
	}
	return false
}

// SavedWord is a word the student chose to keep, with the definition
// snapshot taken at save time. SavedAt is set on first save and survives
// later updates to the note or proficiency.
type SavedWord struct {
	Word        string               `json:"word"`
	Definition  model.WordDefinition `json:"definition"`
	Note        string               `json:"note,omitempty"`
	Proficiency Proficiency          `json:"proficiency"`
	SavedAt     time.Time            `json:"savedAt"`
}

func (w SavedWord) validate() error {
	if w.Word == "" {
		return fmt.Errorf("saved word has no word")
	}
	if !w.Proficiency.Valid() {
		return fmt.Errorf("invalid proficiency %q", w.Proficiency)
	}
	return nil
}
