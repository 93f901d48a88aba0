package wordbook

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minseok4171/aidict/pkg/model"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	store, err := OpenInMemory()
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		s.Require().NoError(s.store.Close())
	}
}

func (s *StoreSuite) savedApple() SavedWord {
	return SavedWord{
		Word: "apple",
		Definition: model.WordDefinition{
			Word:          "apple",
			PartsOfSpeech: []string{"noun"},
			Meanings: []model.Meaning{
				{POS: "noun", Definition: "A round fruit.", KoreanMeanings: []string{"사과"}},
			},
		},
		Note: "from reading homework",
	}
}

func (s *StoreSuite) TestHistoryStartsEmpty() {
	entries, err := s.store.History()

	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) TestTouchHistoryRecordsMostRecentFirst() {
	for _, term := range []string{"apple", "banana", "cherry"} {
		_, err := s.store.TouchHistory(term)
		s.Require().NoError(err)
	}

	entries, err := s.store.History()

	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("cherry", entries[0].Term)
	s.Equal("apple", entries[2].Term)
}

func (s *StoreSuite) TestTouchHistoryDeduplicatesCaseInsensitively() {
	_, err := s.store.TouchHistory("apple")
	s.Require().NoError(err)
	_, err = s.store.TouchHistory("banana")
	s.Require().NoError(err)

	entries, err := s.store.TouchHistory("APPLE")

	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("APPLE", entries[0].Term)
	s.Equal("banana", entries[1].Term)
}

func (s *StoreSuite) TestTouchHistoryCapsAtLimit() {
	for i := 1; i <= HistoryLimit+1; i++ {
		_, err := s.store.TouchHistory(fmt.Sprintf("word%d", i))
		s.Require().NoError(err)
	}

	entries, err := s.store.History()

	s.Require().NoError(err)
	s.Require().Len(entries, HistoryLimit)
	s.Equal(fmt.Sprintf("word%d", HistoryLimit+1), entries[0].Term)
	s.False(Contains(entries, "word1"))
}

func (s *StoreSuite) TestTouchHistoryRejectsBlankTerm() {
	_, err := s.store.TouchHistory("   ")
	s.Require().Error(err)
}

func (s *StoreSuite) TestRemoveHistory() {
	_, err := s.store.TouchHistory("apple")
	s.Require().NoError(err)
	_, err = s.store.TouchHistory("banana")
	s.Require().NoError(err)

	s.Require().NoError(s.store.RemoveHistory("APPLE"))

	entries, err := s.store.History()
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("banana", entries[0].Term)
}

func (s *StoreSuite) TestClearHistory() {
	_, err := s.store.TouchHistory("apple")
	s.Require().NoError(err)

	s.Require().NoError(s.store.ClearHistory())
	s.Require().NoError(s.store.ClearHistory())

	entries, err := s.store.History()
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) TestSaveAndGetRoundTrip() {
	saved, err := s.store.Save(s.savedApple())
	s.Require().NoError(err)
	s.Equal(ProficiencyNew, saved.Proficiency)
	s.False(saved.SavedAt.IsZero())

	loaded, err := s.store.Get("apple")

	s.Require().NoError(err)
	s.Equal("apple", loaded.Word)
	s.Equal("from reading homework", loaded.Note)
	s.Require().Len(loaded.Definition.Meanings, 1)
	s.Equal([]string{"사과"}, loaded.Definition.Meanings[0].KoreanMeanings)
}

func (s *StoreSuite) TestSaveRejectsInvalidProficiency() {
	word := s.savedApple()
	word.Proficiency = "fluent"

	_, err := s.store.Save(word)

	s.Require().Error(err)
}

func (s *StoreSuite) TestSaveUpsertPreservesSavedAt() {
	first, err := s.store.Save(s.savedApple())
	s.Require().NoError(err)

	update := s.savedApple()
	update.Note = "seen again in class"
	update.Proficiency = ProficiencyLearning

	second, err := s.store.Save(update)

	s.Require().NoError(err)
	s.True(first.SavedAt.Equal(second.SavedAt))
	s.Equal("seen again in class", second.Note)
	s.Equal(ProficiencyLearning, second.Proficiency)

	loaded, err := s.store.Get("apple")
	s.Require().NoError(err)
	s.True(first.SavedAt.Equal(loaded.SavedAt))
	s.Equal(ProficiencyLearning, loaded.Proficiency)
}

func (s *StoreSuite) TestGetIsCaseInsensitive() {
	_, err := s.store.Save(s.savedApple())
	s.Require().NoError(err)

	loaded, err := s.store.Get("APPLE")

	s.Require().NoError(err)
	s.Equal("apple", loaded.Word)
}

func (s *StoreSuite) TestGetMissingReturnsNotFound() {
	_, err := s.store.Get("pear")
	s.Require().True(errors.Is(err, ErrNotFound))
}

func (s *StoreSuite) TestListSortsAlphabetically() {
	banana := s.savedApple()
	banana.Word = "Banana"
	_, err := s.store.Save(banana)
	s.Require().NoError(err)
	_, err = s.store.Save(s.savedApple())
	s.Require().NoError(err)

	words, err := s.store.List()

	s.Require().NoError(err)
	s.Require().Len(words, 2)
	s.Equal("apple", words[0].Word)
	s.Equal("Banana", words[1].Word)
}

func (s *StoreSuite) TestDelete() {
	_, err := s.store.Save(s.savedApple())
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete("APPLE"))

	_, err = s.store.Get("apple")
	s.Require().True(errors.Is(err, ErrNotFound))
}

func (s *StoreSuite) TestDeleteMissingReturnsNotFound() {
	err := s.store.Delete("pear")
	s.Require().True(errors.Is(err, ErrNotFound))
}
