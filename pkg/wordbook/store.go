package wordbook

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/utils"
)

// ErrNotFound is returned when a saved word does not exist.
var ErrNotFound = errors.New("wordbook: word not found")

// Storage layout: the search history lives as one JSON document under a
// fixed key, saved words under one key each, keyed by the lowercased word.
const (
	historyKey    = "history"
	wordKeyPrefix = "word:"
)

// Store persists the search history and the word book in a badger database.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the store in dir.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, utils.WrapIfNotNil(errors.New("data directory is required"))
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that lives only for the process. Used by tests
// to run against a real badger engine without touching disk.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts = opts.WithLogger(badgerLogger{log: logging.NewLogger(context.Background())})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// History returns the recorded searches, most recent first. A store that
// has never recorded a search returns an empty list.
func (s *Store) History() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := s.db.View(func(txn *badger.Txn) error {
		loaded, err := loadHistory(txn)
		if err != nil {
			return err
		}
		entries = loaded
		return nil
	})
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return entries, nil
}

// TouchHistory records term as the most recent search and returns the
// updated history.
func (s *Store) TouchHistory(term string) ([]HistoryEntry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, utils.WrapIfNotNil(errors.New("term is required"))
	}

	var entries []HistoryEntry
	err := s.db.Update(func(txn *badger.Txn) error {
		loaded, err := loadHistory(txn)
		if err != nil {
			return err
		}
		entries = Push(loaded, term, time.Now().UTC())
		return saveHistory(txn, entries)
	})
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return entries, nil
}

// RemoveHistory drops term from the history. Removing a term that is not
// recorded is not an error.
func (s *Store) RemoveHistory(term string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		loaded, err := loadHistory(txn)
		if err != nil {
			return err
		}
		return saveHistory(txn, Remove(loaded, term))
	})
	return utils.WrapIfNotNil(err)
}

// ClearHistory removes all recorded searches.
func (s *Store) ClearHistory() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(historyKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	return utils.WrapIfNotNil(err)
}

func loadHistory(txn *badger.Txn) ([]HistoryEntry, error) {
	item, err := txn.Get([]byte(historyKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []HistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	raw, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func saveHistory(txn *badger.Txn, entries []HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return txn.Set([]byte(historyKey), raw)
}

// Save upserts word into the book. The first save sets SavedAt; later saves
// of the same word keep it while replacing the definition, note and
// proficiency. An empty proficiency defaults to "new".
func (s *Store) Save(word SavedWord) (SavedWord, error) {
	word.Word = strings.TrimSpace(word.Word)
	if word.Proficiency == "" {
		word.Proficiency = ProficiencyNew
	}
	if err := word.validate(); err != nil {
		return SavedWord{}, utils.WrapIfNotNil(err)
	}

	key := wordKey(word.Word)
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := loadWord(txn, key)
		switch {
		case err == nil:
			word.SavedAt = existing.SavedAt
		case errors.Is(err, ErrNotFound):
			if word.SavedAt.IsZero() {
				word.SavedAt = time.Now().UTC()
			}
		default:
			return err
		}

		raw, err := json.Marshal(word)
		if err != nil {
			return err
		}
		return txn.Set(key, raw)
	})
	if err != nil {
		return SavedWord{}, utils.WrapIfNotNil(err)
	}
	return word, nil
}

// Get returns the saved word, or ErrNotFound.
func (s *Store) Get(word string) (SavedWord, error) {
	var saved SavedWord
	err := s.db.View(func(txn *badger.Txn) error {
		loaded, err := loadWord(txn, wordKey(word))
		if err != nil {
			return err
		}
		saved = loaded
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SavedWord{}, err
		}
		return SavedWord{}, utils.WrapIfNotNil(err)
	}
	return saved, nil
}

// List returns every saved word, sorted alphabetically.
func (s *Store) List() ([]SavedWord, error) {
	words := []SavedWord{}
	prefix := []byte(wordKeyPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var saved SavedWord
			if err := json.Unmarshal(raw, &saved); err != nil {
				return err
			}
			words = append(words, saved)
		}
		return nil
	})
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	sort.Slice(words, func(i, j int) bool {
		return strings.ToLower(words[i].Word) < strings.ToLower(words[j].Word)
	})
	return words, nil
}

// Delete removes a saved word. Deleting a word that is not saved returns
// ErrNotFound.
func (s *Store) Delete(word string) error {
	key := wordKey(word)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := loadWord(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return utils.WrapIfNotNil(err)
}

func wordKey(word string) []byte {
	return []byte(wordKeyPrefix + strings.ToLower(strings.TrimSpace(word)))
}

func loadWord(txn *badger.Txn, key []byte) (SavedWord, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return SavedWord{}, ErrNotFound
	}
	if err != nil {
		return SavedWord{}, err
	}

	raw, err := item.ValueCopy(nil)
	if err != nil {
		return SavedWord{}, err
	}
	var saved SavedWord
	if err := json.Unmarshal(raw, &saved); err != nil {
		return SavedWord{}, err
	}
	return saved, nil
}

// badgerLogger routes badger's own logging through the module logger,
// dropping the chatty info and debug output.
type badgerLogger struct {
	log logging.Logger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.log.Errorf("badger: "+format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.log.Warnf("badger: "+format, args...) }
func (l badgerLogger) Infof(string, ...any)                {}
func (l badgerLogger) Debugf(string, ...any)               {}
