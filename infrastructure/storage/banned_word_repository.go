package storage

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const bannedPrefix = "banned:"

// BannedWordRepository keeps the moderation dictionary in BadgerDB.
// Words live in the keys, values are empty.
type BannedWordRepository struct {
	db *badger.DB
}

func NewBannedWordRepository(db *badger.DB) BannedWordRepository {
	return BannedWordRepository{db: db}
}

// AddWords stores the words lower-cased; blanks are skipped and duplicates collapse.
func (b BannedWordRepository) AddWords(words []string) error {
	cleaned := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.ToLower(strings.TrimSpace(w))
		return w, w != ""
	}))
	if len(cleaned) == 0 {
		return nil
	}
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, w := range cleaned {
		if err := wb.Set([]byte(bannedPrefix+w), nil); err != nil {
			return fmt.Errorf("add banned word: %w", err)
		}
	}
	return wb.Flush()
}

func (b BannedWordRepository) ListWords() ([]string, error) {
	var words []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // words are in the keys
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(bannedPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			words = append(words, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list banned words: %w", err)
	}
	return words, nil
}
