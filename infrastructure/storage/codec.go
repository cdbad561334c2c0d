package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// maxTimestamp is the highest 19-digit padded timestamp, used as the seek
// key when iterating a prefix backwards from the newest entry.
const maxTimestamp = "9999999999999999999"

// padTime renders a timestamp as 19 zero-padded digits so that
// lexicographical key order is chronological order.
func padTime(t time.Time) string {
	return fmt.Sprintf("%019d", t.UnixNano())
}

func encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode failed: %w", err)
	}
	return b, nil
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return decode(val, v)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	b, err := encode(v)
	if err != nil {
		return err
	}
	return txn.Set(key, b)
}

func decode(val []byte, v any) error {
	if err := json.Unmarshal(val, v); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}
