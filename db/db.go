package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/David-fi/NL2SQL/models"
)

// sortSpecKey is the fixed storage key for the persisted sort spec. It is
// the only state that survives across sessions.
const sortSpecKey = "workbench:sort_spec"

const historyKeyPrefix = "history:"

type DB struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

// SaveSortSpec persists the result-table sort state under the fixed key.
func (d *DB) SaveSortSpec(spec models.SortSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sortSpecKey), data)
	})
}

// LoadSortSpec returns the persisted sort spec, or the zero spec (no sort
// column) when none has ever been saved.
func (d *DB) LoadSortSpec() (models.SortSpec, error) {
	var spec models.SortSpec
	err := d.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sortSpecKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &spec)
		})
	})
	return spec, err
}

// StoreQueryHistory records a successfully generated query for a user.
func (d *DB) StoreQueryHistory(userID string, question string, sql string) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		timestamp := time.Now().UnixNano()
		key := []byte(fmt.Sprintf("%s%s:%d", historyKeyPrefix, userID, timestamp))

		entry := models.QueryHistoryEntry{
			Question:  question,
			SQL:       sql,
			Timestamp: fmt.Sprintf("%d", timestamp),
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
}

// ListQueryHistory returns a user's history, newest first, capped at limit
// (0 means no cap).
func (d *DB) ListQueryHistory(userID string, limit int) ([]models.QueryHistoryEntry, error) {
	var entries []models.QueryHistoryEntry

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyKeyPrefix + userID + ":")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var entry models.QueryHistoryEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keys iterate oldest first; the API wants newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
