package datagen

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
)

// Store remembers which position keys have already been emitted, across
// runs, so a long generation campaign can be resumed without producing
// duplicate training lines.
type Store struct {
	db *badger.DB
}

func OpenStore(dir string) (*Store, error) {
	var opts = badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SeenOrAdd reports whether key was already recorded, adding it if not.
func (s *Store) SeenOrAdd(key uint64) (bool, error) {
	var k [8]byte
	binary.LittleEndian.PutUint64(k[:], key)

	var seen bool
	var err = s.db.Update(func(txn *badger.Txn) error {
		var _, err = txn.Get(k[:])
		if err == nil {
			seen = true
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(k[:], nil)
	})
	return seen, err
}
