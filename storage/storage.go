// storage package keeps the rosters and the assembled batch documents in a
// prefixed key-value store. The following prefixes are used:
//   - 'r/' for rosters
//   - 'b/' for batch documents
//   - 'rb/' for the index of batches per roster
//
// A batch is written together with its index entry in a single transaction,
// so a partially stored batch is never visible.
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vocdoni/zk-multisig/log"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

var (
	// Prefixes for the keys in the database.
	rosterPrefix      = []byte("r/")
	batchPrefix       = []byte("b/")
	rosterBatchPrefix = []byte("rb/")
)

var (
	// ErrNotFound is returned when the requested artifact does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an artifact key is already used.
	ErrAlreadyExists = errors.New("already exists")
)

const (
	// maxKeySize is the maximum size of the key in bytes. It is used to
	// generate the key of the artifacts stored in the database by truncating
	// the hash of the artifact itself.
	maxKeySize = 12
)

// Storage wraps the database with the methods to store and retrieve the
// rosters and batches.
type Storage struct {
	db         db.Database
	globalLock sync.Mutex
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	if err := s.db.Close(); err != nil {
		log.Warnw("could not close storage", "error", err.Error())
	}
}

// getArtifact reads and decodes the artifact stored under prefix/key.
func (s *Storage) getArtifact(prefix, key []byte, out any) error {
	pr := prefixeddb.NewPrefixedReader(s.db, prefix)
	data, err := pr.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return decodeArtifact(data, out)
}

// setArtifact encodes and stores the artifact under prefix/key.
func (s *Storage) setArtifact(prefix, key []byte, artifact any) error {
	data, err := encodeArtifact(artifact)
	if err != nil {
		return err
	}
	wTx := prefixeddb.NewPrefixedWriteTx(s.db.WriteTx(), prefix)
	if err := wTx.Set(key, data); err != nil {
		wTx.Discard()
		return err
	}
	return wTx.Commit()
}

// hasArtifact reports whether prefix/key exists.
func (s *Storage) hasArtifact(prefix, key []byte) (bool, error) {
	pr := prefixeddb.NewPrefixedReader(s.db, prefix)
	if _, err := pr.Get(key); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// listKeys returns the keys stored under prefix.
func (s *Storage) listKeys(prefix []byte) ([][]byte, error) {
	pr := prefixeddb.NewPrefixedReader(s.db, prefix)
	keys := [][]byte{}
	if err := pr.Iterate(nil, func(k, _ []byte) bool {
		keys = append(keys, append([]byte{}, k...))
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}
