package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/log"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// SetBatch validates and stores the batch document assembled for the
// roster. The key of the batch, derived from its contents, is returned.
func (s *Storage) SetBatch(rosterID uuid.UUID, doc *multisig.BatchDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil batch document")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch document: %w", err)
	}
	artifact := &BatchArtifact{
		RosterID: rosterID[:],
		Document: doc,
	}
	val, err := encodeArtifact(artifact)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}
	key := hashKey(val)

	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	if err := prefixeddb.NewPrefixedWriteTx(tx, batchPrefix).Set(key, val); err != nil {
		tx.Discard()
		return nil, err
	}
	index := prefixeddb.NewPrefixedWriteTx(tx, rosterBatchPrefix)
	if err := index.Set(batchIndexKey(rosterID, key), key); err != nil {
		tx.Discard()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Debugw("batch stored", "id", fmt.Sprintf("%x", key), "roster", rosterID.String())
	return key, nil
}

// Batch retrieves a stored batch. It returns ErrNotFound if it does not
// exist.
func (s *Storage) Batch(key []byte) (*BatchArtifact, error) {
	artifact := &BatchArtifact{}
	if err := s.getArtifact(batchPrefix, key, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// ListBatches returns the keys of the batches assembled for the roster.
func (s *Storage) ListBatches(rosterID uuid.UUID) ([][]byte, error) {
	return s.listKeys(rosterIndexPrefix(rosterID))
}
