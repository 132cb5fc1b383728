package storage

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/log"
)

// SetRoster stores the roster under the given id and returns its root.
func (s *Storage) SetRoster(id uuid.UUID, roster *keystore.Roster) ([]byte, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	exists, err := s.hasArtifact(rosterPrefix, id[:])
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("roster %s: %w", id, ErrAlreadyExists)
	}
	doc := &bytes.Buffer{}
	if err := roster.WriteRoster(doc); err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	root, err := roster.Root()
	if err != nil {
		return nil, err
	}
	if err := s.setArtifact(rosterPrefix, id[:], &RosterArtifact{
		Document: doc.Bytes(),
		Root:     root,
		Size:     roster.Len(),
	}); err != nil {
		return nil, fmt.Errorf("store roster: %w", err)
	}
	log.Debugw("roster stored", "id", id.String(), "size", roster.Len())
	return root, nil
}

// Roster retrieves the roster with the given id. It returns ErrNotFound if
// it does not exist.
func (s *Storage) Roster(id uuid.UUID) (*keystore.Roster, error) {
	artifact := &RosterArtifact{}
	if err := s.getArtifact(rosterPrefix, id[:], artifact); err != nil {
		return nil, err
	}
	return keystore.ReadRoster(bytes.NewReader(artifact.Document))
}

// ListRosters returns the ids of the stored rosters.
func (s *Storage) ListRosters() ([]uuid.UUID, error) {
	keys, err := s.listKeys(rosterPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		id, err := uuid.FromBytes(k)
		if err != nil {
			return nil, fmt.Errorf("invalid roster key %x: %w", k, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
