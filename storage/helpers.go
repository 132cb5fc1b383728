package storage

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

var (
	// encMode encodes artifacts deterministically, so equal artifacts get
	// equal keys.
	encMode cbor.EncMode
	// decMode bounds the arrays of a decoded artifact. Batch documents hold
	// one 768 bit message per operation slot.
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("cbor encoding mode: %v", err))
	}
	if decMode, err = (cbor.DecOptions{MaxArrayElements: 1 << 20}).DecMode(); err != nil {
		panic(fmt.Sprintf("cbor decoding mode: %v", err))
	}
}

func encodeArtifact(a any) ([]byte, error) {
	data, err := encMode.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return data, nil
}

func decodeArtifact(data []byte, out any) error {
	if err := decMode.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	return nil
}

// hashKey derives the key of an artifact from its encoding.
func hashKey(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:maxKeySize]
}

// batchIndexKey is the key of a batch in the per roster index.
func batchIndexKey(rosterID uuid.UUID, batchKey []byte) []byte {
	return append(append([]byte{}, rosterID[:]...), batchKey...)
}

// rosterIndexPrefix is the prefix of all the batch index entries of a roster.
func rosterIndexPrefix(rosterID uuid.UUID) []byte {
	return append(append([]byte{}, rosterBatchPrefix...), rosterID[:]...)
}
