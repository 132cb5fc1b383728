package poseidon

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

const (
	// maxInputs is the maximum number of field elements MultiPoseidon accepts.
	maxInputs = 256
	// chunkInputs is the width of the poseidon permutation used per chunk.
	chunkInputs = 16
	// BytesPerElement is the number of message bytes packed into every field
	// element by HashBytes. 31 bytes always fit in the BN254 scalar field.
	BytesPerElement = 31
)

// MultiPoseidon hashes up to 256 field elements. The inputs are split into
// chunks of 16 elements, every chunk is hashed and, if there is more than one
// chunk, the chunk hashes are hashed together.
func MultiPoseidon(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) > maxInputs {
		return nil, fmt.Errorf("too many inputs: %d", len(inputs))
	} else if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs provided")
	}
	hashes := []*big.Int{}
	for start := 0; start < len(inputs); start += chunkInputs {
		end := min(start+chunkInputs, len(inputs))
		hash, err := poseidon.Hash(inputs[start:end])
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", start/chunkInputs, err)
		}
		hashes = append(hashes, hash)
	}
	if len(hashes) == 1 {
		return hashes[0], nil
	}
	return poseidon.Hash(hashes)
}

// BytesToElements splits b into big-endian chunks of BytesPerElement bytes
// (the last one may be shorter) and returns them as field elements.
func BytesToElements(b []byte) []*big.Int {
	elements := make([]*big.Int, 0, (len(b)+BytesPerElement-1)/BytesPerElement)
	for start := 0; start < len(b); start += BytesPerElement {
		end := min(start+BytesPerElement, len(b))
		elements = append(elements, new(big.Int).SetBytes(b[start:end]))
	}
	return elements
}

// HashBytes returns the poseidon digest of an arbitrary byte string. The
// byte length is hashed as the last input, so strings that only differ in
// leading zero bytes get different digests.
func HashBytes(b []byte) (*big.Int, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	elements := BytesToElements(b)
	if len(elements) >= maxInputs {
		return nil, fmt.Errorf("input too long: %d bytes", len(b))
	}
	return MultiPoseidon(append(elements, big.NewInt(int64(len(b))))...)
}
