package multisig

import (
	"fmt"

	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/packing"
	"github.com/vocdoni/zk-multisig/types"
)

// Shape is the fixed size of a batch document.
type Shape struct {
	MaxOperations int `json:"maxOperations"`
	MaxSigners    int `json:"maxSigners"`
}

// DefaultShape returns the shape expected by the multisig circuit.
func DefaultShape() Shape {
	return Shape{
		MaxOperations: types.MaxOperations,
		MaxSigners:    types.MaxSigners,
	}
}

// Validate checks that the shape has at least one operation and one signer
// slot.
func (s Shape) Validate() error {
	if s.MaxOperations <= 0 || s.MaxSigners <= 0 {
		return fmt.Errorf("%w: invalid shape %dx%d", types.ErrInvalidRequest, s.MaxOperations, s.MaxSigners)
	}
	return nil
}

// Request describes the operation to authorize and who signs it.
type Request struct {
	// Operation is the transfer to pack and sign.
	Operation *packing.Operation
	// Threshold is the number of valid signatures required (n).
	Threshold int
	// Signers is the number of roster keys used (m). Zero means the whole
	// roster.
	Signers int
	// Roster provides the signer keys, in slot order.
	Roster *keystore.Roster
	// Mask flags, per signer, whether its signature is asserted valid. It
	// must have exactly Signers elements.
	Mask []bool
}

// signers resolves the roster slice used by the request, checking it fits
// in the shape.
func (r *Request) signers(shape Shape) (*keystore.Roster, error) {
	if r.Roster == nil {
		return nil, fmt.Errorf("%w: missing roster", types.ErrInvalidRequest)
	}
	m := r.Signers
	if m == 0 {
		m = r.Roster.Len()
	}
	if m < 0 {
		return nil, fmt.Errorf("%w: negative signers %d", types.ErrInvalidRequest, m)
	}
	if m > shape.MaxSigners {
		return nil, &types.RosterOverflowError{Size: m, Max: shape.MaxSigners}
	}
	roster, err := r.Roster.Slice(m)
	if err != nil {
		return nil, err
	}
	if r.Threshold <= 0 || r.Threshold > m {
		return nil, fmt.Errorf("%w: threshold %d with %d signers", types.ErrInvalidRequest, r.Threshold, m)
	}
	if len(r.Mask) != m {
		return nil, fmt.Errorf("%w: mask has %d elements, expected %d", types.ErrInvalidRequest, len(r.Mask), m)
	}
	return roster, nil
}

// FullMask returns a mask asserting every one of the m signers.
func FullMask(m int) []bool {
	mask := make([]bool, m)
	for i := range mask {
		mask[i] = true
	}
	return mask
}
