package packing

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/vocdoni/zk-multisig/types"
	"github.com/vocdoni/zk-multisig/util"
)

const elementBytes = types.FieldElementBits / 8

// PackedOperation holds the three field elements of an operation, most
// significant first.
type PackedOperation [types.PackedElements]*big.Int

// ZeroPackedOperation returns the placeholder used for unused batch slots.
func ZeroPackedOperation() *PackedOperation {
	return &PackedOperation{big.NewInt(0), big.NewInt(0), big.NewInt(0)}
}

// BinaryStrings renders every element as a 256 character big-endian binary
// string, left padded with zeros.
func (p *PackedOperation) BinaryStrings() [types.PackedElements]string {
	var out [types.PackedElements]string
	for i, e := range p {
		out[i] = fmt.Sprintf("%0*b", types.FieldElementBits, e)
	}
	return out
}

// Message returns the concatenation of the three elements as 96 big-endian
// bytes. This is the message every signer signs.
func (p *PackedOperation) Message() []byte {
	msg := make([]byte, types.MessageBytes)
	for i, e := range p {
		e.FillBytes(msg[i*elementBytes : (i+1)*elementBytes])
	}
	return msg
}

// MessageHex returns the hex representation of Message.
func (p *PackedOperation) MessageHex() string {
	return hex.EncodeToString(p.Message())
}

// Serialize returns the elements as a slice.
func (p *PackedOperation) Serialize() []*big.Int {
	return []*big.Int{p[0], p[1], p[2]}
}

// IsZero reports whether every element is zero.
func (p *PackedOperation) IsZero() bool {
	for _, e := range p {
		if e != nil && e.Sign() != 0 {
			return false
		}
	}
	return true
}

// Strings returns the decimal representation of every element.
func (p *PackedOperation) Strings() [types.PackedElements]string {
	var out [types.PackedElements]string
	for i, e := range p {
		out[i] = e.String()
	}
	return out
}

// ParsePackedOperation parses three elements given either as decimal numbers
// or as 256 character binary strings.
func ParsePackedOperation(elements [types.PackedElements]string) (*PackedOperation, error) {
	p := &PackedOperation{}
	for i, s := range elements {
		base := 10
		if len(s) == types.FieldElementBits && strings.Trim(s, "01") == "" {
			base = 2
		}
		e, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid element %d: %q", i, s)
		}
		if !util.FitsBits(e, types.FieldElementBits) {
			return nil, &types.RangeError{Field: fmt.Sprintf("element %d", i), Width: types.FieldElementBits}
		}
		p[i] = e
	}
	return p, nil
}

// MessageToPackedOperation splits a 96 byte message into its elements.
func MessageToPackedOperation(msg []byte) (*PackedOperation, error) {
	if len(msg) != types.MessageBytes {
		return nil, fmt.Errorf("invalid message length %d, expected %d", len(msg), types.MessageBytes)
	}
	p := &PackedOperation{}
	for i := range p {
		p[i] = new(big.Int).SetBytes(msg[i*elementBytes : (i+1)*elementBytes])
	}
	return p, nil
}
