package multisig

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/vocdoni/zk-multisig/circuits"
	"github.com/vocdoni/zk-multisig/packing"
	"github.com/vocdoni/zk-multisig/types"
)

// LayoutCircuit checks that the LSB-first message bits fed to the multisig
// circuit encode the public operation fields with the packing layout.
type LayoutCircuit struct {
	MessageBits [circuits.MessageBits]frontend.Variable
	AmountLo    frontend.Variable `gnark:",public"`
	AmountHi    frontend.Variable `gnark:",public"`
	Token       frontend.Variable `gnark:",public"`
	Recipient   frontend.Variable `gnark:",public"`
}

// MessageBitIndex returns the position in the message bits of bit q (LSB
// first) of packed element e.
func MessageBitIndex(e, q int) int {
	p := (types.PackedElements-1-e)*types.FieldElementBits + q
	return (types.MessageBytes-1-p/8)*8 + p%8
}

func (c *LayoutCircuit) elementBits(e, from, to int) []frontend.Variable {
	bits := make([]frontend.Variable, 0, to-from)
	for q := from; q < to; q++ {
		bits = append(bits, c.MessageBits[MessageBitIndex(e, q)])
	}
	return bits
}

func (c *LayoutCircuit) Define(api frontend.API) error {
	for i := range c.MessageBits {
		api.AssertIsBoolean(c.MessageBits[i])
	}
	// reserved bits
	for _, b := range c.elementBits(0, packing.AmountLowBits, types.FieldElementBits) {
		api.AssertIsEqual(b, 0)
	}
	for _, b := range c.elementBits(2, packing.RecipientLowBits, types.FieldElementBits) {
		api.AssertIsEqual(b, 0)
	}
	// E0: amount low bits
	api.AssertIsEqual(c.AmountLo, api.FromBinary(c.elementBits(0, 0, packing.AmountLowBits)...))
	// E1: amount high bits, token and recipient high bits
	tokenStart := packing.RecipientHighBits
	tokenEnd := tokenStart + types.AddressBits
	api.AssertIsEqual(c.AmountHi, api.FromBinary(c.elementBits(1, tokenEnd, types.FieldElementBits)...))
	api.AssertIsEqual(c.Token, api.FromBinary(c.elementBits(1, tokenStart, tokenEnd)...))
	recipientHi := api.FromBinary(c.elementBits(1, 0, tokenStart)...)
	// E2: recipient low bits
	recipientLo := api.FromBinary(c.elementBits(2, 0, packing.RecipientLowBits)...)
	shift := new(big.Int).Lsh(big.NewInt(1), packing.RecipientLowBits)
	api.AssertIsEqual(c.Recipient, api.Add(api.Mul(recipientHi, shift), recipientLo))
	return nil
}

// LayoutAssignment builds the layout circuit witness of the live operation of
// the batch document.
func LayoutAssignment(doc *BatchDocument) (*LayoutCircuit, error) {
	if doc == nil || doc.Inputs == nil || len(doc.Inputs.MsgBits) == 0 {
		return nil, fmt.Errorf("empty batch document")
	}
	packed, err := doc.Inputs.PackedOperation(0)
	if err != nil {
		return nil, err
	}
	op, err := packing.Unpack(packed)
	if err != nil {
		return nil, err
	}
	bits := doc.Inputs.MsgBits[0]
	if len(bits) != circuits.MessageBits {
		return nil, fmt.Errorf("message has %d bits", len(bits))
	}
	assignment := &LayoutCircuit{
		AmountLo:  packed[0],
		AmountHi:  new(big.Int).Rsh(op.Amount, packing.AmountLowBits),
		Token:     op.Token,
		Recipient: op.Recipient,
	}
	for i, b := range bits {
		assignment.MessageBits[i] = b
	}
	return assignment, nil
}
