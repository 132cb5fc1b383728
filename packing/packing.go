// Package packing encodes a token transfer (amount, token, recipient) into
// three 256-bit field elements and back.
//
// Layout, most significant element first:
//
//	E0 = amount mod 2^253
//	E1 = amount>>253 (3 bits) | token (160 bits) | recipient>>67 (93 bits)
//	E2 = recipient mod 2^67
package packing

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/zk-multisig/types"
	"github.com/vocdoni/zk-multisig/util"
)

const (
	// AmountLowBits is the number of low amount bits stored in E0.
	AmountLowBits = 253
	// AmountHighBits is the number of high amount bits stored in E1.
	AmountHighBits = types.AmountBits - AmountLowBits
	// RecipientLowBits is the number of low recipient bits stored in E2.
	RecipientLowBits = 67
	// RecipientHighBits is the number of high recipient bits stored in E1.
	RecipientHighBits = types.AddressBits - RecipientLowBits

	tokenShift      = RecipientHighBits
	amountHighShift = tokenShift + types.AddressBits
)

// Operation is a single token transfer.
type Operation struct {
	Amount    *big.Int
	Token     *big.Int
	Recipient *big.Int
}

// NewOperation builds an operation from ethereum addresses.
func NewOperation(amount *big.Int, token, recipient common.Address) *Operation {
	return &Operation{
		Amount:    new(big.Int).Set(amount),
		Token:     new(big.Int).SetBytes(token.Bytes()),
		Recipient: new(big.Int).SetBytes(recipient.Bytes()),
	}
}

// TokenAddress returns the token as an ethereum address.
func (op *Operation) TokenAddress() common.Address {
	return common.BigToAddress(op.Token)
}

// RecipientAddress returns the recipient as an ethereum address.
func (op *Operation) RecipientAddress() common.Address {
	return common.BigToAddress(op.Recipient)
}

// Validate checks the bit widths of the operation fields.
func (op *Operation) Validate() error {
	if op == nil {
		return fmt.Errorf("nil operation")
	}
	if !util.FitsBits(op.Amount, types.AmountBits) {
		return &types.RangeError{Field: "amount", Width: types.AmountBits}
	}
	if !util.FitsBits(op.Token, types.AddressBits) {
		return &types.RangeError{Field: "token", Width: types.AddressBits}
	}
	if !util.FitsBits(op.Recipient, types.AddressBits) {
		return &types.RangeError{Field: "recipient", Width: types.AddressBits}
	}
	return nil
}

// Equal reports whether both operations have the same fields.
func (op *Operation) Equal(other *Operation) bool {
	if op == nil || other == nil {
		return op == other
	}
	return op.Amount.Cmp(other.Amount) == 0 &&
		op.Token.Cmp(other.Token) == 0 &&
		op.Recipient.Cmp(other.Recipient) == 0
}

func (op *Operation) String() string {
	return fmt.Sprintf("amount=%s token=%s recipient=%s",
		op.Amount, op.TokenAddress().Hex(), op.RecipientAddress().Hex())
}

// Pack encodes the operation into its three field elements.
func Pack(op *Operation) (*PackedOperation, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	e0 := util.LowBits(op.Amount, AmountLowBits)

	e1 := new(big.Int).Rsh(op.Amount, AmountLowBits)
	e1.Lsh(e1, amountHighShift)
	e1.Or(e1, new(big.Int).Lsh(op.Token, tokenShift))
	e1.Or(e1, new(big.Int).Rsh(op.Recipient, RecipientLowBits))

	e2 := util.LowBits(op.Recipient, RecipientLowBits)
	return &PackedOperation{e0, e1, e2}, nil
}

// Unpack decodes the three field elements into the operation. Elements wider
// than 256 bits or with any reserved bit set are rejected.
func Unpack(p *PackedOperation) (*Operation, error) {
	if p == nil {
		return nil, fmt.Errorf("nil packed operation")
	}
	for i, e := range p {
		if !util.FitsBits(e, types.FieldElementBits) {
			return nil, &types.RangeError{Field: fmt.Sprintf("element %d", i), Width: types.FieldElementBits}
		}
	}
	if !util.FitsBits(p[0], AmountLowBits) {
		return nil, &types.RangeError{Field: "element 0 reserved bits", Width: AmountLowBits}
	}
	if !util.FitsBits(p[2], RecipientLowBits) {
		return nil, &types.RangeError{Field: "element 2 reserved bits", Width: RecipientLowBits}
	}
	amountHi := new(big.Int).Rsh(p[1], amountHighShift)
	amount := new(big.Int).Lsh(amountHi, AmountLowBits)
	amount.Or(amount, p[0])

	token := util.LowBits(new(big.Int).Rsh(p[1], tokenShift), types.AddressBits)

	recipient := util.LowBits(p[1], RecipientHighBits)
	recipient.Lsh(recipient, RecipientLowBits)
	recipient.Or(recipient, p[2])

	return &Operation{Amount: amount, Token: token, Recipient: recipient}, nil
}
