package types

const (
	// MaxOperations is the number of operation slots of a batch.
	MaxOperations = 20
	// MaxSigners is the number of signer slots per operation.
	MaxSigners = 5
	// FieldElementBits is the width of every packed field element.
	FieldElementBits = 256
	// PackedElements is the number of field elements of a packed operation.
	PackedElements = 3
	// MessageBytes is the size of the signed message, the concatenation of
	// the packed elements.
	MessageBytes = PackedElements * FieldElementBits / 8
	// AmountBits is the maximum width of a transfer amount.
	AmountBits = 256
	// AddressBits is the width of the token and recipient addresses.
	AddressBits = 160
	// RosterTreeMaxLevels is the number of levels of the roster merkle tree.
	RosterTreeMaxLevels = 8
)
