package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int wrapper which marshals JSON to a string representation
// of the big number. Note that a nil pointer value marshals as the empty
// string.
type BigInt big.Int

// NewInt returns a BigInt set to the value x.
func NewInt(x int64) *BigInt {
	return (*BigInt)(big.NewInt(x))
}

// FromBigInt returns a copy of x as a BigInt.
func FromBigInt(x *big.Int) *BigInt {
	if x == nil {
		return nil
	}
	return (*BigInt)(new(big.Int).Set(x))
}

// MarshalText returns the decimal string representation of the big number.
func (i *BigInt) MarshalText() ([]byte, error) {
	return (*big.Int)(i).MarshalText()
}

// UnmarshalText parses the text representation of the big number. Decimal,
// "0x" hexadecimal and "0b" binary notations are accepted.
func (i *BigInt) UnmarshalText(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	if _, ok := (*big.Int)(i).SetString(string(data), 0); !ok {
		return fmt.Errorf("invalid big number %q", data)
	}
	return nil
}

// MarshalCBOR encodes the number as a CBOR bignum.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(i.MathBigInt())
}

// UnmarshalCBOR decodes a CBOR bignum into the BigInt.
func (i *BigInt) UnmarshalCBOR(data []byte) error {
	mi := new(big.Int)
	if err := cbor.Unmarshal(data, mi); err != nil {
		return err
	}
	i.SetBigInt(mi)
	return nil
}

// String returns the decimal representation of the number.
func (i *BigInt) String() string {
	return (*big.Int)(i).String()
}

// MathBigInt converts the BigInt into a *big.Int.
func (i *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(i)
}

// SetBigInt sets the value of the BigInt to a copy of x.
func (i *BigInt) SetBigInt(x *big.Int) *BigInt {
	(*big.Int)(i).Set(x)
	return i
}

// SetUint64 sets the value of x to the big number.
func (i *BigInt) SetUint64(x uint64) *BigInt {
	(*big.Int)(i).SetUint64(x)
	return i
}

// SetBytes interprets buf as big-endian unsigned integer.
func (i *BigInt) SetBytes(buf []byte) *BigInt {
	(*big.Int)(i).SetBytes(buf)
	return i
}

// Bytes returns the big-endian bytes of the absolute value.
func (i *BigInt) Bytes() []byte {
	return (*big.Int)(i).Bytes()
}

// Equal helps us with go-cmp.
func (i *BigInt) Equal(j *BigInt) bool {
	if i == nil || j == nil {
		return i == j
	}
	return (*big.Int)(i).Cmp((*big.Int)(j)) == 0
}

// BigIntSlice converts a list of *big.Int into a list of *BigInt.
func BigIntSlice(in []*big.Int) []*BigInt {
	out := make([]*BigInt, len(in))
	for i, v := range in {
		out[i] = FromBigInt(v)
	}
	return out
}
