package poseidon

import (
	"bytes"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

func TestMultiPoseidon(t *testing.T) {
	c := qt.New(t)

	_, err := MultiPoseidon()
	c.Assert(err, qt.IsNotNil)
	_, err = MultiPoseidon(make([]*big.Int, maxInputs+1)...)
	c.Assert(err, qt.IsNotNil)

	// a single chunk is a plain poseidon hash
	single, err := MultiPoseidon(big.NewInt(1), big.NewInt(2))
	c.Assert(err, qt.IsNil)
	expected, err := poseidon.Hash([]*big.Int{big.NewInt(1), big.NewInt(2)})
	c.Assert(err, qt.IsNil)
	c.Assert(single.Cmp(expected), qt.Equals, 0)

	inputs := make([]*big.Int, 40)
	for i := range inputs {
		inputs[i] = big.NewInt(int64(i))
	}
	h1, err := MultiPoseidon(inputs...)
	c.Assert(err, qt.IsNil)
	inputs[39] = big.NewInt(1000)
	h2, err := MultiPoseidon(inputs...)
	c.Assert(err, qt.IsNil)
	c.Assert(h1.Cmp(h2), qt.Not(qt.Equals), 0)
}

func TestHashBytes(t *testing.T) {
	c := qt.New(t)

	msg := bytes.Repeat([]byte{0xff}, 96)
	elements := BytesToElements(msg)
	c.Assert(elements, qt.HasLen, 4)
	c.Assert(elements[3].BitLen(), qt.Equals, 3*8)

	h1, err := HashBytes(msg)
	c.Assert(err, qt.IsNil)
	h2, err := HashBytes(msg)
	c.Assert(err, qt.IsNil)
	c.Assert(h1.Cmp(h2), qt.Equals, 0)

	msg[95] ^= 1
	h3, err := HashBytes(msg)
	c.Assert(err, qt.IsNil)
	c.Assert(h1.Cmp(h3), qt.Not(qt.Equals), 0)

	_, err = HashBytes(nil)
	c.Assert(err, qt.IsNotNil)
	_, err = HashBytes(make([]byte, maxInputs*BytesPerElement))
	c.Assert(err, qt.ErrorMatches, "input too long: .*")
}

func TestHashBytesLeadingZeros(t *testing.T) {
	c := qt.New(t)
	short, err := HashBytes([]byte{0x01})
	c.Assert(err, qt.IsNil)
	padded, err := HashBytes([]byte{0x00, 0x01})
	c.Assert(err, qt.IsNil)
	c.Assert(short.Cmp(padded), qt.Not(qt.Equals), 0)

	// same elements, different length
	c.Assert(BytesToElements([]byte{0x01})[0].Cmp(BytesToElements([]byte{0x00, 0x01})[0]), qt.Equals, 0)
}
