package circuits

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/zk-multisig/util"
)

func TestBytesToBits(t *testing.T) {
	c := qt.New(t)

	c.Assert(BytesToBits([]byte{0x01}), qt.DeepEquals, []int{1, 0, 0, 0, 0, 0, 0, 0})
	c.Assert(BytesToBits([]byte{0x80, 0x03}), qt.DeepEquals, []int{
		0, 0, 0, 0, 0, 0, 0, 1,
		1, 1, 0, 0, 0, 0, 0, 0,
	})

	empty := BytesToBits(nil)
	c.Assert(empty, qt.IsNotNil)
	c.Assert(empty, qt.HasLen, 0)

	msg := util.RandomBytes(96)
	bits := BytesToBits(msg)
	c.Assert(bits, qt.HasLen, MessageBits)
	c.Assert(BytesToBits(msg), qt.DeepEquals, bits)
	for k, bit := range bits {
		c.Assert(bit, qt.Equals, int(msg[k/8]>>(k%8))&1)
	}

	back, err := BitsToBytes(bits)
	c.Assert(err, qt.IsNil)
	c.Assert(back, qt.DeepEquals, msg)
}

func TestBitsToBytesErrors(t *testing.T) {
	c := qt.New(t)
	_, err := BitsToBytes([]int{1, 0, 1})
	c.Assert(err, qt.ErrorMatches, "bit length 3 .*")
	_, err = BitsToBytes([]int{1, 0, 1, 0, 2, 0, 0, 0})
	c.Assert(err, qt.ErrorMatches, "invalid bit value 2 at position 4")
	b, err := BitsToBytes([]int{})
	c.Assert(err, qt.IsNil)
	c.Assert(b, qt.HasLen, 0)
}

func TestHelpers(t *testing.T) {
	c := qt.New(t)
	c.Assert(BoolsToInts([]bool{true, false, true}, 5), qt.DeepEquals, []int{1, 0, 1, 0, 0})
	c.Assert(ZeroBits(4), qt.DeepEquals, []int{0, 0, 0, 0})
}
