package eddsa

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/vocdoni/zk-multisig/types"
	"github.com/vocdoni/zk-multisig/util"
)

func TestSignVerify(t *testing.T) {
	c := qt.New(t)
	priv := babyjub.NewRandPrivKey()
	pub := priv.Public()
	msg := util.RandomBytes(types.MessageBytes)

	sig, err := Sign(priv, msg)
	c.Assert(err, qt.IsNil)
	c.Assert(Verify(msg, sig, pub), qt.IsTrue)

	// deterministic
	again, err := Sign(priv, msg)
	c.Assert(err, qt.IsNil)
	c.Assert(Pack(again), qt.Equals, Pack(sig))

	packed := Pack(sig)
	c.Assert(VerifyPacked(msg, packed[:], pub), qt.IsTrue)
	decoded, err := Unpack(packed[:])
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.S.Cmp(sig.S), qt.Equals, 0)
	c.Assert(decoded.R8.X.Cmp(sig.R8.X), qt.Equals, 0)
	c.Assert(decoded.R8.Y.Cmp(sig.R8.Y), qt.Equals, 0)

	other := babyjub.NewRandPrivKey()
	c.Assert(Verify(msg, sig, other.Public()), qt.IsFalse)
	c.Assert(Verify(msg, nil, pub), qt.IsFalse)

	_, err = Unpack(packed[:63])
	c.Assert(err, qt.IsNotNil)
}

func TestSingleBitCorruption(t *testing.T) {
	c := qt.New(t)
	priv := babyjub.NewRandPrivKey()
	pub := priv.Public()
	msg := util.RandomBytes(types.MessageBytes)
	sig, err := Sign(priv, msg)
	c.Assert(err, qt.IsNil)
	packed := Pack(sig)

	for _, k := range []int{0, 7, 100, 383, 511, 767} {
		corrupted := append([]byte{}, msg...)
		corrupted[k/8] ^= 1 << (k % 8)
		c.Assert(VerifyPacked(corrupted, packed[:], pub), qt.IsFalse, qt.Commentf("message bit %d", k))
	}
	for _, k := range []int{0, 13, 255, 256, 300, 511} {
		corrupted := packed
		corrupted[k/8] ^= 1 << (k % 8)
		c.Assert(VerifyPacked(msg, corrupted[:], pub), qt.IsFalse, qt.Commentf("signature bit %d", k))
	}
}

func TestSignAndVerify(t *testing.T) {
	c := qt.New(t)
	priv := babyjub.NewRandPrivKey()
	msg := util.RandomBytes(types.MessageBytes)

	sig, err := SignAndVerify(priv, priv.Public(), msg)
	c.Assert(err, qt.IsNil)
	c.Assert(Verify(msg, sig, priv.Public()), qt.IsTrue)

	other := babyjub.NewRandPrivKey()
	_, err = SignAndVerify(priv, other.Public(), msg)
	c.Assert(err, qt.ErrorIs, types.ErrSignatureVerification)

	_, err = SignAndVerify(priv, priv.Public(), nil)
	c.Assert(err, qt.IsNotNil)
}

func TestVerifyLeadingZeroMessage(t *testing.T) {
	c := qt.New(t)
	priv := babyjub.NewRandPrivKey()
	pub := priv.Public()

	sig, err := Sign(priv, []byte{0x01})
	c.Assert(err, qt.IsNil)
	c.Assert(Verify([]byte{0x01}, sig, pub), qt.IsTrue)
	c.Assert(Verify([]byte{0x00, 0x01}, sig, pub), qt.IsFalse)

	msg := util.RandomBytes(types.MessageBytes)
	msg[0] = 0
	sig, err = Sign(priv, msg)
	c.Assert(err, qt.IsNil)
	c.Assert(Verify(msg[1:], sig, pub), qt.IsFalse)
}
