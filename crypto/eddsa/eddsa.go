// Package eddsa signs and verifies packed operation messages with EdDSA over
// the BabyJubJub curve. Messages are digested with poseidon before signing.
package eddsa

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/vocdoni/zk-multisig/crypto/hash/poseidon"
	"github.com/vocdoni/zk-multisig/types"
)

// SignatureSize is the size of a packed signature: compressed R8 followed by
// S in little-endian.
const SignatureSize = 64

// MessageDigest returns the field element signed for msg.
func MessageDigest(msg []byte) (*big.Int, error) {
	digest, err := poseidon.HashBytes(msg)
	if err != nil {
		return nil, fmt.Errorf("could not digest message: %w", err)
	}
	return digest, nil
}

// Sign signs msg with the private key. The signature is deterministic.
// It signs the poseidon digest of msg, so it verifies with a poseidon EdDSA
// verifier, not a pedersen one.
func Sign(priv babyjub.PrivateKey, msg []byte) (*babyjub.Signature, error) {
	digest, err := MessageDigest(msg)
	if err != nil {
		return nil, err
	}
	return priv.SignPoseidon(digest), nil
}

// Pack returns the 64 bytes representation of the signature.
func Pack(sig *babyjub.Signature) [SignatureSize]byte {
	return sig.Compress()
}

// Unpack decodes a packed signature.
func Unpack(packed []byte) (*babyjub.Signature, error) {
	if len(packed) != SignatureSize {
		return nil, fmt.Errorf("invalid signature length %d, expected %d", len(packed), SignatureSize)
	}
	var comp babyjub.SignatureComp
	copy(comp[:], packed)
	sig, err := comp.Decompress()
	if err != nil {
		return nil, fmt.Errorf("could not decompress signature: %w", err)
	}
	return sig, nil
}

// Verify checks the signature of msg against the public key.
func Verify(msg []byte, sig *babyjub.Signature, pub *babyjub.PublicKey) bool {
	if sig == nil || pub == nil {
		return false
	}
	digest, err := MessageDigest(msg)
	if err != nil {
		return false
	}
	return pub.VerifyPoseidon(digest, sig)
}

// VerifyPacked unpacks the signature and verifies it. Undecodable signatures
// do not verify.
func VerifyPacked(msg, packed []byte, pub *babyjub.PublicKey) bool {
	sig, err := Unpack(packed)
	if err != nil {
		return false
	}
	return Verify(msg, sig, pub)
}

// SignAndVerify signs msg and checks the signature after a pack and unpack
// round trip. The returned signature is the decoded one, so it is exactly
// what the packed form represents.
func SignAndVerify(priv babyjub.PrivateKey, pub *babyjub.PublicKey, msg []byte) (*babyjub.Signature, error) {
	sig, err := Sign(priv, msg)
	if err != nil {
		return nil, err
	}
	packed := Pack(sig)
	decoded, err := Unpack(packed[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSignatureVerification, err)
	}
	if !Verify(msg, decoded, pub) {
		return nil, types.ErrSignatureVerification
	}
	return decoded, nil
}
