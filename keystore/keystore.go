// Package keystore holds the ordered rosters of BabyJubJub signer keys.
package keystore

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/vocdoni/arbo"
	"github.com/vocdoni/zk-multisig/circuits"
	"github.com/vocdoni/zk-multisig/types"
)

// KeyRecord is a signer key pair. Its identity is its position in the roster.
type KeyRecord struct {
	PrivateKey      babyjub.PrivateKey
	PublicKey       *babyjub.PublicKey
	PackedPublicKey babyjub.PublicKeyComp
}

// NewKeyRecord derives the public keys of priv.
func NewKeyRecord(priv babyjub.PrivateKey) *KeyRecord {
	pub := priv.Public()
	return &KeyRecord{
		PrivateKey:      priv,
		PublicKey:       pub,
		PackedPublicKey: pub.Compress(),
	}
}

// PublicKeyBytes returns the X and Y coordinates of the public key, each as
// 32 little-endian bytes.
func (k *KeyRecord) PublicKeyBytes() []byte {
	return append(
		arbo.BigIntToBytes(circuits.SerializedFieldSize, k.PublicKey.X),
		arbo.BigIntToBytes(circuits.SerializedFieldSize, k.PublicKey.Y)...)
}

// Roster is an ordered, immutable list of signer keys.
type Roster struct {
	records []*KeyRecord
}

// NewRoster builds a roster from the records, keeping their order.
func NewRoster(records ...*KeyRecord) *Roster {
	return &Roster{records: append([]*KeyRecord{}, records...)}
}

// GenerateRoster creates a roster of n random keys.
func GenerateRoster(n int) (*Roster, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid roster size %d", n)
	}
	if n > maxRosterSize {
		return nil, fmt.Errorf("roster size %d exceeds the maximum %d", n, maxRosterSize)
	}
	records := make([]*KeyRecord, n)
	for i := range records {
		records[i] = NewKeyRecord(babyjub.NewRandPrivKey())
	}
	return &Roster{records: records}, nil
}

// Len returns the number of signers.
func (r *Roster) Len() int {
	return len(r.records)
}

// Records returns a copy of the roster records.
func (r *Roster) Records() []*KeyRecord {
	return append([]*KeyRecord{}, r.records...)
}

// Record returns the signer at position i.
func (r *Roster) Record(i int) (*KeyRecord, error) {
	if i < 0 || i >= len(r.records) {
		return nil, fmt.Errorf("signer %d out of roster bounds (%d)", i, len(r.records))
	}
	return r.records[i], nil
}

// Slice returns a roster with the first m signers.
func (r *Roster) Slice(m int) (*Roster, error) {
	if m < 0 || m > len(r.records) {
		return nil, &types.MalformedDocumentError{
			Index:  -1,
			Reason: fmt.Sprintf("%d signers requested, roster has %d", m, len(r.records)),
		}
	}
	return &Roster{records: r.records[:m]}, nil
}

// PublicSigner is the public view of a roster record.
type PublicSigner struct {
	Index           int            `json:"index"`
	PublicKey       types.HexBytes `json:"publicKey"`
	PackedPublicKey types.HexBytes `json:"packedPublicKey"`
	X               *types.BigInt  `json:"x"`
	Y               *types.BigInt  `json:"y"`
}

// PublicInfo returns the public keys of the roster.
func (r *Roster) PublicInfo() []*PublicSigner {
	signers := make([]*PublicSigner, len(r.records))
	for i, rec := range r.records {
		signers[i] = &PublicSigner{
			Index:           i,
			PublicKey:       rec.PublicKeyBytes(),
			PackedPublicKey: rec.PackedPublicKey[:],
			X:               types.FromBigInt(rec.PublicKey.X),
			Y:               types.FromBigInt(rec.PublicKey.Y),
		}
	}
	return signers
}

func pointFromBytes(b []byte) *babyjub.PublicKey {
	return &babyjub.PublicKey{
		X: arbo.BytesToBigInt(b[:circuits.SerializedFieldSize]),
		Y: arbo.BytesToBigInt(b[circuits.SerializedFieldSize:]),
	}
}

func samePoint(a, b *babyjub.PublicKey) bool {
	return a.X.Cmp(b.X) == 0 && a.Y.Cmp(b.Y) == 0
}

// bigIntPair is used to build the roster tree leaves.
func bigIntPair(pub *babyjub.PublicKey) []*big.Int {
	return []*big.Int{pub.X, pub.Y}
}
