package keystore

import (
	"fmt"

	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/vocdoni/arbo"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/zk-multisig/circuits"
	"github.com/vocdoni/zk-multisig/types"
)

// maxRosterSize is the number of leaves the roster tree can hold.
const maxRosterSize = 1 << types.RosterTreeMaxLevels

// HashFunction is the hash function of the roster tree.
var HashFunction = arbo.HashFunctionPoseidon

func leafKey(i int) []byte {
	return []byte{byte(i)}
}

func leafValue(rec *KeyRecord) ([]byte, error) {
	h, err := poseidon.Hash(bigIntPair(rec.PublicKey))
	if err != nil {
		return nil, err
	}
	return arbo.BigIntToBytes(circuits.SerializedFieldSize, h), nil
}

func (r *Roster) tree() (*arbo.Tree, error) {
	tree, err := arbo.NewTree(arbo.Config{
		Database:     memdb.New(),
		MaxLevels:    types.RosterTreeMaxLevels,
		HashFunction: HashFunction,
	})
	if err != nil {
		return nil, err
	}
	for i, rec := range r.records {
		value, err := leafValue(rec)
		if err != nil {
			return nil, fmt.Errorf("signer %d: %w", i, err)
		}
		if err := tree.Add(leafKey(i), value); err != nil {
			return nil, fmt.Errorf("signer %d: %w", i, err)
		}
	}
	return tree, nil
}

// Root returns the merkle root committing to the ordered signer set. Leaf i
// holds poseidon(X, Y) of the signer public key.
func (r *Roster) Root() ([]byte, error) {
	tree, err := r.tree()
	if err != nil {
		return nil, fmt.Errorf("could not build roster tree: %w", err)
	}
	return tree.Root()
}

// Proof returns the packed siblings proving that signer i belongs to the
// roster.
func (r *Roster) Proof(i int) ([]byte, error) {
	if _, err := r.Record(i); err != nil {
		return nil, err
	}
	tree, err := r.tree()
	if err != nil {
		return nil, fmt.Errorf("could not build roster tree: %w", err)
	}
	_, _, siblings, exists, err := tree.GenProof(leafKey(i))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("signer %d not found in roster tree", i)
	}
	return siblings, nil
}

// VerifyProof checks that the record is at position i of the roster with the
// given root.
func VerifyProof(root []byte, i int, rec *KeyRecord, siblings []byte) (bool, error) {
	value, err := leafValue(rec)
	if err != nil {
		return false, err
	}
	return arbo.CheckProof(HashFunction, leafKey(i), value, root, siblings)
}
