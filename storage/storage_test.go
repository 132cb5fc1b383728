package storage

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/packing"
	"go.vocdoni.io/dvote/db/metadb"
)

func TestRosters(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	roster, err := keystore.GenerateRoster(4)
	c.Assert(err, qt.IsNil)
	id := uuid.New()

	root, err := stg.SetRoster(id, roster)
	c.Assert(err, qt.IsNil)
	expectedRoot, err := roster.Root()
	c.Assert(err, qt.IsNil)
	c.Assert(root, qt.DeepEquals, expectedRoot)

	_, err = stg.SetRoster(id, roster)
	c.Assert(err, qt.ErrorIs, ErrAlreadyExists)

	stored, err := stg.Roster(id)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Len(), qt.Equals, 4)
	for i, rec := range stored.Records() {
		c.Assert(rec.PrivateKey, qt.Equals, roster.Records()[i].PrivateKey)
	}

	_, err = stg.Roster(uuid.New())
	c.Assert(err, qt.Equals, ErrNotFound)

	ids, err := stg.ListRosters()
	c.Assert(err, qt.IsNil)
	c.Assert(ids, qt.DeepEquals, []uuid.UUID{id})
}

func TestBatches(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	roster, err := keystore.GenerateRoster(5)
	c.Assert(err, qt.IsNil)
	rosterID := uuid.New()
	_, err = stg.SetRoster(rosterID, roster)
	c.Assert(err, qt.IsNil)

	doc, err := multisig.Assemble(context.Background(), &multisig.Request{
		Operation: packing.NewOperation(
			big.NewInt(1000),
			common.HexToAddress("0xdac17f958d2ee523a2206206994597c13d831ec7"),
			common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4"),
		),
		Threshold: 3,
		Roster:    roster,
		Mask:      []bool{true, true, false, true, false},
	})
	c.Assert(err, qt.IsNil)

	key, err := stg.SetBatch(rosterID, doc)
	c.Assert(err, qt.IsNil)
	c.Assert(key, qt.HasLen, maxKeySize)

	stored, err := stg.Batch(key)
	c.Assert(err, qt.IsNil)
	c.Assert([]byte(stored.RosterID), qt.DeepEquals, rosterID[:])
	c.Assert(stored.Document.Validate(), qt.IsNil)
	c.Assert(stored.Document.Inputs, qt.DeepEquals, doc.Inputs)
	c.Assert(stored.Document.RosterRoot, qt.DeepEquals, doc.RosterRoot)
	c.Assert(stored.Document.Signatures, qt.HasLen, 5)
	for _, sr := range stored.Document.Signatures {
		c.Assert(sr.Verify(), qt.IsTrue)
	}

	keys, err := stg.ListBatches(rosterID)
	c.Assert(err, qt.IsNil)
	c.Assert(keys, qt.DeepEquals, [][]byte{key})
	keys, err = stg.ListBatches(uuid.New())
	c.Assert(err, qt.IsNil)
	c.Assert(keys, qt.HasLen, 0)

	_, err = stg.Batch([]byte("unknown"))
	c.Assert(err, qt.Equals, ErrNotFound)

	// invalid documents are never written
	doc.Inputs.N[7] = 2
	_, err = stg.SetBatch(rosterID, doc)
	c.Assert(err, qt.IsNotNil)
	keys, err = stg.ListBatches(rosterID)
	c.Assert(err, qt.IsNil)
	c.Assert(keys, qt.HasLen, 1)
}
