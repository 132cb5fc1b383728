package client

import (
	"errors"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/zk-multisig/api"
	"github.com/vocdoni/zk-multisig/storage"
	"github.com/vocdoni/zk-multisig/types"
)

func TestClient(t *testing.T) {
	c := qt.New(t)
	stg := storage.New(memdb.New())
	defer stg.Close()
	a, err := api.NewHandler(&api.APIConfig{Storage: stg})
	c.Assert(err, qt.IsNil)
	srv := httptest.NewServer(a.Router())
	defer srv.Close()

	cli, err := New(srv.URL)
	c.Assert(err, qt.IsNil)
	cli.SetRetries(1)
	cli.SetRetryDelay(10 * time.Millisecond)
	cli.SetTimeout(30 * time.Second)

	roster, err := cli.NewRoster(5)
	c.Assert(err, qt.IsNil)
	c.Assert(roster.Signers, qt.HasLen, 5)

	fetched, err := cli.Roster(roster.RosterID)
	c.Assert(err, qt.IsNil)
	c.Assert(fetched.Root, qt.DeepEquals, roster.Root)

	_, err = cli.Roster(uuid.New())
	c.Assert(errors.Is(err, api.ErrRosterNotFound), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "roster not found: .*")

	resp, err := cli.NewBatch(&api.NewBatch{
		RosterID:  roster.RosterID,
		Amount:    (*types.BigInt)(big.NewInt(1e18)),
		Token:     common.HexToAddress("0xdac17f958d2ee523a2206206994597c13d831ec7"),
		Recipient: common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4"),
		Threshold: 3,
		Mask:      []bool{true, true, true, false, false},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Inputs.Validate(), qt.IsNil)

	batch, err := cli.Batch(resp.BatchID)
	c.Assert(err, qt.IsNil)
	c.Assert(batch.Document.Validate(), qt.IsNil)
	c.Assert(batch.Document.Inputs, qt.DeepEquals, resp.Inputs)

	estimation, err := cli.Gas(20)
	c.Assert(err, qt.IsNil)
	c.Assert(estimation.Operations, qt.Equals, 20)
	_, err = cli.Gas(0)
	c.Assert(errors.Is(err, api.ErrInvalidOperations), qt.IsTrue)
}
