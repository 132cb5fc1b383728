package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/types"
)

// NewRoster is the request to generate a roster of random signer keys.
type NewRoster struct {
	Size int `json:"size"`
}

// Roster is the public view of a stored roster.
type Roster struct {
	RosterID uuid.UUID                `json:"rosterId"`
	Root     types.HexBytes           `json:"root"`
	Signers  []*keystore.PublicSigner `json:"signers"`
}

// NewBatch is the request to assemble the batch of a transfer signed by the
// signers of a stored roster.
type NewBatch struct {
	RosterID  uuid.UUID      `json:"rosterId"`
	Amount    *types.BigInt  `json:"amount"`
	Token     common.Address `json:"token"`
	Recipient common.Address `json:"recipient"`
	Threshold int            `json:"threshold"`
	Signers   int            `json:"signers,omitempty"`
	Mask      []bool         `json:"mask"`
}

// NewBatchResponse is the response to a batch assembly.
type NewBatchResponse struct {
	BatchID types.HexBytes          `json:"batchId"`
	Inputs  *multisig.CircuitInputs `json:"inputs"`
}

// Batch is a stored batch document.
type Batch struct {
	BatchID  types.HexBytes          `json:"batchId"`
	RosterID types.HexBytes          `json:"rosterId"`
	Document *multisig.BatchDocument `json:"document"`
}
