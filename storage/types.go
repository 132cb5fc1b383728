package storage

import (
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/types"
)

// RosterArtifact is a stored roster: its JSON document and its root.
type RosterArtifact struct {
	Document []byte         `json:"document"`
	Root     types.HexBytes `json:"root"`
	Size     int            `json:"size"`
}

// BatchArtifact is a stored batch document with the roster it was built
// from.
type BatchArtifact struct {
	RosterID types.HexBytes          `json:"rosterId"`
	Document *multisig.BatchDocument `json:"document"`
}
