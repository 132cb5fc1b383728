// Package multisig assembles the fixed-shape input documents of the m-of-n
// multisig circuit: the packed operation, the signatures of every roster
// signer and their bit decompositions.
package multisig

import (
	"context"
	"fmt"
	"time"

	"github.com/vocdoni/zk-multisig/crypto/eddsa"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/log"
	"github.com/vocdoni/zk-multisig/packing"
	"github.com/vocdoni/zk-multisig/types"
	"golang.org/x/sync/errgroup"
)

// Assemble builds the batch document of the request with the default shape.
func Assemble(ctx context.Context, req *Request) (*BatchDocument, error) {
	return AssembleWithShape(ctx, req, DefaultShape())
}

// AssembleWithShape packs the operation, signs it with the first m roster
// signers and builds a batch document whose first slot holds the operation
// and every other slot is zero filled. Any error aborts the whole batch.
func AssembleWithShape(ctx context.Context, req *Request, shape Shape) (*BatchDocument, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", types.ErrInvalidRequest)
	}
	packed, err := packing.Pack(req.Operation)
	if err != nil {
		return nil, err
	}
	roster, err := req.signers(shape)
	if err != nil {
		return nil, err
	}
	startTime := time.Now()
	msg := packed.Message()
	records, err := SignAll(ctx, roster, msg)
	if err != nil {
		return nil, err
	}
	root, err := roster.Root()
	if err != nil {
		return nil, err
	}
	inputs := NewCircuitInputs(shape)
	inputs.setOperation(0, req.Threshold, packed, req.Mask, records)

	log.Debugw("batch assembled",
		"message", packed.MessageHex(),
		"threshold", req.Threshold,
		"signers", roster.Len(),
		"took", time.Since(startTime).String())
	return &BatchDocument{
		Inputs:     inputs,
		Signatures: records,
		RosterRoot: root,
	}, nil
}

// SignAll signs msg with every roster signer concurrently. Every signature
// is verified before it is accepted and the records are returned in roster
// order. The first failure cancels the remaining signers.
func SignAll(ctx context.Context, roster *keystore.Roster, msg []byte) ([]*SignatureRecord, error) {
	signers := roster.Records()
	records := make([]*SignatureRecord, len(signers))
	g, ctx := errgroup.WithContext(ctx)
	for i, key := range signers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sig, err := eddsa.SignAndVerify(key.PrivateKey, key.PublicKey, msg)
			if err != nil {
				log.Warnw("signer failed", "index", i, "error", err.Error())
				return &types.SignatureVerificationError{Index: i, Err: err}
			}
			records[i] = newSignatureRecord(msg, key, sig)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
