package api

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/log"
	"github.com/vocdoni/zk-multisig/packing"
	stg "github.com/vocdoni/zk-multisig/storage"
	"github.com/vocdoni/zk-multisig/types"
	"github.com/vocdoni/zk-multisig/util"
)

// newBatch packs, signs and stores a new batch document
// POST /batches
func (a *API) newBatch(w http.ResponseWriter, r *http.Request) {
	req := &NewBatch{}
	if apiErr := decodeBody(r, req); apiErr != nil {
		apiErr.Write(w)
		return
	}
	if req.Amount == nil {
		ErrMalformedBody.With("missing amount").Write(w)
		return
	}
	roster, apiErr := a.loadRoster(req.RosterID)
	if apiErr != nil {
		apiErr.Write(w)
		return
	}
	doc, err := multisig.AssembleWithShape(r.Context(), &multisig.Request{
		Operation: packing.NewOperation(req.Amount.MathBigInt(), req.Token, req.Recipient),
		Threshold: req.Threshold,
		Signers:   req.Signers,
		Roster:    roster,
		Mask:      req.Mask,
	}, a.shape)
	if err != nil {
		assemblyError(err).Write(w)
		return
	}
	key, err := a.storage.SetBatch(req.RosterID, doc)
	if err != nil {
		ErrStorageFailed.Withf("could not store batch: %v", err).Write(w)
		return
	}
	log.Infow("new batch",
		"batchId", hex.EncodeToString(key),
		"rosterId", req.RosterID.String(),
		"threshold", req.Threshold,
		"signers", doc.Inputs.M[0])
	httpWriteJSON(w, &NewBatchResponse{
		BatchID: key,
		Inputs:  doc.Inputs,
	})
}

// batch returns a stored batch document
// GET /batches/{batchId}
func (a *API) batch(w http.ResponseWriter, r *http.Request) {
	key, err := hex.DecodeString(util.TrimHex(chi.URLParam(r, BatchURLParam)))
	if err != nil || len(key) == 0 {
		ErrMalformedBatchID.Write(w)
		return
	}
	artifact, err := a.storage.Batch(key)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			ErrBatchNotFound.Write(w)
			return
		}
		ErrStorageFailed.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &Batch{
		BatchID:  key,
		RosterID: artifact.RosterID,
		Document: artifact.Document,
	})
}

// assemblyError maps the batch assembly errors to API errors.
func assemblyError(err error) Error {
	switch {
	case errors.Is(err, types.ErrRange):
		return ErrValueOutOfRange.WithErr(err)
	case errors.Is(err, types.ErrRosterOverflow):
		return ErrRosterOverflow.WithErr(err)
	case errors.Is(err, types.ErrMalformedDocument):
		return ErrRosterTooSmall.WithErr(err)
	case errors.Is(err, types.ErrInvalidRequest):
		return ErrInvalidBatchRequest.WithErr(err)
	case errors.Is(err, types.ErrSignatureVerification):
		return ErrSignatureVerification.WithErr(err)
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}
