package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/log"
	stg "github.com/vocdoni/zk-multisig/storage"
)

// maxRosterSize limits the rosters generated through the API.
const maxRosterSize = 64

// newRoster generates and stores a roster of random keys
// POST /rosters
func (a *API) newRoster(w http.ResponseWriter, r *http.Request) {
	req := &NewRoster{}
	if apiErr := decodeBody(r, req); apiErr != nil {
		apiErr.Write(w)
		return
	}
	if req.Size <= 0 || req.Size > maxRosterSize {
		ErrInvalidRosterSize.Withf("size must be between 1 and %d", maxRosterSize).Write(w)
		return
	}
	roster, err := keystore.GenerateRoster(req.Size)
	if err != nil {
		ErrInvalidRosterSize.WithErr(err).Write(w)
		return
	}
	id := uuid.New()
	root, err := a.storage.SetRoster(id, roster)
	if err != nil {
		ErrStorageFailed.Withf("could not store roster: %v", err).Write(w)
		return
	}
	log.Infow("new roster", "rosterId", id.String(), "size", req.Size)
	httpWriteJSON(w, &Roster{
		RosterID: id,
		Root:     root,
		Signers:  roster.PublicInfo(),
	})
}

// roster returns the public info of a roster
// GET /rosters/{rosterId}
func (a *API) roster(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, RosterURLParam))
	if err != nil {
		ErrMalformedRosterID.WithErr(err).Write(w)
		return
	}
	roster, apiErr := a.loadRoster(id)
	if apiErr != nil {
		apiErr.Write(w)
		return
	}
	root, err := roster.Root()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &Roster{
		RosterID: id,
		Root:     root,
		Signers:  roster.PublicInfo(),
	})
}

func (a *API) loadRoster(id uuid.UUID) (*keystore.Roster, *Error) {
	roster, err := a.storage.Roster(id)
	if err != nil {
		if errors.Is(err, stg.ErrNotFound) {
			apiErr := ErrRosterNotFound.With(id.String())
			return nil, &apiErr
		}
		apiErr := ErrStorageFailed.Withf("could not load roster: %v", err)
		return nil, &apiErr
	}
	return roster, nil
}
