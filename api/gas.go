package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/zk-multisig/gas"
)

// gasEstimation returns the gas cost of a batch of n operations
// GET /gas/{operations}
func (a *API) gasEstimation(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, GasURLParam))
	if err != nil {
		ErrInvalidOperations.WithErr(err).Write(w)
		return
	}
	estimation, err := gas.Estimate(n)
	if err != nil {
		ErrInvalidOperations.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, estimation)
}
