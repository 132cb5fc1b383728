package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vocdoni/zk-multisig/log"
)

const (
	// maxLoggedResponse is the number of response bytes printed in debug logs.
	maxLoggedResponse = 256
	// maxBodySize limits the size of the request bodies.
	maxBodySize = 1 << 20
)

// decodeBody decodes the JSON request body into v. Unknown fields are
// rejected.
func decodeBody(r *http.Request, v any) *Error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		apiErr := ErrMalformedBody.Withf("could not decode request body: %v", err)
		return &apiErr
	}
	return nil
}

// httpWriteJSON writes data as a JSON response with status 200.
func httpWriteJSON(w http.ResponseWriter, data any) {
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	n, err := w.Write(append(jdata, '\n'))
	if err != nil {
		log.Warnw("failed to write http response", "error", err)
		return
	}
	if log.Level() == log.LogLevelDebug {
		log.Debugw("api response", "bytes", n, "data", string(jdata[:min(len(jdata), maxLoggedResponse)]))
	}
}

// httpWriteOK writes an empty 200 response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}
