//nolint:lll
package api

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after
// the current last 4XXX or 5XXX. Gaps are codes used in the past and must not
// be reused.
var (
	ErrResourceNotFound    = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody       = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrMalformedRosterID   = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed roster ID")}
	ErrRosterNotFound      = Error{Code: 40009, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("roster not found")}
	ErrInvalidRosterSize   = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid roster size")}
	ErrMalformedBatchID    = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed batch ID")}
	ErrBatchNotFound       = Error{Code: 40012, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("batch not found")}
	ErrInvalidBatchRequest = Error{Code: 40013, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid batch request")}
	ErrValueOutOfRange     = Error{Code: 40014, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("value out of range")}
	ErrRosterOverflow      = Error{Code: 40015, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("roster exceeds signer slots")}
	ErrRosterTooSmall      = Error{Code: 40016, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("roster smaller than requested signers")}
	ErrInvalidOperations   = Error{Code: 40017, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid number of operations")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
	ErrSignatureVerification      = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("signature verification failed")}
	ErrStorageFailed              = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("storage operation failed")}
)
