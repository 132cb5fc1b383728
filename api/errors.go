package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vocdoni/zk-multisig/log"
)

// ErrorResponse is the JSON body returned for every failed request.
//
// Example: {"error":"roster not found: 5f0c...","code":40009}
type ErrorResponse struct {
	Message string `json:"error"`
	Code    int    `json:"code"`
}

// Error couples a failure with its stable API code and the HTTP status used
// to report it.
type Error struct {
	Err        error
	Code       int
	HTTPstatus int
}

func (e Error) Error() string {
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Is matches any Error carrying the same code, so wrapped copies still
// compare equal to the definitions in errors_definition.go.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Response returns the wire representation of the error.
func (e Error) Response() ErrorResponse {
	return ErrorResponse{Message: e.Err.Error(), Code: e.Code}
}

func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Response())
}

// Write sends the error to the client as JSON with e.HTTPstatus.
func (e Error) Write(w http.ResponseWriter) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Warnw("failed to marshal api error", "error", err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	log.Debugw("api error response", "error", e.Error(), "code", e.Code, "httpStatus", e.HTTPstatus)
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, string(msg), e.HTTPstatus)
}

func (e Error) wrap(detail string) Error {
	return Error{
		Err:        fmt.Errorf("%w: %s", e.Err, detail),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}

// With appends s to the error message.
func (e Error) With(s string) Error {
	return e.wrap(s)
}

// Withf appends a formatted detail to the error message.
func (e Error) Withf(format string, args ...any) Error {
	return e.wrap(fmt.Sprintf(format, args...))
}

// WithErr appends err's message to the error message.
func (e Error) WithErr(err error) Error {
	return e.wrap(err.Error())
}

// ParseError decodes an error body returned by the API. The status is kept as
// HTTPstatus and the message is used verbatim.
func ParseError(status int, body []byte) (Error, bool) {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Code == 0 {
		return Error{}, false
	}
	return Error{
		Err:        errors.New(resp.Message),
		Code:       resp.Code,
		HTTPstatus: status,
	}, true
}
