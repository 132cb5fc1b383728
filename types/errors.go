package types

import (
	"errors"
	"fmt"
)

var (
	// ErrRange is returned when a value exceeds its declared bit width.
	ErrRange = errors.New("value out of range")
	// ErrSignatureVerification is returned when a freshly produced signature
	// does not verify against the signer public key.
	ErrSignatureVerification = errors.New("signature verification failed")
	// ErrRosterOverflow is returned when a roster has more signers than the
	// signer slots of an operation.
	ErrRosterOverflow = errors.New("roster exceeds signer slots")
	// ErrMalformedDocument is returned when a roster or batch document cannot
	// be decoded or does not have the expected contents.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrInvalidRequest is returned when the batch parameters are not
	// consistent (threshold, roster size and validity mask).
	ErrInvalidRequest = errors.New("invalid batch request")
)

// RangeError reports the field which does not fit in its bit width.
type RangeError struct {
	Field string
	Width int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s does not fit in %d bits", ErrRange, e.Field, e.Width)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// SignatureVerificationError reports the roster index of the signer whose
// signature could not be verified.
type SignatureVerificationError struct {
	Index int
	Err   error
}

func (e *SignatureVerificationError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrSignatureVerification) {
		return fmt.Sprintf("%s: signer %d: %v", ErrSignatureVerification, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: signer %d", ErrSignatureVerification, e.Index)
}

func (e *SignatureVerificationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSignatureVerification}
	}
	return []error{ErrSignatureVerification, e.Err}
}

// RosterOverflowError reports a roster size bigger than the available slots.
type RosterOverflowError struct {
	Size int
	Max  int
}

func (e *RosterOverflowError) Error() string {
	return fmt.Sprintf("%s: %d signers, %d slots", ErrRosterOverflow, e.Size, e.Max)
}

func (e *RosterOverflowError) Unwrap() error { return ErrRosterOverflow }

// MalformedDocumentError reports the record of a document that could not be
// used. Index is -1 when the error is not related to a single record.
type MalformedDocumentError struct {
	Index  int
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedDocument, e.Reason)
	}
	return fmt.Sprintf("%s: record %d: %s", ErrMalformedDocument, e.Index, e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }
