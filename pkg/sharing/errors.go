package sharing

import (
	"errors"
	"fmt"
)

var errInvalidTokenBody = errors.New("invalid token response body")

// ValidationError is a local, pre-network failure: a malformed notebook
// document or an empty identifier. The request is never sent; the caller
// must fix the input rather than retry.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sharing: %s: %s", e.Op, e.Reason)
}

// AuthenticationError means token issuance or refresh failed, either with a
// non-success status or a malformed token body. It is recoverable by
// calling Authenticate again; the client does not retry internally.
type AuthenticationError struct {
	Op     string
	Status string
	Err    error
}

func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("sharing: %s failed", e.Op)
	if e.Status != "" {
		msg += ": " + e.Status
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ProtocolError means the request reached the backend but the response was
// unusable: a non-2xx status, or a body that failed schema validation. An
// unrecognized response shape is treated identically to a failed status.
type ProtocolError struct {
	Op     string
	ID     string
	Status string
	Reason string
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("sharing: %s", e.Op)
	if e.ID != "" {
		msg += " " + e.ID
	}
	msg += " failed"
	if e.Status != "" {
		msg += ": " + e.Status
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NetworkError wraps a transport-level failure (DNS, connectivity) where
// the HTTP exchange itself could not complete.
type NetworkError struct {
	Op  string
	ID  string
	Err error
}

func (e *NetworkError) Error() string {
	msg := fmt.Sprintf("sharing: %s", e.Op)
	if e.ID != "" {
		msg += " " + e.ID
	}
	return msg + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }
