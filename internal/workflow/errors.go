// Package workflow is the screen-side core of the fulfillment admin app:
// the selection/batch-tagging protocol, the re-fetch policy, and the typed
// errors every screen surfaces. It talks to the server only through Client
// and never assumes its local view is current.
package workflow

import "fmt"

// AuthMissingError means no bearer credential is stored. It is a precondition
// failure raised before any request is dispatched, never a transport error.
type AuthMissingError struct{}

func (e AuthMissingError) Error() string {
	return "No stored credential. Sign in again."
}

// TransportError wraps a request that could not complete. It is surfaced
// verbatim and never retried automatically.
type TransportError struct {
	Cause error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("Request failed: %v", e.Cause)
}

func (e TransportError) Unwrap() error {
	return e.Cause
}

// ServerError carries a non-success response. Message is the server-provided
// text, shown to the user verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e ServerError) Error() string {
	return e.Message
}

// ValidationError is a client-side precondition failure (empty selection,
// missing required container field). It blocks dispatch and never reaches
// the network.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
