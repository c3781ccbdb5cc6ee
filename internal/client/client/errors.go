package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTimeout is returned when a call outlives its timeout budget.
	ErrTimeout = errors.New("request is taking longer than expected, please try again")
	// ErrNetwork marks failures that happened before any HTTP response.
	ErrNetwork = errors.New("network error: unable to reach the MedMate server")
	// ErrUnauthorized matches any *APIError with status 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInsufficientCredits matches any *APIError carrying CodeInsufficientCredits.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrInvalidResponse marks a 2xx body that failed to decode or validate.
	ErrInvalidResponse = errors.New("invalid response from server")
	// ErrInvalidArgument is returned before any request is sent.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Machine-readable codes the backend sends next to the human message.
const (
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
)

// APIError is a non-2xx response. Error returns the server's message verbatim.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrInsufficientCredits:
		return e.Code == CodeInsufficientCredits
	}
	return false
}

func newAPIError(status int, body errorResponse) *APIError {
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &APIError{Status: status, Message: msg, Code: body.Code}
}

// NetworkError wraps the transport failure. It matches ErrNetwork.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return ErrNetwork.Error()
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// IsInsufficientCredits reports whether err is the backend's
// insufficient-credits rejection. Matching is on the error code only.
func IsInsufficientCredits(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// StatusCode returns the HTTP status of an *APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
