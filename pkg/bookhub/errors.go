package bookhub

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FailureKind classifies a failed operation.
type FailureKind int

const (
	// FailureLocal is a format, required-field or login check that never reached the network.
	FailureLocal FailureKind = iota + 1
	// FailureRemote is a non-success envelope; its message is server-authored.
	FailureRemote
	// FailureTransport is a network or decoding problem.
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureLocal:
		return "local"
	case FailureRemote:
		return "remote"
	case FailureTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Local failure codes. Remote codes are whatever the server sends.
const (
	CodeLoginRequired = "LOGIN_REQUIRED"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeTransport     = "TRANSPORT"
)

// TransportFailureMessage is shown for every transport failure.
const TransportFailureMessage = "request failed, please try again"

// Failure is the error type every controller returns. Message is always
// safe to show to a user.
type Failure struct {
	Kind    FailureKind
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}

	return f.Message
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}

// ErrLoginRequired is returned before any call that needs a token when none is available.
var ErrLoginRequired = &Failure{Kind: FailureLocal, Code: CodeLoginRequired, Message: "login required"}

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrEmptyEnvelope       = errors.New("empty response envelope")
	ErrNotEnvelope         = errors.New("response body is not a result envelope")
	ErrOperationNotAllowed = errors.New("operation not supported by this screen")
)

// LocalFailure builds a failure for a check resolved without the network.
func LocalFailure(message string) *Failure {
	return &Failure{Kind: FailureLocal, Code: CodeInvalidInput, Message: message}
}

// RemoteFailure builds a failure from a non-success envelope.
func RemoteFailure(code, message string) *Failure {
	return &Failure{Kind: FailureRemote, Code: code, Message: message}
}

// TransportFailure wraps a network or decoding error behind the generic message.
func TransportFailure(err error) *Failure {
	return &Failure{Kind: FailureTransport, Code: CodeTransport, Message: TransportFailureMessage, Err: err}
}

// AsFailure converts any error into a Failure. Errors that are not already
// failures are treated as transport failures.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}

	return TransportFailure(err)
}

// DisplayMessage returns the user-facing text for err.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}

	return AsFailure(err).Message
}

// IsLocal reports whether err is a local validation failure.
func IsLocal(err error) bool {
	return kindOf(err) == FailureLocal
}

// IsRemote reports whether err is a remote business failure.
func IsRemote(err error) bool {
	return kindOf(err) == FailureRemote
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return kindOf(err) == FailureTransport
}

func kindOf(err error) FailureKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}

	return 0
}

// ParseResultError decodes an error response body into a remote failure.
// Bodies that are not envelopes yield ErrNotEnvelope.
func ParseResultError(data []byte) (*Failure, error) {
	var envelope struct {
		Code    *string `json:"code"`
		Message string  `json:"message"`
	}

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result envelope: %w", err)
	}

	if envelope.Code == nil || *envelope.Code == "" {
		return nil, ErrNotEnvelope
	}

	return RemoteFailure(*envelope.Code, envelope.Message), nil
}
