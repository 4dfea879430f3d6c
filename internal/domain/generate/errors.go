package generate

import "errors"

// Kind classifies a generation failure so the HTTP layer can pick a status
// code and user-facing message without string matching.
type Kind string

const (
	KindInvalidRequest    Kind = "invalid_request"
	KindNotFound          Kind = "not_found"
	KindExtraction        Kind = "extraction"
	KindTimeout           Kind = "timeout"
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindMalformedResponse Kind = "malformed_response"
	KindValidation        Kind = "validation"
	KindUnknown           Kind = "unknown"
)

// Error is the typed failure every Service method returns. Message is safe
// to show to end users (Korean, matching the UI); Err carries the technical
// cause for logs and errors.Is checks.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// newError wraps cause with a classification and user-facing message.
func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the Kind from err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
