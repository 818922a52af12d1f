package webdriver

import (
	"errors"
	"fmt"
)

// Error types.
var (
	// ErrNoSessionID is the error returned when a new session response
	// carries no session identifier, neither at the top level nor nested
	// under value.
	ErrNoSessionID = errors.New("no session id in new session response")

	// ErrSessionClosed is the error returned when an operation is invoked
	// on a session that has already been ended.
	ErrSessionClosed = errors.New("session closed")

	// ErrInvalidEnvelope is the error returned when a response body cannot
	// be decoded as a WebDriver response envelope. It indicates a
	// transport-level failure, not a server-reported one.
	ErrInvalidEnvelope = errors.New("invalid response envelope")

	// ErrUnknownStrategy is the error returned when a locator uses a
	// strategy the protocol does not define.
	ErrUnknownStrategy = errors.New("unknown locator strategy")

	// ErrNoWebSocketURL is the error returned when a BiDi channel is
	// requested but the session was negotiated without the webSocketUrl
	// capability.
	ErrNoWebSocketURL = errors.New("session has no webSocketUrl capability")
)

// Error is a WebDriver error code, as reported by the remote end in the
// error field of a response value.
type Error string

// Error satisfies the error interface.
func (err Error) Error() string {
	return string(err)
}

// Error codes defined by the WebDriver specification.
const (
	ErrElementClickIntercepted Error = "element click intercepted"
	ErrElementNotInteractable  Error = "element not interactable"
	ErrInsecureCertificate     Error = "insecure certificate"
	ErrInvalidArgument         Error = "invalid argument"
	ErrInvalidCookieDomain     Error = "invalid cookie domain"
	ErrInvalidElementState     Error = "invalid element state"
	ErrInvalidSelector         Error = "invalid selector"
	ErrInvalidSessionID        Error = "invalid session id"
	ErrJavascriptError         Error = "javascript error"
	ErrMoveTargetOutOfBounds   Error = "move target out of bounds"
	ErrNoSuchAlert             Error = "no such alert"
	ErrNoSuchCookie            Error = "no such cookie"
	ErrNoSuchElement           Error = "no such element"
	ErrNoSuchFrame             Error = "no such frame"
	ErrNoSuchWindow            Error = "no such window"
	ErrScriptTimeout           Error = "script timeout"
	ErrSessionNotCreated       Error = "session not created"
	ErrStaleElementReference   Error = "stale element reference"
	ErrTimeout                 Error = "timeout"
	ErrUnableToSetCookie       Error = "unable to set cookie"
	ErrUnableToCaptureScreen   Error = "unable to capture screen"
	ErrUnexpectedAlertOpen     Error = "unexpected alert open"
	ErrUnknownCommand          Error = "unknown command"
	ErrUnknownError            Error = "unknown error"
	ErrUnknownMethod           Error = "unknown method"
	ErrUnsupportedOperation    Error = "unsupported operation"
)

// ProtocolError is a well-formed response whose value encodes a failure
// reported by the remote end.
type ProtocolError struct {
	Code       Error  `json:"error"`
	Message    string `json:"message"`
	Stacktrace string `json:"stacktrace"`
}

// Error satisfies the error interface.
func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code)
}

// Is reports whether the error matches a WebDriver error code, so that
// errors.Is(err, ErrNoSuchElement) works on unwrapped responses.
func (e *ProtocolError) Is(target error) bool {
	code, ok := target.(Error)
	return ok && e.Code == code
}

// DecodeError is returned when a response value does not match the result
// shape expected for the command that was issued. It indicates a
// client/server schema mismatch and is never produced for a legitimate
// empty result.
type DecodeError struct {
	Method string
	Path   string
	Err    error
}

// Error satisfies the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: cannot decode value: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying decode failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
