package webdriver

import (
	"encoding/json"
	"fmt"
)

// envelope is the outer JSON object wrapping every protocol response. The
// top-level sessionId field is only populated by some remote ends, and
// only for the new session handshake.
type envelope struct {
	SessionID string          `json:"sessionId"`
	Value     json.RawMessage `json:"value"`
}

// webElementID is the W3C web element identifier: the one JSON key a
// serialized element reference carries.
const webElementID = "element-6066-11e4-a52e-4f735466cecf"

// legacyElementID is the JSON wire protocol element key, still produced by
// older remote ends.
const legacyElementID = "ELEMENT"

// unwrap decodes the raw response envelope for cmd and deserializes its
// value into T. It works uniformly for scalars, slices, and structured
// records.
//
// Failure modes are kept distinct: a body that is not an envelope wraps
// ErrInvalidEnvelope (transport class); a value encoding a server-reported
// error becomes a *ProtocolError; a value that does not match T becomes a
// *DecodeError attributed to the command.
func unwrap[T any](cmd Command, raw json.RawMessage) (T, error) {
	var zero T

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if perr := valueError(env.Value); perr != nil {
		return zero, perr
	}

	var out T
	if len(env.Value) != 0 && !isJSONNull(env.Value) {
		if err := json.Unmarshal(env.Value, &out); err != nil {
			return zero, &DecodeError{Method: cmd.Method(), Path: cmd.Path(), Err: err}
		}
	}
	return out, nil
}

// unwrapElementID extracts the server-assigned element id from a find
// element response value, accepting both the W3C and the legacy key.
func unwrapElementID(cmd Command, value json.RawMessage) (string, error) {
	var ref map[string]string
	if err := json.Unmarshal(value, &ref); err != nil {
		return "", &DecodeError{Method: cmd.Method(), Path: cmd.Path(), Err: err}
	}
	if id, ok := ref[webElementID]; ok && id != "" {
		return id, nil
	}
	if id, ok := ref[legacyElementID]; ok && id != "" {
		return id, nil
	}
	return "", &DecodeError{
		Method: cmd.Method(), Path: cmd.Path(),
		Err: fmt.Errorf("no element id in %s", value),
	}
}

// valueError reports the server-side failure encoded in value, if any. A
// value that is not an object, or an object without an error field, is not
// an error.
func valueError(value json.RawMessage) *ProtocolError {
	if len(value) == 0 || value[0] != '{' {
		return nil
	}
	var perr ProtocolError
	if err := json.Unmarshal(value, &perr); err != nil || perr.Code == "" {
		return nil
	}
	return &perr
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
