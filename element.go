package webdriver

import (
	"context"
	"encoding/json"

	"github.com/go-webdriver/webdriver/keys"
)

// Element is a client-side handle to a server-side DOM node. It holds the
// server-assigned element id, a copy of the owning session's id, and a
// shared reference to the session's transport; it never owns the session.
//
// An Element caches nothing: every read re-queries the remote end, so
// multiple handles may reference the same node without coordination. Its
// validity is entirely server-side state; operations on a node that has
// been removed fail with ErrStaleElementReference, and operations after
// the session has ended fail with ErrInvalidSessionID.
type Element struct {
	id        string
	sessionID string
	conn      Transport
}

// ID returns the server-assigned element id.
func (e *Element) ID() string { return e.id }

// ref returns the protocol representation of the element reference.
func (e *Element) ref() map[string]string {
	return map[string]string{webElementID: e.id}
}

// MarshalJSON serializes the element as a protocol element reference, so
// an *Element can be passed directly as a script argument.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ref())
}

// edo dispatches the element-scoped command built by build and unwraps its
// value into T.
func edo[T any](ctx context.Context, e *Element, build func(sid, eid string) Command) (T, error) {
	var zero T
	cmd := build(e.sessionID, e.id)
	raw, err := e.conn.Execute(ctx, cmd)
	if err != nil {
		return zero, err
	}
	return unwrap[T](cmd, raw)
}

func (e *Element) doVoid(ctx context.Context, build func(sid, eid string) Command) error {
	_, err := edo[json.RawMessage](ctx, e, build)
	return err
}

// Click scrolls the element into view and clicks its center point.
func (e *Element) Click(ctx context.Context) error {
	return e.doVoid(ctx, elementClickCmd)
}

// Clear empties an editable or resettable element.
func (e *Element) Clear(ctx context.Context) error {
	return e.doVoid(ctx, elementClearCmd)
}

// SendKeys types the given text into the element. Code points in the
// private-use key range are interpreted as symbolic keys by the remote
// end.
func (e *Element) SendKeys(ctx context.Context, text string) error {
	return e.doVoid(ctx, func(sid, eid string) Command {
		return elementSendKeysCmd(sid, eid, text)
	})
}

// Type sends a composed key sequence to the element as one input
// operation.
func (e *Element) Type(ctx context.Context, t keys.Typing) error {
	return e.SendKeys(ctx, t.String())
}

// Text returns the element's visible text.
func (e *Element) Text(ctx context.Context) (string, error) {
	return edo[string](ctx, e, getElementTextCmd)
}

// TagName returns the element's tag name.
func (e *Element) TagName(ctx context.Context) (string, error) {
	return edo[string](ctx, e, getElementTagNameCmd)
}

// Rect returns the element's dimensions and coordinates.
func (e *Element) Rect(ctx context.Context) (Rect, error) {
	return edo[Rect](ctx, e, getElementRectCmd)
}

// Attribute returns the value of the named attribute, or "" when the
// attribute is absent.
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	return edo[string](ctx, e, func(sid, eid string) Command {
		return getElementAttributeCmd(sid, eid, name)
	})
}

// Property returns the raw JSON value of the named DOM property.
func (e *Element) Property(ctx context.Context, name string) (json.RawMessage, error) {
	return edo[json.RawMessage](ctx, e, func(sid, eid string) Command {
		return getElementPropertyCmd(sid, eid, name)
	})
}

// CSSValue returns the computed value of the named CSS property.
func (e *Element) CSSValue(ctx context.Context, name string) (string, error) {
	return edo[string](ctx, e, func(sid, eid string) Command {
		return getElementCSSValueCmd(sid, eid, name)
	})
}

// Selected reports whether an option, checkbox, or radio element is
// currently selected.
func (e *Element) Selected(ctx context.Context) (bool, error) {
	return edo[bool](ctx, e, isElementSelectedCmd)
}

// Enabled reports whether the element is currently enabled.
func (e *Element) Enabled(ctx context.Context) (bool, error) {
	return edo[bool](ctx, e, isElementEnabledCmd)
}

// Displayed reports whether the element is currently displayed.
func (e *Element) Displayed(ctx context.Context) (bool, error) {
	return edo[bool](ctx, e, isElementDisplayedCmd)
}

// FindElement locates the first element matching the locator, starting
// from this element.
func (e *Element) FindElement(ctx context.Context, by By) (*Element, error) {
	if !by.valid() {
		return nil, ErrUnknownStrategy
	}
	cmd := findElementFromElementCmd(e.sessionID, e.id, by)
	value, err := edo[json.RawMessage](ctx, e, func(string, string) Command { return cmd })
	if err != nil {
		return nil, err
	}
	id, err := unwrapElementID(cmd, value)
	if err != nil {
		return nil, err
	}
	return &Element{id: id, sessionID: e.sessionID, conn: e.conn}, nil
}

// FindElements locates every element matching the locator, starting from
// this element.
func (e *Element) FindElements(ctx context.Context, by By) ([]*Element, error) {
	if !by.valid() {
		return nil, ErrUnknownStrategy
	}
	cmd := findElementsFromElementCmd(e.sessionID, e.id, by)
	value, err := edo[json.RawMessage](ctx, e, func(string, string) Command { return cmd })
	if err != nil {
		return nil, err
	}
	var refs []json.RawMessage
	if err := json.Unmarshal(value, &refs); err != nil {
		return nil, &DecodeError{Method: cmd.Method(), Path: cmd.Path(), Err: err}
	}
	els := make([]*Element, len(refs))
	for i, ref := range refs {
		id, err := unwrapElementID(cmd, ref)
		if err != nil {
			return nil, err
		}
		els[i] = &Element{id: id, sessionID: e.sessionID, conn: e.conn}
	}
	return els, nil
}

// submitScript submits the form the element belongs to, or the element
// itself when it is a form. The endpoint for this was dropped from the
// W3C protocol, so it runs as an injected script.
const submitScript = `var e = arguments[0];
var f = e.tagName.toLowerCase() === 'form' ? e : e.form;
if (f) { f.submit(); }`

// Submit submits the form the element participates in.
func (e *Element) Submit(ctx context.Context) error {
	return e.doVoid(ctx, func(sid, _ string) Command {
		return executeScriptCmd(sid, submitScript, []interface{}{e.ref()})
	})
}

// Screenshot captures the element's bounding rectangle and returns the
// decoded PNG bytes.
func (e *Element) Screenshot(ctx context.Context) ([]byte, error) {
	b64, err := edo[string](ctx, e, takeElementScreenshotCmd)
	if err != nil {
		return nil, err
	}
	return decodeScreenshot(b64)
}
