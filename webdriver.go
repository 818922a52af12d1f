package webdriver

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Session is a live connection to one remote browser instance, identified
// by a server-issued id. All methods issue exactly one protocol command
// and suspend only for its network round trip; a Session makes no
// ordering guarantee between concurrently issued operations.
//
// End a session with Quit. A Session that becomes unreachable without
// Quit being called triggers a fire-and-forget delete of the remote
// session; failures on that path are reported through the session's error
// log only. Do not rely on it for deterministic cleanup.
type Session struct {
	conn Transport
	logf func(string, ...interface{})
	errf func(string, ...interface{})

	mu   sync.Mutex
	id   string
	caps Capabilities
}

// New creates a remote session at the urlstr endpoint with the requested
// capabilities, returning a Session holding the server-issued id and the
// actual negotiated capabilities.
//
// Remote ends differ on where the handshake places the session id: some
// put it at the top level of the envelope, some nest it under value. Both
// locations are checked, preferring the top-level field; if neither holds
// an id, New fails with ErrNoSessionID.
func New(ctx context.Context, urlstr string, caps Capabilities, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	conn := cfg.transport
	if conn == nil {
		connOpts := cfg.connOpts
		if cfg.verbose {
			connOpts = append(connOpts, WithConnLogf(cfg.logf))
		}
		conn = NewConn(urlstr, connOpts...)
	}

	cmd := newSessionCmd(caps)
	raw, err := conn.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if perr := valueError(env.Value); perr != nil {
		return nil, perr
	}
	var data struct {
		SessionID    string       `json:"sessionId"`
		Capabilities Capabilities `json:"capabilities"`
	}
	if len(env.Value) != 0 {
		// Lenient: legacy remote ends place the capabilities object
		// directly under value, with no nested session id.
		_ = json.Unmarshal(env.Value, &data)
	}
	id := env.SessionID
	if id == "" {
		id = data.SessionID
	}
	if id == "" {
		return nil, ErrNoSessionID
	}

	s := &Session{
		conn: conn,
		logf: cfg.logf,
		errf: cfg.errf,
		id:   id,
		caps: data.Capabilities,
	}
	runtime.SetFinalizer(s, (*Session).finalize)
	return s, nil
}

// ID returns the session identifier, or "" once the session has ended.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Capabilities returns the negotiated capabilities reported by the server
// at session creation. The returned map must not be modified.
func (s *Session) Capabilities() Capabilities {
	return s.caps
}

// sid returns the live session id, or ErrSessionClosed after Quit.
func (s *Session) sid() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == "" {
		return "", ErrSessionClosed
	}
	return s.id, nil
}

// takeID clears and returns the session id, so the end-session command is
// issued at most once.
func (s *Session) takeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id
	s.id = ""
	return id
}

// do dispatches the session-scoped command built by build and unwraps its
// value into T.
func do[T any](ctx context.Context, s *Session, build func(sid string) Command) (T, error) {
	var zero T
	sid, err := s.sid()
	if err != nil {
		return zero, err
	}
	cmd := build(sid)
	raw, err := s.conn.Execute(ctx, cmd)
	if err != nil {
		return zero, err
	}
	return unwrap[T](cmd, raw)
}

// doVoid dispatches a command whose result value is discarded after the
// error check.
func (s *Session) doVoid(ctx context.Context, build func(sid string) Command) error {
	_, err := do[json.RawMessage](ctx, s, build)
	return err
}

// Quit ends the remote session. It is safe to call more than once; calls
// after the first are no-ops. All elements, action chains, and BiDi
// channels derived from the session are invalid afterwards.
func (s *Session) Quit(ctx context.Context) error {
	id := s.takeID()
	if id == "" {
		return nil
	}
	runtime.SetFinalizer(s, nil)
	cmd := deleteSessionCmd(id)
	raw, err := s.conn.Execute(ctx, cmd)
	if err != nil {
		return err
	}
	_, err = unwrap[json.RawMessage](cmd, raw)
	return err
}

// finalize is the implicit cleanup path: a non-blocking, best-effort
// delete of the remote session for handles dropped without Quit. Failures
// are reported through errf and otherwise swallowed; disposal never
// fails.
func (s *Session) finalize() {
	id := s.takeID()
	if id == "" {
		return
	}
	conn, errf := s.conn, s.errf
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
		if _, err := conn.Execute(ctx, deleteSessionCmd(id)); err != nil {
			errf("closing session %s: %v", id, err)
		}
	}()
}

// Window management.

// CurrentWindowHandle returns the handle of the current top-level browsing
// context.
func (s *Session) CurrentWindowHandle(ctx context.Context) (WindowHandle, error) {
	return do[WindowHandle](ctx, s, getWindowHandleCmd)
}

// WindowHandles returns the handles of all open top-level browsing
// contexts.
func (s *Session) WindowHandles(ctx context.Context) ([]WindowHandle, error) {
	return do[[]WindowHandle](ctx, s, getWindowHandlesCmd)
}

// SwitchToWindow makes the window with the given handle current.
func (s *Session) SwitchToWindow(ctx context.Context, h WindowHandle) error {
	return s.doVoid(ctx, func(sid string) Command { return switchToWindowCmd(sid, h) })
}

// NewWindow opens a new top-level browsing context of the given type,
// either "tab" or "window", and returns its handle without switching to
// it.
func (s *Session) NewWindow(ctx context.Context, typ string) (WindowHandle, error) {
	res, err := do[struct {
		Handle WindowHandle `json:"handle"`
		Type   string       `json:"type"`
	}](ctx, s, func(sid string) Command { return newWindowCmd(sid, typ) })
	return res.Handle, err
}

// CloseWindow closes the current window. Closing the last window ends the
// session on the remote side.
func (s *Session) CloseWindow(ctx context.Context) error {
	return s.doVoid(ctx, closeWindowCmd)
}

// WindowRect returns the size and position of the current window.
func (s *Session) WindowRect(ctx context.Context) (Rect, error) {
	return do[Rect](ctx, s, getWindowRectCmd)
}

// SetWindowRect sets the size and position of the current window.
func (s *Session) SetWindowRect(ctx context.Context, r Rect) error {
	return s.doVoid(ctx, func(sid string) Command { return setWindowRectCmd(sid, r) })
}

// MaximizeWindow maximizes the current window.
func (s *Session) MaximizeWindow(ctx context.Context) error {
	return s.doVoid(ctx, maximizeWindowCmd)
}

// MinimizeWindow minimizes the current window.
func (s *Session) MinimizeWindow(ctx context.Context) error {
	return s.doVoid(ctx, minimizeWindowCmd)
}

// FullscreenWindow puts the current window into fullscreen.
func (s *Session) FullscreenWindow(ctx context.Context) error {
	return s.doVoid(ctx, fullscreenWindowCmd)
}

// Frames.

// SwitchToFrameIndex switches the current browsing context to the frame
// with the given zero-based index.
func (s *Session) SwitchToFrameIndex(ctx context.Context, index int) error {
	return s.doVoid(ctx, func(sid string) Command { return switchToFrameCmd(sid, index) })
}

// SwitchToFrameElement switches the current browsing context to the frame
// owned by the given frame or iframe element.
func (s *Session) SwitchToFrameElement(ctx context.Context, el *Element) error {
	return s.doVoid(ctx, func(sid string) Command { return switchToFrameCmd(sid, el.ref()) })
}

// SwitchToParentFrame switches the current browsing context to the parent
// of the current frame.
func (s *Session) SwitchToParentFrame(ctx context.Context) error {
	return s.doVoid(ctx, switchToParentFrameCmd)
}

// SwitchToDefaultContent switches the current browsing context back to the
// top-level document.
func (s *Session) SwitchToDefaultContent(ctx context.Context) error {
	return s.doVoid(ctx, func(sid string) Command { return switchToFrameCmd(sid, nil) })
}

// Timeouts.

// GetTimeouts returns the session's current timeout configuration.
func (s *Session) GetTimeouts(ctx context.Context) (Timeouts, error) {
	return do[Timeouts](ctx, s, getTimeoutsCmd)
}

// SetTimeouts updates the session's timeout configuration. Categories not
// set in t are left unchanged.
func (s *Session) SetTimeouts(ctx context.Context, t Timeouts) error {
	return s.doVoid(ctx, func(sid string) Command { return setTimeoutsCmd(sid, t) })
}

// SetImplicitWait sets how long the remote end polls when locating
// elements, leaving the other timeout categories unchanged.
func (s *Session) SetImplicitWait(ctx context.Context, d time.Duration) error {
	return s.SetTimeouts(ctx, Timeouts{Implicit: Millis(d)})
}

// SetScriptTimeout sets how long injected scripts may run, leaving the
// other timeout categories unchanged.
func (s *Session) SetScriptTimeout(ctx context.Context, d time.Duration) error {
	return s.SetTimeouts(ctx, Timeouts{Script: Millis(d)})
}

// SetPageLoadTimeout sets how long navigation may take, leaving the other
// timeout categories unchanged.
func (s *Session) SetPageLoadTimeout(ctx context.Context, d time.Duration) error {
	return s.SetTimeouts(ctx, Timeouts{PageLoad: Millis(d)})
}

// Elements.

// FindElement locates the first element matching the locator, starting
// from the document root.
func (s *Session) FindElement(ctx context.Context, by By) (*Element, error) {
	if !by.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, by.Using)
	}
	sid, err := s.sid()
	if err != nil {
		return nil, err
	}
	cmd := findElementCmd(sid, by)
	return s.element(ctx, sid, cmd)
}

// FindElements locates every element matching the locator, starting from
// the document root. No match is a successful empty result, not an error.
func (s *Session) FindElements(ctx context.Context, by By) ([]*Element, error) {
	if !by.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, by.Using)
	}
	sid, err := s.sid()
	if err != nil {
		return nil, err
	}
	cmd := findElementsCmd(sid, by)
	return s.elements(ctx, sid, cmd)
}

// ActiveElement returns the element that currently has focus.
func (s *Session) ActiveElement(ctx context.Context) (*Element, error) {
	sid, err := s.sid()
	if err != nil {
		return nil, err
	}
	return s.element(ctx, sid, getActiveElementCmd(sid))
}

// element dispatches cmd and wraps the returned element reference in a
// handle bound to this session's id and transport.
func (s *Session) element(ctx context.Context, sid string, cmd Command) (*Element, error) {
	value, err := s.elementValue(ctx, cmd)
	if err != nil {
		return nil, err
	}
	id, err := unwrapElementID(cmd, value)
	if err != nil {
		return nil, err
	}
	return &Element{id: id, sessionID: sid, conn: s.conn}, nil
}

// elements is the list form of element.
func (s *Session) elements(ctx context.Context, sid string, cmd Command) ([]*Element, error) {
	value, err := s.elementValue(ctx, cmd)
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
		els[i] = &Element{id: id, sessionID: sid, conn: s.conn}
	}
	return els, nil
}

func (s *Session) elementValue(ctx context.Context, cmd Command) (json.RawMessage, error) {
	raw, err := s.conn.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return unwrap[json.RawMessage](cmd, raw)
}

// Alerts.

// AcceptAlert accepts the currently displayed dialog.
func (s *Session) AcceptAlert(ctx context.Context) error {
	return s.doVoid(ctx, acceptAlertCmd)
}

// DismissAlert dismisses the currently displayed dialog.
func (s *Session) DismissAlert(ctx context.Context) error {
	return s.doVoid(ctx, dismissAlertCmd)
}

// AlertText returns the message of the currently displayed dialog.
func (s *Session) AlertText(ctx context.Context) (string, error) {
	return do[string](ctx, s, getAlertTextCmd)
}

// SendAlertText types text into the currently displayed prompt.
func (s *Session) SendAlertText(ctx context.Context, text string) error {
	return s.doVoid(ctx, func(sid string) Command { return sendAlertTextCmd(sid, text) })
}

// Chain starts a fresh, empty action chain scoped to this session. Each
// chain accumulates its own input steps; unrelated chains share no state.
func (s *Session) Chain() *ActionChain {
	return &ActionChain{session: s}
}
