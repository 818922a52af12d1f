package webdriver

import (
	"context"
	"time"

	"github.com/go-webdriver/webdriver/keys"
)

// Mouse buttons for pointer actions.
const (
	LeftButton   = 0
	MiddleButton = 1
	RightButton  = 2
)

// step is one input step within an action source. Steps carry only the
// fields their type defines, so they are built as small JSON objects.
type step map[string]interface{}

// actionSource is one input device's track of steps within an action
// sequence.
type actionSource struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Actions    []step                 `json:"actions"`
}

func keyDownStep(r rune) step { return step{"type": "keyDown", "value": string(r)} }
func keyUpStep(r rune) step   { return step{"type": "keyUp", "value": string(r)} }
func pauseStep(ms int64) step { return step{"type": "pause", "duration": ms} }

func pointerDownStep(button int) step {
	return step{"type": "pointerDown", "button": button}
}
func pointerUpStep(button int) step {
	return step{"type": "pointerUp", "button": button}
}
func pointerMoveStep(x, y int, origin interface{}) step {
	return step{"type": "pointerMove", "duration": 0, "x": x, "y": y, "origin": origin}
}

// ActionChain accumulates a sequence of keyboard and pointer input steps
// scoped to one session and submits them as a single atomic action
// command, so compound gestures execute server-side as one sequence
// rather than as separate round trips.
//
// The two device tracks are kept in lockstep: every step on one track is
// padded with a pause on the other, preserving the order the steps were
// added in. Obtain a fresh chain from Session.Chain; chains retain no
// state across instances.
type ActionChain struct {
	session *Session
	key     []step
	ptr     []step
}

// addKey appends a keyboard step, padding the pointer track.
func (a *ActionChain) addKey(s step) *ActionChain {
	a.key = append(a.key, s)
	a.ptr = append(a.ptr, pauseStep(0))
	return a
}

// addPtr appends a pointer step, padding the keyboard track.
func (a *ActionChain) addPtr(s step) *ActionChain {
	a.ptr = append(a.ptr, s)
	a.key = append(a.key, pauseStep(0))
	return a
}

// KeyDown presses a key without releasing it.
func (a *ActionChain) KeyDown(k keys.Key) *ActionChain {
	return a.addKey(keyDownStep(k.Rune()))
}

// KeyUp releases a previously pressed key.
func (a *ActionChain) KeyUp(k keys.Key) *ActionChain {
	return a.addKey(keyUpStep(k.Rune()))
}

// SendKeys presses and releases each code point of the composed sequence
// in order.
func (a *ActionChain) SendKeys(t keys.Typing) *ActionChain {
	for _, r := range t.Runes() {
		a.addKey(keyDownStep(r))
		a.addKey(keyUpStep(r))
	}
	return a
}

// Pause inserts a pause of the given duration on both device tracks.
func (a *ActionChain) Pause(d time.Duration) *ActionChain {
	a.key = append(a.key, pauseStep(d.Milliseconds()))
	a.ptr = append(a.ptr, pauseStep(d.Milliseconds()))
	return a
}

// MoveTo moves the pointer to viewport coordinates.
func (a *ActionChain) MoveTo(x, y int) *ActionChain {
	return a.addPtr(pointerMoveStep(x, y, "viewport"))
}

// MoveBy moves the pointer relative to its current position.
func (a *ActionChain) MoveBy(dx, dy int) *ActionChain {
	return a.addPtr(pointerMoveStep(dx, dy, "pointer"))
}

// MoveToElement moves the pointer to the center of the element.
func (a *ActionChain) MoveToElement(el *Element) *ActionChain {
	return a.addPtr(pointerMoveStep(0, 0, el.ref()))
}

// Click presses and releases the left mouse button at the current pointer
// position.
func (a *ActionChain) Click() *ActionChain {
	a.addPtr(pointerDownStep(LeftButton))
	a.addPtr(pointerUpStep(LeftButton))
	return a
}

// ClickOn moves the pointer to the element and clicks it.
func (a *ActionChain) ClickOn(el *Element) *ActionChain {
	return a.MoveToElement(el).Click()
}

// DoubleClick clicks the left mouse button twice at the current pointer
// position.
func (a *ActionChain) DoubleClick() *ActionChain {
	return a.Click().Click()
}

// ContextClick presses and releases the right mouse button at the current
// pointer position.
func (a *ActionChain) ContextClick() *ActionChain {
	a.addPtr(pointerDownStep(RightButton))
	a.addPtr(pointerUpStep(RightButton))
	return a
}

// ClickAndHold presses the left mouse button without releasing it.
func (a *ActionChain) ClickAndHold() *ActionChain {
	return a.addPtr(pointerDownStep(LeftButton))
}

// Release releases the left mouse button.
func (a *ActionChain) Release() *ActionChain {
	return a.addPtr(pointerUpStep(LeftButton))
}

// DragAndDrop presses on the source element, moves to the target element,
// and releases.
func (a *ActionChain) DragAndDrop(source, target *Element) *ActionChain {
	return a.MoveToElement(source).ClickAndHold().MoveToElement(target).Release()
}

// Perform submits the accumulated steps as one atomic action command. The
// chain's steps are kept, so a chain may be performed again; use a fresh
// chain for an unrelated gesture.
func (a *ActionChain) Perform(ctx context.Context) error {
	sources := []actionSource{
		{
			Type:    "key",
			ID:      "default keyboard",
			Actions: a.key,
		},
		{
			Type:       "pointer",
			ID:         "default mouse",
			Parameters: map[string]interface{}{"pointerType": "mouse"},
			Actions:    a.ptr,
		},
	}
	return a.session.doVoid(ctx, func(sid string) Command {
		return performActionsCmd(sid, sources)
	})
}

// ReleaseActions releases all keys and buttons currently held by previous
// action commands and clears the remote end's input state.
func (s *Session) ReleaseActions(ctx context.Context) error {
	return s.doVoid(ctx, releaseActionsCmd)
}
