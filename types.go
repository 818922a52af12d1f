package webdriver

import (
	"time"

	"golang.org/x/exp/slices"
)

// Capabilities describes the features requested from, or negotiated by, a
// WebDriver remote end.
type Capabilities map[string]interface{}

// Set sets a capability and returns the receiver, for chaining.
func (c Capabilities) Set(name string, value interface{}) Capabilities {
	c[name] = value
	return c
}

// String returns the named capability as a string, or "" when absent or of
// another type.
func (c Capabilities) String(name string) string {
	s, _ := c[name].(string)
	return s
}

// newSessionRequest is the new session request body. Both the W3C
// capabilities object and the legacy desiredCapabilities field are sent, so
// that older remote ends still negotiate.
type newSessionRequest struct {
	Capabilities struct {
		AlwaysMatch Capabilities   `json:"alwaysMatch"`
		FirstMatch  []Capabilities `json:"firstMatch,omitempty"`
	} `json:"capabilities"`
	Desired Capabilities `json:"desiredCapabilities,omitempty"`
}

// WindowHandle identifies a top-level browsing context within a session.
type WindowHandle string

// Rect is a window or element rectangle. Element rectangles use
// fractional CSS pixels, so all fields are floats.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Cookie is the protocol representation of an HTTP cookie. Optional
// attributes round-trip through JSON without loss: unset fields are
// omitted on the wire.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Path     string `json:"path,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	Expiry   uint64 `json:"expiry,omitempty"`
	SameSite string `json:"sameSite,omitempty"`
}

// Timeouts is the session timeout configuration. A nil field leaves the
// corresponding category unchanged when set, so a partial configuration
// updates only the categories it names. All values are milliseconds.
type Timeouts struct {
	Script   *int64 `json:"script,omitempty"`
	PageLoad *int64 `json:"pageLoad,omitempty"`
	Implicit *int64 `json:"implicit,omitempty"`
}

// Millis converts a duration into the millisecond form used by Timeouts.
func Millis(d time.Duration) *int64 {
	ms := d.Milliseconds()
	return &ms
}

// Status reports whether a remote end is ready to create new sessions.
type Status struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

// By locates elements on a page. Use the By* constructors; the protocol
// accepts only the strategies they produce.
type By struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// ByCSSSelector locates elements matching a CSS selector.
func ByCSSSelector(sel string) By {
	return By{Using: "css selector", Value: sel}
}

// ByLinkText locates anchor elements whose visible text equals the value.
func ByLinkText(text string) By {
	return By{Using: "link text", Value: text}
}

// ByPartialLinkText locates anchor elements whose visible text contains
// the value.
func ByPartialLinkText(text string) By {
	return By{Using: "partial link text", Value: text}
}

// ByTagName locates elements by tag name.
func ByTagName(name string) By {
	return By{Using: "tag name", Value: name}
}

// ByXPath locates elements matching an XPath expression.
func ByXPath(expr string) By {
	return By{Using: "xpath", Value: expr}
}

var locatorStrategies = []string{
	"css selector",
	"link text",
	"partial link text",
	"tag name",
	"xpath",
}

// valid reports whether the locator uses a protocol-defined strategy.
func (by By) valid() bool {
	return slices.Contains(locatorStrategies, by.Using)
}
