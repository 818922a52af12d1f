package webdriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/slices"
)

// mockDriver is an httptest-backed WebDriver remote end. It records every
// request and answers with canned envelopes: the new session handshake and
// session deletion are handled built-in, everything else is delegated to
// the respond func, defaulting to a null value.
type mockDriver struct {
	srv *httptest.Server

	// respond returns the status and body for a recorded request.
	respond func(method, path string, body []byte) (int, string)

	// newSessionBody overrides the handshake response when non-empty.
	newSessionBody string

	mu   sync.Mutex
	reqs []mockRequest
}

type mockRequest struct {
	method string
	path   string
	body   []byte
}

func newMockDriver(t *testing.T) *mockDriver {
	t.Helper()
	d := &mockDriver{}
	d.srv = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.srv.Close)
	return d
}

func (d *mockDriver) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	d.mu.Lock()
	d.reqs = append(d.reqs, mockRequest{method: r.Method, path: r.URL.Path, body: body})
	d.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == "POST" && r.URL.Path == "/session":
		resp := d.newSessionBody
		if resp == "" {
			resp = `{"value":{"sessionId":"sid-1","capabilities":{"browserName":"mock"}}}`
		}
		fmt.Fprint(w, resp)
	case r.Method == "DELETE" && strings.Count(r.URL.Path, "/") == 2 && strings.HasPrefix(r.URL.Path, "/session/"):
		fmt.Fprint(w, `{"value":null}`)
	default:
		status, resp := http.StatusOK, `{"value":null}`
		if d.respond != nil {
			status, resp = d.respond(r.Method, r.URL.Path, body)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, resp)
	}
}

// requests returns the recorded requests after the handshake.
func (d *mockDriver) requests() []mockRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []mockRequest
	for _, r := range d.reqs {
		if r.method == "POST" && r.path == "/session" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// last returns the most recent recorded request.
func (d *mockDriver) last(t *testing.T) mockRequest {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.reqs) == 0 {
		t.Fatal("no requests recorded")
	}
	return d.reqs[len(d.reqs)-1]
}

func newTestSession(t *testing.T, d *mockDriver, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithErrorf(func(string, ...interface{}) {})}, opts...)
	s, err := New(context.Background(), d.srv.URL, Capabilities{"browserName": "mock"}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Quit(context.Background()) })
	return s
}

func TestNewSessionTopLevelID(t *testing.T) {
	d := newMockDriver(t)
	d.newSessionBody = `{"sessionId":"top","value":{"sessionId":"nested","capabilities":{"browserName":"firefox"}}}`
	s := newTestSession(t, d)
	if s.ID() != "top" {
		t.Errorf("ID = %q, want top", s.ID())
	}
	if got := s.Capabilities().String("browserName"); got != "firefox" {
		t.Errorf("browserName = %q, want firefox", got)
	}
}

func TestNewSessionNestedID(t *testing.T) {
	d := newMockDriver(t)
	d.newSessionBody = `{"value":{"sessionId":"nested","capabilities":{}}}`
	s := newTestSession(t, d)
	if s.ID() != "nested" {
		t.Errorf("ID = %q, want nested", s.ID())
	}
}

func TestNewSessionNoID(t *testing.T) {
	d := newMockDriver(t)
	d.newSessionBody = `{"value":{"capabilities":{}}}`
	_, err := New(context.Background(), d.srv.URL, Capabilities{})
	if !errors.Is(err, ErrNoSessionID) {
		t.Fatalf("New error = %v, want ErrNoSessionID", err)
	}
}

func TestNewSessionServerError(t *testing.T) {
	d := newMockDriver(t)
	d.newSessionBody = `{"value":{"error":"session not created","message":"no browser"}}`
	_, err := New(context.Background(), d.srv.URL, Capabilities{})
	if !errors.Is(err, ErrSessionNotCreated) {
		t.Fatalf("New error = %v, want ErrSessionNotCreated", err)
	}
}

func TestNavigate(t *testing.T) {
	d := newMockDriver(t)
	s := newTestSession(t, d)
	if err := s.Navigate(context.Background(), "https://example.com/"); err != nil {
		t.Fatal(err)
	}
	req := d.last(t)
	if req.method != "POST" || req.path != "/session/sid-1/url" {
		t.Errorf("request = %s %s", req.method, req.path)
	}
	var body map[string]string
	if err := json.Unmarshal(req.body, &body); err != nil {
		t.Fatal(err)
	}
	if body["url"] != "https://example.com/" {
		t.Errorf("url = %q", body["url"])
	}
}

func TestTitleAndURL(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(method, path string, _ []byte) (int, string) {
		switch path {
		case "/session/sid-1/title":
			return 200, `{"value":"Example Domain"}`
		case "/session/sid-1/url":
			return 200, `{"value":"https://example.com/"}`
		}
		return 200, `{"value":null}`
	}
	s := newTestSession(t, d)
	ctx := context.Background()

	title, err := s.Title(ctx)
	if err != nil || title != "Example Domain" {
		t.Errorf("Title = %q, %v", title, err)
	}
	url, err := s.CurrentURL(ctx)
	if err != nil || url != "https://example.com/" {
		t.Errorf("CurrentURL = %q, %v", url, err)
	}
}

func TestWindowHandles(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(method, path string, _ []byte) (int, string) {
		switch {
		case path == "/session/sid-1/window/handles":
			return 200, `{"value":["w1","w2"]}`
		case path == "/session/sid-1/window" && method == "GET":
			return 200, `{"value":"w1"}`
		case path == "/session/sid-1/window/new":
			return 200, `{"value":{"handle":"w3","type":"tab"}}`
		}
		return 200, `{"value":null}`
	}
	s := newTestSession(t, d)
	ctx := context.Background()

	handles, err := s.WindowHandles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(handles, []WindowHandle{"w1", "w2"}) {
		t.Errorf("handles = %v", handles)
	}
	cur, err := s.CurrentWindowHandle(ctx)
	if err != nil || cur != "w1" {
		t.Errorf("current = %q, %v", cur, err)
	}
	nw, err := s.NewWindow(ctx, "tab")
	if err != nil || nw != "w3" {
		t.Errorf("new window = %q, %v", nw, err)
	}
	if err := s.SwitchToWindow(ctx, nw); err != nil {
		t.Fatal(err)
	}
	req := d.last(t)
	if req.path != "/session/sid-1/window" || !strings.Contains(string(req.body), `"w3"`) {
		t.Errorf("switch request = %s %s", req.path, req.body)
	}
}

func TestWindowRect(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(method, path string, _ []byte) (int, string) {
		if method == "GET" && path == "/session/sid-1/window/rect" {
			return 200, `{"value":{"x":10,"y":20,"width":800,"height":600}}`
		}
		return 200, `{"value":null}`
	}
	s := newTestSession(t, d)
	ctx := context.Background()

	r, err := s.WindowRect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if r != (Rect{X: 10, Y: 20, Width: 800, Height: 600}) {
		t.Errorf("rect = %+v", r)
	}
	if err := s.SetWindowRect(ctx, r); err != nil {
		t.Fatal(err)
	}
	for _, f := range []func(context.Context) error{
		s.MaximizeWindow, s.MinimizeWindow, s.FullscreenWindow,
	} {
		if err := f(ctx); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSetTimeoutsPartial(t *testing.T) {
	d := newMockDriver(t)
	s := newTestSession(t, d)
	if err := s.SetImplicitWait(context.Background(), 30*time.Second); err != nil {
		t.Fatal(err)
	}
	req := d.last(t)
	if req.path != "/session/sid-1/timeouts" {
		t.Fatalf("path = %s", req.path)
	}
	var body map[string]int64
	if err := json.Unmarshal(req.body, &body); err != nil {
		t.Fatal(err)
	}
	if len(body) != 1 || body["implicit"] != 30000 {
		t.Errorf("timeouts body = %s, want only implicit=30000", req.body)
	}
}

func TestGetTimeouts(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(_, path string, _ []byte) (int, string) {
		if path == "/session/sid-1/timeouts" {
			return 200, `{"value":{"script":30000,"pageLoad":300000,"implicit":0}}`
		}
		return 200, `{"value":null}`
	}
	s := newTestSession(t, d)
	got, err := s.GetTimeouts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Script == nil || *got.Script != 30000 {
		t.Errorf("script = %v", got.Script)
	}
	if got.Implicit == nil || *got.Implicit != 0 {
		t.Errorf("implicit = %v", got.Implicit)
	}
}

func TestCookies(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(method, path string, _ []byte) (int, string) {
		switch {
		case method == "GET" && path == "/session/sid-1/cookie":
			return 200, `{"value":[{"name":"a","value":"1"},{"name":"b","value":"2","path":"/x","domain":"example.com","secure":true,"httpOnly":true,"expiry":1893456000,"sameSite":"Lax"}]}`
		case method == "GET" && path == "/session/sid-1/cookie/b":
			return 200, `{"value":{"name":"b","value":"2","path":"/x","secure":true}}`
		}
		return 200, `{"value":null}`
	}
	s := newTestSession(t, d)
	ctx := context.Background()

	cookies, err := s.GetCookies(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 2 {
		t.Fatalf("cookies = %v", cookies)
	}
	want := Cookie{
		Name: "b", Value: "2", Path: "/x", Domain: "example.com",
		Secure: true, HTTPOnly: true, Expiry: 1893456000, SameSite: "Lax",
	}
	if cookies[1] != want {
		t.Errorf("cookie = %+v, want %+v", cookies[1], want)
	}

	c, err := s.GetCookie(ctx, "b")
	if err != nil || c.Name != "b" || !c.Secure {
		t.Errorf("GetCookie = %+v, %v", c, err)
	}

	if err := s.AddCookie(ctx, Cookie{Name: "c", Value: "3"}); err != nil {
		t.Fatal(err)
	}
	req := d.last(t)
	var body map[string]Cookie
	if err := json.Unmarshal(req.body, &body); err != nil {
		t.Fatal(err)
	}
	if body["cookie"].Name != "c" {
		t.Errorf("add cookie body = %s", req.body)
	}
	// Optional attributes left unset must stay off the wire.
	if strings.Contains(string(req.body), "expiry") || strings.Contains(string(req.body), "domain") {
		t.Errorf("unset optional fields serialized: %s", req.body)
	}

	if err := s.DeleteCookie(ctx, "c"); err != nil {
		t.Fatal(err)
	}
	if req := d.last(t); req.method != "DELETE" || req.path != "/session/sid-1/cookie/c" {
		t.Errorf("delete request = %s %s", req.method, req.path)
	}
	if err := s.DeleteAllCookies(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteScript(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(_, path string, _ []byte) (int, string) {
		if path == "/session/sid-1/execute/sync" {
			return 200, `{"value":42}`
		}
		return 200, `{"value":"done"}`
	}
	s := newTestSession(t, d)
	ctx := context.Background()

	v, err := s.ExecuteScript(ctx, "return 42;", nil)
	if err != nil || string(v) != "42" {
		t.Errorf("ExecuteScript = %s, %v", v, err)
	}
	req := d.last(t)
	// A nil args slice still serializes as an empty array.
	if !strings.Contains(string(req.body), `"args":[]`) {
		t.Errorf("script body = %s", req.body)
	}

	v, err = s.ExecuteAsyncScript(ctx, "arguments[0]('done');", []interface{}{1, "x"})
	if err != nil || string(v) != `"done"` {
		t.Errorf("ExecuteAsyncScript = %s, %v", v, err)
	}
}

func TestQuitIdempotent(t *testing.T) {
	d := newMockDriver(t)
	s := newTestSession(t, d)
	ctx := context.Background()

	if err := s.Quit(ctx); err != nil {
		t.Fatal(err)
	}
	if s.ID() != "" {
		t.Errorf("ID after Quit = %q", s.ID())
	}
	before := len(d.requests())
	if err := s.Quit(ctx); err != nil {
		t.Fatalf("second Quit: %v", err)
	}
	if got := len(d.requests()); got != before {
		t.Errorf("second Quit issued a request")
	}
	if _, err := s.Title(ctx); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Title after Quit = %v, want ErrSessionClosed", err)
	}
}

// failingTransport always fails, for exercising the disposal path.
type failingTransport struct{}

func (failingTransport) Execute(context.Context, Command) (json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func TestFinalizeSwallowsFailure(t *testing.T) {
	reported := make(chan string, 1)
	s := &Session{
		conn: failingTransport{},
		errf: func(format string, v ...interface{}) {
			select {
			case reported <- fmt.Sprintf(format, v...):
			default:
			}
		},
		id: "sid-gone",
	}
	s.finalize()

	select {
	case msg := <-reported:
		if !strings.Contains(msg, "sid-gone") {
			t.Errorf("report = %q", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup failure never reported")
	}
	if s.ID() != "" {
		t.Errorf("ID after finalize = %q", s.ID())
	}
	// A second disposal is a no-op.
	s.finalize()
}

func TestAlerts(t *testing.T) {
	d := newMockDriver(t)
	d.respond = func(method, path string, _ []byte) (int, string) {
		if method == "GET" && path == "/session/sid-1/alert/text" {
			return 200, `{"value":"sure?"}`
		}
		return 200, `{"value":null}`
	}
	s := newTestSession(t, d)
	ctx := context.Background()

	text, err := s.AlertText(ctx)
	if err != nil || text != "sure?" {
		t.Errorf("AlertText = %q, %v", text, err)
	}
	if err := s.SendAlertText(ctx, "yes"); err != nil {
		t.Fatal(err)
	}
	if err := s.AcceptAlert(ctx); err != nil {
		t.Fatal(err)
	}
	if req := d.last(t); req.path != "/session/sid-1/alert/accept" {
		t.Errorf("accept path = %s", req.path)
	}
	if err := s.DismissAlert(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestFrames(t *testing.T) {
	d := newMockDriver(t)
	s := newTestSession(t, d)
	ctx := context.Background()

	if err := s.SwitchToFrameIndex(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if req := d.last(t); !strings.Contains(string(req.body), `"id":2`) {
		t.Errorf("frame body = %s", req.body)
	}
	if err := s.SwitchToDefaultContent(ctx); err != nil {
		t.Fatal(err)
	}
	if req := d.last(t); !strings.Contains(string(req.body), `"id":null`) {
		t.Errorf("default content body = %s", req.body)
	}
	if err := s.SwitchToParentFrame(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestHistory(t *testing.T) {
	d := newMockDriver(t)
	s := newTestSession(t, d)
	ctx := context.Background()

	for path, f := range map[string]func(context.Context) error{
		"/session/sid-1/back":    s.Back,
		"/session/sid-1/forward": s.Forward,
		"/session/sid-1/refresh": s.Refresh,
	} {
		if err := f(ctx); err != nil {
			t.Fatal(err)
		}
		if req := d.last(t); req.method != "POST" || req.path != path {
			t.Errorf("request = %s %s, want POST %s", req.method, req.path, path)
		}
	}
}
