package webdriver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mailru/easyjson"
)

// DefaultTimeout is the default HTTP round-trip timeout for a Conn.
var DefaultTimeout = 60 * time.Second

// Transport executes WebDriver commands against a remote end and returns
// the raw response envelope. Implementations are safe for concurrent use;
// the remote end is the sole arbiter of ordering between concurrently
// issued commands on one session.
type Transport interface {
	Execute(ctx context.Context, cmd Command) (json.RawMessage, error)
}

// Conn is an HTTP Transport for a WebDriver remote end.
type Conn struct {
	base    string
	cl      *http.Client
	headers http.Header
	logf    func(string, ...interface{})
}

// NewConn creates a Conn for the remote end at urlstr.
func NewConn(urlstr string, opts ...ConnOption) *Conn {
	c := &Conn{
		base:    strings.TrimRight(urlstr, "/"),
		cl:      &http.Client{Timeout: DefaultTimeout},
		headers: make(http.Header),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ConnOption is a Conn configuration option.
type ConnOption func(*Conn)

// WithHTTPClient is a ConnOption to use the provided http.Client for all
// requests.
func WithHTTPClient(cl *http.Client) ConnOption {
	return func(c *Conn) { c.cl = cl }
}

// WithHeader is a ConnOption to send an additional header with every
// request.
func WithHeader(name, value string) ConnOption {
	return func(c *Conn) { c.headers.Set(name, value) }
}

// WithConnLogf is a ConnOption to log each request and response status
// through the provided func.
func WithConnLogf(f func(string, ...interface{})) ConnOption {
	return func(c *Conn) { c.logf = f }
}

// Execute satisfies the Transport interface, performing the command's HTTP
// verb against its path and returning the raw response envelope.
//
// A non-2xx status whose body carries a well-formed error value is
// surfaced as a *ProtocolError; any other failure is a transport error.
func (c *Conn) Execute(ctx context.Context, cmd Command) (json.RawMessage, error) {
	var body io.Reader
	if b := cmd.Body(); b != nil {
		buf, err := marshal(b)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cmd.Method(), c.base+cmd.Path(), body)
	if err != nil {
		return nil, err
	}
	for name, vals := range c.headers {
		req.Header[name] = vals
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if c.logf != nil {
		c.logf("-> %s %s", cmd.Method(), cmd.Path())
	}

	res, err := c.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if c.logf != nil {
		c.logf("<- %d %s %s", res.StatusCode, cmd.Method(), cmd.Path())
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if perr := protocolError(buf); perr != nil {
			return nil, perr
		}
		return nil, fmt.Errorf("server returned %s: %s", res.Status, bytes.TrimSpace(buf))
	}
	return buf, nil
}

// Status queries the remote end's readiness to create new sessions.
func (c *Conn) Status(ctx context.Context) (*Status, error) {
	cmd := statusCmd()
	raw, err := c.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	st, err := unwrap[Status](cmd, raw)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// marshal encodes a request body, preferring the easyjson fast path when
// the payload implements it.
func marshal(v interface{}) ([]byte, error) {
	if m, ok := v.(easyjson.Marshaler); ok {
		return easyjson.Marshal(m)
	}
	return json.Marshal(v)
}

// protocolError decodes buf as an error envelope, returning nil when buf
// does not carry a server-reported error.
func protocolError(buf []byte) *ProtocolError {
	var env struct {
		Value ProtocolError `json:"value"`
	}
	if err := json.Unmarshal(buf, &env); err != nil || env.Value.Code == "" {
		return nil
	}
	return &env.Value
}
