package webdriver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// BiDi is the bidirectional websocket channel of a session negotiated
// with the webSocketUrl capability. It carries request/response commands
// and server-initiated events over one connection.
//
// Send and ReadEvent serialize on the connection: events observed while
// waiting for a command response are buffered and handed out by ReadEvent
// in arrival order, and a blocked ReadEvent holds the connection until a
// frame arrives.
type BiDi struct {
	conn net.Conn
	rw   io.ReadWriter

	mu      sync.Mutex
	nextID  int64
	pending []BiDiEvent
}

// BiDiEvent is a server-initiated event received on a BiDi channel.
type BiDiEvent struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// bidiMessage is the wire shape of every BiDi frame.
type bidiMessage struct {
	ID      int64           `json:"id,omitempty"`
	Type    string          `json:"type,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  interface{}     `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// BiDi dials the session's websocket channel. The session must have been
// created with the webSocketUrl capability set to true; otherwise the
// negotiated capabilities carry no websocket URL and ErrNoWebSocketURL is
// returned.
func (s *Session) BiDi(ctx context.Context) (*BiDi, error) {
	urlstr := s.caps.String("webSocketUrl")
	if urlstr == "" {
		return nil, ErrNoWebSocketURL
	}
	return DialBiDi(ctx, urlstr)
}

// DialBiDi connects to a BiDi websocket endpoint directly.
func DialBiDi(ctx context.Context, urlstr string) (*BiDi, error) {
	conn, br, _, err := ws.Dial(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", urlstr, err)
	}
	var r io.Reader = conn
	if br != nil {
		r = br
	}
	return &BiDi{
		conn: conn,
		rw: struct {
			io.Reader
			io.Writer
		}{r, conn},
	}, nil
}

// Send issues a BiDi command and waits for its response, returning the
// raw result. Events arriving before the response are buffered for
// ReadEvent.
func (b *BiDi) Send(method string, params interface{}) (json.RawMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	buf, err := json.Marshal(bidiMessage{ID: id, Method: method, Params: params})
	if err != nil {
		return nil, err
	}
	if err := wsutil.WriteClientText(b.rw, buf); err != nil {
		return nil, err
	}

	for {
		msg, err := b.read()
		if err != nil {
			return nil, err
		}
		if msg.ID != id {
			continue
		}
		if msg.Type == "error" || msg.Error != "" {
			return nil, &ProtocolError{Code: Error(msg.Error), Message: msg.Message}
		}
		return msg.Result, nil
	}
}

// Subscribe registers for the named event methods.
func (b *BiDi) Subscribe(events ...string) error {
	_, err := b.Send("session.subscribe", map[string][]string{"events": events})
	return err
}

// Unsubscribe removes registrations for the named event methods.
func (b *BiDi) Unsubscribe(events ...string) error {
	_, err := b.Send("session.unsubscribe", map[string][]string{"events": events})
	return err
}

// ReadEvent returns the next event on the channel, blocking until one
// arrives. Events buffered during Send calls are returned first.
func (b *BiDi) ReadEvent() (BiDiEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) > 0 {
		ev := b.pending[0]
		b.pending = b.pending[1:]
		return ev, nil
	}
	for {
		msg, err := b.readRaw()
		if err != nil {
			return BiDiEvent{}, err
		}
		if msg.ID == 0 && msg.Method != "" {
			return BiDiEvent{Method: msg.Method, Params: msg.rawParams}, nil
		}
	}
}

// Close closes the websocket connection.
func (b *BiDi) Close() error {
	return b.conn.Close()
}

// inMessage mirrors bidiMessage for decoding, with raw params.
type inMessage struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Method    string          `json:"method"`
	rawParams json.RawMessage
	Result    json.RawMessage `json:"result"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
}

// read returns the next non-event frame, buffering events for ReadEvent.
// Callers hold b.mu.
func (b *BiDi) read() (*inMessage, error) {
	for {
		msg, err := b.readRaw()
		if err != nil {
			return nil, err
		}
		if msg.ID == 0 && msg.Method != "" {
			b.pending = append(b.pending, BiDiEvent{Method: msg.Method, Params: msg.rawParams})
			continue
		}
		return msg, nil
	}
}

func (b *BiDi) readRaw() (*inMessage, error) {
	buf, err := wsutil.ReadServerText(b.rw)
	if err != nil {
		return nil, err
	}
	var msg struct {
		ID      int64           `json:"id"`
		Type    string          `json:"type"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		Result  json.RawMessage `json:"result"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(buf, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return &inMessage{
		ID:        msg.ID,
		Type:      msg.Type,
		Method:    msg.Method,
		rawParams: msg.Params,
		Result:    msg.Result,
		Error:     msg.Error,
		Message:   msg.Message,
	}, nil
}
