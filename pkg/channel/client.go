package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// Client is the display-process side of a connection.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu       sync.Mutex
	pending  map[string]chan Envelope
	handlers map[string][]func(json.RawMessage)

	done chan struct{}
	err  error
}

// Dial connects to the websocket at rawURL as windowID.
func Dial(ctx context.Context, rawURL, windowID string) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errutils.Wrapf(err, "invalid channel url %s", rawURL)
	}
	if windowID != "" {
		q := u.Query()
		q.Set("window", windowID)
		u.RawQuery = q.Encode()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to connect to %s", u.Redacted())
	}
	c := &Client{
		conn:     conn,
		pending:  make(map[string]chan Envelope),
		handlers: make(map[string][]func(json.RawMessage)),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// On registers fn for pushed events named event. Handlers run on the read goroutine.
func (c *Client) On(event string, fn func(payload json.RawMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

// Invoke sends in on channel and decodes the response into out. out may be nil.
func (c *Client) Invoke(ctx context.Context, channel string, in, out interface{}) error {
	var payload json.RawMessage
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errutils.Wrapf(err, "failed to encode request for %s", channel)
		}
		payload = raw
	}
	req := newRequest(channel, payload)

	wait := make(chan Envelope, 1)
	c.mu.Lock()
	c.pending[req.ID] = wait
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %v", errutils.ErrChannelClosed, err)
	}

	select {
	case resp := <-wait:
		if resp.Error != "" {
			return &RemoteError{Channel: channel, Message: resp.Error, Code: resp.Code}
		}
		if out == nil || len(resp.Payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Payload, out); err != nil {
			return errutils.Wrapf(err, "failed to decode response of %s", channel)
		}
		return nil
	case <-c.done:
		return c.closedErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close ends the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Client) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return fmt.Errorf("%w: %v", errutils.ErrChannelClosed, c.err)
	}
	return errutils.ErrChannelClosed
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logger.Warn("Ignoring malformed message", logger.Fields{"error": err.Error()})
			continue
		}

		switch env.Type {
		case TypeResponse:
			c.mu.Lock()
			wait, ok := c.pending[env.ID]
			c.mu.Unlock()
			if ok {
				wait <- env
			}
		case TypeEvent:
			c.mu.Lock()
			handlers := append([]func(json.RawMessage){}, c.handlers[env.Channel]...)
			c.mu.Unlock()
			for _, fn := range handlers {
				fn(env.Payload)
			}
		}
	}
}
