package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/metrics"
)

type greetRequest struct {
	Name string `json:"name"`
}

type greetResponse struct {
	Greeting string `json:"greeting"`
	Peer     string `json:"peer"`
}

type testServer struct {
	hub     *Hub
	server  *httptest.Server
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	router := NewRouter()
	HandleTyped(router, "greet", func(_ context.Context, peer *Peer, in greetRequest) (greetResponse, error) {
		if in.Name == "" {
			return greetResponse{}, fmt.Errorf("name is required: %w", errutils.ErrValidation)
		}
		return greetResponse{Greeting: "hello " + in.Name, Peer: peer.ID()}, nil
	})
	router.Handle("missing-app", func(context.Context, *Request) (interface{}, error) {
		return nil, errutils.ErrAppNotInstalledWithSpec("blinky", "official")
	})
	router.Handle("nothing", func(context.Context, *Request) (interface{}, error) {
		return nil, nil
	})

	m := metrics.New()
	hub := NewHub(router, m)
	srv := httptest.NewServer(NewHandler(hub, m))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return &testServer{hub: hub, server: srv, metrics: m}
}

func (s *testServer) url() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
}

func (s *testServer) dial(t *testing.T, windowID string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, s.url(), windowID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.Eventually(t, func() bool {
		_, ok := s.hub.Peer(windowID)
		return windowID == "" || ok
	}, time.Second, 10*time.Millisecond)
	return c
}

func TestInvoke(t *testing.T) {
	s := newTestServer(t)
	c := s.dial(t, "window-1")
	ctx := context.Background()

	var out greetResponse
	require.NoError(t, c.Invoke(ctx, "greet", greetRequest{Name: "nrf"}, &out))
	assert.Equal(t, greetResponse{Greeting: "hello nrf", Peer: "window-1"}, out)

	require.NoError(t, c.Invoke(ctx, "nothing", nil, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.ChannelRequests.WithLabelValues("greet", "success")))
}

func TestInvoke_Errors(t *testing.T) {
	tests := []struct {
		name      string
		channel   string
		in        interface{}
		expectErr error
	}{
		{name: "handler error", channel: "greet", in: greetRequest{}, expectErr: errutils.ErrValidation},
		{name: "bad payload", channel: "greet", in: []int{1}, expectErr: errutils.ErrValidation},
		{name: "wrapped sentinel", channel: "missing-app", expectErr: errutils.ErrAppNotInstalled},
		{name: "unknown channel", channel: "nope", expectErr: errutils.ErrUnknownChannel},
	}

	s := newTestServer(t)
	c := s.dial(t, "window-1")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Invoke(context.Background(), tt.channel, tt.in, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectErr)

			var remote *RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tt.channel, remote.Channel)
		})
	}
}

func TestEvents(t *testing.T) {
	s := newTestServer(t)
	a := s.dial(t, "a")
	b := s.dial(t, "b")

	got := make(chan string, 8)
	record := func(name string) func(json.RawMessage) {
		return func(payload json.RawMessage) { got <- name + " " + string(payload) }
	}
	a.On("progress", record("a"))
	b.On("progress", record("b"))
	a.On("port", record("a"))

	s.hub.Broadcast("progress", map[string]float64{"progressFraction": 0.5})
	received := []string{<-got, <-got}
	assert.ElementsMatch(t, []string{`a {"progressFraction":0.5}`, `b {"progressFraction":0.5}`}, received)

	require.NoError(t, s.hub.SendTo("a", "port", "COM3"))
	assert.Equal(t, `a "COM3"`, <-got)

	peer, ok := s.hub.Peer("a")
	require.True(t, ok)
	require.NoError(t, peer.Send("port", "/dev/ttyACM0", []byte("hi")))
	assert.Equal(t, `a ["/dev/ttyACM0","aGk="]`, <-got)

	assert.ErrorIs(t, s.hub.SendTo("ghost", "port", nil), errutils.ErrChannelClosed)
}

func TestPeerLifecycle(t *testing.T) {
	s := newTestServer(t)
	connected := make(chan string, 4)
	disconnected := make(chan string, 4)
	s.hub.OnConnect(func(p *Peer) { connected <- p.ID() })
	s.hub.OnDisconnect(func(p *Peer) { disconnected <- p.ID() })

	c := s.dial(t, "window-7")
	assert.Equal(t, "window-7", <-connected)
	assert.Equal(t, []string{"window-7"}, s.hub.Peers())
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(s.metrics.ChannelPeers) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())
	select {
	case id := <-disconnected:
		assert.Equal(t, "window-7", id)
	case <-time.After(5 * time.Second):
		t.Fatal("peer was not unregistered")
	}
	assert.Empty(t, s.hub.Peers())
}

func TestClient_ServerGone(t *testing.T) {
	s := newTestServer(t)
	c := s.dial(t, "window-1")

	s.hub.Close()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("client did not notice the closed connection")
	}
	err := c.Invoke(context.Background(), "greet", greetRequest{Name: "x"}, nil)
	assert.ErrorIs(t, err, errutils.ErrChannelClosed)
}

func TestHandler_Health(t *testing.T) {
	s := newTestServer(t)

	for path, expected := range map[string]string{"/healthz": "OK", "/metrics": "launchpad_"} {
		resp, err := http.Get(s.server.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), expected)
	}
}

func TestRouter_Channels(t *testing.T) {
	r := NewRouter()
	r.Handle("b", nil)
	r.Handle("a", nil)
	assert.Equal(t, []string{"a", "b"}, r.Channels())
}
