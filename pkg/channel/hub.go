package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 16 << 20
	sendBuffer     = 256
)

// Hub tracks connected peers and dispatches their requests to a router.
type Hub struct {
	router   *Router
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.RWMutex
	peers        map[string]*Peer
	onConnect    []func(*Peer)
	onDisconnect []func(*Peer)
}

// NewHub creates a hub answering requests with router.
func NewHub(router *Router, m *metrics.Metrics) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		router:  router,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		ctx:    ctx,
		cancel: cancel,
		peers:  make(map[string]*Peer),
	}
}

// Router returns the hub's router.
func (h *Hub) Router() *Router {
	return h.router
}

// OnConnect registers fn to run when a peer connects.
func (h *Hub) OnConnect(fn func(*Peer)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConnect = append(h.onConnect, fn)
}

// OnDisconnect registers fn to run when a peer goes away.
func (h *Hub) OnDisconnect(fn func(*Peer)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDisconnect = append(h.onDisconnect, fn)
}

// ServeWS upgrades the request and serves the connection until it closes. The peer id is
// taken from the window query parameter; connections without one get a random id.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", logger.Fields{"error": err.Error()})
		return
	}

	id := r.URL.Query().Get("window")
	if id == "" {
		id = uuid.NewString()
	}
	peer := newPeer(id, conn, h)
	h.register(peer)

	go peer.writeLoop()
	peer.readLoop()
}

func (h *Hub) register(p *Peer) {
	h.mu.Lock()
	previous := h.peers[p.id]
	h.peers[p.id] = p
	count := len(h.peers)
	hooks := append([]func(*Peer){}, h.onConnect...)
	h.mu.Unlock()

	if previous != nil {
		previous.close()
	}
	h.metrics.SetChannelPeers(count)
	logger.Debug("Peer connected", logger.Fields{"peer": p.id})
	for _, fn := range hooks {
		fn(p)
	}
}

func (h *Hub) unregister(p *Peer) {
	h.mu.Lock()
	current, ok := h.peers[p.id]
	if ok && current == p {
		delete(h.peers, p.id)
	}
	count := len(h.peers)
	hooks := append([]func(*Peer){}, h.onDisconnect...)
	h.mu.Unlock()

	if !ok || current != p {
		return
	}
	h.metrics.SetChannelPeers(count)
	logger.Debug("Peer disconnected", logger.Fields{"peer": p.id})
	for _, fn := range hooks {
		fn(p)
	}
}

// Peer returns the connected peer with id.
func (h *Hub) Peer(id string) (*Peer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.peers[id]
	return p, ok
}

// Peers returns the ids of all connected peers, sorted.
func (h *Hub) Peers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.peers))
	for id := range h.peers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Broadcast pushes event with payload to every connected peer.
func (h *Hub) Broadcast(event string, payload interface{}) {
	env, err := newEvent(event, payload)
	if err != nil {
		logger.Error("Unable to broadcast event", logger.Fields{"event": event, "error": err.Error()})
		return
	}
	h.mu.RLock()
	peers := make([]*Peer, 0, len(h.peers))
	for _, p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()

	for _, p := range peers {
		if err := p.enqueue(env); err != nil {
			logger.Debug("Dropped event", logger.Fields{"peer": p.id, "event": event, "error": err.Error()})
		}
	}
}

// SendTo pushes event with payload to the peer with id.
func (h *Hub) SendTo(id, event string, payload interface{}) error {
	p, ok := h.Peer(id)
	if !ok {
		return fmt.Errorf("%w: no peer %s", errutils.ErrChannelClosed, id)
	}
	env, err := newEvent(event, payload)
	if err != nil {
		return err
	}
	return p.enqueue(env)
}

// Close disconnects every peer and cancels requests in flight.
func (h *Hub) Close() {
	h.cancel()
	h.mu.RLock()
	peers := make([]*Peer, 0, len(h.peers))
	for _, p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()
	for _, p := range peers {
		p.close()
	}
}

func (h *Hub) handle(p *Peer, env Envelope) {
	resp := Envelope{ID: env.ID, Type: TypeResponse, Channel: env.Channel}
	payload, err := h.router.Dispatch(h.ctx, &Request{Peer: p, Channel: env.Channel, Payload: env.Payload})
	h.metrics.ObserveChannelRequest(env.Channel, err)
	if err != nil {
		logger.Debug("Request failed", logger.Fields{"peer": p.id, "channel": env.Channel, "error": err.Error()})
		resp.Error = err.Error()
		resp.Code = errorCode(err)
	} else {
		resp.Payload = payload
	}
	if err := p.enqueue(resp); err != nil {
		logger.Debug("Dropped response", logger.Fields{"peer": p.id, "channel": env.Channel, "error": err.Error()})
	}
}

// Peer is one connected display process.
type Peer struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan Envelope
	done chan struct{}
	once sync.Once
}

func newPeer(id string, conn *websocket.Conn, hub *Hub) *Peer {
	return &Peer{id: id, conn: conn, hub: hub, send: make(chan Envelope, sendBuffer), done: make(chan struct{})}
}

// ID returns the peer id, which is the window id of its display process.
func (p *Peer) ID() string {
	return p.id
}

// Send pushes event to the peer. The arguments are sent as a JSON array.
func (p *Peer) Send(event string, args ...interface{}) error {
	if args == nil {
		args = []interface{}{}
	}
	env, err := newEvent(event, args)
	if err != nil {
		return err
	}
	return p.enqueue(env)
}

func (p *Peer) enqueue(env Envelope) error {
	select {
	case <-p.done:
		return fmt.Errorf("%w: peer %s", errutils.ErrChannelClosed, p.id)
	default:
	}
	select {
	case p.send <- env:
		return nil
	case <-p.done:
		return fmt.Errorf("%w: peer %s", errutils.ErrChannelClosed, p.id)
	default:
		return fmt.Errorf("send buffer of peer %s is full: %w", p.id, errutils.ErrChannelClosed)
	}
}

func (p *Peer) close() {
	p.once.Do(func() { close(p.done) })
}

func (p *Peer) readLoop() {
	defer func() {
		p.close()
		p.hub.unregister(p)
	}()

	p.conn.SetReadLimit(maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Peer connection lost", logger.Fields{"peer": p.id, "error": err.Error()})
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logger.Warn("Ignoring malformed message", logger.Fields{"peer": p.id, "error": err.Error()})
			continue
		}
		if env.Type != TypeRequest {
			logger.Debug("Ignoring non-request message", logger.Fields{"peer": p.id, "type": string(env.Type)})
			continue
		}
		go p.hub.handle(p, env)
	}
}

func (p *Peer) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.close()
		_ = p.conn.Close()
	}()

	for {
		select {
		case env := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-p.done:
			_ = p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
