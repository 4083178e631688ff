package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// Request is an incoming request on a channel.
type Request struct {
	Peer    *Peer
	Channel string
	Payload json.RawMessage
}

// HandlerFunc answers a request. The result is encoded as the response payload.
type HandlerFunc func(ctx context.Context, req *Request) (interface{}, error)

// Router maps channel names to handlers.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Handle registers h for channel, replacing any earlier handler.
func (r *Router) Handle(channel string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[channel] = h
}

// Channels returns the registered channel names, sorted.
func (r *Router) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the handler of req.Channel and encodes its result.
func (r *Router) Dispatch(ctx context.Context, req *Request) (json.RawMessage, error) {
	r.mu.RLock()
	h, ok := r.handlers[req.Channel]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errutils.ErrUnknownChannel, req.Channel)
	}

	out, err := h(ctx, req)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to encode response of %s", req.Channel)
	}
	return raw, nil
}

// HandleTyped registers fn for channel, decoding the payload into In. An empty payload
// leaves In at its zero value.
func HandleTyped[In, Out any](r *Router, channel string, fn func(ctx context.Context, peer *Peer, in In) (Out, error)) {
	r.Handle(channel, func(ctx context.Context, req *Request) (interface{}, error) {
		var in In
		if len(req.Payload) > 0 && string(req.Payload) != "null" {
			if err := json.Unmarshal(req.Payload, &in); err != nil {
				return nil, fmt.Errorf("invalid payload for %s: %v: %w", channel, err, errutils.ErrValidation)
			}
		}
		return fn(ctx, req.Peer, in)
	})
}
