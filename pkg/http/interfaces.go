//go:generate mockgen -destination=mocks/http.go -package=mocks . Client
package http

import (
	"context"
	"io"
)

// Client defines the HTTP operations the catalog, the source registry and the download
// manager rely on.
type Client interface {
	// GetBytes fetches rawURL and returns the whole body.
	GetBytes(ctx context.Context, rawURL string) ([]byte, error)

	// GetJSON fetches rawURL and decodes the body into out.
	GetJSON(ctx context.Context, rawURL string, out interface{}) error

	// Open starts a streaming GET of rawURL. The caller closes the returned body.
	Open(ctx context.Context, rawURL string) (*Stream, error)
}

// Stream is an open response body together with its announced length.
// Size is -1 when the server did not announce it.
type Stream struct {
	Body io.ReadCloser
	Size int64
}
