//go:generate mockgen -destination=mocks/manager.go -package=mocks . Manager
package download

import (
	"context"
	"net/url"
)

// Manager downloads app packages and other remote files into a local directory.
type Manager interface {
	// FetchAll downloads all items, respecting Options (e.g., concurrency and target dir).
	// It returns a map from Item.ID to absolute local file path for the items that were
	// downloaded, and the joined errors of those that were not.
	FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error)

	// Fetch downloads a single item into opts.Dir and returns the absolute local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
}

// Item represents one remote resource to download.
type Item struct {
	ID       string   // stable identifier, unique within a batch
	URL      *url.URL // source URL to download
	Checksum string   // optional hex-encoded SHA-256 checksum; verified when set
	Filename string   // optional preferred filename; derived from the URL hash when empty
}

// ProgressFunc receives the bytes written so far and the expected total (-1 if unknown).
type ProgressFunc func(item Item, written, total int64)

// Options control the behavior of the download manager.
type Options struct {
	Dir         string // destination directory. Must be absolute.
	Concurrency int    // number of parallel downloads; if <=0, a default is used
	OnProgress  ProgressFunc
}
