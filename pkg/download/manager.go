// Package download fetches app packages to disk with optional SHA-256 verification and
// byte-level progress reporting.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	lphttp "github.com/glorpus-work/launchpad/pkg/http"
)

// ManagerImpl downloads items through an http.Client.
type ManagerImpl struct {
	client lphttp.Client
}

// NewManager creates a download manager on top of client.
func NewManager(client lphttp.Client) *ManagerImpl {
	return &ManagerImpl{client: client}
}

// FetchAll downloads items concurrently. Items sharing a URL are fetched once. The result
// holds the local path of every item that was downloaded; the failures of the others are
// joined into the returned error, each prefixed with the item ID.
func (m *ManagerImpl) FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = max(2, runtime.NumCPU()/2)
	}
	if err := prepareDir(opts.Dir); err != nil {
		return nil, err
	}

	byURL := make(map[string][]int)
	var order []string
	for i, it := range items {
		if it.URL == nil {
			return nil, fmt.Errorf("item %d has nil URL: %w", i, errutils.ErrDownloadFailed)
		}
		key := it.URL.String()
		if _, seen := byURL[key]; !seen {
			order = append(order, key)
		}
		byURL[key] = append(byURL[key], i)
	}

	out := make(map[string]string, len(items))
	var (
		errs []error
		mu   sync.Mutex
		wg   sync.WaitGroup
	)
	tasks := make(chan string)

	for w := 0; w < min(opts.Concurrency, len(order)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range tasks {
				first := items[byURL[key][0]]
				path, err := m.fetchOne(ctx, first, opts)
				mu.Lock()
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", first.ID, err))
				} else {
					for _, i := range byURL[key] {
						out[items[i].ID] = path
					}
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, key := range order {
		select {
		case tasks <- key:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return out, errors.Join(errs...)
}

// Fetch downloads a single item and returns the path to the downloaded file.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if err := prepareDir(opts.Dir); err != nil {
		return "", err
	}
	return m.fetchOne(ctx, item, opts)
}

func prepareDir(dir string) error {
	if dir == "" || !filepath.IsAbs(dir) {
		return fmt.Errorf("download dir must be absolute: %s: %w", dir, errutils.ErrInvalidPath)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return errutils.Wrap(err, "could not create download dir")
	}
	return nil
}

func (m *ManagerImpl) fetchOne(ctx context.Context, item Item, opts Options) (string, error) {
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", errutils.ErrDownloadFailed)
	}
	absPath := filepath.Join(opts.Dir, selectFilename(item))
	if item.Checksum != "" {
		if ok, err := verifySHA256(absPath, item.Checksum); err == nil && ok {
			return absPath, nil
		}
	}

	stream, err := m.client.Open(ctx, item.URL.String())
	if err != nil {
		return "", err
	}
	defer func() { _ = stream.Body.Close() }()

	var body io.Reader = stream.Body
	if opts.OnProgress != nil {
		body = &progressReader{r: stream.Body, item: item, total: stream.Size, fn: opts.OnProgress}
		opts.OnProgress(item, 0, stream.Size)
	}

	tmpPath, err := writeToTemp(body, absPath)
	if err != nil {
		return "", err
	}
	if item.Checksum != "" {
		ok, err := verifySHA256(tmpPath, item.Checksum)
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", err
		}
		if !ok {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("checksum mismatch for %s: %w", item.URL, errutils.ErrFileHashMismatch)
		}
	}
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return "", errutils.Wrap(err, "could not finalize file")
	}
	return absPath, nil
}

type progressReader struct {
	r       io.Reader
	item    Item
	total   int64
	written int64
	fn      ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.item, p.written, p.total)
	}
	return n, err
}

func selectFilename(item Item) string {
	if item.Filename != "" {
		return item.Filename
	}
	if item.Checksum != "" {
		return normalizeHex(item.Checksum)
	}
	h := sha256.Sum256([]byte(item.URL.String()))
	return hex.EncodeToString(h[:])
}

func writeToTemp(r io.Reader, absPath string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", errutils.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errutils.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errutils.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errutils.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}

func verifySHA256(path string, wantHex string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errutils.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, errutils.Wrap(err, "hashing")
	}
	return hex.EncodeToString(h.Sum(nil)) == normalizeHex(wantHex), nil
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
