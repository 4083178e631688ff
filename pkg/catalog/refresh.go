package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/download"
	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// Aggregate is the content of apps.json: every source with the app info URLs it lists.
type Aggregate struct {
	UpdatedAt time.Time                  `json:"updatedAt"`
	Sources   map[string]AggregateSource `json:"sources"`
}

// AggregateSource is one source entry of apps.json.
type AggregateSource struct {
	URL  string   `json:"url"`
	Apps []string `json:"apps"`
}

// DownloadAllAppsJSONFiles re-fetches the source.json of every registered source and all
// app infos they list, rewrites the cache and apps.json, and invalidates the memoized lists.
// Every file is replaced atomically, so a failed or skipped refresh leaves the previous cache
// readable. Sources that fail do not stop the others; their errors are returned joined.
func (c *Catalog) DownloadAllAppsJSONFiles(ctx context.Context) error {
	sources := c.sources.Get()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	aggregate := Aggregate{UpdatedAt: time.Now().UTC(), Sources: make(map[string]AggregateSource, len(names))}
	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		apps, err := c.refreshSource(ctx, name, sources[name])
		if apps != nil {
			aggregate.Sources[name] = AggregateSource{URL: sources[name], Apps: apps}
		}
		if err != nil {
			logger.Error("Failed to refresh source", logger.Fields{"source": name, "error": err.Error()})
			errs = append(errs, errutils.Wrapf(err, "source %s", name))
		}
	}

	data, err := json.MarshalIndent(aggregate, "", "  ")
	if err != nil {
		return errutils.Wrap(err, "failed to encode apps.json")
	}
	if err := writeCacheFile(c.layout.AppsJSON(), data); err != nil {
		errs = append(errs, err)
	}

	c.Invalidate()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Success("App lists refreshed", logger.Fields{"sources": len(names)})
	return nil
}

func (c *Catalog) refreshSource(ctx context.Context, source, sourceURL string) ([]string, error) {
	data, err := c.client.GetBytes(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	manifest, err := parseSourceManifest(data)
	if err != nil {
		return nil, err
	}

	bodies, errs := c.fetchAppInfos(ctx, manifest.Apps)
	for _, appURL := range manifest.Apps {
		body, ok := bodies[appURL]
		if !ok {
			continue
		}
		if _, err := parseAppInfo(body); err != nil {
			errs = append(errs, errutils.Wrapf(err, "app info %s", appURL))
			continue
		}
		if err := writeCacheFile(c.layout.AppInfo(source, appURL), body); err != nil {
			return nil, err
		}
	}

	if err := writeCacheFile(c.layout.SourceManifest(source), data); err != nil {
		return nil, err
	}
	logger.Debug("Source refreshed", logger.Fields{"source": source, "apps": len(manifest.Apps)})
	return manifest.Apps, errors.Join(errs...)
}

// fetchAppInfos downloads the documents at appURLs concurrently into a staging directory
// and returns their content by URL. Documents that could not be fetched are missing from
// the result and reported in the returned errors.
func (c *Catalog) fetchAppInfos(ctx context.Context, appURLs []string) (map[string][]byte, []error) {
	var errs []error
	items := make([]download.Item, 0, len(appURLs))
	for _, appURL := range appURLs {
		u, err := url.Parse(appURL)
		if err != nil {
			errs = append(errs, errutils.Wrapf(err, "app info %s", appURL))
			continue
		}
		items = append(items, download.Item{ID: appURL, URL: u, Filename: appInfoFileName(appURL)})
	}
	if len(items) == 0 {
		return nil, errs
	}

	staging, err := os.MkdirTemp("", "launchpad-refresh-*")
	if err != nil {
		return nil, append(errs, errutils.Wrap(err, "failed to create staging directory"))
	}
	defer func() { _ = os.RemoveAll(staging) }()

	paths, err := c.opts.Downloader.FetchAll(ctx, items, download.Options{Dir: staging, Concurrency: c.opts.RefreshConcurrency})
	if err != nil {
		errs = append(errs, errutils.Wrap(err, "failed to fetch app infos"))
	}
	bodies := make(map[string][]byte, len(paths))
	for appURL, p := range paths {
		body, err := os.ReadFile(p)
		if err != nil {
			errs = append(errs, errutils.Wrapf(err, "app info %s", appURL))
			continue
		}
		bodies[appURL] = body
	}
	return bodies, errs
}
