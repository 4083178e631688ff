package catalog

import (
	"context"

	"github.com/gabriel-vasile/mimetype"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// DownloadReleaseNotes fetches and caches the changelog of spec. Failures are logged and
// reported as ok == false.
func (c *Catalog) DownloadReleaseNotes(ctx context.Context, spec model.Spec) (string, bool) {
	info, _, err := c.AppInfo(ctx, spec)
	if err != nil {
		logger.Warn("Unable to look up release notes", logger.Fields{"app": spec.String(), "error": err.Error()})
		return "", false
	}
	if info.ReleaseNotesURL == "" {
		return "", false
	}

	data, err := c.client.GetBytes(ctx, info.ReleaseNotesURL)
	if err != nil {
		logger.Warn("Unable to download release notes", logger.Fields{"app": spec.String(), "error": err.Error()})
		return "", false
	}
	if err := writeCacheFile(c.layout.ReleaseNotes(spec), data); err != nil {
		logger.Warn("Unable to cache release notes", logger.Fields{"app": spec.String(), "error": err.Error()})
	} else {
		c.Invalidate()
	}
	return string(data), true
}

// DownloadAppIcon fetches and caches the icon of spec and returns its path. The file
// extension follows the detected content type. Failures are logged and reported as
// ok == false.
func (c *Catalog) DownloadAppIcon(ctx context.Context, spec model.Spec) (string, bool) {
	info, _, err := c.AppInfo(ctx, spec)
	if err != nil {
		logger.Warn("Unable to look up app icon", logger.Fields{"app": spec.String(), "error": err.Error()})
		return "", false
	}
	if info.IconURL == "" {
		return "", false
	}

	data, err := c.client.GetBytes(ctx, info.IconURL)
	if err != nil {
		logger.Warn("Unable to download app icon", logger.Fields{"app": spec.String(), "error": err.Error()})
		return "", false
	}

	ext, ok := iconExtension(data)
	if !ok {
		logger.Warn("Downloaded app icon is not an image", logger.Fields{
			"app":  spec.String(),
			"mime": mimetype.Detect(data).String(),
		})
		return "", false
	}

	path := c.layout.Icon(spec, ext)
	if err := writeCacheFile(path, data); err != nil {
		logger.Warn("Unable to cache app icon", logger.Fields{"app": spec.String(), "error": err.Error()})
		return "", false
	}
	c.Invalidate()
	return path, true
}

func iconExtension(data []byte) (string, bool) {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("image/svg+xml"):
		return ".svg", true
	case mtype.Is("image/png"):
		return ".png", true
	default:
		return "", false
	}
}
