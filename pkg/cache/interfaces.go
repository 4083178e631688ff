package cache

import (
	"github.com/glorpus-work/launchpad/pkg/catalog"
)

// Catalog is the part of the app catalog whose cached documents the manager handles.
type Catalog interface {
	Layout() catalog.Layout
	Invalidate()
}

// SourceLister returns the registered sources as name to URL.
type SourceLister interface {
	Get() map[string]string
}

// CleanOptions specifies what to clean from the cache.
// With neither flag set, both areas are cleaned.
type CleanOptions struct {
	Downloads bool
	Metadata  bool
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed     int64
	DownloadsFreed int64
	MetadataFreed  int64
}

// Info describes the size of each cache area.
type Info struct {
	DownloadDir   string
	TotalSize     int64
	DownloadSize  int64
	DownloadFiles int
	MetadataSize  int64
	MetadataFiles int
}
