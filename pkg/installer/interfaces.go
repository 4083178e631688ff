package installer

import (
	"context"

	"github.com/glorpus-work/launchpad/pkg/catalog"
	"github.com/glorpus-work/launchpad/pkg/installed"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// Catalog is the part of the app catalog the installer reads and invalidates.
type Catalog interface {
	Layout() catalog.Layout
	AppInfo(ctx context.Context, spec model.Spec) (*model.AppInfo, string, error)
	GetLocalApps() ([]*model.LocalApp, []model.AppWithError, error)
	GetDownloadableApps(ctx context.Context) (model.DownloadableApps, error)
	InstalledIndex() (*installed.Index, error)
	Invalidate()
}

// Progress is the payload of the download-progress event.
type Progress struct {
	Name             string  `json:"name"`
	Source           string  `json:"source"`
	ProgressFraction float64 `json:"progressFraction"`
}

// Hooks carries callbacks for progress notifications.
type Hooks struct {
	OnProgress func(Progress)
}

func emit(h Hooks, p Progress) {
	if h.OnProgress != nil {
		h.OnProgress(p)
	}
}
