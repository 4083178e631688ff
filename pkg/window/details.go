package window

import (
	"encoding/json"
	"fmt"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// AppDetails is what an app window learns about itself and the launcher it runs in.
type AppDetails struct {
	CoreVersion string
	CorePath    string
	HomeDir     string
	TmpDir      string
	App         model.LaunchableApp
}

// MarshalJSON flattens the app attributes next to the launcher facts.
func (d AppDetails) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if d.App != nil {
		data, err := json.Marshal(d.App)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	}
	out["coreVersion"] = d.CoreVersion
	out["corePath"] = d.CorePath
	out["homeDir"] = d.HomeDir
	out["tmpDir"] = d.TmpDir
	return json.Marshal(out)
}

// GetAppDetails returns the details of the app shown in windowID. It fails with
// errutils.ErrNoAppWindow when windowID is not an app window, e.g. the launcher.
func (m *Manager) GetAppDetails(windowID string) (AppDetails, error) {
	m.mu.Lock()
	rec := m.findLocked(windowID)
	m.mu.Unlock()

	if rec == nil {
		return AppDetails{}, fmt.Errorf("window %q: %w", windowID, errutils.ErrNoAppWindow)
	}
	return AppDetails{
		CoreVersion: m.cfg.CoreVersion,
		CorePath:    m.cfg.CorePath,
		HomeDir:     m.cfg.HomeDir,
		TmpDir:      m.cfg.TmpDir,
		App:         rec.app,
	}, nil
}
