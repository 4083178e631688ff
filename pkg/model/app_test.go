package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApps() map[string]App {
	installed := InstalledInfo{CurrentVersion: "1.0.0", Path: "/apps/x", ShortcutIconPath: "/apps/x/icon.png"}
	return map[string]App{
		"local": &LocalApp{
			BaseApp:       BaseApp{Name: "my-app", DisplayName: "My App"},
			InstalledInfo: installed,
		},
		"installed": &InstalledDownloadableApp{
			BaseApp:          BaseApp{Name: "app-x"},
			InstalledInfo:    installed,
			DownloadableInfo: DownloadableInfo{Source: OfficialSource, URL: "https://example.com/app-x.json"},
			LatestVersion:    "2.0.0",
		},
		"up to date": &InstalledDownloadableApp{
			BaseApp:          BaseApp{Name: "app-z"},
			InstalledInfo:    installed,
			DownloadableInfo: DownloadableInfo{Source: OfficialSource, URL: "https://example.com/app-z.json"},
			LatestVersion:    "1.0.0",
		},
		"uninstalled": &UninstalledDownloadableApp{
			BaseApp:          BaseApp{Name: "app-u"},
			DownloadableInfo: DownloadableInfo{Source: "extra", URL: "https://example.com/app-u.json"},
			LatestVersion:    "3.1.0",
		},
		"withdrawn": &WithdrawnApp{
			BaseApp:          BaseApp{Name: "app-y"},
			InstalledInfo:    installed,
			DownloadableInfo: DownloadableInfo{Source: "extra"},
		},
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name         string
		downloadable bool
		installed    bool
		withdrawn    bool
		update       bool
	}{
		{name: "local", downloadable: false, installed: true},
		{name: "installed", downloadable: true, installed: true, update: true},
		{name: "up to date", downloadable: true, installed: true},
		{name: "uninstalled", downloadable: true},
		{name: "withdrawn", downloadable: true, installed: true, withdrawn: true},
	}

	apps := sampleApps()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := apps[tt.name]
			assert.Equal(t, tt.downloadable, IsDownloadable(app))
			assert.Equal(t, tt.installed, IsInstalled(app))
			assert.Equal(t, tt.withdrawn, IsWithdrawn(app))
			assert.Equal(t, tt.update, UpdateAvailable(app))

			_, hasCurrent := CurrentVersion(app)
			assert.Equal(t, IsInstalled(app), hasCurrent)

			_, launchable := AsLaunchable(app)
			assert.Equal(t, tt.installed, launchable)

			if IsDownloadable(app) {
				_, hasLatest := LatestVersion(app)
				assert.Equal(t, IsWithdrawn(app), !hasLatest)
			} else {
				assert.Equal(t, LocalSource, app.AppSpec().Source)
			}
		})
	}
}

func TestUpdateAvailable_StringInequality(t *testing.T) {
	app := &InstalledDownloadableApp{
		InstalledInfo: InstalledInfo{CurrentVersion: "2.0.0"},
		LatestVersion: "1.9.0",
	}
	assert.True(t, UpdateAvailable(app), "any difference counts, even a downgrade")

	app.LatestVersion = "v2.0.0"
	assert.True(t, UpdateAvailable(app))
}

func TestAppJSONRoundTrip(t *testing.T) {
	for name, app := range sampleApps() {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(app)
			require.NoError(t, err)

			var fields map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &fields))
			assert.Equal(t, string(app.Kind()), fields["kind"])
			assert.Equal(t, app.AppSpec().Source, fields["source"])

			_, hasCurrent := fields["currentVersion"]
			assert.Equal(t, IsInstalled(app), hasCurrent)

			decoded, err := DecodeApp(data)
			require.NoError(t, err)
			assert.Equal(t, app, decoded)
		})
	}
}

func TestWithdrawnAppHasEmptyURL(t *testing.T) {
	data, err := json.Marshal(sampleApps()["withdrawn"])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"url":""`)
	assert.NotContains(t, string(data), "latestVersion")
}

func TestDecodeApp_UnknownKind(t *testing.T) {
	_, err := DecodeApp([]byte(`{"kind":"plugin","name":"x"}`))
	assert.Error(t, err)
}

func TestDownloadableAppsJSON(t *testing.T) {
	apps := sampleApps()
	in := DownloadableApps{
		Apps: []DownloadableApp{
			apps["installed"].(DownloadableApp),
			apps["uninstalled"].(DownloadableApp),
			apps["withdrawn"].(DownloadableApp),
		},
		AppsWithErrors: []AppWithError{{Name: "broken", Source: "extra", Path: "/apps/extra/broken.json", Reason: "unexpected end of JSON input"}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out DownloadableApps
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	var bad DownloadableApps
	assert.Error(t, json.Unmarshal([]byte(`{"apps":[{"kind":"local","name":"x"}]}`), &bad))
}

func TestInfoOf(t *testing.T) {
	app := sampleApps()["uninstalled"].(DownloadableApp)
	info := InfoOf(app)
	assert.Equal(t, Spec{Name: "app-u", Source: "extra"}, info.AppSpec())
	assert.Equal(t, "https://example.com/app-u.json", info.URL)
}
