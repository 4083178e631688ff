package model

import (
	"encoding/json"
	"testing"

	"github.com/glorpus-work/launchpad/pkg/errutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		repo    string
	}{
		{
			name: "object repository",
			data: `{"name":"pc-nrfconnect-ppk","version":"4.0.0","repository":{"type":"git","url":"https://github.com/x/ppk"}}`,
			repo: "https://github.com/x/ppk",
		},
		{
			name: "string repository",
			data: `{"name":"pc-nrfconnect-ppk","version":"4.0.0","repository":"https://github.com/x/ppk"}`,
			repo: "https://github.com/x/ppk",
		},
		{
			name:    "missing name",
			data:    `{"version":"1.0.0"}`,
			wantErr: true,
		},
		{
			name:    "missing version",
			data:    `{"name":"x"}`,
			wantErr: true,
		},
		{
			name:    "path in name",
			data:    `{"name":"../evil","version":"1.0.0"}`,
			wantErr: true,
		},
		{
			name:    "dot dot name",
			data:    `{"name":"..","version":"1.0.0"}`,
			wantErr: true,
		},
		{
			name:    "backslash in name",
			data:    `{"name":"a\\b","version":"1.0.0"}`,
			wantErr: true,
		},
		{
			name:    "reserved file name",
			data:    `{"name":"installed.json","version":"1.0.0"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			data:    `name: x`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePackageJSON([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.repo, p.RepositoryURL())
			assert.Equal(t, p.Name, p.Title())
		})
	}
}

func TestPackageJSON_IsSupported(t *testing.T) {
	tests := []struct {
		name     string
		engine   string
		core     string
		expected bool
	}{
		{name: "no range", engine: "", core: "1.0.0", expected: true},
		{name: "caret range satisfied", engine: "^1.2.0", core: "1.4.1", expected: true},
		{name: "caret range not satisfied", engine: "^2.0.0", core: "1.4.1", expected: false},
		{name: "greater than", engine: ">=1.0.0", core: "3.0.0", expected: true},
		{name: "unparsable range", engine: "whatever", core: "1.0.0", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PackageJSON{Name: "x", Version: "1.0.0", Engines: Engines{Launchpad: tt.engine}}
			assert.Equal(t, tt.expected, p.IsSupported(tt.core))
		})
	}
}

func TestAppInfo_SortedVersions(t *testing.T) {
	info := &AppInfo{
		Name: "app-x",
		Versions: map[string]VersionInfo{
			"1.10.0": {}, "1.2.0": {}, "2.0.0-beta.1": {}, "2.0.0": {}, "nightly": {},
		},
	}
	assert.Equal(t, []string{"2.0.0", "2.0.0-beta.1", "1.10.0", "1.2.0", "nightly"}, info.SortedVersions())
}

func TestAppInfo_Validate(t *testing.T) {
	assert.Error(t, (&AppInfo{}).Validate())
	assert.ErrorIs(t, (&AppInfo{Name: "..", LatestVersion: "1.0.0"}).Validate(), errutils.ErrValidation)
	assert.Error(t, (&AppInfo{Name: "x"}).Validate())
	assert.NoError(t, (&AppInfo{Name: "x", LatestVersion: "1.0.0"}).Validate())
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "pc-nrfconnect-ppk"},
		{name: "dotted", input: "app.v2"},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "dot dot", input: "..", wantErr: true},
		{name: "slash", input: "../other", wantErr: true},
		{name: "backslash", input: `..\other`, wantErr: true},
		{name: "apps index", input: "apps.json", wantErr: true},
		{name: "installed index", input: "Installed.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errutils.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSpec_Validate(t *testing.T) {
	assert.NoError(t, Spec{Source: OfficialSource, Name: "app-x"}.Validate())
	assert.ErrorIs(t, Spec{Source: "..", Name: "app-x"}.Validate(), errutils.ErrValidation)
	assert.ErrorIs(t, Spec{Source: OfficialSource, Name: "../local/app-y"}.Validate(), errutils.ErrValidation)
}

func TestSourceManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "beta"},
		{name: "empty", input: "", wantErr: true},
		{name: "parent", input: "..", wantErr: true},
		{name: "nested", input: "a/b", wantErr: true},
		{name: "root file", input: "apps.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&SourceManifest{Name: tt.input}).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, errutils.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInstallResultJSON(t *testing.T) {
	data, err := json.Marshal(AppExists("my-app", "/apps/local/my-app"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"failure","errorType":"error because app exists","appName":"my-app","appPath":"/apps/local/my-app"}`, string(data))

	data, err = json.Marshal(FailureReadingFile("not a gzip archive"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"failure","errorType":"error reading file","errorMessage":"not a gzip archive"}`, string(data))

	ok := SuccessfulInstall(&LocalApp{BaseApp: BaseApp{Name: "my-app"}})
	assert.True(t, ok.Succeeded())
	assert.False(t, AppExists("a", "b").Succeeded())
}
