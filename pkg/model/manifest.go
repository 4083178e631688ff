package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-version"
)

// SourceManifest is the source.json document published at a source URL.
type SourceManifest struct {
	Name string `json:"name"`
	// Apps lists the URLs of the app info documents of the source.
	Apps []string `json:"apps"`
}

// Validate checks that the manifest can be registered.
func (m *SourceManifest) Validate() error {
	if err := ValidateName(m.Name); err != nil {
		return fmt.Errorf("source manifest: %w", err)
	}
	return nil
}

// VersionInfo locates the package of one app version.
type VersionInfo struct {
	TarballURL string `json:"tarballUrl"`
	Shasum     string `json:"shasum,omitempty"`
}

// AppInfo is the per-app document a source lists.
type AppInfo struct {
	Name            string                 `json:"name"`
	DisplayName     string                 `json:"displayName"`
	Description     string                 `json:"description"`
	Homepage        string                 `json:"homepage,omitempty"`
	IconURL         string                 `json:"iconUrl,omitempty"`
	ReleaseNotesURL string                 `json:"releaseNotesUrl,omitempty"`
	LatestVersion   string                 `json:"latestVersion"`
	Versions        map[string]VersionInfo `json:"versions"`
}

// Validate checks the fields the catalog relies on.
func (i *AppInfo) Validate() error {
	if err := ValidateName(i.Name); err != nil {
		return fmt.Errorf("app info: %w", err)
	}
	if i.LatestVersion == "" {
		return fmt.Errorf("app info %s has no latest version", i.Name)
	}
	return nil
}

// Version returns the package location of v.
func (i *AppInfo) Version(v string) (VersionInfo, bool) {
	info, ok := i.Versions[v]
	return info, ok
}

// SortedVersions returns the offered versions newest first. Versions that do not parse
// are appended in lexical order.
func (i *AppInfo) SortedVersions() []string {
	parsed := make(version.Collection, 0, len(i.Versions))
	var unparsed []string
	for raw := range i.Versions {
		v, err := version.NewVersion(raw)
		if err != nil {
			unparsed = append(unparsed, raw)
			continue
		}
		parsed = append(parsed, v)
	}
	sort.Sort(sort.Reverse(parsed))
	sort.Strings(unparsed)

	out := make([]string, 0, len(i.Versions))
	for _, v := range parsed {
		out = append(out, v.Original())
	}
	return append(out, unparsed...)
}

// Engines lists the launcher versions an app works with.
type Engines struct {
	Launchpad string `json:"launchpad,omitempty"`
}

// Repository is the npm-style repository field. Both the string and the object form
// are accepted.
type Repository struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// UnmarshalJSON accepts "repository": "url" as well as {"url": "..."}.
func (r *Repository) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.URL = s
		return nil
	}
	type plain Repository
	return json.Unmarshal(data, (*plain)(r))
}

// PackageJSON is the manifest file at the root of every installed app directory.
type PackageJSON struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	DisplayName string      `json:"displayName,omitempty"`
	Description string      `json:"description,omitempty"`
	Engines     Engines     `json:"engines,omitempty"`
	Repository  *Repository `json:"repository,omitempty"`
}

// ManifestFile is the name of the app manifest.
const ManifestFile = "package.json"

// ParsePackageJSON decodes and validates an app manifest.
func ParsePackageJSON(data []byte) (*PackageJSON, error) {
	var p PackageJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if err := ValidateName(p.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestFile, err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("%s of %s has no version", ManifestFile, p.Name)
	}
	return &p, nil
}

// Title returns the display name, falling back to the package name.
func (p *PackageJSON) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// RepositoryURL returns the repository URL, if declared.
func (p *PackageJSON) RepositoryURL() string {
	if p.Repository == nil {
		return ""
	}
	return p.Repository.URL
}

// IsSupported reports whether the app declares support for coreVersion. Apps without an
// engine range, or with a range or core version that does not parse, are treated as supported.
func (p *PackageJSON) IsSupported(coreVersion string) bool {
	if p.Engines.Launchpad == "" {
		return true
	}
	constraint, err := semver.NewConstraint(p.Engines.Launchpad)
	if err != nil {
		return true
	}
	v, err := semver.NewVersion(coreVersion)
	if err != nil {
		return true
	}
	return constraint.Check(v)
}
