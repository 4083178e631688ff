package model

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON adds the kind discriminator and the reserved local source.
func (a *LocalApp) MarshalJSON() ([]byte, error) {
	type plain LocalApp
	return json.Marshal(struct {
		Kind   AppKind `json:"kind"`
		Source string  `json:"source"`
		*plain
	}{AppKindLocal, LocalSource, (*plain)(a)})
}

// MarshalJSON adds the kind discriminator.
func (a *InstalledDownloadableApp) MarshalJSON() ([]byte, error) {
	type plain InstalledDownloadableApp
	return json.Marshal(struct {
		Kind AppKind `json:"kind"`
		*plain
	}{AppKindInstalled, (*plain)(a)})
}

// MarshalJSON adds the kind discriminator.
func (a *UninstalledDownloadableApp) MarshalJSON() ([]byte, error) {
	type plain UninstalledDownloadableApp
	return json.Marshal(struct {
		Kind AppKind `json:"kind"`
		*plain
	}{AppKindUninstalled, (*plain)(a)})
}

// MarshalJSON adds the kind discriminator.
func (a *WithdrawnApp) MarshalJSON() ([]byte, error) {
	type plain WithdrawnApp
	return json.Marshal(struct {
		Kind AppKind `json:"kind"`
		*plain
	}{AppKindWithdrawn, (*plain)(a)})
}

// DecodeApp decodes a single app by its kind discriminator.
func DecodeApp(data []byte) (App, error) {
	var head struct {
		Kind AppKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var app App
	switch head.Kind {
	case AppKindLocal:
		app = &LocalApp{}
	case AppKindInstalled:
		app = &InstalledDownloadableApp{}
	case AppKindUninstalled:
		app = &UninstalledDownloadableApp{}
	case AppKindWithdrawn:
		app = &WithdrawnApp{}
	default:
		return nil, fmt.Errorf("unknown app kind %q", head.Kind)
	}
	if err := json.Unmarshal(data, app); err != nil {
		return nil, fmt.Errorf("failed to decode %s app: %w", head.Kind, err)
	}
	return app, nil
}
