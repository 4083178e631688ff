// Package channel carries named request/response channels and push events between the
// launcher core and its display processes over a websocket.
package channel

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// MessageType tells how an envelope is to be handled.
type MessageType string

const (
	TypeRequest  MessageType = "request"
	TypeResponse MessageType = "response"
	TypeEvent    MessageType = "event"
)

// Envelope is the unit sent over a connection. Responses carry the id of their request.
type Envelope struct {
	ID      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

func newRequest(channel string, payload json.RawMessage) Envelope {
	return Envelope{ID: uuid.NewString(), Type: TypeRequest, Channel: channel, Payload: payload}
}

func newEvent(channel string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, errutils.Wrapf(err, "failed to encode event %s", channel)
	}
	return Envelope{Type: TypeEvent, Channel: channel, Payload: raw}, nil
}

// errorCodes names the sentinel errors that keep their identity across a connection.
// The first match wins.
var errorCodes = []struct {
	code string
	err  error
}{
	{"reserved-source", errutils.ErrReservedSource},
	{"source-exists", errutils.ErrSourceExists},
	{"source-not-found", errutils.ErrSourceNotFound},
	{"source-url-empty", errutils.ErrSourceURLEmpty},
	{"source-manifest-invalid", errutils.ErrSourceManifestInvalid},
	{"app-not-installed", errutils.ErrAppNotInstalled},
	{"app-not-found", errutils.ErrAppNotFound},
	{"app-exists", errutils.ErrAppExists},
	{"app-manifest-invalid", errutils.ErrAppManifestInvalid},
	{"version-not-found", errutils.ErrVersionNotFound},
	{"no-app-window", errutils.ErrNoAppWindow},
	{"port-busy", errutils.ErrPortBusy},
	{"port-not-open", errutils.ErrPortNotOpen},
	{"port-settings-locked", errutils.ErrPortSettingsLocked},
	{"port-options-mismatch", errutils.ErrPortOptionsMismatch},
	{"file-not-found", errutils.ErrFileNotFound},
	{"file-hash-mismatch", errutils.ErrFileHashMismatch},
	{"download-failed", errutils.ErrDownloadFailed},
	{"proxy-auth-required", errutils.ErrProxyAuthRequired},
	{"unknown-channel", errutils.ErrUnknownChannel},
	{"channel-closed", errutils.ErrChannelClosed},
	{"validation", errutils.ErrValidation},
	{"already-exists", errutils.ErrAlreadyExists},
}

func errorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

func errorForCode(code string) error {
	for _, c := range errorCodes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

// RemoteError is an error returned by the other side of a connection.
type RemoteError struct {
	Channel string
	Message string
	Code    string
}

func (e *RemoteError) Error() string {
	return e.Channel + ": " + e.Message
}

// Unwrap returns the sentinel error named by the code, if any.
func (e *RemoteError) Unwrap() error {
	return errorForCode(e.Code)
}
