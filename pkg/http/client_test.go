package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/source.json", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"official","apps":["https://example.com/app-x.json"]}`))
	})
	mux.HandleFunc("/proxy", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusProxyAuthRequired)
	})
	mux.HandleFunc("/broken", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusInternalServerError)
	})
	mux.HandleFunc("/app.tgz", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.Header().Set("Content-Length", "7")
		_, _ = w.Write([]byte("tarball"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetJSON(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(time.Second, "")

	var manifest struct {
		Name string   `json:"name"`
		Apps []string `json:"apps"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL+"/source.json", &manifest))
	assert.Equal(t, "official", manifest.Name)
	assert.Len(t, manifest.Apps, 1)

	var names []string
	err := c.GetJSON(context.Background(), srv.URL+"/source.json", &names)
	assert.ErrorIs(t, err, errutils.ErrInvalidResponse)
}

func TestGetBytes_StatusMapping(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(time.Second, "")

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "proxy authentication", path: "/proxy", wantErr: errutils.ErrProxyAuthRequired},
		{name: "not found", path: "/missing", wantErr: errutils.ErrFileNotFound},
		{name: "server error", path: "/broken", wantErr: errutils.ErrDownloadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetBytes(context.Background(), srv.URL+tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetBytes_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nethttp.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(time.Second, "").GetBytes(context.Background(), url+"/source.json")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(time.Second, "")

	stream, err := c.Open(context.Background(), srv.URL+"/app.tgz")
	require.NoError(t, err)
	defer stream.Body.Close()

	data, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, "tarball", string(data))
	assert.Equal(t, int64(7), stream.Size)

	_, err = c.Open(context.Background(), srv.URL+"/proxy")
	assert.ErrorIs(t, err, errutils.ErrProxyAuthRequired)
}
