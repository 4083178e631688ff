// Package http is the launcher's outbound HTTP layer. Every manifest, asset and package
// fetch goes through it so status handling and proxy errors are mapped the same way.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "launchpad/1.0"

// RestyClient implements Client on top of resty.
type RestyClient struct {
	client *resty.Client
	// stream has no overall timeout; package downloads may take longer than a manifest fetch.
	stream *resty.Client
}

// NewClient creates a client whose metadata requests time out after timeout.
func NewClient(timeout time.Duration, userAgent string) *RestyClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	newResty := func() *resty.Client {
		return resty.New().
			SetHeader("User-Agent", userAgent).
			SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	}
	c := newResty()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c, stream: newResty()}
}

// GetBytes fetches rawURL and returns the whole body.
func (hc *RestyClient) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := hc.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to fetch %s", rawURL)
	}
	if err := checkStatus(rawURL, resp.StatusCode()); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// GetJSON fetches rawURL and decodes the body into out.
func (hc *RestyClient) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	data, err := hc.GetBytes(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response of %s: %w: %w", rawURL, errutils.ErrInvalidResponse, err)
	}
	return nil
}

// Open starts a streaming GET of rawURL.
func (hc *RestyClient) Open(ctx context.Context, rawURL string) (*Stream, error) {
	resp, err := hc.stream.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to fetch %s", rawURL)
	}
	if err := checkStatus(rawURL, resp.StatusCode()); err != nil {
		_ = resp.RawBody().Close()
		return nil, err
	}
	size := int64(-1)
	if resp.RawResponse != nil {
		size = resp.RawResponse.ContentLength
	}
	return &Stream{Body: resp.RawBody(), Size: size}, nil
}

func checkStatus(rawURL string, status int) error {
	switch {
	case status == nethttp.StatusProxyAuthRequired:
		return fmt.Errorf("fetching %s: %w", rawURL, errutils.ErrProxyAuthRequired)
	case status == nethttp.StatusNotFound:
		return fmt.Errorf("fetching %s: %w", rawURL, errutils.ErrFileNotFound)
	case status < 200 || status > 299:
		return fmt.Errorf("unexpected status code %d for %s: %w", status, rawURL, errutils.ErrDownloadFailed)
	}
	return nil
}
