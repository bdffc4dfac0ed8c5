// Package blob fetches uploaded pricelist files from blob storage by URL.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/planor/portal-api/pkg/apperr"
)

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// File is a fetched pricelist file, decoded to UTF-8.
type File struct {
	Name    string
	Content string
}

// Config defines settings for the blob fetcher.
type Config struct {
	// AccessToken is a pre-signed query token appended to container URLs that
	// carry no query string of their own.
	AccessToken string
	MaxAttempts uint
}

// Fetcher downloads files over HTTP with retry on transient failures.
type Fetcher struct {
	httpClient  HTTPClient
	accessToken string
	attempts    uint
}

// New creates a blob fetcher.
func New(httpClient HTTPClient, cfg Config) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = 3
	}
	return &Fetcher{
		httpClient:  httpClient,
		accessToken: cfg.AccessToken,
		attempts:    attempts,
	}
}

// FetchText downloads the file at fileURL and returns its UTF-8 content plus
// the file name taken from the URL path. Network errors and 5xx responses are
// retried; 4xx responses fail immediately.
func (f *Fetcher) FetchText(ctx context.Context, fileURL string) (File, error) {
	u, err := url.Parse(fileURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return File{}, apperr.New(apperr.KindInvalidInput, "invalid file url %q", fileURL)
	}
	if f.accessToken != "" && u.RawQuery == "" {
		u.RawQuery = f.accessToken
	}
	fileName := path.Base(u.Path)

	var data []byte
	err = retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return retry.Unrecoverable(fmt.Errorf("build request: %w", err))
		}
		resp, err := f.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", fileName, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("status %d for %s", resp.StatusCode, fileName)
		}
		if resp.StatusCode != http.StatusOK {
			return retry.Unrecoverable(fmt.Errorf("status %d for %s", resp.StatusCode, fileName))
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read %s: %w", fileName, err)
		}
		return nil
	}, retry.Attempts(f.attempts), retry.Context(ctx), retry.LastErrorOnly(true))
	if err != nil {
		return File{}, apperr.Wrap(apperr.KindUpstreamFetch, err, "fetch pricelist file")
	}

	content, err := DecodeText(data)
	if err != nil {
		return File{}, apperr.Wrap(apperr.KindUpstreamFetch, err, "decode pricelist file %s", fileName)
	}
	return File{Name: fileName, Content: content}, nil
}
