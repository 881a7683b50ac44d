// Package netx downloads objects from presigned HTTP URLs.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxDownloadSize caps how much Download reads from a response body.
const MaxDownloadSize = 64 << 20

// ErrTooLarge is returned when a response body exceeds MaxDownloadSize.
var ErrTooLarge = errors.New("download exceeds size limit")

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Download fetches url with GET and returns the body. Non-200 responses are
// errors carrying the status and a short excerpt of the body.
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
