package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetcher downloads source documents from a remote URL.
type Fetcher struct {
	Client  *http.Client
	MaxSize int64
}

// Fetch downloads url and checks that the body looks like a PDF. All
// failures, including an oversized body, are reported as ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(ErrFetch, "fetch", err)
	}
	req.Header.Set("Accept", "application/pdf")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, newError(ErrFetch, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(ErrFetch, "fetch", fmt.Errorf("unexpected status %s", resp.Status))
	}

	body := io.Reader(resp.Body)
	if f.MaxSize > 0 {
		body = io.LimitReader(resp.Body, f.MaxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, newError(ErrFetch, "fetch", err)
	}
	if f.MaxSize > 0 && int64(len(data)) > f.MaxSize {
		return nil, newError(ErrFetch, "fetch", fmt.Errorf("document exceeds %d bytes", f.MaxSize))
	}
	if !IsPDF(data) {
		return nil, newError(ErrFetch, "fetch", fmt.Errorf("response is not a PDF"))
	}
	return data, nil
}
