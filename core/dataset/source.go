package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	perrors "policy-lookup/internal/errors"
)

// Source fetches the raw policy payload. Transport is the source's concern;
// the dataset only validates what it returns.
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Fetch retrieves the payload in a single attempt
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads the payload from a local file
type FileSource struct {
	Path string
}

// Name returns the file path
func (s FileSource) Name() string {
	return s.Path
}

// Fetch reads the file
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, perrors.Wrapf(perrors.TypeInput, err, "failed to read %s", s.Path)
	}
	return data, nil
}

// HTTPSource performs one GET against URL. No retries.
type HTTPSource struct {
	URL    string
	Client *http.Client

	// MaxBytes caps the payload size; zero means 32MB
	MaxBytes int64
}

// Name returns the URL
func (s HTTPSource) Name() string {
	return s.URL
}

// Fetch downloads the payload, bypassing caches
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := s.MaxBytes
	if limit <= 0 {
		limit = 32 << 20
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, perrors.Wrapf(perrors.TypeInput, err, "invalid dataset URL %s", s.URL)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, perrors.Network("dataset fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, perrors.Network(fmt.Sprintf("dataset fetch returned %s", resp.Status), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, perrors.Network("dataset read failed", err)
	}
	if int64(len(data)) > limit {
		return nil, perrors.Newf(perrors.TypeInput, "dataset exceeds %d bytes", limit)
	}
	return data, nil
}

// NewSource picks a source for a location: http(s) URLs are fetched,
// anything else is treated as a file path.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource{Path: location}
}
