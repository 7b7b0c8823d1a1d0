package dataset_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policy-lookup/core/dataset"
	perrors "policy-lookup/internal/errors"
	"policy-lookup/internal/testutil"
)

// blockingSource never returns until released
type blockingSource struct {
	release chan struct{}
}

func (s blockingSource) Name() string { return "blocking" }

func (s blockingSource) Fetch(ctx context.Context) ([]byte, error) {
	<-s.release
	return []byte(testutil.PolicyJSON), nil
}

func TestLoaderReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(path, []byte(testutil.PolicyJSON), 0644))

	loader := dataset.NewLoader(dataset.FileSource{Path: path})
	ds, err := loader.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.StateReady, loader.State())
	assert.Equal(t, testutil.RecordCount, ds.Len())
}

func TestLoaderFailedOnMissingFile(t *testing.T) {
	loader := dataset.NewLoader(dataset.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")})
	_, err := loader.Wait(context.Background())
	require.Error(t, err)

	assert.Equal(t, dataset.StateFailed, loader.State())
	assert.True(t, perrors.IsType(err, perrors.TypeInput))

	// terminal state is sticky
	_, again := loader.Dataset()
	assert.Equal(t, err, again)
}

func TestLoaderFailedOnMalformedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records": [{"category": "A"}]}`), 0644))

	loader := dataset.NewLoader(dataset.FileSource{Path: path})
	_, err := loader.Wait(context.Background())

	assert.Equal(t, dataset.StateFailed, loader.State())
	assert.True(t, perrors.IsType(err, perrors.TypeMalformedData))
}

func TestLoaderNotReadyBeforeSettling(t *testing.T) {
	src := blockingSource{release: make(chan struct{})}
	loader := dataset.NewLoader(src)
	loader.Start(context.Background())

	assert.Equal(t, dataset.StatePending, loader.State())
	_, err := loader.Dataset()
	assert.ErrorIs(t, err, dataset.ErrNotReady)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = loader.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(src.release)
	<-loader.Done()
	assert.Equal(t, dataset.StateReady, loader.State())
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		if r.URL.Path != "/policy.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.PolicyJSON))
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		src := dataset.NewSource(srv.URL + "/policy.json")
		require.IsType(t, dataset.HTTPSource{}, src)

		ds, err := dataset.NewLoader(src).Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testutil.RecordCount, ds.Len())
	})

	t.Run("non-2xx fails", func(t *testing.T) {
		_, err := dataset.NewLoader(dataset.NewSource(srv.URL + "/missing.json")).Wait(context.Background())
		require.Error(t, err)
		assert.True(t, perrors.IsType(err, perrors.TypeNetwork))
	})

	t.Run("oversized payload fails", func(t *testing.T) {
		src := dataset.HTTPSource{URL: srv.URL + "/policy.json", MaxBytes: 16}
		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		assert.True(t, perrors.IsType(err, perrors.TypeInput))
	})
}

func TestNewSourceDefaultsToFile(t *testing.T) {
	assert.Equal(t, dataset.FileSource{Path: "policy.json"}, dataset.NewSource("policy.json"))
}
