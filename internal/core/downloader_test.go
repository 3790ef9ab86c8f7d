package core_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"mcw/internal/core"
	"mcw/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	content := []byte("mod jar bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "mods", "sodium-0.5.3.jar")
	d := core.NewDownloader(server.Client())

	result, err := d.Download(context.Background(), server.URL, dest, "", nil)
	require.NoError(t, err)
	assert.Equal(t, dest, result.Path)
	assert.Equal(t, int64(len(content)), result.Size)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestDownloader_ChecksumVerified(t *testing.T) {
	content := []byte("mod jar bytes")
	sum := sha1.Sum(content)
	wantSHA1 := hex.EncodeToString(sum[:])

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "mod.jar")
	d := core.NewDownloader(server.Client())

	result, err := d.Download(context.Background(), server.URL, dest, wantSHA1, nil)
	require.NoError(t, err)
	assert.Equal(t, wantSHA1, result.Checksum)
}

func TestDownloader_ChecksumMismatchDiscardsFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tampered bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "mod.jar")
	d := core.NewDownloader(server.Client())

	_, err := d.Download(context.Background(), server.URL, dest, "0000000000000000000000000000000000000000", nil)
	require.ErrorIs(t, err, domain.ErrDownloadFailed)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "partial download must not be kept")
	_, statErr = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "temp file must be cleaned up")
}

func TestDownloader_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := core.NewDownloader(server.Client())
	_, err := d.Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "mod.jar"), "", nil)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestDownloader_ReportsProgress(t *testing.T) {
	content := make([]byte, 64*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.Write(content)
	}))
	defer server.Close()

	d := core.NewDownloader(server.Client())

	var last core.DownloadProgress
	calls := 0
	_, err := d.Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "mod.jar"), "",
		func(p core.DownloadProgress) {
			last = p
			calls++
		})
	require.NoError(t, err)
	assert.Greater(t, calls, 0)
	assert.Equal(t, int64(len(content)), last.Downloaded)
	assert.InDelta(t, 100.0, last.Percentage, 0.01)
}

func TestDownloader_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := core.NewDownloader(server.Client())
	_, err := d.Download(ctx, server.URL, filepath.Join(t.TempDir(), "mod.jar"), "", nil)
	assert.Error(t, err)
}
