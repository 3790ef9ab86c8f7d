package core

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"mcw/internal/domain"
)

// DownloadProgress represents the current state of a download
type DownloadProgress struct {
	TotalBytes int64   // Total size in bytes (0 if unknown)
	Downloaded int64   // Bytes downloaded so far
	Percentage float64 // Completion percentage (0-100)
}

// ProgressFunc is called periodically during download with progress updates
type ProgressFunc func(DownloadProgress)

// DownloadResult contains the outcome of a download
type DownloadResult struct {
	Path     string // Final file path
	Size     int64  // Bytes downloaded
	Checksum string // SHA1 hex digest, the hash catalogs publish
}

// Downloader handles HTTP file downloads with progress tracking
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader creates a new Downloader with the given HTTP client.
// If httpClient is nil, http.DefaultClient is used.
func NewDownloader(httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Downloader{
		httpClient: httpClient,
	}
}

// Download fetches a file from the URL and saves it to destPath. When
// wantSHA1 is non-empty the downloaded bytes must hash to it or the file is
// discarded. Progress updates are sent to the optional progressFn callback.
func (d *Downloader) Download(ctx context.Context, url, destPath, wantSHA1 string, progressFn ProgressFunc) (*DownloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d %s", domain.ErrDownloadFailed, resp.StatusCode, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	// Write to a temp file first so a partial download never looks complete
	tempPath := destPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		file.Close()
		os.Remove(tempPath)
	}()

	hash := sha1.New()
	writer := io.MultiWriter(file, hash)

	total := resp.ContentLength
	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := writer.Write(buf[:n]); err != nil {
				return nil, fmt.Errorf("writing file: %w", err)
			}
			downloaded += int64(n)
			if progressFn != nil {
				p := DownloadProgress{TotalBytes: total, Downloaded: downloaded}
				if total > 0 {
					p.Percentage = float64(downloaded) / float64(total) * 100
				}
				progressFn(p)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading response: %w", readErr)
		}
	}

	checksum := hex.EncodeToString(hash.Sum(nil))
	if wantSHA1 != "" && checksum != wantSHA1 {
		return nil, fmt.Errorf("%w: checksum mismatch: got %s, want %s", domain.ErrDownloadFailed, checksum, wantSHA1)
	}

	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return nil, fmt.Errorf("moving file into place: %w", err)
	}

	return &DownloadResult{
		Path:     destPath,
		Size:     downloaded,
		Checksum: checksum,
	}, nil
}
