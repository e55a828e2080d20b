package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore writes uploads to a local directory served under /<dir>/ by the
// HTTP server. Filenames are prefixed with the upload time in milliseconds to
// keep them unique.
type DiskStore struct {
	dir string
	now func() time.Time
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if needed
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, now: time.Now}, nil
}

func (s *DiskStore) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeName(originalName))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/" + path.Join(filepath.ToSlash(s.dir), name), nil
}

func (s *DiskStore) Delete(ctx context.Context, url string) error {
	prefix := "/" + filepath.ToSlash(s.dir) + "/"
	if !strings.HasPrefix(url, prefix) {
		// Not one of ours (e.g. an S3 URL from an earlier deployment)
		return nil
	}

	name := sanitizeName(strings.TrimPrefix(url, prefix))
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeName strips any path components so uploads can't escape the dir
func sanitizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.ReplaceAll(name, " ", "_")
}
