package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DocumentStore keeps client document blobs. Keys are opaque, slash-separated paths.
type DocumentStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Delete(ctx context.Context, key string) error
	// URL returns the public address a client can fetch the blob from.
	URL(key string) string
}

// LocalDiskStore writes blobs under a root directory that the HTTP server exposes read-only.
type LocalDiskStore struct {
	root    string
	baseURL string
}

// NewLocalDiskStore creates root if needed.
func NewLocalDiskStore(root, baseURL string) (*LocalDiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document dir %s: %w", root, err)
	}
	return &LocalDiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ DocumentStore = (*LocalDiskStore)(nil)

var errInvalidKey = errors.New("invalid document key")

func (s *LocalDiskStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", errInvalidKey
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes through a temp file and renames it so readers never see a partial blob.
func (s *LocalDiskStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dst, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create document dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	n, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to write document: %w", errors.Join(copyErr, closeErr))
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to store document: %w", err)
	}
	return n, nil
}

// Delete removes the blob. A missing blob is not an error.
func (s *LocalDiskStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *LocalDiskStore) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}

// Root is the directory served at the document base URL.
func (s *LocalDiskStore) Root() string {
	return s.root
}
