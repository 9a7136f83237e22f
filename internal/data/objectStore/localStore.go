package objectStore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects below a root directory on disk.
type LocalStore struct {
	root          string
	publicBaseURL string
}

func NewLocalStore(root, publicBaseURL string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: abs, publicBaseURL: publicBaseURL}, nil
}

func (s *LocalStore) resolve(key string) (string, error) {
	target := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(target, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("object key %q escapes storage root", key)
	}
	return target, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, localPath string, contentType string) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	if s.publicBaseURL == "" {
		return "file://" + filepath.ToSlash(target), nil
	}
	return joinURL(s.publicBaseURL, key), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
