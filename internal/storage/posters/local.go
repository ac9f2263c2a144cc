package posters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps posters as files in one directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	base := SanitizeFilename(filename)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		name := candidate(base, attempt)
		path := filepath.Join(s.dir, name)

		// O_EXCL makes the name reservation atomic against concurrent uploads
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create poster %s: %w", name, err)
		}

		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write poster %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close poster %s: %w", name, err)
		}
		return name, nil
	}
	return "", fmt.Errorf("no free name for poster %q after %d attempts", base, maxAttempts)
}

func (s *LocalStore) Open(ctx context.Context, name string) (*Object, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return &Object{ReadCloser: f, Size: info.Size(), ContentType: ContentType(name)}, nil
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
