package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrCheckFailed is returned in check mode when an artifact is missing or
// differs from the generated content.
var ErrCheckFailed = errors.New("check failed")

// Sink receives generated artifacts.
type Sink interface {
	EnsureDir(path string) error
	WriteFile(path string, content []byte) (bool, error)
}

// FileSink writes artifacts to the local file system. Content is written to a
// temporary file and renamed into place, so readers never observe a partial
// artifact.
type FileSink struct {
	// Check compares instead of writing.
	Check bool
}

func (s *FileSink) EnsureDir(path string) error {
	if s.Check {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return nil
}

// WriteFile replaces path with content. It reports whether the file changed;
// identical content is left untouched.
func (s *FileSink) WriteFile(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return false, nil
		}
		if s.Check {
			return false, fmt.Errorf("%w: %s differs", ErrCheckFailed, path)
		}
	case errors.Is(err, fs.ErrNotExist):
		if s.Check {
			return false, fmt.Errorf("%w: %s would be created", ErrCheckFailed, path)
		}
	default:
		return false, fmt.Errorf("read existing: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("create tmp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, fmt.Errorf("write tmp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("chmod tmp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("rename tmp: %w", err)
	}

	return true, nil
}

// Write places one artifact, creating its directory first.
func Write(s Sink, path string, content []byte) (bool, error) {
	if err := s.EnsureDir(filepath.Dir(path)); err != nil {
		return false, err
	}
	return s.WriteFile(path, content)
}
