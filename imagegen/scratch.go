// Package imagegen turns short descriptions into image files on local disk.
package imagegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const filePrefix = "linkedin_image_"

// Scratch owns the image files written during one run. Every file it creates
// is tracked until RemoveAll deletes it.
type Scratch struct {
	dir   string
	files []string
}

func NewScratch(dir string) (*Scratch, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir %s: %w", dir, err)
	}
	return &Scratch{dir: dir}, nil
}

// Write stores data in a new uniquely named file and returns its path.
// The path is tracked even if the write fails part way.
func (s *Scratch) Write(data []byte, ext string) (string, error) {
	path := filepath.Join(s.dir, filePrefix+uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	s.files = append(s.files, path)

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Files returns the tracked paths in creation order.
func (s *Scratch) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// RemoveAll deletes every tracked file. Files that are already gone count as
// removed; the rest are reported together and stay tracked.
func (s *Scratch) RemoveAll() error {
	var errs []error
	var left []string
	for _, path := range s.files {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			left = append(left, path)
		}
	}
	s.files = left
	return errors.Join(errs...)
}
