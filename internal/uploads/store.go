// Package uploads stores player photos in a public directory.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	// DefaultMaxBytes is the largest accepted photo.
	DefaultMaxBytes int64 = 5 * 1024 * 1024
	// DefaultURLPrefix is where saved files are served from.
	DefaultURLPrefix = "/uploads"

	maxNameAttempts = 5
)

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("file too large")
)

// newID is swapped in tests to force filename collisions.
var newID = func() string { return uuid.NewString() }

// Upload describes a stored photo.
type Upload struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

// Store writes uploads into Dir. Files are only created once the payload has passed the
// type and size checks.
type Store struct {
	Dir       string
	MaxBytes  int64
	URLPrefix string
	Clock     clockwork.Clock
}

// NewStore returns a Store with default limits.
func NewStore(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		Dir:       dir,
		MaxBytes:  maxBytes,
		URLPrefix: DefaultURLPrefix,
		Clock:     clockwork.NewRealClock(),
	}
}

// Save validates and persists r under a generated name.
func (s *Store) Save(originalName, contentType string, r io.Reader) (Upload, error) {
	if !IsImage(contentType) {
		return Upload{}, ErrNotImage
	}
	limit := s.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return Upload{}, ErrTooLarge
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Upload{}, fmt.Errorf("create uploads dir: %w", err)
	}
	name, err := s.create(extension(originalName), data)
	if err != nil {
		return Upload{}, err
	}

	prefix := s.URLPrefix
	if prefix == "" {
		prefix = DefaultURLPrefix
	}
	return Upload{
		URL:          path.Join(prefix, name),
		Filename:     name,
		OriginalName: originalName,
		Size:         int64(len(data)),
	}, nil
}

// Exists reports whether a saved file with this name is present.
func (s *Store) Exists(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.Dir, name))
	return err == nil
}

func (s *Store) create(ext string, data []byte) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := fmt.Sprintf("player-%d-%s%s", s.clock().Now().UnixMilli(), newID(), ext)
		f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create upload: %w", err)
		}
		if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", fmt.Errorf("write upload: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("close upload: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("create upload: no free filename after %d attempts", maxNameAttempts)
}

func (s *Store) maxBytes() int64 {
	if s.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return s.MaxBytes
}

func (s *Store) clock() clockwork.Clock {
	if s.Clock == nil {
		return clockwork.NewRealClock()
	}
	return s.Clock
}

// IsImage reports whether a declared content type is an image type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) > 10 || strings.ContainsAny(ext, " /\\") {
		return ""
	}
	return ext
}
