package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nicholasadamou/avscan-api/internal/domain"
)

// Store persists uploaded byte streams under uniquely named files in a
// single directory. Names are generated UUIDs, never derived from the
// untrusted original filename, so paths stay free of quotes and collisions.
type Store struct {
	log *slog.Logger
	dir string
}

func NewStore(log *slog.Logger, dir string) *Store {
	return &Store{
		log: log,
		dir: dir,
	}
}

// Save streams r into a new file and returns the resulting upload.
// originalName and mimeType are recorded as-is for display only.
func (s *Store) Save(r io.Reader, originalName, mimeType string) (_ *domain.Upload, err error) {
	path := filepath.Join(s.dir, uuid.NewString())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	size, err := io.Copy(f, r)
	if err != nil {
		s.Remove(path)
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	return &domain.Upload{
		Path:         path,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
	}, nil
}

// Harden marks the file read-only before scanning, narrowing the window in
// which its content could change under the engine. Best effort: a failing
// chmod is logged and never aborts the scan.
func (s *Store) Harden(path string) {
	if err := os.Chmod(path, 0o444); err != nil {
		s.log.Warn("failed to mark upload read-only",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
	}
}

// Remove deletes the temp file. Failures (already gone, permission denied)
// are logged and swallowed so they never override the scan result.
func (s *Store) Remove(path string) {
	if err := os.Remove(path); err != nil {
		s.log.Warn("failed to remove temp file",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
	}
}
