// Package upload stores submitted source documents on disk and records them
// in the uploads table so generation requests can reference them by id.
package upload

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// MaxFileSize is the upload size ceiling (10 MB).
const MaxFileSize = 10 << 20

var (
	// ErrTooLarge means the file exceeds MaxFileSize.
	ErrTooLarge = errors.New("file exceeds the 10MB size limit")
	// ErrUnsupportedType means the extension is outside the accepted set.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNotFound means no upload exists with the given id.
	ErrNotFound = errors.New("upload not found")
)

// allowedExtensions is the accepted set; everything else is rejected before
// any bytes are written.
var allowedExtensions = map[string]bool{
	".txt":  true,
	".docx": true,
	".doc":  true,
	".pdf":  true,
	".hwp":  true,
}

// Upload is one stored document.
type Upload struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	SavedName    string    `json:"savedName"`
	StoragePath  string    `json:"-"`
	Extension    string    `json:"extension"`
	SizeBytes    int64     `json:"sizeBytes"`
	ContentType  string    `json:"contentType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Service saves uploads under a directory and tracks them in sqlite.
type Service struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// New creates a Service writing files under dir.
func New(db *sql.DB, dir string) *Service {
	return &Service{db: db, dir: dir, now: time.Now}
}

// AllowedExtension reports whether name carries an accepted extension.
func AllowedExtension(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Save validates, stores and records one upload. The file is written under a
// fresh UUIDv7 name so original names never touch the filesystem.
func (s *Service) Save(ctx context.Context, originalName, contentType string, declaredSize int64, r io.Reader) (*Upload, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if declaredSize > MaxFileSize {
		return nil, ErrTooLarge
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("upload: mint id: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: mkdir %q: %w", s.dir, err)
	}

	savedName := id.String() + ext
	path := filepath.Join(s.dir, savedName)

	written, err := writeLimited(path, r)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	up := &Upload{
		ID:           id.String(),
		OriginalName: originalName,
		SavedName:    savedName,
		StoragePath:  path,
		Extension:    ext,
		SizeBytes:    written,
		ContentType:  contentType,
		CreatedAt:    s.now().UTC(),
	}

	const q = `INSERT INTO uploads (id, original_name, saved_name, storage_path, extension, size_bytes, content_type, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q,
		up.ID, up.OriginalName, up.SavedName, up.StoragePath, up.Extension,
		up.SizeBytes, up.ContentType, up.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("upload: insert: %w", err)
	}
	return up, nil
}

// Get returns the upload with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Upload, error) {
	const q = `SELECT id, original_name, saved_name, storage_path, extension, size_bytes, content_type, created_at
	           FROM uploads WHERE id = ?`
	var (
		up        Upload
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&up.ID, &up.OriginalName, &up.SavedName, &up.StoragePath,
		&up.Extension, &up.SizeBytes, &up.ContentType, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upload: select %q: %w", id, err)
	}
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		up.CreatedAt = t
	}
	return &up, nil
}

// writeLimited copies r into a new file at path, failing with ErrTooLarge
// once more than MaxFileSize bytes arrive. The declared Content-Length is
// not trusted; the byte count is.
func writeLimited(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("upload: create %q: %w", path, err)
	}
	written, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return written, fmt.Errorf("upload: write %q: %w", path, err)
	}
	if written > MaxFileSize {
		return written, ErrTooLarge
	}
	return written, nil
}
