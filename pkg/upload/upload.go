package upload

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrInvalidType is returned for uploads that are not png/jpg/jpeg.
// ErrTooLarge is returned when the upload exceeds MaxBytes.
var (
	ErrInvalidType = errors.New("invalid mime type")
	ErrTooLarge    = errors.New("file too large")
)

const defaultMaxBytes = 5 << 20 // 5 MB

var imageExtByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpeg",
}

// Store saves multipart image uploads onto a local directory that is served
// statically. Filenames are random; the returned path is relative to the
// process working directory and doubles as the public URL path.
type Store struct {
	Dir      string
	MaxBytes int64
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir, MaxBytes: defaultMaxBytes}
}

// Save persists the uploaded image from the named form field and returns its
// stored path.
func (s *Store) Save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	return s.SaveFile(c, file)
}

// SaveFile persists an already-parsed multipart file header.
func (s *Store) SaveFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes() {
		return "", ErrTooLarge
	}
	ext, ok := imageExtByMIME[file.Header.Get("Content-Type")]
	if !ok {
		return "", ErrInvalidType
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	dst := filepath.Join(s.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return filepath.ToSlash(dst), nil
}

// Remove deletes a stored file. Callers treat failures as best-effort.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	return os.Remove(filepath.FromSlash(path))
}

func (s *Store) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return defaultMaxBytes
}
