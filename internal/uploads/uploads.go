// Package uploads stores image files under the public uploads tree.
// Replaced profile images are moved to an archive directory rather
// than deleted, so old images stay available for audit.
package uploads

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidType = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp are allowed")

var validExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save validates the upload's extension and writes it under the store
// directory with a sanitized, uniquified name. Returns the stored
// filename.
func (s *Store) Save(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !validExtensions[ext] {
		return "", ErrInvalidType
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	safe := unsafeChars.ReplaceAllString(base, "_")
	name := fmt.Sprintf("%s-%d%s", safe, time.Now().UnixNano(), ext)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// Archive moves the named file into the store's archive subdirectory,
// timestamping the archived copy. A missing source file is not an
// error.
func (s *Store) Archive(name string) error {
	if name == "" {
		return nil
	}

	src := filepath.Join(s.dir, filepath.Base(name))
	if _, err := os.Stat(src); err != nil {
		return nil
	}

	archiveDir := filepath.Join(s.dir, "archive")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return err
	}

	ext := filepath.Ext(src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	dst := filepath.Join(archiveDir, fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext))
	return os.Rename(src, dst)
}
