// Package upload stores post images on the local filesystem and serves them
// back as static files.
package upload

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"socialnet/internal/common"
	"socialnet/internal/config"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Storage struct {
	dir     string
	baseURL string
	maxSize int64
}

func NewStorage(cnf *config.Config) (*Storage, error) {
	if err := os.MkdirAll(cnf.Upload.Dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{
		dir:     cnf.Upload.Dir,
		baseURL: strings.TrimSuffix(cnf.Upload.BaseURL, "/"),
		maxSize: cnf.Upload.MaxSizeBytes,
	}, nil
}

// Save validates the upload limits and writes the file under a fresh
// uuid-derived name, returning the stored filename.
func (s *Storage) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", &common.Error{Status: http.StatusRequestEntityTooLarge, Code: common.CodeFileTooLarge, Message: "File too large"}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", &common.Error{Status: http.StatusBadRequest, Code: common.CodeInvalidFileField, Message: "Only image files are allowed"}
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxSize+1)); err != nil {
		os.Remove(filepath.Join(s.dir, name))
		return "", err
	}

	return name, nil
}

// URL returns the public path the stored file is served under.
func (s *Storage) URL(name string) string {
	return s.baseURL + "/" + name
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Storage) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FilenameFromURL recovers the stored filename from a persisted image URL.
func FilenameFromURL(imageURL string) string {
	return path.Base(imageURL)
}
