package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Photo limits advertised to clients and enforced on upload
const (
	MaxPhotos     = 10
	MaxPhotoBytes = 5 << 20
)

// UploadURLPrefix is the public path prefix under which stored files are served
const UploadURLPrefix = "/uploads"

var (
	ErrTooManyPhotos        = fmt.Errorf("at most %d photos allowed", MaxPhotos)
	ErrPhotoTooLarge        = fmt.Errorf("photo exceeds %d MB", MaxPhotoBytes>>20)
	ErrUnsupportedPhotoType = errors.New("only JPEG, PNG, GIF and WebP images are allowed")
)

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// PhotoExtension sniffs the content type of data and returns the file
// extension to store it under.
func PhotoExtension(data []byte) (string, error) {
	if len(data) > MaxPhotoBytes {
		return "", ErrPhotoTooLarge
	}
	ext, ok := photoExtensions[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedPhotoType
	}
	return ext, nil
}

// SavePhoto writes a complaint photo below basePath/complaints and returns
// the public path it is served under.
func SavePhoto(basePath, complaintID string, index int, data []byte) (string, error) {
	ext, err := PhotoExtension(data)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(basePath, "complaints")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	name := fmt.Sprintf("%s-%d.%s", complaintID, index, ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return path.Join(UploadURLPrefix, "complaints", name), nil
}

// RemovePhoto deletes a file stored by SavePhoto, given its public path.
// A file that is already gone is not an error.
func RemovePhoto(basePath, publicPath string) error {
	rel := strings.TrimPrefix(path.Clean(publicPath), UploadURLPrefix+"/")
	if rel == publicPath || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("not an upload path: %q", publicPath)
	}
	err := os.Remove(filepath.Join(basePath, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
