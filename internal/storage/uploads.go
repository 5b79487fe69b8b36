package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hiremote/portal/internal/models"
)

// ErrUnsafePath rejects download paths that escape the upload root.
var ErrUnsafePath = errors.New("unsafe file path")

// UnsupportedFileTypeError reports the first file whose extension is not
// on the allow list.
type UnsupportedFileTypeError struct {
	Filename string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type for %s", e.Filename)
}

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"mp4":  {},
	"mov":  {},
	"avi":  {},
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"txt":  {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadField pairs a logical form field name with its optional file.
// Fields are processed in slice order so partial saves are deterministic.
type UploadField struct {
	Name string
	File *multipart.FileHeader
}

type UploadStore struct {
	root string
	now  func() time.Time
}

func NewUploadStore(root string) (*UploadStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("upload root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &UploadStore{root: root, now: time.Now}, nil
}

func (store *UploadStore) Root() string {
	return store.root
}

// SaveUploadedFiles writes every present file into one shared
// second-resolution timestamp directory. Two calls within the same second
// share a directory; that collision is accepted behavior. On an invalid
// file it returns the files already saved plus the error. Earlier saves
// are not rolled back.
func (store *UploadStore) SaveUploadedFiles(fields []UploadField) ([]models.StoredFile, error) {
	saved := make([]models.StoredFile, 0, len(fields))
	stamp := store.now().UTC().Format("20060102150405")

	for _, field := range fields {
		if field.File == nil || strings.TrimSpace(field.File.Filename) == "" {
			continue
		}

		filename := SanitizeFilename(field.File.Filename)
		if !AllowedFile(filename) {
			return saved, &UnsupportedFileTypeError{Filename: filename}
		}

		directory := filepath.Join(store.root, stamp)
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return saved, fmt.Errorf("create upload directory: %w", err)
		}
		if err := writeMultipartFile(field.File, filepath.Join(directory, filename)); err != nil {
			return saved, fmt.Errorf("save %s: %w", filename, err)
		}

		saved = append(saved, models.StoredFile{
			Field:        field.Name,
			StoredName:   stamp + "/" + filename,
			OriginalName: filename,
			Mime:         field.File.Header.Get("Content-Type"),
		})
	}
	return saved, nil
}

// Resolve maps a stored relative path to an absolute path under the
// upload root, rejecting absolute paths and parent-directory segments.
func (store *UploadStore) Resolve(relPath string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(relPath), "\\", "/")
	if cleaned == "" || path.IsAbs(cleaned) || filepath.IsAbs(cleaned) {
		return "", ErrUnsafePath
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", ErrUnsafePath
		}
	}
	return filepath.Join(store.root, filepath.FromSlash(cleaned)), nil
}

// SanitizeFilename strips path components and replaces characters outside
// [A-Za-z0-9._-] before a file touches the disk.
func SanitizeFilename(name string) string {
	normalized := strings.ReplaceAll(name, "\\", "/")
	normalized = path.Base(normalized)
	normalized = unsafeFilenameChars.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "._")
}

func AllowedFile(filename string) bool {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if extension == "" {
		return false
	}
	_, ok := allowedExtensions[extension]
	return ok
}

func writeMultipartFile(header *multipart.FileHeader, destination string) error {
	source, err := header.Open()
	if err != nil {
		return err
	}
	defer source.Close()

	target, err := os.Create(destination)
	if err != nil {
		return err
	}

	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		return err
	}
	return target.Close()
}
