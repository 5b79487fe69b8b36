package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestUploadStore(t *testing.T) *UploadStore {
	t.Helper()
	store, err := NewUploadStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("init upload store: %v", err)
	}
	store.now = func() time.Time {
		return time.Date(2026, 8, 20, 10, 30, 45, 0, time.UTC)
	}
	return store
}

// buildFileHeaders round-trips files through a real multipart form so the
// headers look exactly like what fiber hands the handlers.
func buildFileHeaders(t *testing.T, files map[string]string) map[string]*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for filename, content := range files {
		part, err := writer.CreateFormFile(filename, filename)
		if err != nil {
			t.Fatalf("create form file %s: %v", filename, err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file %s: %v", filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form back: %v", err)
	}
	t.Cleanup(func() {
		_ = form.RemoveAll()
	})

	headers := make(map[string]*multipart.FileHeader, len(files))
	for field, fieldFiles := range form.File {
		headers[field] = fieldFiles[0]
	}
	return headers
}

func TestSaveUploadedFilesSharesOneTimestampDirectory(t *testing.T) {
	store := newTestUploadStore(t)
	headers := buildFileHeaders(t, map[string]string{
		"shot.jpg":  "jpg-bytes",
		"cash.png":  "png-bytes",
		"sales.pdf": "pdf-bytes",
	})

	saved, err := store.SaveUploadedFiles([]UploadField{
		{Name: "scratcher_video", File: headers["shot.jpg"]},
		{Name: "cash_photo", File: headers["cash.png"]},
		{Name: "sales_photo", File: headers["sales.pdf"]},
	})
	if err != nil {
		t.Fatalf("save files: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("expected 3 saved files, got %d", len(saved))
	}

	for _, file := range saved {
		if filepath.Dir(file.StoredName) != "20260820103045" {
			t.Fatalf("expected shared stamp directory, got %q", file.StoredName)
		}
		onDisk := filepath.Join(store.Root(), filepath.FromSlash(file.StoredName))
		if _, err := os.Stat(onDisk); err != nil {
			t.Fatalf("expected %s on disk: %v", onDisk, err)
		}
	}
	if saved[0].Field != "scratcher_video" || saved[1].Field != "cash_photo" || saved[2].Field != "sales_photo" {
		t.Fatalf("expected field order preserved, got %+v", saved)
	}
}

func TestSaveUploadedFilesSkipsAbsentFields(t *testing.T) {
	store := newTestUploadStore(t)
	headers := buildFileHeaders(t, map[string]string{"shot.jpg": "jpg-bytes"})

	saved, err := store.SaveUploadedFiles([]UploadField{
		{Name: "scratcher_video", File: headers["shot.jpg"]},
		{Name: "cash_photo", File: nil},
	})
	if err != nil {
		t.Fatalf("save files: %v", err)
	}
	if len(saved) != 1 || saved[0].Field != "scratcher_video" {
		t.Fatalf("expected only the present field saved, got %+v", saved)
	}
}

func TestSaveUploadedFilesAbortsOnFirstInvalidKeepingEarlierSaves(t *testing.T) {
	store := newTestUploadStore(t)
	headers := buildFileHeaders(t, map[string]string{
		"shot.jpg":    "jpg-bytes",
		"payload.exe": "exe-bytes",
		"sales.pdf":   "pdf-bytes",
	})

	saved, err := store.SaveUploadedFiles([]UploadField{
		{Name: "scratcher_video", File: headers["shot.jpg"]},
		{Name: "cash_photo", File: headers["payload.exe"]},
		{Name: "sales_photo", File: headers["sales.pdf"]},
	})

	var unsupported *UnsupportedFileTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFileTypeError, got %v", err)
	}
	if unsupported.Filename != "payload.exe" {
		t.Fatalf("expected the offending filename, got %q", unsupported.Filename)
	}
	// The earlier save stays on disk; there is no rollback.
	if len(saved) != 1 || saved[0].Field != "scratcher_video" {
		t.Fatalf("expected the first file kept, got %+v", saved)
	}
	onDisk := filepath.Join(store.Root(), filepath.FromSlash(saved[0].StoredName))
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("expected earlier save on disk: %v", err)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	store := newTestUploadStore(t)

	for _, unsafe := range []string{
		"../outside.txt",
		"20260820103045/../../outside.txt",
		"/etc/passwd",
		"..\\windows\\escape.txt",
		"   ",
	} {
		if _, err := store.Resolve(unsafe); !errors.Is(err, ErrUnsafePath) {
			t.Fatalf("expected ErrUnsafePath for %q, got %v", unsafe, err)
		}
	}

	resolved, err := store.Resolve("20260820103045/cash.png")
	if err != nil {
		t.Fatalf("resolve valid path: %v", err)
	}
	if resolved != filepath.Join(store.Root(), "20260820103045", "cash.png") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cash.png", "cash.png"},
		{"till log.txt", "till_log.txt"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"weird<>chars?.jpg", "weird_chars_.jpg"},
		{"...dots...", "dots"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAllowedFile(t *testing.T) {
	allowed := []string{"a.png", "b.JPG", "c.mp4", "d.pdf", "e.docx", "f.txt"}
	for _, name := range allowed {
		if !AllowedFile(name) {
			t.Errorf("expected %q to be allowed", name)
		}
	}
	rejected := []string{"a.exe", "b.sh", "noext", "c."}
	for _, name := range rejected {
		if AllowedFile(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}
