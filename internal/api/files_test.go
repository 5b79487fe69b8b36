package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hiremote/portal/internal/models"
)

func getFile(t *testing.T, portal *testPortal, cookie, target string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	request.Header.Set("Cookie", cookie)

	response, err := portal.App.Test(request, -1)
	if err != nil {
		t.Fatalf("file request failed: %v", err)
	}
	return response
}

func TestFileDownloadServesStoredUpload(t *testing.T) {
	portal := newTestPortal(t)
	client := createTestUser(t, portal.Database, "Chris Client", "chris@example.com", "clientaccess", models.RoleClient, "101")
	cookie := loginAndExtractAuthCookie(t, portal.App, client.Email, "clientaccess")

	directory := filepath.Join(portal.Uploads.Root(), "20260820100000")
	if err := os.MkdirAll(directory, 0o755); err != nil {
		t.Fatalf("create upload dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(directory, "cash.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}

	response := getFile(t, portal, cookie, "/files/20260820100000/cash.png")
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read file body: %v", err)
	}
	if string(body) != "png-bytes" {
		t.Fatalf("unexpected file contents: %q", body)
	}
}

func TestFileDownloadRejectsTraversal(t *testing.T) {
	portal := newTestPortal(t)
	client := createTestUser(t, portal.Database, "Chris Client", "chris@example.com", "clientaccess", models.RoleClient, "101")
	cookie := loginAndExtractAuthCookie(t, portal.App, client.Email, "clientaccess")

	// Double-encoded so the traversal survives router path normalization
	// and reaches the handler's own unescape step.
	response := getFile(t, portal, cookie, "/files/%252e%252e%2Fsecret.txt")
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestFileDownloadMissingFileReturnsNotFound(t *testing.T) {
	portal := newTestPortal(t)
	client := createTestUser(t, portal.Database, "Chris Client", "chris@example.com", "clientaccess", models.RoleClient, "101")
	cookie := loginAndExtractAuthCookie(t, portal.App, client.Email, "clientaccess")

	response := getFile(t, portal, cookie, "/files/20260820100000/nope.png")
	defer response.Body.Close()

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}

func TestFileDownloadWithoutSessionIsBlocked(t *testing.T) {
	portal := newTestPortal(t)

	request := httptest.NewRequest(http.MethodGet, "/files/20260820100000/cash.png", nil)
	response, err := portal.App.Test(request, -1)
	if err != nil {
		t.Fatalf("file request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect to login, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected redirect to /login, got %q", location)
	}
}
