package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lazypower/daybook/internal/images"
	"github.com/lazypower/daybook/internal/logging"
	"github.com/lazypower/daybook/internal/service"
	"github.com/lazypower/daybook/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return testServerAt(t, filepath.Join(t.TempDir(), "db.json"))
}

// testServerAt builds a server over the given store file, so tests can
// pre-seed db.json before the store opens it.
func testServerAt(t *testing.T, dbPath string) *Server {
	t.Helper()

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	imgs, err := images.NewDir(filepath.Join(filepath.Dir(dbPath), "uploads"))
	if err != nil {
		t.Fatalf("init uploads: %v", err)
	}

	log := logging.Discard()
	return New(service.New(st, imgs, log), imgs.Root(), log, "test-version")
}

// entryRequest builds a multipart request the way the browser client
// submits entries: form fields plus zero or more image files.
func entryRequest(t *testing.T, method, url string, fields map[string]string, imageNames ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, name := range imageNames {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("fake image bytes for " + name))
	}
	mw.Close()

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	w := do(srv, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["entries"] != float64(0) {
		t.Errorf("entries = %v, want 0", body["entries"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	w := do(srv, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestMethodNotAllowedOnEntries(t *testing.T) {
	srv := testServer(t)

	w := do(srv, httptest.NewRequest("PATCH", "/api/entries", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
