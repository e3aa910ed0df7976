package media

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) (*chi.Mux, string, string) {
	t.Helper()
	staticDir := t.TempDir()
	mediaDir := t.TempDir()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewDiskStore(mediaDir, logger)
	require.NoError(t, err)

	r := chi.NewRouter()
	Register(r, NewHandlers(store, staticDir, mediaDir, logger))
	return r, staticDir, mediaDir
}

func multipartUpload(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	router, _, mediaDir := newTestHandlers(t)
	payload := []byte("fake image bytes")

	body, contentType := multipartUpload(t, "file", "bg.png", payload)
	req := httptest.NewRequest(http.MethodPost, "/media/upload/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.URL)

	// The returned URL must actually serve the uploaded bytes.
	req = httptest.NewRequest(http.MethodGet, got.URL, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())

	entries, err := os.ReadDir(mediaDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpload_Errors(t *testing.T) {
	router, _, _ := newTestHandlers(t)

	t.Run("wrong field name", func(t *testing.T) {
		body, contentType := multipartUpload(t, "attachment", "bg.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/media/upload/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not multipart at all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/media/upload/", bytes.NewReader([]byte("plain")))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStaticPages(t *testing.T) {
	router, staticDir, _ := newTestHandlers(t)
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>game</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "admin.html"), []byte("<h1>editor</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "game.js"), []byte("console.log(1)"), 0o644))

	tests := []struct {
		name     string
		target   string
		wantBody string
	}{
		{name: "root serves the game page", target: "/", wantBody: "<h1>game</h1>"},
		{name: "admin serves the editor page", target: "/admin", wantBody: "<h1>editor</h1>"},
		{name: "static assets are served by path", target: "/static/game.js", wantBody: "console.log(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
