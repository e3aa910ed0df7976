package media

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
	"github.com/M8eight/socio-oprosnik/app/shared/httputil"
)

// maxUploadBytes bounds multipart parsing memory, not file size.
const maxUploadBytes = 32 << 20

// Handlers serves uploads plus the static game and admin pages.
type Handlers struct {
	store     Store
	staticDir string
	mediaDir  string
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store Store, staticDir, mediaDir string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:     store,
		staticDir: staticDir,
		mediaDir:  mediaDir,
		logger:    logger,
	}
}

// Upload handles POST /media/upload/. The file bytes pass through untouched.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.RespondError(w, r, h.logger, apperrors.InvalidInput("failed to parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, r, h.logger, apperrors.InvalidInput("missing file field"))
		return
	}
	defer file.Close()

	url, err := h.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, map[string]string{"url": url})
}

// Index serves the game entry page.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

// Admin serves the stage editor page.
func (h *Handlers) Admin(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "admin.html"))
}

// Register mounts upload, static and media routes on r.
func Register(r chi.Router, h *Handlers) {
	r.Post("/media/upload/", h.Upload)
	r.Get("/", h.Index)
	r.Get("/admin", h.Admin)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir))))
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.mediaDir))))
}
