package leaderboardhandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	leaderboardservice "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/application"
	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
	"github.com/M8eight/socio-oprosnik/app/shared/httputil"
)

// Handlers exposes the progress service over HTTP.
type Handlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service leaderboardservice.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{service: service, logger: logger}
}

// submissionDto is the input shape for score submissions and user overwrites.
// Score and stage are pointers so a missing field is distinguishable from 0.
type submissionDto struct {
	Username string `json:"username"`
	Score    *int64 `json:"score"`
	Stage    *int64 `json:"stage"`
}

func (d *submissionDto) validateShape() error {
	if d.Score == nil {
		return apperrors.InvalidInput("score is required")
	}
	if d.Stage == nil {
		return apperrors.InvalidInput("stage is required")
	}
	return nil
}

// SubmitScore handles POST /submit-score/. Responds 201 when a new record
// was created, 200 when an existing one was returned.
func (h *Handlers) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var input submissionDto
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	if err := input.validateShape(); err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	leader, created, err := h.service.UpsertScore(r.Context(), input.Username, *input.Score, *input.Stage)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.Respond(w, status, leader)
}

// Leaderboard handles GET /leaderboard/?skip=&limit=.
func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	leaders, err := h.service.Leaderboard(r.Context(), skip, limit)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusOK, leaders)
}

// GetProgress handles GET /get-progress/?username=.
func (h *Handlers) GetProgress(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	leader, err := h.service.GetOrCreateProgress(r.Context(), username)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusOK, leader)
}

// GetUser handles GET /users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	leader, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusOK, leader)
}

// ReplaceUser handles PUT /users/{id}.
func (h *Handlers) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	var input submissionDto
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	if err := input.validateShape(); err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	leader, err := h.service.ReplaceUser(r.Context(), id, input.Username, *input.Score, *input.Stage)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusOK, leader)
}

// DeleteUser handles DELETE /users/{id}.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid user id %q", raw)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid %s value %q", name, raw)
	}
	return v, nil
}
