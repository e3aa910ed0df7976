package stagehandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	stageservice "github.com/M8eight/socio-oprosnik/app/modules/stage/application"
	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
	"github.com/M8eight/socio-oprosnik/app/shared/httputil"
)

// Handlers exposes the stage content service over HTTP.
type Handlers struct {
	service stageservice.Service
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service stageservice.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{service: service, logger: logger}
}

// stageDataDto is the wire shape of stage content reads.
type stageDataDto struct {
	StageNum     int64  `json:"stage_num"`
	DialogueJSON string `json:"dialogue_json"`
}

// saveStageDto is the input shape for stage saves.
type saveStageDto struct {
	StageNum     *int64  `json:"stage_num"`
	DialogueJSON *string `json:"dialogue_json"`
}

// GetStage handles GET /stage/{stage_num}.
func (h *Handlers) GetStage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "stage_num")
	stageNum, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.RespondError(w, r, h.logger, apperrors.InvalidInput("invalid stage number %q", raw))
		return
	}

	content, err := h.service.ReadStage(r.Context(), stageNum)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusOK, stageDataDto{
		StageNum:     content.StageNum,
		DialogueJSON: content.DialogueJSON,
	})
}

// SaveStage handles POST /stage/save/. Responds 201 with a confirmation
// message, or 400 when dialogue_json is not valid JSON.
func (h *Handlers) SaveStage(w http.ResponseWriter, r *http.Request) {
	var input saveStageDto
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	if input.StageNum == nil {
		httputil.RespondError(w, r, h.logger, apperrors.InvalidInput("stage_num is required"))
		return
	}
	if input.DialogueJSON == nil {
		httputil.RespondError(w, r, h.logger, apperrors.InvalidInput("dialogue_json is required"))
		return
	}

	message, err := h.service.SaveStage(r.Context(), *input.StageNum, *input.DialogueJSON)
	if err != nil {
		httputil.RespondError(w, r, h.logger, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, map[string]string{"message": message})
}
