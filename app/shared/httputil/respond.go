// Package httputil maps service results and errors onto HTTP responses.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// Respond writes v as a JSON response with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do but log.
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// RespondError translates a service error into a transport response.
// Unclassified errors become 500 and are logged with their full chain;
// their detail is never leaked to the caller.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		Respond(w, statusFor(ae.Code), errorBody{Error: errorDetail{Code: ae.Code, Message: ae.Message}})
		return
	}

	logger.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	Respond(w, http.StatusInternalServerError, errorBody{
		Error: errorDetail{Code: apperrors.CodeInternal, Message: "internal server error"},
	})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes a request body into dst, rejecting malformed payloads.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("failed to decode request body: %v", err)
	}
	return nil
}
