package stagehandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stageservice "github.com/M8eight/socio-oprosnik/app/modules/stage/application"
	stagedb "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/repositories"
	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
)

// FakeService stubs the stage service; each method panics unless its *Func
// field is set.
type FakeService struct {
	ReadStageFunc func(ctx context.Context, stageNum int64) (*stagedb.StageContent, error)
	SaveStageFunc func(ctx context.Context, stageNum int64, dialogueJSON string) (string, error)
}

func (f *FakeService) ReadStage(ctx context.Context, stageNum int64) (*stagedb.StageContent, error) {
	return f.ReadStageFunc(ctx, stageNum)
}

func (f *FakeService) SaveStage(ctx context.Context, stageNum int64, dialogueJSON string) (string, error) {
	return f.SaveStageFunc(ctx, stageNum, dialogueJSON)
}

var _ stageservice.Service = (*FakeService)(nil)

func newTestRouter(svc *FakeService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandlers(svc, logger)

	r := chi.NewRouter()
	r.Route("/stage", func(r chi.Router) {
		r.Post("/save/", h.SaveStage)
		r.Get("/{stage_num}", h.GetStage)
	})
	return r
}

func TestGetStage(t *testing.T) {
	const blob = `{"speaker":"Аня","lines":["Привет!"]}`
	svc := &FakeService{
		ReadStageFunc: func(ctx context.Context, stageNum int64) (*stagedb.StageContent, error) {
			if stageNum != 3 {
				return nil, apperrors.NotFound("stage %d not found", stageNum)
			}
			return &stagedb.StageContent{ID: 1, StageNum: 3, DialogueJSON: blob}, nil
		},
	}
	router := newTestRouter(svc)

	t.Run("returns the blob verbatim", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stage/3", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got stageDataDto
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.StageNum)
		assert.Equal(t, blob, got.DialogueJSON)
	})

	t.Run("missing stage responds 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stage/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("garbage stage number responds 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stage/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaveStage(t *testing.T) {
	post := func(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/stage/save/", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("saves and responds 201 with the confirmation", func(t *testing.T) {
		var gotStage int64
		var gotBlob string
		svc := &FakeService{
			SaveStageFunc: func(ctx context.Context, stageNum int64, dialogueJSON string) (string, error) {
				gotStage, gotBlob = stageNum, dialogueJSON
				return "stage 3 created", nil
			},
		}
		rec := post(t, newTestRouter(svc), `{"stage_num":3,"dialogue_json":"{\"v\":1}"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"stage 3 created"}`, rec.Body.String())
		assert.Equal(t, int64(3), gotStage)
		assert.Equal(t, `{"v":1}`, gotBlob)
	})

	t.Run("invalid dialogue responds 400", func(t *testing.T) {
		svc := &FakeService{
			SaveStageFunc: func(ctx context.Context, stageNum int64, dialogueJSON string) (string, error) {
				return "", apperrors.InvalidInput("malformed JSON in dialogue_json")
			},
		}
		rec := post(t, newTestRouter(svc), `{"stage_num":3,"dialogue_json":"{broken"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields respond 400 without reaching the service", func(t *testing.T) {
		svc := &FakeService{
			SaveStageFunc: func(ctx context.Context, stageNum int64, dialogueJSON string) (string, error) {
				t.Fatal("the service must not be reached")
				return "", nil
			},
		}
		router := newTestRouter(svc)

		for _, body := range []string{
			`{"dialogue_json":"{}"}`,
			`{"stage_num":1}`,
			`{not json`,
		} {
			rec := post(t, router, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		}
	})
}
