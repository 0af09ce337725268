package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/handler"
	"github.com/intervia/interview-api/internal/service"
)

type mockInterviewService struct {
	startResp dto.StartSessionResponse
	evalResp  dto.EvaluateAnswerResponse
	endResp   dto.EndSessionResponse
	detail    dto.SessionDetail
	list      dto.SessionList
	history   dto.EvaluationHistory
	err       error

	lastLimit  int
	lastOffset int
}

func (m *mockInterviewService) Start(_ context.Context, _ dto.StartSessionRequest) (dto.StartSessionResponse, error) {
	return m.startResp, m.err
}

func (m *mockInterviewService) EvaluateAnswer(_ context.Context, _ dto.EvaluateAnswerRequest) (dto.EvaluateAnswerResponse, error) {
	return m.evalResp, m.err
}

func (m *mockInterviewService) End(_ context.Context, _ string) (dto.EndSessionResponse, error) {
	return m.endResp, m.err
}

func (m *mockInterviewService) Get(_ context.Context, _ string) (dto.SessionDetail, error) {
	return m.detail, m.err
}

func (m *mockInterviewService) ListByCandidate(_ context.Context, _ string, limit, offset int) (dto.SessionList, error) {
	m.lastLimit = limit
	m.lastOffset = offset
	return m.list, m.err
}

func (m *mockInterviewService) EvaluationHistory(_ context.Context, _ string, limit int) (dto.EvaluationHistory, error) {
	m.lastLimit = limit
	return m.history, m.err
}

func newInterviewApp(svc service.InterviewService) *fiber.App {
	app := fiber.New()
	handler.NewInterviewHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/interview"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestInterviewHandler_StartSuccess(t *testing.T) {
	svc := &mockInterviewService{startResp: dto.StartSessionResponse{
		SessionID:     "sess-1",
		CandidateID:   "cand-1",
		FirstQuestion: dto.QuestionView{QuestionID: "Q1", QuestionText: "Explain indexing."},
	}}
	app := newInterviewApp(svc)

	resp := postJSON(t, app, "/api/v1/interview/sessions", dto.StartSessionRequest{
		CandidateID: "cand-1",
		Name:        "Alice",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                     `json:"success"`
		Data    dto.StartSessionResponse `json:"data"`
		Message string                   `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "session started", response.Message)
	require.Equal(t, "sess-1", response.Data.SessionID)
	require.Equal(t, "Q1", response.Data.FirstQuestion.QuestionID)
}

func TestInterviewHandler_StartBadPayload(t *testing.T) {
	app := newInterviewApp(&mockInterviewService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/sessions", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandler_ErrorMapping(t *testing.T) {
	validate := validator.New()
	validationErr := validate.Struct(struct {
		CandidateID string `validate:"required"`
	}{})
	require.Error(t, validationErr)

	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "validation", err: validationErr, statusCode: fiber.StatusBadRequest},
		{name: "not found", err: service.ErrSessionNotFound, statusCode: fiber.StatusNotFound},
		{name: "not active", err: service.ErrSessionNotActive, statusCode: fiber.StatusConflict},
		{name: "active session exists", err: service.ErrCandidateHasActiveSession, statusCode: fiber.StatusConflict},
		{name: "wrong question", err: service.ErrQuestionNotFound, statusCode: fiber.StatusBadRequest},
		{name: "duplicate answer", err: service.ErrAnswerAlreadySubmitted, statusCode: fiber.StatusConflict},
		{name: "bank exhausted", err: service.ErrNoQuestionAvailable, statusCode: fiber.StatusNotFound},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newInterviewApp(&mockInterviewService{err: tc.err})

			resp := postJSON(t, app, "/api/v1/interview/sessions/evaluate", dto.EvaluateAnswerRequest{
				SessionID:   "sess-1",
				CandidateID: "cand-1",
				QuestionID:  "Q1",
				Answer:      "an answer",
			})
			require.Equal(t, tc.statusCode, resp.StatusCode)

			var response struct {
				Success bool `json:"success"`
			}
			decodeResponse(t, resp, &response)
			require.False(t, response.Success)
		})
	}
}

func TestInterviewHandler_EndRequiresSessionID(t *testing.T) {
	app := newInterviewApp(&mockInterviewService{})

	resp := postJSON(t, app, "/api/v1/interview/sessions/end", dto.EndSessionRequest{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandler_GetSession(t *testing.T) {
	svc := &mockInterviewService{detail: dto.SessionDetail{
		SessionID: "sess-1",
		Status:    "active",
	}}
	app := newInterviewApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interview/sessions/sess-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool              `json:"success"`
		Data    dto.SessionDetail `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "sess-1", response.Data.SessionID)
}

func TestInterviewHandler_ListPagination(t *testing.T) {
	svc := &mockInterviewService{list: dto.SessionList{
		Pagination: dto.Pagination{Total: 12, Limit: 5, Offset: 10},
	}}
	app := newInterviewApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interview/candidates/cand-1/sessions?limit=5&offset=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 5, svc.lastLimit)
	require.Equal(t, 10, svc.lastOffset)

	badReq := httptest.NewRequest(http.MethodGet, "/api/v1/interview/candidates/cand-1/sessions?limit=abc", nil)
	badResp, err := app.Test(badReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, badResp.StatusCode)
}

func TestInterviewHandler_EvaluationHistory(t *testing.T) {
	svc := &mockInterviewService{history: dto.EvaluationHistory{
		CandidateID: "cand-1",
		Evaluations: []dto.EvaluationHistoryItem{{
			EvaluationID: "ev-1",
			SessionID:    "sess-1",
			QuestionID:   "Q1",
			OverallScore: 0.7,
		}},
	}}
	app := newInterviewApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interview/candidates/cand-1/evaluations?limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 10, svc.lastLimit)

	var response struct {
		Success bool                  `json:"success"`
		Data    dto.EvaluationHistory `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Len(t, response.Data.Evaluations, 1)
	require.Equal(t, "ev-1", response.Data.Evaluations[0].EvaluationID)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}
