package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/handler"
	"github.com/intervia/interview-api/internal/service"
)

type mockSeedService struct {
	lastToken string
	affected  int64
	err       error
}

func (m *mockSeedService) SeedQuestions(_ context.Context, token string, _ []dto.QuestionSeed) (int64, error) {
	m.lastToken = token
	return m.affected, m.err
}

func seedRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	payload := dto.SeedQuestionsRequest{Questions: []dto.QuestionSeed{{
		QuestionID:        "QB001",
		QuestionText:      "Explain B-tree indexes.",
		Domain:            "database",
		Difficulty:        "medium",
		ExpectedKeyPoints: []string{"Balanced tree", "Range scans"},
	}}}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/seed/questions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Seed-Token", token)
	}
	return req
}

func TestSeedHandler_Success(t *testing.T) {
	svc := &mockSeedService{affected: 1}
	app := fiber.New()
	handler.NewSeedHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/seed"))

	resp, err := app.Test(seedRequest(t, "secret"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "secret", svc.lastToken)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Affected int64 `json:"affected"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, int64(1), response.Data.Affected)
}

func TestSeedHandler_Forbidden(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "disabled", err: service.ErrSeedDisabled},
		{name: "bad token", err: service.ErrSeedUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockSeedService{err: tc.err}
			app := fiber.New()
			handler.NewSeedHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/seed"))

			resp, err := app.Test(seedRequest(t, "wrong"))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		})
	}
}
