package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/intervia/interview-api/internal/conversation"
	"github.com/intervia/interview-api/internal/handler"
	"github.com/intervia/interview-api/internal/models"
)

func newAdaptiveApp(t *testing.T) *fiber.App {
	t.Helper()

	// Nil generator and evaluator exercise the local fallbacks, so no
	// external calls happen in tests.
	svc := conversation.NewService(
		conversation.NewMemoryStore(time.Hour),
		nil,
		nil,
		rand.New(rand.NewSource(1)),
		conversation.Config{StartDifficulty: models.DifficultyEasy},
		zerolog.New(io.Discard),
	)

	app := fiber.New()
	handler.NewAdaptiveHandler(svc, time.Hour, zerolog.New(io.Discard)).Register(app.Group("/api/v1/interview"))
	return app
}

type adaptiveResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Evaluation   *string `json:"evaluation"`
		NextQuestion struct {
			Problem      string `json:"problem"`
			InputFormat  string `json:"input_format"`
			OutputFormat string `json:"output_format"`
			Constraints  string `json:"constraints"`
			Example      string `json:"example"`
			Difficulty   string `json:"difficulty"`
		} `json:"next_question"`
	} `json:"data"`
}

func adaptiveCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "adaptive_sid" {
			return cookie
		}
	}
	return nil
}

func TestAdaptiveHandler_FirstTurnMintsCookie(t *testing.T) {
	app := newAdaptiveApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/adaptive", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := adaptiveCookie(t, resp)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	var response adaptiveResponse
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Nil(t, response.Data.Evaluation)
	require.NotEmpty(t, response.Data.NextQuestion.Problem)
	require.Equal(t, "Easy", response.Data.NextQuestion.Difficulty)
}

func TestAdaptiveHandler_SecondTurnGradesAnswer(t *testing.T) {
	app := newAdaptiveApp(t)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/interview/adaptive", nil)
	firstResp, err := app.Test(first)
	require.NoError(t, err)
	cookie := adaptiveCookie(t, firstResp)
	require.NotNil(t, cookie)

	body, err := json.Marshal(map[string]string{"answer": "A concept definition with an example of use cases."})
	require.NoError(t, err)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/interview/adaptive", bytes.NewReader(body))
	second.Header.Set("Content-Type", "application/json")
	second.AddCookie(cookie)

	secondResp, err := app.Test(second)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, secondResp.StatusCode)

	// The token already exists, so no fresh cookie is issued.
	require.Nil(t, adaptiveCookie(t, secondResp))

	var response adaptiveResponse
	decodeResponse(t, secondResp, &response)

	require.NotNil(t, response.Data.Evaluation)
	require.NotEmpty(t, *response.Data.Evaluation)
	require.NotEmpty(t, response.Data.NextQuestion.Problem)
}
