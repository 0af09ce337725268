package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/service"
	"github.com/intervia/interview-api/internal/utils"
)

// InterviewHandler manages the session lifecycle endpoints.
type InterviewHandler struct {
	service service.InterviewService
	logger  zerolog.Logger
}

// NewInterviewHandler builds an interview handler instance.
func NewInterviewHandler(service service.InterviewService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/sessions", h.start)
	router.Post("/sessions/evaluate", h.evaluate)
	router.Post("/sessions/end", h.end)
	router.Get("/sessions/:id", h.get)
	router.Get("/candidates/:id/sessions", h.list)
	router.Get("/candidates/:id/evaluations", h.history)
}

func (h *InterviewHandler) start(c *fiber.Ctx) error {
	var payload dto.StartSessionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Start(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session started", response)
}

func (h *InterviewHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.EvaluateAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.EvaluateAnswer(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "answer evaluated", response)
}

func (h *InterviewHandler) end(c *fiber.Ctx) error {
	var payload dto.EndSessionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.SessionID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "session_id is required")
	}

	response, err := h.service.End(c.Context(), payload.SessionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session ended", response)
}

func (h *InterviewHandler) get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "session retrieved", detail)
}

func (h *InterviewHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	sessions, err := h.service.ListByCandidate(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "sessions retrieved", sessions)
}

func (h *InterviewHandler) history(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	history, err := h.service.EvaluationHistory(c.Context(), c.Params("id"), limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluations retrieved", history)
}

func (h *InterviewHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrSessionNotActive):
		return utils.SendError(c, fiber.StatusConflict, "session is not active")
	case errors.Is(err, service.ErrCandidateHasActiveSession):
		return utils.SendError(c, fiber.StatusConflict, "candidate already has an active session")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "question is not the session's current question")
	case errors.Is(err, service.ErrAnswerAlreadySubmitted):
		return utils.SendError(c, fiber.StatusConflict, "answer already submitted")
	case errors.Is(err, service.ErrNoQuestionAvailable):
		return utils.SendError(c, fiber.StatusNotFound, "no question available")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("interview operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "interview operation failed")
	}
}
