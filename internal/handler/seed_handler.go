package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/service"
	"github.com/intervia/interview-api/internal/utils"
)

// SeedHandler exposes tooling endpoints for seeding the question bank.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/questions", h.questions)
}

func (h *SeedHandler) questions(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload dto.SeedQuestionsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	affected, err := h.service.SeedQuestions(c.Context(), token, payload.Questions)
	if err != nil {
		return h.seedError(c, err)
	}

	return utils.SendSuccess(c, "questions seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) seedError(c *fiber.Ctx, err error) error {
	switch err {
	case service.ErrSeedDisabled:
		return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
	case service.ErrSeedUnauthorized:
		return utils.SendError(c, fiber.StatusForbidden, "invalid token")
	default:
		h.logger.Error().Err(err).Msg("seed operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
	}
}
