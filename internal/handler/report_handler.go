package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/service"
	"github.com/intervia/interview-api/internal/utils"
)

// ReportHandler serves post-session analysis reports.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler builds a report handler instance.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/sessions/:id/report", h.get)
}

func (h *ReportHandler) get(c *fiber.Ctx) error {
	report, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "session not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("report generation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "report generation failed")
	}

	return utils.SendSuccess(c, "report generated", report)
}
