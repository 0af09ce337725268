package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/intervia/interview-api/internal/conversation"
	"github.com/intervia/interview-api/internal/dto"
	"github.com/intervia/interview-api/internal/observability"
	"github.com/intervia/interview-api/internal/utils"
)

// adaptiveCookie keys the conversational flow. The cookie carries an
// opaque token only; all state lives server-side.
const adaptiveCookie = "adaptive_sid"

// AdaptiveHandler exposes the cookie-keyed conversational interview flow.
type AdaptiveHandler struct {
	service   *conversation.Service
	cookieTTL time.Duration
	logger    zerolog.Logger
}

// NewAdaptiveHandler builds an adaptive conversation handler.
func NewAdaptiveHandler(service *conversation.Service, cookieTTL time.Duration, logger zerolog.Logger) *AdaptiveHandler {
	if cookieTTL <= 0 {
		cookieTTL = time.Hour
	}
	return &AdaptiveHandler{
		service:   service,
		cookieTTL: cookieTTL,
		logger:    logger.With().Str("component", "adaptive_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdaptiveHandler) Register(router fiber.Router) {
	router.Post("/adaptive", h.turn)
}

func (h *AdaptiveHandler) turn(c *fiber.Ctx) error {
	var payload dto.AdaptiveTurnRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	token := c.Cookies(adaptiveCookie)
	kind := "turn"
	if token == "" {
		token = uuid.NewString()
		kind = "start"
		c.Cookie(&fiber.Cookie{
			Name:     adaptiveCookie,
			Value:    token,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(h.cookieTTL),
		})
	}

	result, err := h.service.HandleTurn(c.Context(), token, payload.Answer)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("adaptive turn failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "adaptive turn failed")
	}

	observability.ConversationTurns().WithLabelValues(kind).Inc()
	return utils.SendSuccess(c, "turn handled", result)
}
