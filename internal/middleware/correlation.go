package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type correlationIDKey struct{}

var correlationKey = correlationIDKey{}

const correlationHeader = "X-Correlation-ID"

// CorrelationID ensures every request carries a correlation identifier.
// Incoming identifiers are trusted so a client can stitch a whole
// interview session together across requests; absent one, a fresh UUID
// is minted.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := firstHeader(c, correlationHeader, "X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals("correlation_id", id)
		c.Set(correlationHeader, id)
		c.SetUserContext(context.WithValue(c.Context(), correlationKey, id))

		return c.Next()
	}
}

func firstHeader(c *fiber.Ctx, names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(c.Get(name)); value != "" {
			return value
		}
	}
	return ""
}

// CorrelationIDFromContext extracts the correlation identifier from a
// context, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey).(string)
	return id
}

// GetCorrelationID returns the correlation identifier bound to the
// active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals("correlation_id").(string); ok && id != "" {
		return id
	}
	return CorrelationIDFromContext(c.Context())
}

// ContextWithCorrelation attaches the correlation identifier to the
// provided context, for work that outlives the request.
func ContextWithCorrelation(ctx context.Context, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	correlationID = strings.TrimSpace(correlationID)
	if correlationID == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey, correlationID)
}
