package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a per-client rate limiter middleware instance.
// Clients are keyed by candidate identifier when the request carries
// one, otherwise by IP.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			client := strings.TrimSpace(c.Get("X-Candidate-ID"))
			if client == "" {
				client = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, client)
		},
	})
}
