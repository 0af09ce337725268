package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends a 200 response with the standard envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success envelope with an explicit HTTP
// status, e.g. 201 for session creation.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return send(c, status, APIResponse{
		Success: true,
		Data:    data,
		Message: orDefault(message, "success"),
	})
}

// SendError sends a failure envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	return send(c, status, APIResponse{
		Success: false,
		Message: orDefault(message, "error"),
	})
}

func send(c *fiber.Ctx, status int, body APIResponse) error {
	return c.Status(status).JSON(body)
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
