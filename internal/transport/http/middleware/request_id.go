package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID ensures every request carries an id for log correlation: taken
// from the configured header when present, generated otherwise, and stored on
// the user context under an unexported typed key.
func RequestID(header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqID string
		if header != "" {
			reqID = c.Get(header)
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey, reqID))
		return c.Next()
	}
}

// RequestIDFromCtx returns the request id set by RequestID, or "" when the
// middleware did not run.
func RequestIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.UserContext().Value(requestIDKey).(string)
	return id
}
