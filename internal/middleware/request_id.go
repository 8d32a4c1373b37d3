package middleware

import (
	"ReminderBot/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"time"
)

// RequestIDKey is the header and locals key carrying the per-request ULID.
const RequestIDKey = "X-Request-ID"

// NewRequestIDMiddleware honors a caller-supplied id and mints a ULID when
// the header is absent, echoing it back on the response.
func NewRequestIDMiddleware() fiber.Handler {
	ulids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)
		if requestID == "" {
			requestID, _ = ulids.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
