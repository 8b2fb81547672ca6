package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Config struct {
	MaxTranscriptLength int
	MaxMessageLength    int
	Logger              *zap.Logger
}

// Middleware enforces presence and size limits on the two free-text
// request bodies before they reach the handlers: pasted transcripts and
// practice messages. Oversized LLM input is a cost problem, not just a
// UX one.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxTranscriptLength == 0 {
		cfg.MaxTranscriptLength = 100_000
	}
	if cfg.MaxMessageLength == 0 {
		cfg.MaxMessageLength = 4_000
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.Contains(contentType, "application/json") {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"error": "Unsupported content type",
			})
		}

		path := c.Path()

		var field string
		var maxLen int
		switch {
		case strings.HasSuffix(path, "/evaluate"):
			field, maxLen = "transcript", cfg.MaxTranscriptLength
		case strings.Contains(path, "/messages"):
			field, maxLen = "content", cfg.MaxMessageLength
		default:
			return c.Next()
		}

		var req map[string]interface{}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON format",
			})
		}

		value, ok := req[field].(string)
		if !ok || strings.TrimSpace(value) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": field + " is required and must be a string",
			})
		}

		if len(value) > maxLen {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Request body field over limit",
					zap.String("field", field),
					zap.Int("length", len(value)),
					zap.String("ip", c.IP()),
				)
			}
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": field + " exceeds maximum length",
			})
		}

		return c.Next()
	}
}
