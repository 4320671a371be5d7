package middleware

import (
	"log/slog"

	"pricing-ai-gateway/internal/auth"
	"pricing-ai-gateway/internal/logging"

	"github.com/gofiber/fiber/v2"
)

type Verifier interface {
	Verify(presented string) bool
}

// APIKeyAuth는 x-api-key 헤더가 공유 키와 일치하지 않으면 401로 응답하고 다음 핸들러를 호출하지 않습니다.
func APIKeyAuth(verifier Verifier, logger *slog.Logger) fiber.Handler {
	logger = logging.OrDiscard(logger)

	return func(c *fiber.Ctx) error {
		// OPTIONS 메서드는 인증 없이 통과
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		presented := c.Get(auth.HeaderAPIKey)
		if !verifier.Verify(presented) {
			logger.Warn("unauthorized request",
				"method", c.Method(),
				"path", c.Path(),
				"key_present", presented != "",
				"request_id", requestID(c),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
