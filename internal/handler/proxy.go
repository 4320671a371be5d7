package handler

import (
	"context"
	"log/slog"
	"time"

	"pricing-ai-gateway/internal/logging"
	"pricing-ai-gateway/internal/middleware"
	"pricing-ai-gateway/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// Forwarder는 가격 서비스로 요청을 전달합니다. *upstream.Client가 구현합니다.
type Forwarder interface {
	Forward(ctx context.Context, method, path string, body []byte) (*upstream.Response, error)
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ProxyToPricing은 요청 본문을 한 번 버퍼링해 targetPath로 전달하고
// 업스트림의 상태 코드와 본문을 그대로 돌려줍니다.
func ProxyToPricing(fwd Forwarder, targetPath string, logger *slog.Logger) fiber.Handler {
	logger = logging.OrDiscard(logger).With("target_path", targetPath)

	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		body := c.Request().Body()

		resp, err := fwd.Forward(c.UserContext(), method, targetPath, body)
		if err != nil {
			logger.Error("gateway error",
				"method", method,
				"request_id", middleware.RequestIDFrom(c),
				"error", err,
			)
			return GatewayError(c, err)
		}

		logger.Debug("proxied request",
			"method", method,
			"request_id", middleware.RequestIDFrom(c),
			"request_bytes", len(body),
			"response_bytes", len(resp.Body),
			"status", resp.StatusCode,
			"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
		)

		// 업스트림 Content-Type과 관계없이 항상 JSON
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(resp.StatusCode).Send(resp.Body)
	}
}

// GatewayError writes the 500 envelope for any failure while proxying.
func GatewayError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:  "Gateway error",
		Detail: err.Error(),
	})
}
