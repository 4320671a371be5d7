package server

import (
	"errors"
	"log/slog"
	"os"

	"pricing-ai-gateway/internal/auth"
	"pricing-ai-gateway/internal/config"
	"pricing-ai-gateway/internal/handler"
	"pricing-ai-gateway/internal/logging"
	"pricing-ai-gateway/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Route는 게이트웨이 경로와 업스트림 경로의 한 쌍입니다.
type Route struct {
	Path       string
	TargetPath string
}

// ProxyRoutes are the POST endpoints forwarded to the pricing service.
var ProxyRoutes = []Route{
	{Path: "/api/analytics/compare", TargetPath: "/analytics/compare"},
	{Path: "/api/analytics/query", TargetPath: "/analytics/query"},
	{Path: "/api/segments/clients", TargetPath: "/segments/segments/clients"},
	{Path: "/api/clients/recurring", TargetPath: "/clients/recurring"},
}

func New(cfg *config.Config, fwd handler.Forwarder, log *slog.Logger) (*fiber.App, error) {
	log = logging.OrDiscard(log)

	verifier, err := auth.NewKeyVerifier(cfg.GatewayKey)
	if err != nil {
		return nil, err
	}

	// Fiber 앱 생성
	app := fiber.New(fiber.Config{
		AppName:               handler.ServiceName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())

	// CORS 미들웨어 설정
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, x-api-key",
	}))

	// 로깅 미들웨어 설정 (헤더와 본문은 기록하지 않음)
	if cfg.RequestLogging {
		app.Use(logger.New(logger.Config{
			Format:     "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			Output:     os.Stderr,
		}))
	}

	// Health check 엔드포인트
	app.Get("/", handler.Root())
	app.Get("/api/health", handler.Health())

	// 모든 프록시 경로에 같은 인증 정책 적용
	requireKey := middleware.APIKeyAuth(verifier, log)
	for _, r := range ProxyRoutes {
		app.Post(r.Path, requireKey, handler.ProxyToPricing(fwd, r.TargetPath, log))
	}

	return app, nil
}

func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(handler.ErrorResponse{Error: fe.Message})
		}

		log.Error("unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", middleware.RequestIDFrom(c),
			"error", err,
		)
		return handler.GatewayError(c, err)
	}
}
