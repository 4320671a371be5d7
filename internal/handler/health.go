package handler

import "github.com/gofiber/fiber/v2"

const (
	HealthSource = "ai-gateway"
	ServiceName  = "pricing-ai-gateway"
)

type healthResponse struct {
	OK     bool   `json:"ok"`
	Source string `json:"source"`
}

type rootResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

func Health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(healthResponse{OK: true, Source: HealthSource})
	}
}

func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(rootResponse{OK: true, Service: ServiceName})
	}
}
