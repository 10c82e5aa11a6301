package controller

import (
	"context"
	"time"

	"menu-tree-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	ping PingFunc
}

func NewHealthController(ping PingFunc) IHealthController {
	return &healthController{ping: ping}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	if err := c.ping(pingCtx); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).
			JSON(serverutils.ErrorResponse(fiber.StatusServiceUnavailable, "Database unavailable"))
	}

	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{"status": "up"}))
}
