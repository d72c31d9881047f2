package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/server/svr"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

type Meta struct {
	fx.In

	Manager *session.Manager
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/health", c.Health)
}

func (c Meta) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":   "ok",
		"sessions": c.Manager.Len(),
	})
}
