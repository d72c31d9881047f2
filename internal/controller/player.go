package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/identity"
	"github.com/xtding233/cogtrain-backend/internal/pkg/rekuest"
	"github.com/xtding233/cogtrain-backend/internal/server/svr"
)

type Player struct {
	fx.In

	Identity *identity.Service
}

func RegisterPlayer(v1 *svr.V1, c Player) {
	v1.Post("/players", c.Register)
	v1.Post("/players/login", c.Login)
}

type LoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

// Register creates a player and answers with the PIN to log in with.
func (c Player) Register(ctx *fiber.Ctx) error {
	var req identity.RegisterRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	p, err := c.Identity.Register(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(p)
}

func (c Player) Login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	p, err := c.Identity.Login(ctx.UserContext(), req.PIN)
	if err != nil {
		return err
	}

	return ctx.JSON(p)
}
