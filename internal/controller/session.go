package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/pkg/flog"
	"github.com/xtding233/cogtrain-backend/internal/pkg/rekuest"
	"github.com/xtding233/cogtrain-backend/internal/server/svr"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

type Session struct {
	fx.In

	Manager *session.Manager
}

func RegisterSession(v1 *svr.V1, c Session) {
	v1.Get("/games", c.Games)

	sessions := v1.Group("/sessions")
	sessions.Post("/", c.Start)
	sessions.Get("/:id", c.View)
	sessions.Post("/:id/responses", c.Respond)
	sessions.Post("/:id/restart", c.Restart)
	sessions.Delete("/:id", c.Abort)
}

type StartSessionRequest struct {
	Game     string `json:"game" validate:"required"`
	PlayerID string `json:"playerId" validate:"max=64"`

	Goal    *int    `json:"goal" validate:"omitempty,min=1,max=100"`
	Instant bool    `json:"instant"`
	Seed    *uint64 `json:"seed"`
}

type RespondResult struct {
	Outcome session.Outcome `json:"outcome"`
	Session session.View    `json:"session"`
}

func (c Session) Games(ctx *fiber.Ctx) error {
	return ctx.JSON(game.Kinds())
}

func (c Session) Start(ctx *fiber.Ctx) error {
	var req StartSessionRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	s, err := c.Manager.Start(session.StartRequest{
		Game:     game.Kind(req.Game),
		PlayerID: req.PlayerID,
		Overrides: game.Overrides{
			Goal:    req.Goal,
			Instant: req.Instant,
		},
		Seed: req.Seed,
	})
	if err != nil {
		return err
	}

	flog.DebugFrom(ctx).
		Str("session", s.ID).
		Msg("session created")
	return ctx.Status(fiber.StatusCreated).JSON(s.View())
}

func (c Session) View(ctx *fiber.Ctx) error {
	s, err := c.Manager.Get(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(s.View())
}

func (c Session) Respond(ctx *fiber.Ctx) error {
	var resp session.Response
	if err := ctx.BodyParser(&resp); err != nil {
		return session.ErrInvalidResponse
	}

	out, view, err := c.Manager.Submit(ctx.Params("id"), resp)
	if err != nil {
		return err
	}

	return ctx.JSON(RespondResult{Outcome: out, Session: view})
}

func (c Session) Restart(ctx *fiber.Ctx) error {
	view, err := c.Manager.Restart(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(view)
}

func (c Session) Abort(ctx *fiber.Ctx) error {
	if err := c.Manager.Abort(ctx.Params("id")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
