package httpserver

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/cogtrain-backend/internal/apperr"
	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/identity"
	"github.com/xtding233/cogtrain-backend/internal/pkg/rekuest"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

// domainErrors maps the sentinel errors of the engine onto API errors.
// The message of the sentinel is what the client sees.
var domainErrors = []struct {
	target error
	api    *apperr.Error
}{
	{session.ErrSessionNotFound, apperr.ErrNotFound},
	{game.ErrUnknownGame, apperr.ErrInvalidRequest},
	{session.ErrInvalidResponse, apperr.ErrInvalidRequest},
	{session.ErrNotAwaiting, apperr.ErrConflict},
	{session.ErrSessionComplete, apperr.ErrConflict},
	{session.ErrAlreadyStarted, apperr.ErrConflict},
	{session.ErrSessionAborted, apperr.ErrConflict},
	{identity.ErrInvalidPIN, apperr.ErrInvalidRequest},
	{identity.ErrUnknownPIN, apperr.ErrNotFound},
	{identity.ErrPINSpaceExhausted, apperr.ErrUnavailable},
	{identity.ErrIdentityUnavailable, apperr.ErrUnavailable},
}

func handleAppError(ctx *fiber.Ctx, e *apperr.Error) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.Code,
		"message": e.Message,
	}
	for k, v := range e.Extras {
		body[k] = v
	}

	return ctx.Status(e.Status).JSON(body)
}

// Translate returns the API error err stands for. Unknown errors become an
// internal error without leaking their message.
func Translate(err error) (*apperr.Error, bool) {
	var ae *apperr.Error
	if errors.As(rekuest.Invalid(err), &ae) {
		return ae, true
	}
	for _, d := range domainErrors {
		if errors.Is(err, d.target) {
			return d.api.WithMessage("%s", err.Error()), true
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		re := apperr.New(fe.Code, "UNKNOWN_ERROR", fe.Message)
		return re, true
	}
	return apperr.ErrInternalError, false
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	re, known := Translate(err)
	if !known {
		log.Error().
			Stack().
			Err(err).
			Str("method", ctx.Method()).
			Str("path", ctx.Path()).
			Int("status", re.Status).
			Msg("Internal Server Error")
	}

	return handleAppError(ctx, re)
}
