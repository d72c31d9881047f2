package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/cogtrain-backend/internal/apperr"
	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/identity"
	"github.com/xtding233/cogtrain-backend/internal/session"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{session.ErrSessionNotFound, http.StatusNotFound, apperr.CodeNotFound},
		{errors.Wrap(game.ErrUnknownGame, "start"), http.StatusBadRequest, apperr.CodeInvalidRequest},
		{session.ErrNotAwaiting, http.StatusConflict, apperr.CodeConflict},
		{identity.ErrIdentityUnavailable, http.StatusServiceUnavailable, apperr.CodeUnavailable},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "UNKNOWN_ERROR"},
		{errors.New("disk on fire"), http.StatusInternalServerError, apperr.CodeInternalError},
	}
	for _, c := range cases {
		re, _ := Translate(c.err)
		assert.Equal(t, c.status, re.Status, c.err.Error())
		assert.Equal(t, c.code, re.Code, c.err.Error())
	}
}

func TestTranslateKeepsSentinelMessage(t *testing.T) {
	re, known := Translate(identity.ErrUnknownPIN)
	assert.True(t, known)
	assert.Equal(t, identity.ErrUnknownPIN.Error(), re.Message)
	assert.NotEqual(t, re.Message, apperr.ErrNotFound.Message)
}

func TestErrorHandlerBody(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/invalid", func(ctx *fiber.Ctx) error {
		return apperr.NewInvalidViolations([]string{"age"})
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("secret detail")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apperr.CodeInvalidRequest, body["code"])
	assert.Equal(t, []any{"age"}, body["violations"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body["message"], "secret")
}
