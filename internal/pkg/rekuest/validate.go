// Package rekuest decodes and validates request bodies.
package rekuest

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/cogtrain-backend/internal/apperr"
)

var (
	Validate   = validator.New()
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(Validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// Violations renders validation errors for clients.
func Violations(ve validator.ValidationErrors) []*ErrorResponse {
	out := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		out = append(out, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(translator),
		})
	}
	return out
}

// Invalid converts a validator error into an API error. Other errors pass through.
func Invalid(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return apperr.NewInvalidViolations(Violations(ve))
	}
	return err
}

// ValidBody parses the body of ctx into dest, which must be a pointer, and validates it.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apperr.ErrInvalidRequest.WithMessage("invalid request: %s", err)
	}
	return ValidStruct(dest)
}

func ValidStruct(dest any) error {
	if err := Validate.Struct(dest); err != nil {
		return Invalid(err)
	}
	return nil
}
