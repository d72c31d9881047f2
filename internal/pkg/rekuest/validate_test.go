package rekuest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/cogtrain-backend/internal/apperr"
)

type sample struct {
	Name string `validate:"required"`
	Age  int    `validate:"min=1,max=120"`
}

func TestValidStruct(t *testing.T) {
	assert.NoError(t, ValidStruct(&sample{Name: "Ana", Age: 70}))

	err := ValidStruct(&sample{Age: 200})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.CodeInvalidRequest, ae.Code)

	violations, ok := ae.Extras["violations"].([]*ErrorResponse)
	require.True(t, ok)
	require.Len(t, violations, 2)
	assert.Equal(t, "sample.Name", violations[0].Field)
	assert.Equal(t, "required", violations[0].Violation)
	assert.Equal(t, "Name is a required field", violations[0].Message)
	assert.Equal(t, "max", violations[1].Violation)
}

func TestInvalidPassesOtherErrors(t *testing.T) {
	other := errors.New("other")
	assert.Same(t, other, Invalid(other))
}
