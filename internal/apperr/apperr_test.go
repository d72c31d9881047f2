package apperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, CodeInvalidRequest, "invalid request")
	changed := e.WithMessage("%s", "changed")

	assert.Equal(t, "invalid request", e.Message)
	assert.Equal(t, "changed", changed.Message)
	assert.Equal(t, e.Status, changed.Status)
}

func TestWithExtrasDoesNotLeak(t *testing.T) {
	v := NewInvalidViolations([]string{"name"})

	assert.Nil(t, ErrInvalidRequest.Extras)
	assert.Equal(t, []string{"name"}, v.Extras["violations"])

	more := v.WithExtras(Extras{"hint": "x"})
	assert.Len(t, v.Extras, 1)
	assert.Len(t, more.Extras, 2)
}

func TestError(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: resource not found with given parameters", ErrNotFound.Error())
}
