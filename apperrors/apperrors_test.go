package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	err := Validation("field %s is bad", "title")
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "field title is bad", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)

	assert.Equal(t, http.StatusNotFound, NotFound("gone").Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("no").Status)
	assert.Equal(t, http.StatusConflict, AlreadyAssigned("taken").Status)
	assert.Equal(t, http.StatusConflict, AlreadyApproved("done").Status)
	assert.Equal(t, http.StatusConflict, AlreadySigned("signed").Status)
	assert.Equal(t, http.StatusConflict, RequestExists("dup").Status)
	assert.Equal(t, http.StatusInternalServerError, Server(errors.New("boom")).Status)
}

func TestErrorString(t *testing.T) {
	err := NotFound("case %q not found", "KDH/2026/001")
	assert.Equal(t, `NOT_FOUND: case "KDH/2026/001" not found`, err.Error())
}

func TestIsConflict(t *testing.T) {
	assert.True(t, AlreadyAssigned("x").IsConflict())
	assert.True(t, AlreadyApproved("x").IsConflict())
	assert.True(t, AlreadySigned("x").IsConflict())
	assert.True(t, RequestExists("x").IsConflict())
	assert.False(t, Validation("x").IsConflict())
	assert.False(t, NotFound("x").IsConflict())
}

func TestFrom(t *testing.T) {
	original := Forbidden("no entry")
	assert.Same(t, original, From(original))

	// Wrapped AppErrors are still recognized
	wrapped := fmt.Errorf("pipeline: %w", original)
	assert.Same(t, original, From(wrapped))

	// Unknown errors become SERVER_ERROR
	unknown := From(errors.New("disk on fire"))
	assert.Equal(t, CodeServer, unknown.Code)
	assert.Equal(t, "disk on fire", unknown.Message)
}

func TestHasCode(t *testing.T) {
	err := RequestExists("pending bid")
	assert.True(t, HasCode(err, CodeRequestExists))
	assert.False(t, HasCode(err, CodeAlreadyAssigned))
	assert.False(t, HasCode(errors.New("plain"), CodeServer))
	assert.True(t, HasCode(fmt.Errorf("wrap: %w", err), CodeRequestExists))
}
