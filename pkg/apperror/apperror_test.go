package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapToCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		kind   Kind
		code   Code
		status int
	}{
		{"validation", Validation("bad"), KindValidation, CodeInvalidParams, http.StatusBadRequest},
		{"internal", Internal("boom", nil), KindInternal, CodeInternalError, http.StatusInternalServerError},
		{"not found", NotFound("", nil), KindNotFound, CodeInternalError, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode)
		})
	}
	assert.Equal(t, -32602, int(CodeInvalidParams))
	assert.Equal(t, -32603, int(CodeInternalError))
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "Internal server error", Internal("", nil).Message)
	assert.Equal(t, "Resource not found", NotFound("", nil).Message)
}

func TestFromKeepsAppErrors(t *testing.T) {
	orig := Validation("Invalid age: Age must be 150 or less")
	wrapped := fmt.Errorf("workflow: %w", orig)

	got := From(wrapped, "ignored")
	require.Same(t, orig, got)
}

func TestFromWrapsForeignErrors(t *testing.T) {
	cause := errors.New("disk I/O error")

	got := From(cause, "Failed to save user")
	require.NotNil(t, got)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "Failed to save user", got.Message)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, From(nil, "x"))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(Validation("x"), KindValidation))
	assert.False(t, IsKind(Internal("x", nil), KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}
