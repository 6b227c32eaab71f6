package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("amount must be greater than 0")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "amount must be greater than 0", err.Error())

	wrapped := fmt.Errorf("create failed: %w", err)
	assert.True(t, IsValidation(wrapped))

	assert.False(t, IsValidation(errors.New("boom")))
	assert.False(t, IsValidation(ErrNotFound))
}

func TestClassifyStorage(t *testing.T) {
	tests := []struct {
		code    string
		message string
	}{
		{"23505", "a record with the same value already exists"},
		{"23503", "referenced record does not exist"},
		{"23502", "a required field is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := ClassifyStorage(&pgconn.PgError{Code: tt.code})
			assert.True(t, IsConstraint(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	t.Run("wrapped pg error is recognized", func(t *testing.T) {
		err := ClassifyStorage(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}))
		assert.True(t, IsConstraint(err))
	})

	t.Run("unrelated pg code passes through", func(t *testing.T) {
		orig := &pgconn.PgError{Code: "42P01"}
		assert.Equal(t, error(orig), ClassifyStorage(orig))
	})

	t.Run("non pg error passes through", func(t *testing.T) {
		orig := errors.New("connection refused")
		assert.Equal(t, orig, ClassifyStorage(orig))
		assert.False(t, IsConstraint(orig))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, ClassifyStorage(nil))
	})
}
