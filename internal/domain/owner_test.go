package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOwner_NormalizesEmail(t *testing.T) {
	o, err := NewOwner("Ada", "  Ada@Example.COM ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", o.Email)
	assert.NotNil(t, o.SnakeIDs)
	assert.NotNil(t, o.CageIDs)
}

func TestNewOwner_Validation(t *testing.T) {
	_, err := NewOwner(" ", "a@b.c", time.Now())
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = NewOwner("Ada", "   ", time.Now())
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestOwner_CloneIsDeep(t *testing.T) {
	o := &Owner{SnakeIDs: []string{"s1"}, CageIDs: []string{"c1"}}
	cp := o.Clone()
	cp.SnakeIDs[0] = "x"
	assert.Equal(t, "s1", o.SnakeIDs[0])
	assert.True(t, o.HasSnake("s1"))
	assert.False(t, o.HasSnake("x"))
}

func TestNewSnake(t *testing.T) {
	s, err := NewSnake("Kaa", "python", 4, false, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.MinCageSize())

	_, err = NewSnake("Kaa", "python", 0, false, time.Now())
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err        error
		notFound   bool
		validation bool
		conflict   bool
	}{
		{ErrOwnerNotFound, true, false, false},
		{ErrCageNotFound, true, false, false},
		{ErrInvalidDateRange, false, true, false},
		{ErrNoAvailability, false, false, true},
		{ErrAvailabilityConflict, false, false, true},
		{ErrEmailTaken, false, false, true},
		{ErrNotAuthenticated, false, false, false},
		{errors.New("other"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := errors.Join(errors.New("ctx"), tt.err)
			assert.Equal(t, tt.notFound, IsNotFoundError(wrapped))
			assert.Equal(t, tt.validation, IsValidationError(wrapped))
			assert.Equal(t, tt.conflict, IsConflictError(wrapped))
		})
	}
}
