package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-01-02", " 2024/01/02 ", "01/02/2024", "Jan 2 2024", "2024-01-02T00:00:00Z"} {
		t.Run(in, func(t *testing.T) {
			got, err := parseDate(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	_, err := parseDate("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    int
		wantErr error
	}{
		{"1", 3, 0, nil},
		{" 3 ", 3, 2, nil},
		{"0", 3, 0, ErrInvalidSelection},
		{"4", 3, 0, ErrInvalidSelection},
		{"1", 0, 0, ErrInvalidSelection},
		{"one", 3, 0, ErrInvalidInput},
	}

	for _, tt := range tests {
		got, err := parseSelection(tt.in, tt.n)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseYes(t *testing.T) {
	assert.True(t, parseYes("y"))
	assert.True(t, parseYes("Yes please"))
	assert.False(t, parseYes("n"))
	assert.False(t, parseYes(""))
	assert.False(t, parseYes("okay"))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": "", "g": ModeGuest, "Guest": ModeGuest, "h": ModeHost, "HOST": ModeHost} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("admin")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2", formatNumber(2))
	assert.Equal(t, "2.5", formatNumber(2.5))
}
