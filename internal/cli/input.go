package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidInput wraps input that cannot be parsed
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSelection is returned for a list number out of range
	ErrInvalidSelection = errors.New("invalid selection")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2 2006",
	"January 2 2006",
	time.RFC3339,
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, s)
	}
	return v, nil
}

// parseDate accepts the common date layouts. Results are UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date, use yyyy-mm-dd", ErrInvalidInput, s)
}

// parseYes treats anything starting with y as yes
func parseYes(s string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "y")
}

// parseSelection turns a 1-based list number into an index below n
func parseSelection(s string, n int) (int, error) {
	v, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("%w: choose a number between 1 and %d", ErrInvalidSelection, n)
	}
	return v - 1, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
