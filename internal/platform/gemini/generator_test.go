package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interna-hq/interna-api/internal/platform/gemini"
)

func TestParseReview(t *testing.T) {
	t.Run("approved verdict on its own last line is stripped", func(t *testing.T) {
		result := gemini.ParseReview("Clean solution, nice error handling.\n\nAPPROVED")
		assert.True(t, result.Approved)
		assert.Equal(t, "Clean solution, nice error handling.", result.Feedback)
	})

	t.Run("rejected verdict", func(t *testing.T) {
		result := gemini.ParseReview("The loop leaks goroutines.\nNOT_APPROVED")
		assert.False(t, result.Approved)
		assert.Equal(t, "The loop leaks goroutines.", result.Feedback)
	})

	t.Run("lowercase verdict line still counts", func(t *testing.T) {
		result := gemini.ParseReview("Looks good.\napproved")
		assert.True(t, result.Approved)
		assert.Equal(t, "Looks good.", result.Feedback)
	})

	t.Run("verdict embedded mid-text keeps the full feedback", func(t *testing.T) {
		result := gemini.ParseReview("This is APPROVED because the tests pass.")
		assert.True(t, result.Approved)
		assert.Equal(t, "This is APPROVED because the tests pass.", result.Feedback)
	})

	t.Run("NOT_APPROVED anywhere wins over APPROVED substring", func(t *testing.T) {
		result := gemini.ParseReview("Good start but NOT_APPROVED yet, fix the nil check.")
		assert.False(t, result.Approved)
	})

	t.Run("verdict-only response gets placeholder feedback", func(t *testing.T) {
		result := gemini.ParseReview("APPROVED")
		assert.True(t, result.Approved)
		assert.Equal(t, "No detailed feedback.", result.Feedback)
	})

	t.Run("no verdict at all reads as not approved", func(t *testing.T) {
		result := gemini.ParseReview("Interesting approach, needs more tests.")
		assert.False(t, result.Approved)
		assert.Equal(t, "Interesting approach, needs more tests.", result.Feedback)
	})
}
