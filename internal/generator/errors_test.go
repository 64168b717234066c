package generator_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"unicode/utf8"
	"time"

	"github.com/stretchr/testify/assert"

	"fisionote/internal/generator"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	rlErr := generator.NewRateLimitError("claude", fmt.Errorf("rate limited"), 30)

	assert.Contains(t, rlErr.Error(), "claude")
	assert.Contains(t, rlErr.Error(), "rate limited")
	assert.Contains(t, rlErr.Error(), "30s")
}

func TestRateLimitError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	rlErr := generator.NewRateLimitError("gemini", underlying, 60)

	assert.Equal(t, underlying, errors.Unwrap(rlErr))
}

func TestRateLimitError_ErrorsAs(t *testing.T) {
	rlErr := generator.NewRateLimitError("claude", fmt.Errorf("rate limited"), 30)
	wrapped := fmt.Errorf("generate failed: %w", rlErr)

	var target *generator.RateLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "claude", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	rlErr := generator.NewRateLimitError("openai", fmt.Errorf("err"), 0)

	assert.Equal(t, 60*time.Second, rlErr.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, generator.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, generator.ParseRetryAfterHeader("30"))
	assert.Equal(t, 30, generator.ParseRetryAfterHeader(" 30 "))
	assert.Equal(t, 0, generator.ParseRetryAfterHeader("invalid"))
	assert.Equal(t, 0, generator.ParseRetryAfterHeader("-5"))
	assert.Equal(t, 120, generator.ParseRetryAfterHeader("120"))
}

func TestParseRetryAfterHeader_HTTPDate(t *testing.T) {
	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	secs := generator.ParseRetryAfterHeader(future)
	assert.InDelta(t, 90, secs, 2)

	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	assert.Equal(t, 0, generator.ParseRetryAfterHeader(past))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", generator.Truncate("abc", 5))
	assert.Equal(t, "ab...", generator.Truncate("abcdef", 2))
	assert.Equal(t, "...", generator.Truncate("abc", 0))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	// "ó" is two bytes; a cut after the first byte backs off to "dol".
	got := generator.Truncate("dolór lumbar", 4)

	assert.Equal(t, "dol...", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "dolór...", generator.Truncate("dolór lumbar", 6))
	for n := 0; n < len("Lasègue: señal"); n++ {
		assert.True(t, utf8.ValidString(generator.Truncate("Lasègue: señal", n)), "maxLen %d", n)
	}
}
