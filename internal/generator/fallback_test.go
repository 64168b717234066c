package generator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fisionote/internal/generator"
	"fisionote/internal/port"
	"fisionote/mocks"
)

var fallbackInput = port.GenerateInput{Transcript: "dolor lumbar", Specialty: "general", Locale: "es"}

func fallbackOutput(model string) *port.GenerateOutput {
	return &port.GenerateOutput{RawText: `{"plan":"x"}`, ModelUsed: model, PromptUsed: "test prompt"}
}

// fakeClock is a settable clock for circuit tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestFallbackGenerator_FirstSucceeds(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(fallbackOutput("gemini"), nil)

	fg := generator.NewFallbackGenerator([]port.NoteGenerator{g1, g2}, []string{"gemini", "claude"})

	result, err := fg.Generate(context.Background(), fallbackInput)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	g2.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestFallbackGenerator_FirstFails_SecondSucceeds(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, errors.New("generic error"))
	g2.On("Generate", mock.Anything, fallbackInput).Return(fallbackOutput("claude"), nil)

	fg := generator.NewFallbackGenerator([]port.NoteGenerator{g1, g2}, []string{"gemini", "claude"})

	result, err := fg.Generate(context.Background(), fallbackInput)

	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
}

func TestFallbackGenerator_TwoRateLimited_ThirdSucceeds(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g3 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("gemini", errors.New("429"), 60))
	g2.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 30))
	g3.On("Generate", mock.Anything, fallbackInput).Return(fallbackOutput("openai"), nil)

	fg := generator.NewFallbackGenerator(
		[]port.NoteGenerator{g1, g2, g3},
		[]string{"gemini", "claude", "openai"},
	)

	result, err := fg.Generate(context.Background(), fallbackInput)

	require.NoError(t, err)
	assert.Equal(t, "openai", result.ModelUsed)
}

func TestFallbackGenerator_AllRateLimited(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("gemini", errors.New("429"), 60))
	g2.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("claude", errors.New("429"), 30))

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	fg := generator.NewFallbackGenerator(
		[]port.NoteGenerator{g1, g2},
		[]string{"gemini", "claude"},
		generator.WithClock(clock.Now),
	)

	result, err := fg.Generate(context.Background(), fallbackInput)

	assert.Nil(t, result)
	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
}

func TestFallbackGenerator_AllFail_NonRateLimit(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, errors.New("error 1"))
	g2.On("Generate", mock.Anything, fallbackInput).Return(nil, errors.New("error 2"))

	fg := generator.NewFallbackGenerator([]port.NoteGenerator{g1, g2}, []string{"gemini", "claude"})

	result, err := fg.Generate(context.Background(), fallbackInput)

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "all generators failed")
	var rlErr *generator.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackGenerator_SkipsOpenCircuitUntilReset(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("gemini", errors.New("429"), 60)).Once()
	g2.On("Generate", mock.Anything, fallbackInput).Return(fallbackOutput("claude"), nil)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	fg := generator.NewFallbackGenerator(
		[]port.NoteGenerator{g1, g2},
		[]string{"gemini", "claude"},
		generator.WithClock(clock.Now),
	)

	result, err := fg.Generate(context.Background(), fallbackInput)
	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)

	// Circuit still open: g1 is skipped.
	clock.Advance(30 * time.Second)
	result, err = fg.Generate(context.Background(), fallbackInput)
	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
	g1.AssertNumberOfCalls(t, "Generate", 1)

	// Circuit closed: g1 is tried again.
	clock.Advance(31 * time.Second)
	g1.On("Generate", mock.Anything, fallbackInput).Return(fallbackOutput("gemini"), nil).Once()
	result, err = fg.Generate(context.Background(), fallbackInput)
	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
}

func TestFallbackGenerator_AllCircuitsOpen(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("gemini", errors.New("429"), 60)).Once()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	fg := generator.NewFallbackGenerator([]port.NoteGenerator{g1}, []string{"gemini"}, generator.WithClock(clock.Now))

	_, err := fg.Generate(context.Background(), fallbackInput)
	require.Error(t, err)

	clock.Advance(20 * time.Second)
	_, err = fg.Generate(context.Background(), fallbackInput)

	var rlErr *generator.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 40*time.Second, rlErr.RetryAfter)
	g1.AssertNumberOfCalls(t, "Generate", 1)
}

func TestFallbackGenerator_StopsOnCancelledContext(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)

	ctx, cancel := context.WithCancel(context.Background())
	g1.On("Generate", mock.Anything, fallbackInput).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)

	fg := generator.NewFallbackGenerator([]port.NoteGenerator{g1, g2}, []string{"gemini", "claude"})

	_, err := fg.Generate(ctx, fallbackInput)

	assert.ErrorIs(t, err, context.Canceled)
	g2.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestFallbackGenerator_ConcurrentSafety(t *testing.T) {
	g1 := new(mocks.MockNoteGenerator)
	g2 := new(mocks.MockNoteGenerator)
	g1.On("Generate", mock.Anything, fallbackInput).Return(nil, generator.NewRateLimitError("gemini", errors.New("429"), 5)).Maybe()
	g2.On("Generate", mock.Anything, fallbackInput).Return(fallbackOutput("claude"), nil).Maybe()

	fg := generator.NewFallbackGenerator([]port.NoteGenerator{g1, g2}, []string{"gemini", "claude"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := fg.Generate(context.Background(), fallbackInput)
			assert.NoError(t, err)
			assert.NotNil(t, result)
		}()
	}
	wg.Wait()
}
