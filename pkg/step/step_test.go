package step_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepin-autotest/funnylog2/pkg/step"
)

func TestDefault_NoopWhenUnset(t *testing.T) {
	r := step.Default()
	require.NotNil(t, r)

	scope := r.StartStep("anything", step.Params{"a": "1"})
	require.NotNil(t, scope)
	assert.NotPanics(t, scope.End)
}

func TestSetDefault(t *testing.T) {
	rec := &step.Recorder{}
	step.SetDefault(rec)
	t.Cleanup(func() { step.SetDefault(nil) })

	step.Default().StartStep("recorded", nil).End()

	steps := rec.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, "recorded", steps[0].Title)

	// Nil restores the no-op default.
	step.SetDefault(nil)
	assert.IsType(t, step.NoopReporter{}, step.Default())
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := &step.Recorder{}

	params := step.Params{"a": "2", "b": "3"}
	scope := rec.StartStep("Adds 2 and 3", params)

	// Mutating the caller's map after the fact must not alter the record.
	params["a"] = "changed"

	steps := rec.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, "Adds 2 and 3", steps[0].Title)
	assert.Equal(t, "2", steps[0].Params["a"])
	assert.False(t, steps[0].Finished)
	assert.NotEmpty(t, steps[0].ID)

	scope.End()

	steps = rec.Steps()
	assert.True(t, steps[0].Finished)
	assert.False(t, steps[0].Ended.Before(steps[0].Started))

	rec.Reset()
	assert.Empty(t, rec.Steps())
}

func TestLogReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scope := step.LogReporter{Logger: log}.StartStep("open settings", step.Params{"page": "display"})
	scope.End()

	out := buf.String()
	assert.Contains(t, out, "step started")
	assert.Contains(t, out, "step finished")
	assert.Contains(t, out, "open settings")
	assert.Contains(t, out, "page=display")
}
