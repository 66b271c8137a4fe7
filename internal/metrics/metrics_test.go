package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	counters  []string
	durations []string
	labels    []Labels
	flushed   int
}

func (c *capture) IncCounter(name string, delta float64, labels Labels) {
	c.counters = append(c.counters, name)
	c.labels = append(c.labels, labels)
}

func (c *capture) ObserveDuration(name string, value float64, labels Labels) {
	c.durations = append(c.durations, name)
}

func (c *capture) Flush() error {
	c.flushed++
	return nil
}

// swap installs b for the duration of the test and restores the nop
// backend afterwards; the backend is package-global state.
func swap(t *testing.T, b Backend) {
	t.Helper()
	SetBackend(b)
	t.Cleanup(func() { SetBackend(nopBackend{}) })
}

func TestRecordStep(t *testing.T) {
	c := &capture{}
	swap(t, c)

	RecordStep("run-1", "dates", nil, 5*time.Millisecond)
	RecordStep("run-1", "dedup", errors.New("boom"), time.Millisecond)

	require.Len(t, c.counters, 2)
	assert.Equal(t, "salesetl_stage_total", c.counters[0])
	assert.Equal(t, "success", c.labels[0]["status"])
	assert.Equal(t, "failure", c.labels[1]["status"])
	assert.Equal(t, []string{"salesetl_stage_duration_seconds", "salesetl_stage_duration_seconds"}, c.durations)
}

func TestRecordRow(t *testing.T) {
	c := &capture{}
	swap(t, c)

	RecordRow("run-1", "output", 42)
	RecordRow("run-1", "dropped", 0)
	RecordRow("run-1", "dropped", -1)

	require.Len(t, c.counters, 1, "zero and negative deltas are skipped")
	assert.Equal(t, "output", c.labels[0]["kind"])
}

func TestSetBackend_NilKeepsCurrent(t *testing.T) {
	c := &capture{}
	swap(t, c)
	SetBackend(nil)

	RecordRow("run-1", "output", 1)
	assert.Len(t, c.counters, 1)
}

func TestFlushDelegates(t *testing.T) {
	c := &capture{}
	swap(t, c)
	require.NoError(t, Flush())
	assert.Equal(t, 1, c.flushed)
}
