package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListShowsDemos(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "tasks")
	assert.Contains(t, out, "stopwatch")
}

func TestRunUnknownDemo(t *testing.T) {
	_, err := execute(t, "run", "nope", "--delay", "0")
	assert.ErrorContains(t, err, `unknown demo "nope"`)
}

func TestRunStopwatchAdvances(t *testing.T) {
	out, err := execute(t, "run", "stopwatch", "--seconds", "2", "--delay", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello ripple: 0s")
	assert.Contains(t, out, "Hello ripple: 2s")
	// One frame per simulated second plus the initial mount.
	assert.Equal(t, 2, strings.Count(out, "---"))
}

func TestSnapshotTextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	_, err := execute(t, "snapshot", "tasks", "--format", "text", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"write spec"`)
}

func TestSnapshotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.png")
	_, err := execute(t, "snapshot", "counter", "--format", "png", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestSnapshotRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "snapshot", "counter", "--format", "svg")
	assert.ErrorContains(t, err, "invalid format")
}

func TestVersionPrintsVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ripple "+Version)
}

func TestStepClockFiresInOrder(t *testing.T) {
	clock := newStepClock()

	var events []string
	clock.TickEvery(time.Second, func() { events = append(events, "fast") })
	cancelSlow := clock.TickEvery(3*time.Second, func() { events = append(events, "slow") })

	clock.Advance(3 * time.Second)
	assert.Equal(t, []string{"fast", "fast", "fast", "slow"}, events)

	cancelSlow()
	events = nil
	clock.Advance(3 * time.Second)
	assert.Equal(t, []string{"fast", "fast", "fast"}, events)
}
