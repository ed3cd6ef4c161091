package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_StacksIndependently(t *testing.T) {
	n := NewNotifier(time.Millisecond)

	cmd1 := n.Info("first")
	cmd2 := n.Error("second")
	require.NotNil(t, cmd1)
	require.NotNil(t, cmd2)
	assert.Equal(t, 2, n.Len())

	// each entry carries its own timer
	msg1 := cmd1()
	assert.True(t, n.Update(msg1))
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "second", n.Items()[0].Message)
	assert.Equal(t, SeverityError, n.Items()[0].Severity)

	assert.True(t, n.Update(cmd2()))
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_NoCoalescing(t *testing.T) {
	n := NewNotifier(time.Millisecond)
	n.Success("same")
	n.Success("same")
	assert.Equal(t, 2, n.Len())
}

func TestNotifier_LateTimerAfterRemovalIsNoop(t *testing.T) {
	n := NewNotifier(time.Millisecond)
	cmd := n.Info("gone soon")
	n.Info("stays")

	n.Dismiss()
	require.Equal(t, 1, n.Len())

	n.Update(cmd())
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "stays", n.Items()[0].Message)
}

func TestNotifier_ClearThenExpire(t *testing.T) {
	n := NewNotifier(time.Millisecond)
	cmd := n.Error("boom")
	n.Clear()

	assert.True(t, n.Update(cmd()))
	assert.Equal(t, 0, n.Len())
	assert.Empty(t, n.View())
}

func TestNotifier_IgnoresOtherMessages(t *testing.T) {
	n := NewNotifier(time.Millisecond)
	n.Info("x")
	assert.False(t, n.Update("not an expiry"))
	assert.Equal(t, 1, n.Len())
}

func TestNotifier_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewNotifier(0).TTL())
}

func TestNotifier_View(t *testing.T) {
	n := NewNotifier(time.Millisecond)
	n.Success("File uploaded successfully as cat.png")
	n.Error("Failed to load buckets")

	view := n.View()
	assert.Contains(t, view, "cat.png")
	assert.Contains(t, view, "Failed to load buckets")
}
