package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dol/internal/driver"
)

func feed(t *testing.T, m tea.Model, msgs ...tea.Msg) *progressModel {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	pm, ok := m.(*progressModel)
	require.True(t, ok)
	return pm
}

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.dol", "b.dol"}, events)

	pm := feed(t, m,
		eventMsg{File: "a.dol", Stage: driver.StageAnalyze, Status: driver.StatusWorking},
		eventMsg{File: "b.dol", Stage: driver.StageLoad, Status: driver.StatusWorking},
	)
	assert.Equal(t, "analyzing", pm.items[0].status)
	assert.Equal(t, "loading", pm.items[1].status)
	assert.InDelta(t, 0.4, pm.percent(), 1e-9)

	pm = feed(t, pm,
		eventMsg{File: "a.dol", Stage: driver.StageAnalyze, Status: driver.StatusDone},
		eventMsg{File: "b.dol", Stage: driver.StageAnalyze, Status: driver.StatusError},
	)
	assert.Equal(t, 2, pm.finished())
	assert.Equal(t, 1, pm.failed)
	assert.InDelta(t, 1.0, pm.percent(), 1e-9)

	view := pm.View()
	assert.Contains(t, view, "checking (2/2)")
	assert.Contains(t, view, "done")
	assert.Contains(t, view, "error")
}

func TestProgressModelIgnoresUnknownAndLateEvents(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.dol"}, nil)
	pm := feed(t, m,
		eventMsg{File: "zzz.dol", Stage: driver.StageAnalyze, Status: driver.StatusError},
		eventMsg{File: "a.dol", Stage: driver.StageAnalyze, Status: driver.StatusDone, Cached: true},
		eventMsg{File: "a.dol", Stage: driver.StageAnalyze, Status: driver.StatusWorking},
	)
	assert.Equal(t, 0, pm.failed)
	assert.Equal(t, 1, pm.cached)
	assert.Equal(t, "cached", pm.items[0].status)
}

func TestProgressModelDone(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.dol"}, nil)
	next, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	pm := next.(*progressModel)
	assert.True(t, pm.done)
	view := pm.View()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(stripANSI(view)), "done: checking"), view)
	assert.Contains(t, view, "1 ok, 0 failed")
}

func TestProgressModelEmpty(t *testing.T) {
	m := NewProgressModel("nothing", nil, nil)
	assert.Empty(t, m.View())
}

func TestListenForEventClosed(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("x", []string{"a.dol"}, events).(*progressModel)
	msg := m.listenForEvent()()
	assert.IsType(t, doneMsg{}, msg)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "keep", truncate("keep", 0))
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')):
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}
