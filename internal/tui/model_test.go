package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-dashboard/internal/kitchen/dashboard"
	"kitchen-dashboard/internal/kitchen/view"
	"kitchen-dashboard/internal/testutil"
)

type mockDashboard struct {
	retryFunc        func(ctx context.Context) dashboard.State
	markCompleteFunc func(ctx context.Context, orderID int) dashboard.State
}

func (m *mockDashboard) Retry(ctx context.Context) dashboard.State {
	return m.retryFunc(ctx)
}

func (m *mockDashboard) MarkComplete(ctx context.Context, orderID int) dashboard.State {
	return m.markCompleteFunc(ctx, orderID)
}

var now = time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

func readyState(seq uint64) dashboard.State {
	snap := testutil.SampleSnapshot(now)
	return dashboard.State{Phase: dashboard.PhaseReady, Snapshot: &snap, Seq: seq}
}

func newTestModel(d Dashboard) (Model, chan dashboard.State) {
	updates := make(chan dashboard.State, 1)
	m := New(d, updates, view.DefaultOptions())
	m.clock = now
	return m, updates
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestModel_LoadingView(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})

	assert.Contains(t, m.View(), view.LoadingMessage)
}

func TestModel_RendersReadyBoard(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})
	m, cmd := update(t, m, stateMsg(readyState(1)))
	assert.NotNil(t, cmd, "model keeps listening for updates")

	out := m.View()
	assert.Contains(t, out, "Orders today 012")
	assert.Contains(t, out, "18:30:00")
	assert.Contains(t, out, "Busy period")
	assert.Contains(t, out, "2 orders pending")
	assert.Contains(t, out, "#042")
	assert.Contains(t, out, "IN PREPARATION")
	assert.Contains(t, out, "URGENT")
	assert.Contains(t, out, "delivery: 12 Elm St")
	assert.Contains(t, out, "2x Margherita, 1x Garlic Bread, +1 more")
	assert.Contains(t, out, "#043")
	assert.Contains(t, out, "pickup")
}

func TestModel_ErrorView(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})
	m, _ = update(t, m, stateMsg(dashboard.State{Phase: dashboard.PhaseError, Message: dashboard.MessageFetchFailed, Seq: 1}))

	out := m.View()
	assert.Contains(t, out, view.ErrorTitle)
	assert.Contains(t, out, dashboard.MessageFetchFailed)
	assert.Contains(t, out, view.RetryLabel)
	assert.NotContains(t, out, "#042")
}

func TestModel_CompleteSelectedOrder(t *testing.T) {
	var got int
	d := &mockDashboard{markCompleteFunc: func(ctx context.Context, orderID int) dashboard.State {
		got = orderID
		st := readyState(3)
		st.Snapshot.ActiveOrders = st.Snapshot.ActiveOrders[:1]
		return st
	}}
	m, _ := newTestModel(d)
	m, _ = update(t, m, stateMsg(readyState(1)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	m, cmd := update(t, m, runeKey("c"))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Updating...")

	m, _ = update(t, m, cmd())
	assert.Equal(t, 43, got)
	assert.False(t, m.busy)
	assert.Equal(t, 0, m.selected, "selection is clamped to the remaining orders")
	assert.Contains(t, m.View(), "1 order pending")
}

func TestModel_CompleteIgnoredWhileBusyOrNotReady(t *testing.T) {
	d := &mockDashboard{markCompleteFunc: func(ctx context.Context, orderID int) dashboard.State {
		t.Fatal("MarkComplete must not be called")
		return dashboard.State{}
	}}
	m, _ := newTestModel(d)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "nothing to complete while loading")

	m, _ = update(t, m, stateMsg(readyState(1)))
	m.busy = true
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestModel_Retry(t *testing.T) {
	calls := 0
	d := &mockDashboard{retryFunc: func(ctx context.Context) dashboard.State {
		calls++
		return readyState(2)
	}}
	m, _ := newTestModel(d)
	m, _ = update(t, m, stateMsg(dashboard.State{Phase: dashboard.PhaseError, Message: dashboard.MessageFetchFailed, Seq: 1}))

	m, cmd := update(t, m, runeKey("r"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, 1, calls)
	assert.Equal(t, dashboard.PhaseReady, m.state.Phase)
}

func TestModel_IgnoresOlderState(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})
	m, _ = update(t, m, stateMsg(readyState(5)))

	m, _ = update(t, m, actionDoneMsg{state: dashboard.State{Phase: dashboard.PhaseError, Seq: 4}})

	assert.Equal(t, dashboard.PhaseReady, m.state.Phase)
	assert.Equal(t, uint64(5), m.state.Seq)
}

func TestModel_SelectionBounds(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})
	m, _ = update(t, m, stateMsg(readyState(1)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)

	m, _ = update(t, m, runeKey("j"))
	m, _ = update(t, m, runeKey("j"))
	assert.Equal(t, 1, m.selected)

	m, _ = update(t, m, runeKey("k"))
	assert.Equal(t, 0, m.selected)
}

func TestModel_WaitForState(t *testing.T) {
	m, updates := newTestModel(&mockDashboard{})

	updates <- readyState(1)
	msg := m.waitForState()()
	st, ok := msg.(stateMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(1), st.Seq)

	close(updates)
	msg = m.waitForState()()
	_, cmd := update(t, m, msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ClockTick(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})
	m, _ = update(t, m, stateMsg(readyState(1)))

	later := now.Add(90 * time.Second)
	m, cmd := update(t, m, clockMsg(later))

	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "18:31:30")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(&mockDashboard{})

	_, cmd := update(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
