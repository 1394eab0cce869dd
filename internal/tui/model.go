package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kitchen-dashboard/internal/kitchen/dashboard"
	"kitchen-dashboard/internal/kitchen/view"
)

const actionTimeout = 15 * time.Second

type Dashboard interface {
	Retry(ctx context.Context) dashboard.State
	MarkComplete(ctx context.Context, orderID int) dashboard.State
}

type stateMsg dashboard.State

type closedMsg struct{}

type clockMsg time.Time

type actionDoneMsg struct {
	state dashboard.State
}

// Model is the kitchen board. State arrives from the controller
// subscription; the model never fetches on its own.
type Model struct {
	dash    Dashboard
	updates <-chan dashboard.State
	opts    view.Options

	state    dashboard.State
	clock    time.Time
	selected int
	busy     bool
	width    int
}

func New(d Dashboard, updates <-chan dashboard.State, opts view.Options) Model {
	return Model{
		dash:    d,
		updates: updates,
		opts:    opts,
		state:   dashboard.State{Phase: dashboard.PhaseLoading},
		clock:   time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), m.tick())
}

func (m Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.updates
		if !ok {
			return closedMsg{}
		}
		return stateMsg(st)
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.accept(dashboard.State(msg))
		return m, m.waitForState()

	case closedMsg:
		return m, tea.Quit

	case clockMsg:
		m.clock = time.Time(msg)
		return m, m.tick()

	case actionDoneMsg:
		m.busy = false
		m.accept(msg.state)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.selected < m.orderCount()-1 {
				m.selected++
			}
			return m, nil

		case key.Matches(msg, keys.Retry):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.retry()

		case key.Matches(msg, keys.Complete):
			id, ok := m.selectedOrderID()
			if !ok || m.busy || m.state.Phase != dashboard.PhaseReady {
				return m, nil
			}
			m.busy = true
			return m, m.complete(id)
		}
	}

	return m, nil
}

// accept keeps the newest state. Subscription updates and action results
// can arrive in either order.
func (m *Model) accept(st dashboard.State) {
	if st.Seq < m.state.Seq {
		return
	}
	m.state = st
	if n := m.orderCount(); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

func (m Model) retry() tea.Cmd {
	d := m.dash
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{state: d.Retry(ctx)}
	}
}

func (m Model) complete(orderID int) tea.Cmd {
	d := m.dash
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{state: d.MarkComplete(ctx, orderID)}
	}
}

func (m Model) orderCount() int {
	if m.state.Snapshot == nil {
		return 0
	}
	return len(m.state.Snapshot.ActiveOrders)
}

func (m Model) selectedOrderID() (int, bool) {
	if m.selected < 0 || m.selected >= m.orderCount() {
		return 0, false
	}
	return m.state.Snapshot.ActiveOrders[m.selected].ID, true
}

func (m Model) View() string {
	d := view.Build(m.state, m.clock, m.opts)

	var sections []string
	switch {
	case d.Loading != nil:
		sections = append(sections, dimStyle.Render(d.Loading.Message))

	case d.Error != nil:
		sections = append(sections,
			errorTitleStyle.Render(d.Error.Title),
			d.Error.Message,
			dimStyle.Render("[r] "+d.Error.RetryLabel),
		)
		if d.Stale {
			sections = append(sections, "", staleStyle.Render("Showing last known orders"))
			sections = append(sections, m.renderBoard(d)...)
		}

	default:
		sections = append(sections, m.renderBoard(d)...)
	}

	if m.busy {
		sections = append(sections, dimStyle.Render("Updating..."))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderBoard(d view.Display) []string {
	var out []string

	if h := d.Header; h != nil {
		line := fmt.Sprintf("Kitchen Dashboard   Orders today %s   %s", h.TotalOrdersLabel, h.Clock)
		out = append(out, headerStyle.Width(max(m.width, lipgloss.Width(line)+2)).Render(line))
	}

	if q := d.Queue; q != nil {
		out = append(out, queueStyle.Render(strings.Join([]string{
			"Active calls " + pulse(q.ActiveCallsLabel, q.ActiveCallsPulse),
			"Waiting " + pulse(q.CustomersWaitingLabel, q.CustomersWaitingPulse),
			"Total " + q.TotalInQueueLabel,
			lipgloss.NewStyle().Foreground(tierColor(q.Tier)).Render(q.TierLabel),
		}, "  ·  ")))
	}

	if o := d.Orders; o != nil {
		out = append(out, titleStyle.Render(o.CountLabel))
		if o.Empty {
			out = append(out, dimStyle.Render(o.EmptyMessage))
		}
		for i, card := range o.Cards {
			out = append(out, renderCard(card, i == m.selected))
		}
	}

	return out
}

func renderCard(c view.OrderCard, selected bool) string {
	status := lipgloss.NewStyle().Bold(true).Foreground(classColor(c.StatusClass)).Render(strings.ToUpper(c.StatusLabel))
	first := fmt.Sprintf("%s  %s  %s", titleStyle.Render(c.Label), status, c.ElapsedLabel)
	if c.Urgent {
		first += "  " + urgentBadge.Render("URGENT")
	}

	fulfillment := c.OrderType
	if c.Pickup {
		fulfillment = "pickup"
	} else if c.Address != "" {
		fulfillment += ": " + c.Address
	}

	lines := []string{
		first,
		strings.Join([]string{c.CustomerName, c.Phone, fulfillment}, " · "),
		c.Items,
		dimStyle.Render(fmt.Sprintf("%s · placed %s · est %s", c.TotalPrice, c.PlacedAt, c.EstimatedTime)),
	}

	style := cardStyle
	if c.Urgent {
		style = style.BorderForeground(colorUrgent)
	}
	if selected {
		style = style.Border(lipgloss.ThickBorder())
		if !c.Urgent {
			style = style.BorderForeground(colorText)
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

func pulse(label string, active bool) string {
	if active {
		return pulseStyle.Render(label)
	}
	return label
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(keys.bindings()))
	for _, b := range keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
