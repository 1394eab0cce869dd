// Package view turns a dashboard state into what the kitchen screens show.
package view

import (
	"fmt"
	"time"

	"kitchen-dashboard/internal/classify"
	"kitchen-dashboard/internal/domain"
	"kitchen-dashboard/internal/kitchen/dashboard"
)

const (
	ErrorTitle      = "Connection Error"
	RetryLabel      = "Retry Connection"
	LoadingMessage  = "Loading Kitchen Dashboard..."
	NoOrdersMessage = "No orders need preparation"
	CaughtUpMessage = "All caught up!"
)

type Options struct {
	// MaxItemsShown is passed to classify.ItemsSummary.
	MaxItemsShown int
	// ShowStaleOnError renders the last good snapshot under the error panel.
	ShowStaleOnError bool
}

func DefaultOptions() Options {
	return Options{MaxItemsShown: classify.DefaultMaxShown}
}

type Display struct {
	Phase     dashboard.Phase `json:"phase"`
	Loading   *LoadingPanel   `json:"loading,omitempty"`
	Error     *ErrorPanel     `json:"error,omitempty"`
	Stale     bool            `json:"stale"`
	Header    *Header         `json:"header,omitempty"`
	Queue     *QueuePanel     `json:"queue,omitempty"`
	Orders    *OrdersPanel    `json:"orders,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type LoadingPanel struct {
	Message string `json:"message"`
}

type ErrorPanel struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	RetryLabel string `json:"retryLabel"`
}

type Header struct {
	TotalOrdersToday int    `json:"totalOrdersToday"`
	TotalOrdersLabel string `json:"totalOrdersLabel"`
	Clock            string `json:"clock"`
}

type QueuePanel struct {
	ActiveCalls           int           `json:"activeCalls"`
	ActiveCallsLabel      string        `json:"activeCallsLabel"`
	ActiveCallsPulse      bool          `json:"activeCallsPulse"`
	CustomersWaiting      int           `json:"customersWaiting"`
	CustomersWaitingLabel string        `json:"customersWaitingLabel"`
	CustomersWaitingPulse bool          `json:"customersWaitingPulse"`
	TotalInQueue          int           `json:"totalInQueue"`
	TotalInQueueLabel     string        `json:"totalInQueueLabel"`
	Tier                  classify.Tier `json:"tier"`
	TierLabel             string        `json:"tierLabel"`
}

type OrdersPanel struct {
	Count        int         `json:"count"`
	CountLabel   string      `json:"countLabel"`
	Empty        bool        `json:"empty"`
	EmptyMessage string      `json:"emptyMessage,omitempty"`
	Cards        []OrderCard `json:"cards"`
}

type OrderCard struct {
	ID             int                  `json:"id"`
	Label          string               `json:"label"`
	KitchenStatus  domain.KitchenStatus `json:"kitchenStatus"`
	StatusLabel    string               `json:"statusLabel"`
	StatusClass    classify.VisualClass `json:"statusClass"`
	PlacedAt       string               `json:"placedAt"`
	ElapsedMinutes int                  `json:"elapsedMinutes"`
	ElapsedLabel   string               `json:"elapsedLabel"`
	Urgent         bool                 `json:"urgent"`
	CustomerName   string               `json:"customerName"`
	Phone          string               `json:"phone"`
	OrderType      string               `json:"orderType"`
	Address        string               `json:"address,omitempty"`
	Pickup         bool                 `json:"pickup"`
	Items          string               `json:"items"`
	TotalPrice     string               `json:"totalPrice"`
	EstimatedTime  string               `json:"estimatedTime"`
}

// Build is deterministic: equal inputs give equal displays.
func Build(st dashboard.State, now time.Time, opts Options) Display {
	d := Display{Phase: st.Phase, UpdatedAt: st.UpdatedAt}

	switch st.Phase {
	case dashboard.PhaseLoading:
		d.Loading = &LoadingPanel{Message: LoadingMessage}
		return d
	case dashboard.PhaseError:
		d.Error = &ErrorPanel{Title: ErrorTitle, Message: st.Message, RetryLabel: RetryLabel}
		if !opts.ShowStaleOnError || st.Snapshot == nil {
			return d
		}
		d.Stale = true
	}

	if st.Snapshot != nil {
		d.Header = buildHeader(st.Snapshot, now)
		d.Queue = buildQueue(st.Snapshot.CallQueue)
		d.Orders = buildOrders(st.Snapshot.ActiveOrders, now, opts)
	}
	return d
}

func buildHeader(s *domain.DashboardSnapshot, now time.Time) *Header {
	return &Header{
		TotalOrdersToday: s.TotalOrdersToday,
		TotalOrdersLabel: classify.PadCount(s.TotalOrdersToday, 3),
		Clock:            now.Format("15:04:05"),
	}
}

func buildQueue(q domain.CallQueue) *QueuePanel {
	total := q.TotalInQueue()
	tier := classify.QueueVolumeTier(total)
	return &QueuePanel{
		ActiveCalls:           q.ActiveCalls,
		ActiveCallsLabel:      classify.PadCount(q.ActiveCalls, 2),
		ActiveCallsPulse:      q.ActiveCalls > 0,
		CustomersWaiting:      q.CustomersWaiting,
		CustomersWaitingLabel: classify.PadCount(q.CustomersWaiting, 2),
		CustomersWaitingPulse: q.CustomersWaiting > 0,
		TotalInQueue:          total,
		TotalInQueueLabel:     classify.PadCount(total, 2),
		Tier:                  tier,
		TierLabel:             classify.TierLabel(tier),
	}
}

func buildOrders(orders []domain.Order, now time.Time, opts Options) *OrdersPanel {
	p := &OrdersPanel{
		Count:      len(orders),
		CountLabel: countLabel(len(orders)),
		Empty:      len(orders) == 0,
		Cards:      make([]OrderCard, 0, len(orders)),
	}
	if p.Empty {
		p.EmptyMessage = NoOrdersMessage
	}
	for _, o := range orders {
		p.Cards = append(p.Cards, buildCard(o, now, opts))
	}
	return p
}

func buildCard(o domain.Order, now time.Time, opts Options) OrderCard {
	elapsed := classify.ElapsedMinutes(o.Timestamp, now)
	card := OrderCard{
		ID:             o.ID,
		Label:          classify.OrderLabel(o.ID),
		KitchenStatus:  o.KitchenStatus,
		StatusLabel:    classify.StatusLabel(o.KitchenStatus),
		StatusClass:    classify.StatusVisualClass(o.KitchenStatus),
		PlacedAt:       o.Timestamp.In(now.Location()).Format("15:04"),
		ElapsedMinutes: elapsed,
		ElapsedLabel:   fmt.Sprintf("%dm ago", elapsed),
		Urgent:         classify.IsUrgent(elapsed),
		CustomerName:   o.CustomerName,
		Phone:          o.Phone,
		Items:          classify.ItemsSummary(o.Items, opts.MaxItemsShown).String(),
		TotalPrice:     "$" + o.TotalPrice.StringFixed(2),
		EstimatedTime:  o.EstimatedTime,
	}

	switch f := o.Fulfillment.(type) {
	case domain.Delivery:
		card.OrderType = f.OrderType()
		card.Address = f.Address
	case domain.Pickup:
		card.OrderType = f.OrderType()
		card.Pickup = true
	case nil:
	default:
		card.OrderType = f.OrderType()
	}
	return card
}

func countLabel(n int) string {
	if n == 1 {
		return "1 order pending"
	}
	return fmt.Sprintf("%d orders pending", n)
}
