package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kitchen-dashboard/internal/domain"
	"kitchen-dashboard/internal/dto"
)

// FakeBackend serves the kitchen backend API from memory. Completing an order
// removes it from the active list.
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	snapshot   domain.DashboardSnapshot
	failStatus int
	completed  []int

	DashboardCalls atomic.Int64
	CompleteCalls  atomic.Int64
}

// NewFakeBackend starts a backend seeded with snapshot and closes it when the
// test ends.
func NewFakeBackend(t *testing.T, snapshot domain.DashboardSnapshot) *FakeBackend {
	t.Helper()

	b := &FakeBackend{snapshot: snapshot}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard", b.handleDashboard)
	mux.HandleFunc("POST /api/orders/{id}/complete", b.handleComplete)
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)

	return b
}

func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// FailWith makes every endpoint answer with status until reset with 0.
func (b *FakeBackend) FailWith(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
}

func (b *FakeBackend) SetSnapshot(s domain.DashboardSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = s
}

func (b *FakeBackend) Completed() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.completed...)
}

func (b *FakeBackend) handleDashboard(w http.ResponseWriter, r *http.Request) {
	b.DashboardCalls.Add(1)

	b.mu.Lock()
	status, snap := b.failStatus, b.snapshot
	b.mu.Unlock()

	if status != 0 {
		http.Error(w, "backend unavailable", status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.FromDomain(snap))
}

func (b *FakeBackend) handleComplete(w http.ResponseWriter, r *http.Request) {
	b.CompleteCalls.Add(1)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failStatus != 0 {
		http.Error(w, "backend unavailable", b.failStatus)
		return
	}

	remaining := make([]domain.Order, 0, len(b.snapshot.ActiveOrders))
	found := false
	for _, o := range b.snapshot.ActiveOrders {
		if o.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, o)
	}
	if !found {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	b.snapshot.ActiveOrders = remaining
	b.completed = append(b.completed, id)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true}`))
}

// SampleSnapshot is a small, busy kitchen: one urgent delivery, one fresh
// pickup, five people on the phone.
func SampleSnapshot(now time.Time) domain.DashboardSnapshot {
	return domain.DashboardSnapshot{
		CallQueue:        domain.CallQueue{ActiveCalls: 2, CustomersWaiting: 3},
		TotalOrdersToday: 12,
		ActiveOrders: []domain.Order{
			{
				ID:           42,
				CustomerName: "Ana",
				Phone:        "555-0101",
				Fulfillment:  domain.Delivery{Address: "12 Elm St"},
				Items: []domain.Item{
					Pizza("Margherita", 2),
					{Type: domain.ItemTypeSide, Name: "Garlic Bread", Quantity: 1, UnitPrice: decimal.RequireFromString("6.99"), TotalPrice: decimal.RequireFromString("6.99")},
					{Type: domain.ItemTypeDrink, Name: "Sprite (2L)", Quantity: 1, UnitPrice: decimal.RequireFromString("3.99"), TotalPrice: decimal.RequireFromString("3.99")},
				},
				TotalPrice:    decimal.RequireFromString("48.96"),
				Status:        "confirmed",
				EstimatedTime: "35-45 minutes",
				Timestamp:     now.Add(-25 * time.Minute),
				KitchenStatus: domain.KitchenStatusInPreparation,
			},
			{
				ID:            43,
				CustomerName:  "Ben",
				Phone:         "555-0102",
				Fulfillment:   domain.Pickup{},
				Items:         []domain.Item{Pizza("Hawaiian", 1)},
				TotalPrice:    decimal.RequireFromString("18.99"),
				Status:        "confirmed",
				EstimatedTime: "25-35 minutes",
				Timestamp:     now.Add(-3 * time.Minute),
				KitchenStatus: domain.KitchenStatusPending,
			},
		},
	}
}

func Pizza(name string, quantity int) domain.Item {
	price := decimal.RequireFromString("18.99")
	return domain.Item{
		Type:       domain.ItemTypePizza,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  price,
		TotalPrice: price.Mul(decimal.NewFromInt(int64(quantity))),
		Pizza:      &domain.PizzaDetails{Size: "large", Toppings: []string{strings.ToLower(name)}},
	}
}
