package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kitchen-dashboard/internal/domain"
)

// DashboardResponse is the body of GET /api/dashboard.
type DashboardResponse struct {
	CallQueue        CallQueueDTO `json:"call_queue"`
	ActiveOrders     []OrderDTO   `json:"active_orders"`
	TotalOrdersToday int          `json:"total_orders_today"`
}

type CallQueueDTO struct {
	ActiveCalls      int `json:"active_calls"`
	CustomersWaiting int `json:"customers_waiting"`
}

type OrderDTO struct {
	ID            int             `json:"id"`
	CustomerName  string          `json:"customer_name"`
	Phone         string          `json:"phone"`
	OrderType     string          `json:"order_type"`
	Address       *string         `json:"address,omitempty"`
	Items         []ItemDTO       `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
	EstimatedTime string          `json:"estimated_time"`
	Timestamp     string          `json:"timestamp"`
	KitchenStatus string          `json:"kitchen_status"`
}

type ItemDTO struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Size       string          `json:"size,omitempty"`
	Toppings   []string        `json:"toppings,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Zoned layouts come first. Python's isoformat() omits the zone when the
// datetime is naive; those are read in local time.
var (
	zonedLayouts = []string{time.RFC3339Nano}
	localLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"}
)

func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not an ISO-8601 instant", s)
}

func (r DashboardResponse) ToDomain(fetchedAt time.Time) (*domain.DashboardSnapshot, error) {
	orders := make([]domain.Order, 0, len(r.ActiveOrders))
	for _, o := range r.ActiveOrders {
		order, err := o.ToDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return &domain.DashboardSnapshot{
		CallQueue: domain.CallQueue{
			ActiveCalls:      r.CallQueue.ActiveCalls,
			CustomersWaiting: r.CallQueue.CustomersWaiting,
		},
		ActiveOrders:     orders,
		TotalOrdersToday: r.TotalOrdersToday,
		FetchedAt:        fetchedAt,
	}, nil
}

func (o OrderDTO) ToDomain() (domain.Order, error) {
	ts, err := ParseTimestamp(o.Timestamp)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d: %w", o.ID, err)
	}

	var address string
	if o.Address != nil {
		address = *o.Address
	}

	items := make([]domain.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, it.ToDomain())
	}

	return domain.Order{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Fulfillment:   domain.NewFulfillment(o.OrderType, address),
		Items:         items,
		TotalPrice:    o.TotalPrice,
		Status:        o.Status,
		EstimatedTime: o.EstimatedTime,
		Timestamp:     ts,
		KitchenStatus: domain.KitchenStatus(o.KitchenStatus),
	}, nil
}

func (i ItemDTO) ToDomain() domain.Item {
	item := domain.Item{
		Type:       domain.ItemType(i.Type),
		Name:       i.Name,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TotalPrice: i.TotalPrice,
	}
	if item.Type == domain.ItemTypePizza {
		item.Pizza = &domain.PizzaDetails{
			Size:     i.Size,
			Toppings: i.Toppings,
		}
	}
	return item
}

// FromDomain builds the wire shape of a snapshot. The fake backend in
// testutil serves it.
func FromDomain(s domain.DashboardSnapshot) DashboardResponse {
	orders := make([]OrderDTO, 0, len(s.ActiveOrders))
	for _, o := range s.ActiveOrders {
		dto := OrderDTO{
			ID:            o.ID,
			CustomerName:  o.CustomerName,
			Phone:         o.Phone,
			TotalPrice:    o.TotalPrice,
			Status:        o.Status,
			EstimatedTime: o.EstimatedTime,
			Timestamp:     o.Timestamp.Format(time.RFC3339Nano),
			KitchenStatus: string(o.KitchenStatus),
		}
		if o.Fulfillment != nil {
			dto.OrderType = o.Fulfillment.OrderType()
		}
		if d, ok := o.Fulfillment.(domain.Delivery); ok {
			addr := d.Address
			dto.Address = &addr
		}
		for _, it := range o.Items {
			item := ItemDTO{
				Type:       string(it.Type),
				Name:       it.Name,
				Quantity:   it.Quantity,
				UnitPrice:  it.UnitPrice,
				TotalPrice: it.TotalPrice,
			}
			if it.Pizza != nil {
				item.Size = it.Pizza.Size
				item.Toppings = it.Pizza.Toppings
			}
			dto.Items = append(dto.Items, item)
		}
		orders = append(orders, dto)
	}

	return DashboardResponse{
		CallQueue: CallQueueDTO{
			ActiveCalls:      s.CallQueue.ActiveCalls,
			CustomersWaiting: s.CallQueue.CustomersWaiting,
		},
		ActiveOrders:     orders,
		TotalOrdersToday: s.TotalOrdersToday,
	}
}
