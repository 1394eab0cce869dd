package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            int
	CustomerName  string
	Phone         string
	Fulfillment   Fulfillment
	Items         []Item
	TotalPrice    decimal.Decimal
	Status        string
	EstimatedTime string
	Timestamp     time.Time
	KitchenStatus KitchenStatus
}

type KitchenStatus string

const (
	KitchenStatusPending       KitchenStatus = "pending"
	KitchenStatusInPreparation KitchenStatus = "in_preparation"
	KitchenStatusReady         KitchenStatus = "ready"
)

const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Fulfillment is how an order leaves the kitchen. Only Delivery carries an
// address.
type Fulfillment interface {
	OrderType() string
}

type Delivery struct {
	Address string
}

func (Delivery) OrderType() string { return OrderTypeDelivery }

type Pickup struct{}

func (Pickup) OrderType() string { return OrderTypePickup }

// OtherFulfillment keeps an order type the kitchen does not know about.
type OtherFulfillment struct {
	Type string
}

func (o OtherFulfillment) OrderType() string { return o.Type }

// NewFulfillment picks the variant for a wire order type. The address is
// dropped for anything but delivery.
func NewFulfillment(orderType, address string) Fulfillment {
	switch orderType {
	case OrderTypeDelivery:
		return Delivery{Address: address}
	case OrderTypePickup:
		return Pickup{}
	default:
		return OtherFulfillment{Type: orderType}
	}
}
