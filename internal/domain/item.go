package domain

import "github.com/shopspring/decimal"

type ItemType string

const (
	ItemTypePizza ItemType = "pizza"
	ItemTypeSide  ItemType = "side"
	ItemTypeDrink ItemType = "drink"
)

// Item is one order line. Pizza is set only for pizza lines.
type Item struct {
	Type       ItemType
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Pizza      *PizzaDetails
}

type PizzaDetails struct {
	Size     string
	Toppings []string
}
