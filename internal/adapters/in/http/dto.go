package http

import (
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	SubTotal  decimal.Decimal `json:"subTotal"`
}

// NewOrder is the body of POST /api/v1/orders. Amounts are accepted as JSON
// numbers or strings.
type NewOrder struct {
	CustomerID   string          `json:"customerId"`
	RestaurantID string          `json:"restaurantId"`
	Price        decimal.Decimal `json:"price"`
	Items        []OrderItem     `json:"items"`
	Address      Address         `json:"address"`
}

type OrderCreated struct {
	OrderTrackingID string `json:"orderTrackingId"`
	OrderStatus     string `json:"orderStatus"`
	Message         string `json:"message"`
}

type TrackedOrder struct {
	OrderTrackingID string   `json:"orderTrackingId"`
	OrderStatus     string   `json:"orderStatus"`
	FailureMessages []string `json:"failureMessages"`
}
