package domain

import "time"

const (
	OrderStatusPlaced    = "placed"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID            string    `json:"id"`
	CustomerID    *string   `json:"customerId,omitempty"`
	OrderedAt     time.Time `json:"orderedAt"`
	Complete      bool      `json:"complete"`
	TransactionID string    `json:"transactionId"`
}

// OrderHistory is one append-only status entry of an order.
type OrderHistory struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	AddedAt    time.Time `json:"addedAt"`
}

// CheckoutDetail snapshots the shipping data and amount captured at checkout.
type CheckoutDetail struct {
	ID               string    `json:"id"`
	CustomerID       *string   `json:"customerId,omitempty"`
	OrderID          *string   `json:"orderId,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	TotalAmountCents *int64    `json:"totalAmountCents,omitempty"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Zipcode          string    `json:"zipcode"`
	AddedAt          time.Time `json:"addedAt"`
}
