package messages

import "time"

// PaymentStatus is the outcome reported by the payment service.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	// PaymentCancelled confirms a refund requested with PaymentCancelRequested.
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// PaymentResponse arrives on the payment response topic.
type PaymentResponse struct {
	EventID         string        `json:"event_id"`
	OrderID         string        `json:"order_id"`
	PaymentID       string        `json:"payment_id"`
	Status          PaymentStatus `json:"status"`
	FailureMessages []string      `json:"failure_messages"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Succeeded reports whether the payment went through.
func (r PaymentResponse) Succeeded() bool {
	return r.Status == PaymentCompleted
}

// ApprovalStatus is the decision reported by the restaurant.
type ApprovalStatus string

const (
	RestaurantApproved ApprovalStatus = "APPROVED"
	RestaurantRejected ApprovalStatus = "REJECTED"
)

// RestaurantApprovalResponse arrives on the restaurant approval response topic.
type RestaurantApprovalResponse struct {
	EventID         string         `json:"event_id"`
	OrderID         string         `json:"order_id"`
	RestaurantID    string         `json:"restaurant_id"`
	Status          ApprovalStatus `json:"status"`
	FailureMessages []string       `json:"failure_messages"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Approved reports whether the restaurant accepted the order.
func (r RestaurantApprovalResponse) Approved() bool {
	return r.Status == RestaurantApproved
}
