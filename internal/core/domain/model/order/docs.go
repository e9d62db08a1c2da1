// Package order provides the Order aggregate of the food ordering system: the
// items a customer ordered from one restaurant, their pricing and the order
// lifecycle driven by payment and restaurant approval outcomes.
//
// The package includes:
//   - Order: the aggregate root with validation, initialization and transitions
//   - OrderItem: one ordered product with quantity, unit price and subtotal
//   - StreetAddress: the delivery address
//   - Status: the state machine PENDING -> PAID -> APPROVED with the
//     cancellation branches PAID -> CANCELLING -> CANCELLED and PENDING -> CANCELLED
//   - OrderCreatedEvent, OrderPaidEvent, OrderCancelledEvent: lifecycle events
//
// Key business rules:
//   - An order is validated against the restaurant catalog before it gets an identity
//   - Initialization happens exactly once
//   - Failed transitions never change the status
//   - Failure messages accumulate and are never overwritten
package order
