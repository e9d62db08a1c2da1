// Package kernel provides the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: an immutable wrapper over google/uuid
//   - Identifier: one generic typed identity wrapper, instantiated as OrderID,
//     CustomerID, RestaurantID, ProductID and TrackingID
//   - Money: a two-digit decimal amount with banker's rounding
//
// All values are immutable and safe to share between goroutines.
package kernel
