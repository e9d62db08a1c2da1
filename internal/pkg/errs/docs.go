// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateTransitionError: For when an aggregate rejects a lifecycle operation
//   - PricingError: For when submitted totals or item prices disagree with the catalog
//   - RestaurantInactiveError: For when an order targets a restaurant that is not accepting orders
//   - PersistenceError: For when a store does not confirm a write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels and extract
// details with errors.As against the struct types.
package errs
