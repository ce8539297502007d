// Package kernel provides core domain primitives shared across the washday
// domain model. It implements fundamental building blocks following
// Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for entity identifiers with validation and comparison
//   - Money: A minor-unit (cents) monetary amount in a single currency
//   - PostalCode: A validated postal code used for laundromat coverage checks
//   - AccessToken: An expiring opaque token granting guest access to an order
//   - Role: The closed set of actor roles allowed to act on orders
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
