// Package order implements the order entity of the scheduling board domain.
// An order is a sales or purchase document scheduled onto the board; its
// placement (cell or run membership) lives in the board aggregate, while the
// entity itself carries the document identity, fulfillment status, and the
// denormalized date of its current placement.
//
// The package provides:
//   - Order: the entity with validated construction and copy-on-write cloning
//   - Status: the fulfillment status set with a derived read-only rule
//   - Class: the sales/purchase distinction that drives inbound-zone rules
package order
