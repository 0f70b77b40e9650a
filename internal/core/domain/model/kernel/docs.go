// Package kernel provides core domain primitives for the scheduling board.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - Date: A value object for calendar dates in the board's YYYY-MM-DD wire format
//   - CellKey: A value object identifying a scheduling slot by (resource, date)
//   - Identifier allocation for locally created runs and notes
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable value
// types and safe for concurrent use.
package kernel
