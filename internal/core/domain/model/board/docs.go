// Package board implements the scheduling board aggregate: the normalized
// entity store at the heart of the truck-delivery dispatch client.
//
// The Board owns four entity tables (orders, delivery runs, cells, notes),
// the reverse indices derived from them (order→run, run→cell,
// loose-order→cell, note→cell), a placement validator, the mutation
// operations the dispatcher UI invokes, a dirty/pending tracker protecting
// unconfirmed local edits, and the reconciliation engine that folds periodic
// server snapshots and push updates back into local state.
//
// Every mutation is an atomic state transition: it either fully applies
// (tables, indices, and dirty marks together) or fully no-ops with a
// rejection reason. Mutations never modify an entity in place; they clone
// the entities they touch and leave every unrelated entity referentially
// unchanged, so downstream consumers can use reference identity to skip
// recomputation.
//
// Invariants maintained after every mutation:
//  1. An order is in exactly one place: a run, a cell's loose set, or
//     nowhere (unscheduled), never more than one.
//  2. Reverse indices agree exactly with the tables they are derived from.
//  3. Purchase-class orders never appear in any run.
//  4. Orders in a terminal status never change placement.
//  5. An order's date equals the date of the cell it effectively sits in.
//  6. While a date is locked, nothing moves into it from another date.
package board
