// Package order contains the Order aggregate and its supporting value objects.
// The aggregate owns the full lifecycle of a laundry pickup-and-delivery
// order: intake, laundromat assignment, driver status transitions, and the
// terminal delivered/cancelled/archived states.
//
// The central piece is the status transition gate: Status is a closed
// enumeration with an explicit transition table, and every mutation goes
// through the aggregate so that out-of-order transitions are rejected with
// InvalidTransitionError before anything is persisted. Each accepted
// transition appends an immutable HistoryEntry, forming an append-only audit
// log of who moved the order, from where, to where, and when.
//
// Addresses are snapshots: they are copied into the order at creation time,
// so later edits to a customer's saved addresses never retroactively change
// past orders.
package order
