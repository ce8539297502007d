// Package laundromat contains the Laundromat aggregate and the CapacityDay
// entity that together form the capacity ledger. A laundromat serves a fixed
// set of postal codes and accepts at most its daily ceiling of orders per
// pickup date; consumed capacity is tracked per (laundromat, date) in lazily
// created CapacityDay rows. Exceeding the ceiling rejects new assignments, it
// never silently overbooks.
package laundromat
