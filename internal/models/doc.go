// Package models defines the core domain models for printdesk.
//
// # Models
//
//   - Order: a single print job with customer, print specs, pricing and
//     two independent status flags (amount received, completed)
//   - OrderInput: an order as typed into a form, before parsing
//   - PinConfig: the singleton dashboard PIN record (hash only)
//
// # Design Principles
//
// 1. **Store-owned state**: only the store holds authoritative records; every
//    other layer works on snapshots read per call
// 2. **Dates as text**: due dates and added times are kept in their stored
//    string form so a malformed record can still be listed and repaired
// 3. **Exact money**: amounts are decimal.Decimal, never float64
package models
