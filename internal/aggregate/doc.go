// Package aggregate rolls personal ledger transactions up into the figures the
// dashboard and history views display: category totals, a daily spending
// trend, monthly income/expense buckets, upcoming reminders, envelope usage
// and the headline burn-rate metrics.
//
// Every function is pure. Inputs are treated as immutable snapshots and the
// output order never depends on the input order.
package aggregate
