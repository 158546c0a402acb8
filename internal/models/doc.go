// Package models defines the domain types shared by the calculator, the
// aggregators, storage and the reference service.
//
// # Split side
//
//   - ExpenseRecord: who paid what, split how
//   - MemberBalance: derived per-member paid/share/net totals
//   - Settlement: a proposed payment that reduces imbalance
//   - Payment: a settlement that was actually made and recorded
//   - Group: a persisted set of members and their expenses
//
// # Personal ledger side
//
//   - Transaction: a record fetched from the external ledger API
//   - TransactionDraft: a proposed record to post back ("log my share")
//   - MonthBucket, CategoryBucket, TrendPoint: derived chart/summary data
//   - Reminder, Envelope: display-only collaborators of the dashboard
//
// # Design Principles
//
//  1. Amounts are money.Money (integer minor units), never float64
//  2. Participants are identified by name; identity is case-insensitive and the
//     first-seen spelling is the display form
//  3. Derived types are recomputed on every call and never persisted
package models
