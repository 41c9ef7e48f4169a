// Package teller provides an embedded, single-writer account ledger.
//
// The core functionalities include:
//   - Accounts: named money holders with a balance that never goes negative
//     and an append-only history of immutable entries (deposits, withdrawals,
//     transfers in and out).
//   - Transfers: moving money between two accounts, all or nothing.
//   - Users: the logins allowed to operate the teller, independent of accounts.
//   - Persistence: the whole state is saved as one versioned snapshot after
//     every mutation, through a pluggable Store (JSON file, memory, or SQLite
//     in the sqlitestore package).
//
// This package serves as the foundational logic for the `tlr` command-line
// tool. All operations go through a Ledger, which is the single point of
// mutation.
package teller
