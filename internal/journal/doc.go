// Package journal persists a ledger of completed moves in SQLite.
//
// The journal is optional: the mover works without it, and a failed write
// never undoes or blocks a move. Entries are append-only.
package journal
