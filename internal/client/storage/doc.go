// Package storage provides the persistent key/value capability used by the
// token and session-hint stores.
//
// Every operation returns an explicit error instead of panicking, so callers
// decide at each call site how a storage failure degrades. A missing key is
// not an error: Get returns (nil, nil).
//
// Two implementations exist: SQLiteKV (the CLI's on-disk store, schema managed
// by embedded goose migrations) and MemoryKV (tests and -ephemeral runs).
package storage
