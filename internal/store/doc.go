// Package store provides the SQLite-backed canonicalization cache.
//
// The cache is content-addressed: the key is a domain-separated SHA-256
// hash of the normalized source text, the value is the rendered canonical
// S-expression. Compiling an unchanged source is then a single lookup
// instead of a parse and canonicalization.
//
// Writes are idempotent (ON CONFLICT DO NOTHING), so concurrent compiles
// of the same source race benignly: whichever write lands first wins and
// both produce identical trees.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
