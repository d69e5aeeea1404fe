// Package migration provides a versioned migration engine for the SQLite
// asset database.
//
// Schema and data changes are expressed as compiled-in steps, each moving the
// store from one integer version to the next. A registry validates at startup
// that the registered steps form a strictly linear, gap-free chain, and a
// runner applies the pending suffix of that chain one transaction per step.
// The version marker is written inside the same transaction as the step's own
// mutations, so a crash or failure can never leave the store claiming a
// version it does not have: the transaction either commits both or neither.
//
// Migrations run single threaded at process startup, before anything else
// touches the store. Failures are never retried; the runner halts at the first
// failing step and reports its identity to the caller.
package migration
