// Package cache implements the dependency-tracked lazy store behind the
// halo-model pipeline: a directed acyclic graph of named nodes, where
// parameters hold values and derived nodes hold a pure computation rule
// plus an explicit list of dependency names.
//
// Semantics:
//
//   - Get is pull-based: a missing or stale node is computed on demand,
//     after its dependencies (the computation rule reads them through Get,
//     so resolution is naturally recursive and memoized).
//   - Set / SetMany replace parameter values and invalidate exactly the
//     transitive dependents of the changed names — one reachability walk
//     per call, no matter how many parameters change together.
//   - Invalidation never recomputes eagerly; a stale node stays stale
//     until the next Get.
//   - A computation that fails leaves its node absent: no error value is
//     ever cached, and a later Get retries.
//
// The store is deliberately single-goroutine: the pipeline drives it from
// one logical thread of control, so no locking is layered on top.
//
// Errors:
//   - ErrUnknownNode   — Get/Set on a name never registered.
//   - ErrDuplicateNode — registering a name twice.
//   - ErrUnknownDep    — a declared dependency that is not registered yet.
//   - ErrNotParameter  — Set on a derived node.
//   - ErrCycle         — a computation rule that (transitively) reads its
//     own node.
package cache
