// Package diagnostic collects the per-field problems of a reconciliation
// pass as values instead of aborting it.
//
// Key capabilities:
//   - Unexported or unreadable field warnings
//   - Store write and assignment failures with their cause
//   - Unknown kind overrides and duplicate bindings
package diagnostic
