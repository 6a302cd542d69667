// Package harness runs conformance scenarios against a real registry:
// a YAML-declared sequence of create/settle calls with expected error
// codes, executed against a temp SQLite store and a local transferer,
// with golden-trace comparison for regressions.
package harness
