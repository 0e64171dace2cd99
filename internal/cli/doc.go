// Package cli provides small, shared presentation helpers used by the
// console report sink and the command front matter: plain-text table
// rendering (kubectl-style, no box-drawing characters, terminal-agnostic)
// and consistent success/warning/error message prefixes.
//
// The heavier presentation logic — severity-colored status prefixes,
// driver-info and type-info table assembly — lives in internal/report,
// which builds on top of PlainTableWriter from this package.
package cli
