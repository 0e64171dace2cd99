// Package core wraps the ODBC handle lifecycle (environment, connection,
// statement, descriptor) and diagnostic extraction behind small,
// single-owner Go types, driven through the Driver seam so package tests
// can substitute internal/core/faketest instead of a real driver manager.
package core
