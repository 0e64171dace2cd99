// Package odbcapi is the cgo boundary between this module and the host's
// ODBC driver manager (unixODBC's libodbc, iODBC, or the Windows Driver
// Manager). It exposes the small slice of the Call-Level Interface the
// rest of the module needs — handle lifecycle, connect/disconnect,
// execute/prepare/fetch, diagnostics, info/type/function discovery,
// descriptor field access, and cancellation — as plain Go functions
// operating on opaque Handle values.
//
// No package in the retrieval pack binds a C ABI, so this is written fresh
// against sql.h/sqlext.h, the same headers the reference implementation of
// this probe links against. Every exported function is a thin, panicking-
// on-misuse wrapper around one or two C calls; interpretation of return
// codes and diagnostic extraction is internal/core's job, not this one's.
//
// cgo requires an installed ODBC driver manager's development headers
// (unixodbc-dev on Debian-family systems, or the Windows SDK) to link.
package odbcapi
