package core

import (
	"fmt"
	"strings"

	"odbccrusher/internal/odbcapi"
)

// Error wraps a non-success ODBC return code together with every
// diagnostic record the driver attached to the handle that produced it.
type Error struct {
	Context     string
	Diagnostics []Diagnostic
}

// newError builds an Error from a handle that just returned a non-success
// code, extracting its full diagnostic chain.
func newError(drv Driver, context string, kind odbcapi.HandleKind, h odbcapi.Handle) *Error {
	return &Error{
		Context:     context,
		Diagnostics: extractDiagnostics(drv, kind, h),
	}
}

// checkResult returns nil if rc indicates success, otherwise an *Error
// carrying the handle's diagnostic chain.
func checkResult(drv Driver, rc odbcapi.Return, context string, kind odbcapi.HandleKind, h odbcapi.Handle) error {
	if odbcapi.Succeeded(rc) {
		return nil
	}
	return newError(drv, context, kind, h)
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Context)
	for _, d := range e.Diagnostics {
		fmt.Fprintf(&b, "\n  [%s] (Native: %d) %s", d.SQLState, d.NativeError, d.Message)
	}
	return b.String()
}

// PrimarySQLState returns the SQLSTATE of the first diagnostic record, or
// an empty string when the error carries no diagnostics (a driver crash
// result, for instance).
func (e *Error) PrimarySQLState() string {
	if len(e.Diagnostics) == 0 {
		return ""
	}
	return e.Diagnostics[0].SQLState
}
