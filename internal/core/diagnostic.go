package core

import "odbccrusher/internal/odbcapi"

// Diagnostic is one SQLSTATE diagnostic record attached to a handle after a
// non-success return code.
type Diagnostic struct {
	SQLState    string
	NativeError int32
	Message     string
	RecordIndex int16
}

// extractDiagnostics walks SQLGetDiagRec from record 1 until the driver
// signals SQL_NO_DATA, mirroring OdbcError::from_handle.
func extractDiagnostics(drv Driver, kind odbcapi.HandleKind, h odbcapi.Handle) []Diagnostic {
	var diags []Diagnostic
	for rec := int16(1); ; rec++ {
		state, native, msg, rc := drv.GetDiagRec(kind, h, rec)
		if !odbcapi.Succeeded(rc) {
			break
		}
		diags = append(diags, Diagnostic{
			SQLState:    state,
			NativeError: native,
			Message:     msg,
			RecordIndex: rec,
		})
	}
	return diags
}
