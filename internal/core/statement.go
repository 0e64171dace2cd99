package core

import (
	"fmt"

	"github.com/google/uuid"

	"odbccrusher/internal/odbcapi"
)

// Statement owns a single ODBC statement handle, scoped to the lifetime of
// one Connection.
type Statement struct {
	handle odbcapi.Handle
	drv    Driver
	tag    string
	connTag string
}

// NewStatement allocates a statement handle under conn, using conn's
// driver. Tagged with its own uuid plus the parent connection's, so a
// probe juggling several statements on one connection (cursor stress,
// cancellation) can tell them apart in diagnostics.
func NewStatement(conn *Connection) (*Statement, error) {
	drv := conn.drv
	h, rc := drv.AllocHandle(odbcapi.HandleStatement, conn.Handle())
	if !odbcapi.Succeeded(rc) {
		return nil, newError(drv, "allocate statement handle", odbcapi.HandleConnection, conn.Handle())
	}
	return &Statement{handle: h, drv: drv, tag: uuid.NewString(), connTag: conn.tag}, nil
}

// Handle returns the underlying statement handle.
func (s *Statement) Handle() odbcapi.Handle { return s.handle }

// Tag returns this statement's correlation id.
func (s *Statement) Tag() string { return s.tag }

// ConnTag returns the parent connection's correlation id.
func (s *Statement) ConnTag() string { return s.connTag }

// Close frees the statement handle.
func (s *Statement) Close() error {
	if s.handle.IsNull() {
		return nil
	}
	rc := s.drv.FreeHandle(odbcapi.HandleStatement, s.handle)
	s.handle = 0
	if !odbcapi.Succeeded(rc) {
		return fmt.Errorf("free statement handle: return code %d", rc)
	}
	return nil
}

// recycle closes any open cursor and resets bound parameters so the handle
// can be reused for a fresh operation. Both SQLFreeStmt calls are
// infallible by design: some drivers (the PostgreSQL and Firebird ODBC
// drivers among them) crash or misbehave if a dirty cursor is left open
// across a new Execute/Prepare call, so recycle runs unconditionally and
// discards both return codes rather than surfacing a spurious failure for
// a cursor that was never open.
func (s *Statement) recycle() {
	s.drv.FreeStmt(s.handle, odbcapi.OptClose)
	s.drv.FreeStmt(s.handle, odbcapi.OptResetParams)
}

// Execute recycles the handle and runs sql directly via SQLExecDirect.
func (s *Statement) Execute(sql string) error {
	s.recycle()
	return checkResult(s.drv, s.drv.ExecDirect(s.handle, sql), "execute", odbcapi.HandleStatement, s.handle)
}

// Prepare recycles the handle and prepares sql for later execution via
// ExecutePrepared.
func (s *Statement) Prepare(sql string) error {
	s.recycle()
	return checkResult(s.drv, s.drv.Prepare(s.handle, sql), "prepare", odbcapi.HandleStatement, s.handle)
}

// ExecutePrepared runs a previously prepared statement. Unlike Execute it
// only closes the open cursor; it does not reset bound parameters, since a
// prepared statement is commonly re-executed with a fresh set of bound
// parameter values supplied between calls.
func (s *Statement) ExecutePrepared() error {
	s.drv.FreeStmt(s.handle, odbcapi.OptClose)
	return checkResult(s.drv, s.drv.Execute(s.handle), "execute prepared", odbcapi.HandleStatement, s.handle)
}

// Fetch advances to the next result row. It returns (false, nil) on
// SQL_NO_DATA, which is the normal end of a result set, not an error.
func (s *Statement) Fetch() (bool, error) {
	rc := s.drv.Fetch(s.handle)
	if rc == odbcapi.NoData {
		return false, nil
	}
	if err := checkResult(s.drv, rc, "fetch", odbcapi.HandleStatement, s.handle); err != nil {
		return false, err
	}
	return true, nil
}

// CloseCursor closes an open cursor without resetting bound parameters.
func (s *Statement) CloseCursor() error {
	return checkResult(s.drv, s.drv.FreeStmt(s.handle, odbcapi.OptClose), "close cursor", odbcapi.HandleStatement, s.handle)
}

// Cancel mirrors SQLCancel, used to abort a long-running execution from a
// separate goroutine.
func (s *Statement) Cancel() error {
	return checkResult(s.drv, s.drv.Cancel(s.handle), "cancel", odbcapi.HandleStatement, s.handle)
}

// NumResultCols returns the number of columns in the statement's current
// result set.
func (s *Statement) NumResultCols() (int16, error) {
	n, rc := s.drv.NumResultCols(s.handle)
	if err := checkResult(s.drv, rc, "num result cols", odbcapi.HandleStatement, s.handle); err != nil {
		return 0, err
	}
	return n, nil
}

// ColumnDescription describes one result-set column, as returned by
// SQLDescribeCol.
type ColumnDescription struct {
	Name     string
	DataType int16
	Size     uint64
	Digits   int16
	Nullable int16
}

// DescribeColumn describes a 1-based result column.
func (s *Statement) DescribeColumn(col int16) (ColumnDescription, error) {
	name, dataType, size, digits, nullable, rc := s.drv.DescribeCol(s.handle, col)
	if err := checkResult(s.drv, rc, fmt.Sprintf("describe column %d", col), odbcapi.HandleStatement, s.handle); err != nil {
		return ColumnDescription{}, err
	}
	return ColumnDescription{Name: name, DataType: dataType, Size: size, Digits: digits, Nullable: nullable}, nil
}

// GetDataString reads a character-typed column value via SQLGetData. It is
// used for by-column catalog collection, never SQLBindCol.
func (s *Statement) GetDataString(col int16, bufLen int) (string, error) {
	value, _, rc := s.drv.GetDataString(s.handle, col, bufLen)
	if err := checkResult(s.drv, rc, fmt.Sprintf("get data column %d", col), odbcapi.HandleStatement, s.handle); err != nil {
		return "", err
	}
	return value, nil
}

// GetDataLong reads an integer-typed column value via SQLGetData.
func (s *Statement) GetDataLong(col int16) (int64, error) {
	value, _, rc := s.drv.GetDataLong(s.handle, col)
	if err := checkResult(s.drv, rc, fmt.Sprintf("get data column %d", col), odbcapi.HandleStatement, s.handle); err != nil {
		return 0, err
	}
	return value, nil
}

// SetParamsetSize sets SQL_ATTR_PARAMSET_SIZE for array-parameter execution.
func (s *Statement) SetParamsetSize(n int64) error {
	const attrParamsetSize int32 = 22 // SQL_ATTR_PARAMSET_SIZE
	return checkResult(s.drv, s.drv.SetStmtAttrInt(s.handle, attrParamsetSize, n), "set paramset size", odbcapi.HandleStatement, s.handle)
}

// GetAttrInt reads an arbitrary SQLGetStmtAttr integer attribute.
func (s *Statement) GetAttrInt(attr int32) (int64, error) {
	value, rc := s.drv.GetStmtAttrInt(s.handle, attr)
	if err := checkResult(s.drv, rc, "get statement attribute", odbcapi.HandleStatement, s.handle); err != nil {
		return 0, err
	}
	return value, nil
}

// SetAttrInt sets an arbitrary SQLSetStmtAttr integer attribute.
func (s *Statement) SetAttrInt(attr int32, value int64) error {
	return checkResult(s.drv, s.drv.SetStmtAttrInt(s.handle, attr, value), "set statement attribute", odbcapi.HandleStatement, s.handle)
}

// GetTypeInfo runs SQLGetTypeInfo for dataType (odbcapi.SQLAllTypes for the
// wildcard form the type catalog collector uses). The statement's cursor
// then iterates rows with GetDataString/GetDataLong, never SQLBindCol.
func (s *Statement) GetTypeInfo(dataType int16) error {
	s.recycle()
	return checkResult(s.drv, s.drv.GetTypeInfo(s.handle, dataType), "get type info", odbcapi.HandleStatement, s.handle)
}

// BindParamString binds a 1-based input parameter to a character value.
// indicator is the caller-owned cell SQLBindParameter writes its reported
// length/NULL sentinel back into; pass odbcapi.NullData in *indicator to
// bind a SQL NULL.
func (s *Statement) BindParamString(paramNumber int16, value *[]byte, indicator *int64, sqlType int16) error {
	return checkResult(s.drv, s.drv.BindParameterString(s.handle, paramNumber, value, indicator, sqlType), "bind parameter", odbcapi.HandleStatement, s.handle)
}

// BindParamWString binds a 1-based input parameter through the wide
// (SQLWCHAR) path, used by the wide-character parameter-binding probe.
func (s *Statement) BindParamWString(paramNumber int16, units *[]uint16, indicator *int64) error {
	return checkResult(s.drv, s.drv.BindParameterWString(s.handle, paramNumber, units, indicator), "bind wide parameter", odbcapi.HandleStatement, s.handle)
}

// BindParamLong binds a 1-based input parameter to a 32-bit integer value.
func (s *Statement) BindParamLong(paramNumber int16, value *int32, indicator *int64) error {
	return checkResult(s.drv, s.drv.BindParameterLong(s.handle, paramNumber, value, indicator), "bind parameter", odbcapi.HandleStatement, s.handle)
}

// BindParamArrayLong binds a column-wise array of integer parameter
// values for array-parameter execution (§4.8 category 18). indicators is
// overwritten in place with what the driver reported back.
func (s *Statement) BindParamArrayLong(paramNumber int16, values []int32, indicators []int64) error {
	return checkResult(s.drv, s.drv.BindParameterArrayLong(s.handle, paramNumber, values, indicators), "bind array parameter", odbcapi.HandleStatement, s.handle)
}

// SetParamBindType switches between column-wise (0) and row-wise
// (nonzero row size) parameter binding.
func (s *Statement) SetParamBindType(rowSize int64) error {
	return checkResult(s.drv, s.drv.SetParamBindType(s.handle, rowSize), "set param bind type", odbcapi.HandleStatement, s.handle)
}

// Catalog runs one of the SQLTables/SQLColumns/SQLPrimaryKeys/
// SQLStatistics/SQLSpecialColumns/SQLProcedures/SQLTablePrivileges catalog
// functions and recycles the handle first, since a catalog call opens a
// cursor like any other statement execution.
func (s *Statement) Catalog(fn odbcapi.CatalogFn, catalog, schema, table, columnOrType string) error {
	s.recycle()
	return checkResult(s.drv, s.drv.CatalogQuery(s.handle, fn, catalog, schema, table, columnOrType), "catalog query", odbcapi.HandleStatement, s.handle)
}

// DescribeColumnW is the wide-named counterpart to DescribeColumn, used by
// the wide-character column-name probe.
func (s *Statement) DescribeColumnW(col int16) (ColumnDescriptionW, error) {
	units, dataType, size, digits, nullable, rc := s.drv.DescribeColW(s.handle, col)
	if err := checkResult(s.drv, rc, fmt.Sprintf("describe column %d (wide)", col), odbcapi.HandleStatement, s.handle); err != nil {
		return ColumnDescriptionW{}, err
	}
	return ColumnDescriptionW{NameUnits: units, DataType: dataType, Size: size, Digits: digits, Nullable: nullable}, nil
}

// ColumnDescriptionW is DescribeColumnW's wide-character counterpart to
// ColumnDescription; NameUnits is raw UTF-16 code units, decoded by the
// caller through the wide-character bridge.
type ColumnDescriptionW struct {
	NameUnits []uint16
	DataType  int16
	Size      uint64
	Digits    int16
	Nullable  int16
}

// GetDataWString reads a character column through the wide (SQLWCHAR)
// SQLGetData path; byteIndicator is always a byte count, per §4.5's
// length convention, never a code-unit count.
func (s *Statement) GetDataWString(col int16, bufLenUnits int) ([]uint16, int64, error) {
	units, byteIndicator, rc := s.drv.GetDataWString(s.handle, col, bufLenUnits)
	if err := checkResult(s.drv, rc, fmt.Sprintf("get data column %d (wide)", col), odbcapi.HandleStatement, s.handle); err != nil {
		return nil, 0, err
	}
	return units, byteIndicator, nil
}
