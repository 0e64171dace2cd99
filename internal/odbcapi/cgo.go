package odbcapi

/*
#cgo linux pkg-config: odbc
#cgo darwin LDFLAGS: -lodbc
#include <stdlib.h>
#include <sql.h>
#include <sqlext.h>
*/
import "C"
import "unsafe"

// AllocHandle allocates a handle of kind under parent (SQL_NULL_HANDLE for
// an environment). Mirrors SQLAllocHandle.
func AllocHandle(kind HandleKind, parent Handle) (Handle, Return) {
	var out C.SQLHANDLE
	rc := C.SQLAllocHandle(C.SQLSMALLINT(kind), C.SQLHANDLE(unsafe.Pointer(uintptr(parent))), &out)
	return Handle(uintptr(unsafe.Pointer(out))), Return(rc)
}

// FreeHandle releases a handle previously returned by AllocHandle.
func FreeHandle(kind HandleKind, h Handle) Return {
	rc := C.SQLFreeHandle(C.SQLSMALLINT(kind), C.SQLHANDLE(unsafe.Pointer(uintptr(h))))
	return Return(rc)
}

// SetEnvAttrInt sets an integer-valued environment attribute, used by the
// environment wrapper to request the CLI 3.x protocol version.
func SetEnvAttrInt(env Handle, attr int32, value int64) Return {
	rc := C.SQLSetEnvAttr(
		C.SQLHENV(unsafe.Pointer(uintptr(env))),
		C.SQLINTEGER(attr),
		C.SQLPOINTER(unsafe.Pointer(uintptr(value))),
		0,
	)
	return Return(rc)
}

const connectOutBufLen = 1024

// DriverConnect issues the prompt-less driver connect call with a
// caller-opaque connection string, returning the driver's (possibly
// expanded) completed connection string.
func DriverConnect(dbc Handle, connStr string) (outConnStr string, rc Return) {
	cConnStr := C.CString(connStr)
	defer C.free(unsafe.Pointer(cConnStr))

	outBuf := make([]byte, connectOutBufLen)
	var outLen C.SQLSMALLINT

	cRC := C.SQLDriverConnect(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		nil, // no window handle
		(*C.SQLCHAR)(unsafe.Pointer(cConnStr)),
		C.SQLSMALLINT(len(connStr)),
		(*C.SQLCHAR)(unsafe.Pointer(&outBuf[0])),
		C.SQLSMALLINT(len(outBuf)),
		&outLen,
		C.SQL_DRIVER_NOPROMPT,
	)
	n := int(outLen)
	if n > len(outBuf) {
		n = len(outBuf)
	}
	return string(outBuf[:n]), Return(cRC)
}

// Disconnect mirrors SQLDisconnect.
func Disconnect(dbc Handle) Return {
	return Return(C.SQLDisconnect(C.SQLHDBC(unsafe.Pointer(uintptr(dbc)))))
}

// ExecDirect mirrors SQLExecDirect.
func ExecDirect(stmt Handle, sql string) Return {
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))
	rc := C.SQLExecDirect(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		(*C.SQLCHAR)(unsafe.Pointer(cSQL)),
		C.SQLINTEGER(len(sql)),
	)
	return Return(rc)
}

// Prepare mirrors SQLPrepare.
func Prepare(stmt Handle, sql string) Return {
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))
	rc := C.SQLPrepare(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		(*C.SQLCHAR)(unsafe.Pointer(cSQL)),
		C.SQLINTEGER(len(sql)),
	)
	return Return(rc)
}

// Execute mirrors SQLExecute, used for a previously-prepared statement.
func Execute(stmt Handle) Return {
	return Return(C.SQLExecute(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt)))))
}

// Fetch mirrors SQLFetch.
func Fetch(stmt Handle) Return {
	return Return(C.SQLFetch(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt)))))
}

// FreeStmt mirrors SQLFreeStmt; return codes are discarded by callers that
// implement the recycle protocol, per design.
func FreeStmt(stmt Handle, opt FreeStmtOption) Return {
	return Return(C.SQLFreeStmt(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))), C.SQLUSMALLINT(opt)))
}

// CloseCursor mirrors SQLCloseCursor, which (unlike SQL_CLOSE) returns a
// defined error when no cursor is open.
func CloseCursor(stmt Handle) Return {
	return Return(C.SQLCloseCursor(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt)))))
}

// Cancel mirrors SQLCancel.
func Cancel(stmt Handle) Return {
	return Return(C.SQLCancel(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt)))))
}

const maxDiagMessageLen = 1024 // SQL_MAX_MESSAGE_LENGTH in practice varies; this is a safe upper bound

// GetDiagRec mirrors SQLGetDiagRec for a single 1-based record index. rc is
// NoData once the driver signals end-of-records (SQL_NO_DATA).
func GetDiagRec(kind HandleKind, h Handle, recNumber int16) (sqlState string, nativeError int32, message string, rc Return) {
	var state [6]byte
	var native C.SQLINTEGER
	msgBuf := make([]byte, maxDiagMessageLen)
	var textLen C.SQLSMALLINT

	cRC := C.SQLGetDiagRec(
		C.SQLSMALLINT(kind),
		C.SQLHANDLE(unsafe.Pointer(uintptr(h))),
		C.SQLSMALLINT(recNumber),
		(*C.SQLCHAR)(unsafe.Pointer(&state[0])),
		&native,
		(*C.SQLCHAR)(unsafe.Pointer(&msgBuf[0])),
		C.SQLSMALLINT(len(msgBuf)),
		&textLen,
	)
	n := int(textLen)
	if n > len(msgBuf) {
		n = len(msgBuf)
	}
	if n < 0 {
		n = 0
	}
	return stateString(state[:]), int32(native), string(msgBuf[:n]), Return(cRC)
}

func stateString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// GetInfoString mirrors SQLGetInfo for string-valued info types.
func GetInfoString(dbc Handle, infoType InfoType) (value string, rc Return) {
	buf := make([]byte, 256)
	var outLen C.SQLSMALLINT
	cRC := C.SQLGetInfo(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQLUSMALLINT(infoType),
		C.SQLPOINTER(unsafe.Pointer(&buf[0])),
		C.SQLSMALLINT(len(buf)),
		&outLen,
	)
	n := int(outLen)
	if n > len(buf) {
		n = len(buf)
	}
	if n < 0 {
		n = 0
	}
	return string(buf[:n]), Return(cRC)
}

// GetInfoUint32 mirrors SQLGetInfo for SQLUINTEGER-valued info types.
func GetInfoUint32(dbc Handle, infoType InfoType) (value uint32, rc Return) {
	var out C.SQLUINTEGER
	cRC := C.SQLGetInfo(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQLUSMALLINT(infoType),
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLSMALLINT(unsafe.Sizeof(out)),
		nil,
	)
	return uint32(out), Return(cRC)
}

// GetInfoUint16 mirrors SQLGetInfo for SQLUSMALLINT-valued info types.
func GetInfoUint16(dbc Handle, infoType InfoType) (value uint16, rc Return) {
	var out C.SQLUSMALLINT
	cRC := C.SQLGetInfo(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQLUSMALLINT(infoType),
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLSMALLINT(unsafe.Sizeof(out)),
		nil,
	)
	return uint16(out), Return(cRC)
}

// GetFunctions mirrors SQLGetFunctions with the SQL_API_ODBC3_ALL_FUNCTIONS
// bitmap form, returning the 4000-bit support vector as returned by the
// driver manager.
func GetFunctions(dbc Handle) (supported [C.SQL_API_ODBC3_ALL_FUNCTIONS_SIZE]uint16, rc Return) {
	cRC := C.SQLGetFunctions(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQL_API_ODBC3_ALL_FUNCTIONS,
		(*C.SQLUSMALLINT)(unsafe.Pointer(&supported[0])),
	)
	return supported, Return(cRC)
}

// NumResultCols mirrors SQLNumResultCols.
func NumResultCols(stmt Handle) (count int16, rc Return) {
	var n C.SQLSMALLINT
	cRC := C.SQLNumResultCols(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))), &n)
	return int16(n), Return(cRC)
}

// DescribeCol mirrors SQLDescribeCol for a 1-based column index.
func DescribeCol(stmt Handle, col int16) (name string, dataType int16, size uint64, digits int16, nullable int16, rc Return) {
	nameBuf := make([]byte, 256)
	var nameLen C.SQLSMALLINT
	var cDataType C.SQLSMALLINT
	var cSize C.SQLULEN
	var cDigits C.SQLSMALLINT
	var cNullable C.SQLSMALLINT

	cRC := C.SQLDescribeCol(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(col),
		(*C.SQLCHAR)(unsafe.Pointer(&nameBuf[0])),
		C.SQLSMALLINT(len(nameBuf)),
		&nameLen,
		&cDataType,
		&cSize,
		&cDigits,
		&cNullable,
	)
	n := int(nameLen)
	if n > len(nameBuf) {
		n = len(nameBuf)
	}
	return string(nameBuf[:n]), int16(cDataType), uint64(cSize), int16(cDigits), int16(cNullable), Return(cRC)
}

// GetDataString mirrors SQLGetData for a character-typed column, used by
// the by-column type catalog collector (never SQLBindCol).
func GetDataString(stmt Handle, col int16, bufLen int) (value string, indicator int64, rc Return) {
	if bufLen <= 0 {
		bufLen = 1
	}
	buf := make([]byte, bufLen)
	var ind C.SQLLEN
	cRC := C.SQLGetData(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(col),
		C.SQL_C_CHAR,
		C.SQLPOINTER(unsafe.Pointer(&buf[0])),
		C.SQLLEN(len(buf)),
		&ind,
	)
	return stateString(buf), int64(ind), Return(cRC)
}

// GetDataLong mirrors SQLGetData for an integer-typed column.
func GetDataLong(stmt Handle, col int16) (value int64, indicator int64, rc Return) {
	var out C.SQLINTEGER
	var ind C.SQLLEN
	cRC := C.SQLGetData(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(col),
		C.SQL_C_SLONG,
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLLEN(unsafe.Sizeof(out)),
		&ind,
	)
	return int64(out), int64(ind), Return(cRC)
}

// EndTran mirrors SQLEndTran, completionType is SQL_COMMIT (0) or
// SQL_ROLLBACK (1).
func EndTran(kind HandleKind, h Handle, completionType int16) Return {
	return Return(C.SQLEndTran(C.SQLSMALLINT(kind), C.SQLHANDLE(unsafe.Pointer(uintptr(h))), C.SQLSMALLINT(completionType)))
}

// SetConnectAttrInt mirrors SQLSetConnectAttr for integer-valued attributes
// (e.g. SQL_ATTR_AUTOCOMMIT).
func SetConnectAttrInt(dbc Handle, attr int32, value int64) Return {
	return Return(C.SQLSetConnectAttr(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQLINTEGER(attr),
		C.SQLPOINTER(unsafe.Pointer(uintptr(value))),
		0,
	))
}

// GetConnectAttrInt mirrors SQLGetConnectAttr for integer-valued attributes.
func GetConnectAttrInt(dbc Handle, attr int32) (value int64, rc Return) {
	var out C.SQLUINTEGER
	cRC := C.SQLGetConnectAttr(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQLINTEGER(attr),
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLINTEGER(unsafe.Sizeof(out)),
		nil,
	)
	return int64(out), Return(cRC)
}

// SetStmtAttrInt mirrors SQLSetStmtAttr for integer-valued attributes
// (e.g. SQL_ATTR_PARAMSET_SIZE, SQL_ATTR_CURSOR_TYPE).
func SetStmtAttrInt(stmt Handle, attr int32, value int64) Return {
	return Return(C.SQLSetStmtAttr(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLINTEGER(attr),
		C.SQLPOINTER(unsafe.Pointer(uintptr(value))),
		0,
	))
}

// GetStmtAttrInt mirrors SQLGetStmtAttr for integer-valued attributes.
func GetStmtAttrInt(stmt Handle, attr int32) (value int64, rc Return) {
	var out C.SQLULEN
	cRC := C.SQLGetStmtAttr(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLINTEGER(attr),
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLINTEGER(unsafe.Sizeof(out)),
		nil,
	)
	return int64(out), Return(cRC)
}

// CopyDesc mirrors SQLCopyDesc.
func CopyDesc(src, dst Handle) Return {
	return Return(C.SQLCopyDesc(
		C.SQLHDESC(unsafe.Pointer(uintptr(src))),
		C.SQLHDESC(unsafe.Pointer(uintptr(dst))),
	))
}

// GetStmtDescriptor mirrors SQLGetStmtAttr for the implicit row/parameter
// descriptor handles (SQL_ATTR_APP_ROW_DESC etc.).
func GetStmtDescriptor(stmt Handle, attr int32) (desc Handle, rc Return) {
	var out C.SQLHDESC
	cRC := C.SQLGetStmtAttr(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLINTEGER(attr),
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLINTEGER(unsafe.Sizeof(out)),
		nil,
	)
	return Handle(uintptr(unsafe.Pointer(out))), Return(cRC)
}

// GetTypeInfo mirrors SQLGetTypeInfo; the caller (internal/discovery) then
// fetches each result row by column with GetDataString/GetDataLong, never
// SQLBindCol, per the type catalog's by-column retrieval contract.
func GetTypeInfo(stmt Handle, dataType int16) Return {
	rc := C.SQLGetTypeInfo(C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))), C.SQLSMALLINT(dataType))
	return Return(rc)
}

// SetDescFieldInt mirrors SQLSetDescField for an integer-valued field.
func SetDescFieldInt(desc Handle, recNumber int16, field int32, value int64) Return {
	rc := C.SQLSetDescField(
		C.SQLHDESC(unsafe.Pointer(uintptr(desc))),
		C.SQLSMALLINT(recNumber),
		C.SQLSMALLINT(field),
		C.SQLPOINTER(unsafe.Pointer(uintptr(value))),
		0,
	)
	return Return(rc)
}

// GetDescFieldInt mirrors SQLGetDescField for an integer-valued field.
func GetDescFieldInt(desc Handle, recNumber int16, field int32) (value int64, rc Return) {
	var out C.SQLLEN
	cRC := C.SQLGetDescField(
		C.SQLHDESC(unsafe.Pointer(uintptr(desc))),
		C.SQLSMALLINT(recNumber),
		C.SQLSMALLINT(field),
		C.SQLPOINTER(unsafe.Pointer(&out)),
		C.SQLINTEGER(unsafe.Sizeof(out)),
		nil,
	)
	return int64(out), Return(cRC)
}

// BindParameterString binds a fixed character-valued input parameter.
// value is held by the caller for the lifetime of the following
// Execute/ExecutePrepared call; indicator reports NULL via NullData.
func BindParameterString(stmt Handle, paramNumber int16, value *[]byte, indicator *int64, sqlType int16) Return {
	var cInd C.SQLLEN
	if *indicator == NullData {
		cInd = C.SQLLEN(NullData)
	} else {
		cInd = C.SQLLEN(len(*value))
	}
	var ptr unsafe.Pointer
	if len(*value) > 0 {
		ptr = unsafe.Pointer(&(*value)[0])
	}
	rc := C.SQLBindParameter(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(paramNumber),
		C.SQLSMALLINT(ParamInput),
		C.SQLSMALLINT(CChar),
		C.SQLSMALLINT(sqlType),
		C.SQLULEN(len(*value)),
		0,
		C.SQLPOINTER(ptr),
		C.SQLLEN(len(*value)),
		&cInd,
	)
	*indicator = int64(cInd)
	return Return(rc)
}

// BindParameterWString binds a wide-character (SQLWCHAR) input parameter,
// the counterpart probes use when exercising the wide parameter-binding
// surface (§4.8 category 14, "wide-char input").
func BindParameterWString(stmt Handle, paramNumber int16, units *[]uint16, indicator *int64) Return {
	var cInd C.SQLLEN
	byteLen := len(*units) * 2
	if *indicator == NullData {
		cInd = C.SQLLEN(NullData)
	} else {
		cInd = C.SQLLEN(byteLen)
	}
	var ptr unsafe.Pointer
	if len(*units) > 0 {
		ptr = unsafe.Pointer(&(*units)[0])
	}
	rc := C.SQLBindParameter(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(paramNumber),
		C.SQLSMALLINT(ParamInput),
		C.SQLSMALLINT(CWChar),
		C.SQLSMALLINT(SQLWvarcharType),
		C.SQLULEN(len(*units)),
		0,
		C.SQLPOINTER(ptr),
		C.SQLLEN(byteLen),
		&cInd,
	)
	*indicator = int64(cInd)
	return Return(rc)
}

// BindParameterLong binds a 32-bit integer input parameter.
func BindParameterLong(stmt Handle, paramNumber int16, value *int32, indicator *int64) Return {
	var cInd C.SQLLEN
	if *indicator == NullData {
		cInd = C.SQLLEN(NullData)
	} else {
		cInd = C.SQLLEN(unsafe.Sizeof(*value))
	}
	rc := C.SQLBindParameter(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(paramNumber),
		C.SQLSMALLINT(ParamInput),
		C.SQLSMALLINT(CLong),
		C.SQLSMALLINT(SQLIntegerType),
		0, 0,
		C.SQLPOINTER(unsafe.Pointer(value)),
		0,
		&cInd,
	)
	*indicator = int64(cInd)
	return Return(rc)
}

// BindParameterArrayLong binds a column-wise array of 32-bit integer
// parameters for SQL_ATTR_PARAMSET_SIZE > 1 execution, with a matching
// indicator/status array.
func BindParameterArrayLong(stmt Handle, paramNumber int16, values []int32, indicators []int64) Return {
	cInd := make([]C.SQLLEN, len(indicators))
	for i, v := range indicators {
		cInd[i] = C.SQLLEN(v)
	}
	var valPtr, indPtr unsafe.Pointer
	if len(values) > 0 {
		valPtr = unsafe.Pointer(&values[0])
	}
	if len(cInd) > 0 {
		indPtr = unsafe.Pointer(&cInd[0])
	}
	rc := C.SQLBindParameter(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(paramNumber),
		C.SQLSMALLINT(ParamInput),
		C.SQLSMALLINT(CLong),
		C.SQLSMALLINT(SQLIntegerType),
		0, 0,
		C.SQLPOINTER(valPtr),
		0,
		(*C.SQLLEN)(indPtr),
	)
	for i := range indicators {
		indicators[i] = int64(cInd[i])
	}
	return Return(rc)
}

// SetParamBindType mirrors SQLSetStmtAttr(SQL_ATTR_PARAM_BIND_TYPE, ...),
// used by array-parameter probes to switch between column-wise (the
// default, value 0) and row-wise (a nonzero structure size) binding.
func SetParamBindType(stmt Handle, rowSize int64) Return {
	return SetStmtAttrInt(stmt, 18 /* SQL_ATTR_PARAM_BIND_TYPE */, rowSize)
}

// CatalogFn identifies which SQLxxx catalog function CatalogQuery issues.
type CatalogFn int

const (
	CatalogTables CatalogFn = iota
	CatalogColumns
	CatalogPrimaryKeys
	CatalogStatistics
	CatalogSpecialColumns
	CatalogProcedures
	CatalogTablePrivileges
)

// CatalogQuery issues one of the SQLTables/SQLColumns/SQLPrimaryKeys/
// SQLStatistics/SQLSpecialColumns/SQLProcedures/SQLTablePrivileges catalog
// functions. catalog/schema/table/column follow ODBC's search-pattern
// convention: empty string means SQL_NULL pattern (match-all), matching
// catalog_depth_tests.cpp's repeated "pass nil for wildcard" idiom.
func CatalogQuery(stmt Handle, fn CatalogFn, catalog, schema, table, columnOrType string) Return {
	cCatalog, cSchema, cTable, cCol := cstrOrNil(catalog), cstrOrNil(schema), cstrOrNil(table), cstrOrNil(columnOrType)
	defer freeAll(cCatalog, cSchema, cTable, cCol)

	h := C.SQLHSTMT(unsafe.Pointer(uintptr(stmt)))
	switch fn {
	case CatalogTables:
		return Return(C.SQLTables(h,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table),
			(*C.SQLCHAR)(cCol), cLen(columnOrType)))
	case CatalogColumns:
		return Return(C.SQLColumns(h,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table),
			(*C.SQLCHAR)(cCol), cLen(columnOrType)))
	case CatalogPrimaryKeys:
		return Return(C.SQLPrimaryKeys(h,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table)))
	case CatalogStatistics:
		return Return(C.SQLStatistics(h,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table),
			C.SQL_INDEX_ALL, C.SQL_QUICK))
	case CatalogSpecialColumns:
		return Return(C.SQLSpecialColumns(h,
			C.SQL_BEST_ROWID,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table),
			C.SQL_SCOPE_TRANSACTION, C.SQL_NULLABLE))
	case CatalogProcedures:
		return Return(C.SQLProcedures(h,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table)))
	case CatalogTablePrivileges:
		return Return(C.SQLTablePrivileges(h,
			(*C.SQLCHAR)(cCatalog), cLen(catalog),
			(*C.SQLCHAR)(cSchema), cLen(schema),
			(*C.SQLCHAR)(cTable), cLen(table)))
	default:
		return Error
	}
}

func cstrOrNil(s string) unsafe.Pointer {
	if s == "" {
		return nil
	}
	return unsafe.Pointer(C.CString(s))
}

func cLen(s string) C.SQLSMALLINT {
	if s == "" {
		return C.SQL_NTS
	}
	return C.SQLSMALLINT(len(s))
}

func freeAll(ptrs ...unsafe.Pointer) {
	for _, p := range ptrs {
		if p != nil {
			C.free(p)
		}
	}
}

// DriverConnectW is the wide-named counterpart to DriverConnect. It is
// reached only through core.Connection.ConnectW, which reports a failed
// return code as an error; nothing falls back from it to the narrow form.
func DriverConnectW(dbc Handle, connStr []uint16) (outUnits []uint16, rc Return) {
	outBuf := make([]uint16, connectOutBufLen)
	var outLen C.SQLSMALLINT

	cRC := C.SQLDriverConnectW(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		nil,
		(*C.SQLWCHAR)(unsafe.Pointer(&connStr[0])),
		C.SQLSMALLINT(len(connStr)-1),
		(*C.SQLWCHAR)(unsafe.Pointer(&outBuf[0])),
		C.SQLSMALLINT(len(outBuf)),
		&outLen,
		C.SQL_DRIVER_NOPROMPT,
	)
	n := int(outLen)
	if n > len(outBuf) {
		n = len(outBuf)
	}
	return outBuf[:n], Return(cRC)
}

// GetInfoStringW is the wide-named counterpart to GetInfoString. The
// returned byte length (outLen) is always in bytes, per §4.5's length
// convention, never in code units.
func GetInfoStringW(dbc Handle, infoType InfoType) (units []uint16, byteLen int, rc Return) {
	buf := make([]uint16, 256)
	var outLen C.SQLSMALLINT
	cRC := C.SQLGetInfoW(
		C.SQLHDBC(unsafe.Pointer(uintptr(dbc))),
		C.SQLUSMALLINT(infoType),
		C.SQLPOINTER(unsafe.Pointer(&buf[0])),
		C.SQLSMALLINT(len(buf)*2),
		&outLen,
	)
	n := int(outLen) / 2
	if n > len(buf) {
		n = len(buf)
	}
	if n < 0 {
		n = 0
	}
	return buf[:n], int(outLen), Return(cRC)
}

// DescribeColW is the wide-named counterpart to DescribeCol, used by the
// wide-character column-name probes.
func DescribeColW(stmt Handle, col int16) (nameUnits []uint16, dataType int16, size uint64, digits int16, nullable int16, rc Return) {
	nameBuf := make([]uint16, 256)
	var nameLen C.SQLSMALLINT
	var cDataType C.SQLSMALLINT
	var cSize C.SQLULEN
	var cDigits C.SQLSMALLINT
	var cNullable C.SQLSMALLINT

	cRC := C.SQLDescribeColW(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(col),
		(*C.SQLWCHAR)(unsafe.Pointer(&nameBuf[0])),
		C.SQLSMALLINT(len(nameBuf)),
		&nameLen,
		&cDataType,
		&cSize,
		&cDigits,
		&cNullable,
	)
	n := int(nameLen)
	if n > len(nameBuf) {
		n = len(nameBuf)
	}
	return nameBuf[:n], int16(cDataType), uint64(cSize), int16(cDigits), int16(cNullable), Return(cRC)
}

// GetDataWString mirrors SQLGetData with SQL_C_WCHAR, the wide by-column
// retrieval path probes fall back from when a column's native type is
// wide, per the wide get-data probe category.
func GetDataWString(stmt Handle, col int16, bufLenUnits int) (units []uint16, byteIndicator int64, rc Return) {
	if bufLenUnits <= 0 {
		bufLenUnits = 1
	}
	buf := make([]uint16, bufLenUnits)
	var ind C.SQLLEN
	cRC := C.SQLGetData(
		C.SQLHSTMT(unsafe.Pointer(uintptr(stmt))),
		C.SQLUSMALLINT(col),
		C.SQL_C_WCHAR,
		C.SQLPOINTER(unsafe.Pointer(&buf[0])),
		C.SQLLEN(len(buf)*2),
		&ind,
	)
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return buf[:n], int64(ind), Return(cRC)
}

// GetDiagRecW is the wide-named counterpart to GetDiagRec, used by the
// wide diagnostic-depth probes. SQLSTATE is always 5 narrow characters
// even on the W path per the ODBC spec, so only the message is wide.
func GetDiagRecW(kind HandleKind, h Handle, recNumber int16) (sqlState string, nativeError int32, message string, rc Return) {
	var state [6]byte
	var native C.SQLINTEGER
	msgBuf := make([]uint16, maxDiagMessageLen)
	var textLen C.SQLSMALLINT

	cRC := C.SQLGetDiagRecW(
		C.SQLSMALLINT(kind),
		C.SQLHANDLE(unsafe.Pointer(uintptr(h))),
		C.SQLSMALLINT(recNumber),
		(*C.SQLWCHAR)(unsafe.Pointer(&state[0])),
		&native,
		(*C.SQLWCHAR)(unsafe.Pointer(&msgBuf[0])),
		C.SQLSMALLINT(len(msgBuf)),
		&textLen,
	)
	n := int(textLen)
	if n > len(msgBuf) {
		n = len(msgBuf)
	}
	if n < 0 {
		n = 0
	}
	msgUnits := msgBuf[:n]
	end := 0
	for end < len(msgUnits) && msgUnits[end] != 0 {
		end++
	}
	return stateString(state[:]), int32(native), decodeWCharRunes(msgUnits[:end]), Return(cRC)
}

func decodeWCharRunes(units []uint16) string {
	// Minimal BMP-only decode, kept local so odbcapi has no import-cycle
	// dependency on internal/core's general-purpose wide bridge.
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return string(runes)
}
