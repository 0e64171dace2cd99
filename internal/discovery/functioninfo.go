package discovery

import (
	"odbccrusher/internal/core"
)

// FunctionID is the SQL_API_* identifier SQLGetFunctions reports on.
type FunctionID uint16

// CuratedFunctions is the curated list of ODBC functions this module
// checks support for, grouped by the same clusters
// original_source/src/discovery/function_info.cpp checks: connection,
// statement, catalog, retrieval, transaction, diagnostic, attribute,
// handle, info, cursor, and descriptor functions.
var CuratedFunctions = []struct {
	ID   FunctionID
	Name string
}{
	// Connection
	{1, "SQLConnect"},
	{41, "SQLDriverConnect"},
	{9, "SQLDisconnect"},
	{114, "SQLBrowseConnect"},
	// Statement
	{11, "SQLExecDirect"},
	{19, "SQLPrepare"},
	{12, "SQLExecute"},
	{8, "SQLFetch"},
	{153, "SQLFetchScroll"},
	{61, "SQLMoreResults"},
	{52, "SQLCloseCursor"},
	{5, "SQLCancel"},
	// Catalog
	{54, "SQLTables"},
	{40, "SQLColumns"},
	{58, "SQLPrimaryKeys"},
	{59, "SQLForeignKeys"},
	{53, "SQLStatistics"},
	{57, "SQLSpecialColumns"},
	{66, "SQLProcedures"},
	{67, "SQLProcedureColumns"},
	{56, "SQLTablePrivileges"},
	{6001, "SQLColumnPrivileges"},
	// Retrieval
	{43, "SQLGetData"},
	{4, "SQLBindCol"},
	{72, "SQLBindParameter"},
	{20, "SQLDescribeCol"},
	{6, "SQLColAttribute"},
	{18, "SQLNumResultCols"},
	{20001, "SQLRowCount"},
	{58001, "SQLDescribeParam"},
	{58002, "SQLNumParams"},
	// Transaction
	{4000, "SQLEndTran"},
	// Diagnostic
	{37, "SQLGetDiagField"},
	{38, "SQLGetDiagRec"},
	// Attribute
	{4001, "SQLGetConnectAttr"},
	{4002, "SQLSetConnectAttr"},
	{4003, "SQLGetStmtAttr"},
	{4004, "SQLSetStmtAttr"},
	{4005, "SQLGetEnvAttr"},
	{4006, "SQLSetEnvAttr"},
	// Handle
	{1001, "SQLAllocHandle"},
	{1002, "SQLFreeHandle"},
	// Info
	{45, "SQLGetInfo"},
	{44, "SQLGetFunctions"},
	{47, "SQLGetTypeInfo"},
	// Cursor
	{22, "SQLSetCursorName"},
	{21, "SQLGetCursorName"},
	// Descriptor
	{1003, "SQLCopyDesc"},
	{1004, "SQLGetDescField"},
	{1005, "SQLSetDescField"},
}

// FunctionSupport holds which of CuratedFunctions a driver reports
// support for.
type FunctionSupport struct {
	Bitmap    []uint16
	Supported map[FunctionID]bool
}

// IsSupported reports whether id was decoded as supported from the
// SQLGetFunctions bitmap. Only ids listed in CuratedFunctions are decoded;
// any other id reports false, whatever the raw bitmap holds.
func (f FunctionSupport) IsSupported(id FunctionID) bool {
	return f.Supported[id]
}

// SupportedCount is the number of CuratedFunctions this driver supports.
func (f FunctionSupport) SupportedCount() int {
	n := 0
	for _, v := range f.Supported {
		if v {
			n++
		}
	}
	return n
}

// collectFunctionInfo runs SQLGetFunctions with the ODBC3-ALL-FUNCTIONS
// bitmap form, then decodes support for CuratedFunctions from the bitmap.
func collectFunctionInfo(conn *core.Connection) (FunctionSupport, error) {
	bitmap, err := conn.GetFunctions()
	if err != nil {
		return FunctionSupport{}, err
	}
	support := FunctionSupport{Bitmap: bitmap, Supported: make(map[FunctionID]bool, len(CuratedFunctions))}
	for _, f := range CuratedFunctions {
		support.Supported[f.ID] = bitmapBit(bitmap, uint16(f.ID))
	}
	return support, nil
}

// bitmapBit mirrors the SQL_FUNC_EXISTS macro: bit (id % 16) of word
// (id >> 4).
func bitmapBit(bitmap []uint16, id uint16) bool {
	word := int(id >> 4)
	if word < 0 || word >= len(bitmap) {
		return false
	}
	return bitmap[word]&(1<<(id&0x0F)) != 0
}
