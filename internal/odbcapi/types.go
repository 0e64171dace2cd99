package odbcapi

// HandleKind identifies one of the four ODBC handle kinds, mirroring the
// SQL_HANDLE_* constants (SQLSMALLINT values 1..4 in sqlext.h).
type HandleKind int16

const (
	HandleEnvironment HandleKind = 1 // SQL_HANDLE_ENV
	HandleConnection  HandleKind = 2 // SQL_HANDLE_DBC
	HandleStatement   HandleKind = 3 // SQL_HANDLE_STMT
	HandleDescriptor  HandleKind = 4 // SQL_HANDLE_DESC
)

func (k HandleKind) String() string {
	switch k {
	case HandleEnvironment:
		return "ENV"
	case HandleConnection:
		return "DBC"
	case HandleStatement:
		return "STMT"
	case HandleDescriptor:
		return "DESC"
	default:
		return "UNKNOWN"
	}
}

// Return is the ODBC SQLRETURN scale.
type Return int16

const (
	Success        Return = 0  // SQL_SUCCESS
	SuccessWithInfo Return = 1  // SQL_SUCCESS_WITH_INFO
	Error          Return = -1 // SQL_ERROR
	InvalidHandle  Return = -2 // SQL_INVALID_HANDLE
	NoData         Return = 100 // SQL_NO_DATA
	NeedData       Return = 99  // SQL_NEED_DATA
	StillExecuting Return = 2   // SQL_STILL_EXECUTING
)

// Succeeded mirrors the SQL_SUCCEEDED(rc) macro: true for Success or
// SuccessWithInfo.
func Succeeded(rc Return) bool {
	return rc == Success || rc == SuccessWithInfo
}

// FreeStmtOption mirrors the SQLFreeStmt option codes.
type FreeStmtOption int16

const (
	OptClose       FreeStmtOption = 0 // SQL_CLOSE
	OptDrop        FreeStmtOption = 1 // SQL_DROP (deprecated, use SQLFreeHandle)
	OptUnbind      FreeStmtOption = 2 // SQL_UNBIND
	OptResetParams FreeStmtOption = 3 // SQL_RESET_PARAMS
)

// Handle is an opaque ODBC handle (SQLHENV/SQLHDBC/SQLHSTMT/SQLHDESC),
// represented as the underlying pointer value. The zero Handle is the
// ODBC SQL_NULL_* sentinel for its kind.
type Handle uintptr

// IsNull reports whether h is the ODBC null-handle sentinel.
func (h Handle) IsNull() bool { return h == 0 }

// InfoType mirrors the SQLGetInfo InfoType codes this module queries.
type InfoType uint16

// A curated subset of SQL_* info constants from sqlext.h, named for the
// fields capability discovery collects (see internal/discovery).
const (
	InfoDriverName              InfoType = 6   // SQL_DRIVER_NAME
	InfoDriverVer               InfoType = 7   // SQL_DRIVER_VER
	InfoDBMSName                InfoType = 17  // SQL_DBMS_NAME
	InfoDBMSVer                 InfoType = 18  // SQL_DBMS_VER
	InfoODBCVer                 InfoType = 10  // SQL_ODBC_VER
	InfoServerName              InfoType = 13  // SQL_SERVER_NAME
	InfoUserName                InfoType = 47  // SQL_USER_NAME
	InfoDatabaseName            InfoType = 16  // SQL_DATABASE_NAME
	InfoCatalogTerm             InfoType = 42  // SQL_CATALOG_TERM
	InfoSchemaTerm              InfoType = 39  // SQL_SCHEMA_TERM
	InfoTableTerm               InfoType = 45  // SQL_TABLE_TERM
	InfoProcedureTerm           InfoType = 40  // SQL_PROCEDURE_TERM
	InfoIdentifierQuoteChar     InfoType = 29  // SQL_IDENTIFIER_QUOTE_CHAR
	InfoSQLConformance          InfoType = 118 // SQL_SQL_CONFORMANCE
	InfoODBCInterfaceConformance InfoType = 152 // SQL_ODBC_INTERFACE_CONFORMANCE
	InfoMaxConcurrentActivities InfoType = 1   // SQL_MAX_CONCURRENT_ACTIVITIES
	InfoMaxIdentifierLen        InfoType = 10005 // SQL_MAX_IDENTIFIER_LEN
	InfoConvertFunctions        InfoType = 48  // SQL_CONVERT_FUNCTIONS
	InfoNumericFunctions        InfoType = 49  // SQL_NUMERIC_FUNCTIONS
	InfoStringFunctions         InfoType = 50  // SQL_STRING_FUNCTIONS
	InfoSystemFunctions         InfoType = 51  // SQL_SYSTEM_FUNCTIONS
	InfoTimedateFunctions       InfoType = 52  // SQL_TIMEDATE_FUNCTIONS
	InfoOJCapabilities          InfoType = 115 // SQL_OJ_CAPABILITIES
	InfoDatetimeLiterals        InfoType = 119 // SQL_DATETIME_LITERALS
	InfoTimedateAddIntervals    InfoType = 109 // SQL_TIMEDATE_ADD_INTERVALS (alias family; differs by driver manager version)
	InfoTimedateDiffIntervals   InfoType = 110 // SQL_TIMEDATE_DIFF_INTERVALS
	InfoDriverODBCVer           InfoType = 77  // SQL_DRIVER_ODBC_VER
	InfoMaxConcurrentActiv      InfoType = 1   // alias kept for discovery readability
	InfoCursorCommitBehavior    InfoType = 23  // SQL_CURSOR_COMMIT_BEHAVIOR
	InfoDefaultTxnIsolation     InfoType = 26  // SQL_DEFAULT_TXN_ISOLATION
	InfoTxnIsolationOption      InfoType = 72  // SQL_TXN_ISOLATION_OPTION
	InfoGetDataExtensions       InfoType = 81  // SQL_GETDATA_EXTENSIONS
	InfoScrollOptions           InfoType = 44  // SQL_SCROLL_OPTIONS
	InfoCursorSensitivity       InfoType = 10001
	InfoAsyncMode               InfoType = 10021
)

// SQL type codes (SQL_* constants from sql.h/sqlext.h), the subset the type
// catalog and data-type probes name directly.
const (
	SQLCharType      int16 = 1
	SQLVarcharType   int16 = 12
	SQLDecimalType   int16 = 3
	SQLIntegerType   int16 = 4
	SQLSmallintType  int16 = 5
	SQLFloatType     int16 = 6
	SQLRealType      int16 = 7
	SQLDoubleType    int16 = 8
	SQLDateType      int16 = 9
	SQLTimeType      int16 = 10
	SQLTimestampType int16 = 11
	SQLBigintType    int16 = -5
	SQLBinaryType    int16 = -2
	SQLVarbinaryType int16 = -3
	SQLLongvarbinary int16 = -4
	SQLBitType       int16 = -7
	SQLTinyintType   int16 = -6
	SQLWcharType     int16 = -8
	SQLWvarcharType  int16 = -9
	SQLGUIDType      int16 = -11
	SQLAllTypes      int16 = 0 // SQL_ALL_TYPES, the SQLGetTypeInfo wildcard
)

// C data-type codes (SQL_C_* constants) used by SQLBindParameter and
// SQLGetData to describe the host-side buffer shape.
const (
	CChar      int16 = 1
	CLong      int16 = 4
	CDouble    int16 = 8
	CWChar     int16 = -8
	CNumeric   int16 = 2
	CDefault   int16 = 99
)

// Parameter direction codes for SQLBindParameter.
const (
	ParamInput       int16 = 1
	ParamInputOutput int16 = 2
	ParamOutput      int16 = 4
)

// NullData is the SQL_NULL_DATA sentinel indicator value.
const NullData int64 = -1

// The NoTotal (SQL_NO_TOTAL) indicator sentinel, used by buffer-validation and
// array-parameter probes to recognize driver-reported truncation.
const (
	NoTotal int64 = -4
)

// Descriptor field identifiers (SQL_DESC_*), the subset descriptor probes
// read/write directly.
const (
	DescType            int32 = 1002
	DescLength          int32 = 1003
	DescPrecision       int32 = 1005
	DescScale           int32 = 1006
	DescNullable        int32 = 1008
	DescCount           int32 = 1001
	DescConciseType     int32 = 2
	DescDataPtr         int32 = 1010
	DescIndicatorPtr    int32 = 1009
	DescOctetLength     int32 = 1013
)
