package discovery

import (
	"odbccrusher/internal/core"
	"odbccrusher/internal/odbcapi"
)

// namedBit pairs a scalar-function bitmask value with its display name.
type namedBit struct {
	bit  uint32
	name string
}

// String scalar functions (SQL_FN_STR_*), per original_source's
// function_info.cpp cluster listing.
var stringFunctionBits = []namedBit{
	{0x00000001, "CONCAT"},
	{0x00000002, "INSERT"},
	{0x00000004, "LEFT"},
	{0x00000008, "LTRIM"},
	{0x00000010, "LENGTH"},
	{0x00000020, "LOCATE"},
	{0x00000040, "LCASE"},
	{0x00000080, "REPEAT"},
	{0x00000100, "REPLACE"},
	{0x00000200, "RIGHT"},
	{0x00000400, "RTRIM"},
	{0x00000800, "SUBSTRING"},
	{0x00001000, "UCASE"},
	{0x00002000, "ASCII"},
	{0x00004000, "CHAR"},
	{0x00008000, "DIFFERENCE"},
	{0x00010000, "LOCATE_2"},
	{0x00020000, "SOUNDEX"},
	{0x00040000, "SPACE"},
}

// Numeric scalar functions (SQL_FN_NUM_*).
var numericFunctionBits = []namedBit{
	{0x00000001, "ABS"},
	{0x00000002, "ACOS"},
	{0x00000004, "ASIN"},
	{0x00000008, "ATAN"},
	{0x00000010, "ATAN2"},
	{0x00000020, "CEILING"},
	{0x00000040, "COS"},
	{0x00000080, "COT"},
	{0x00000100, "EXP"},
	{0x00000200, "FLOOR"},
	{0x00000400, "LOG"},
	{0x00000800, "MOD"},
	{0x00001000, "SIGN"},
	{0x00002000, "SIN"},
	{0x00004000, "SQRT"},
	{0x00008000, "TAN"},
	{0x00010000, "PI"},
	{0x00020000, "RAND"},
	{0x00040000, "DEGREES"},
	{0x00080000, "LOG10"},
	{0x00100000, "POWER"},
	{0x00200000, "RADIANS"},
	{0x00400000, "ROUND"},
	{0x00800000, "TRUNCATE"},
}

// Timedate scalar functions (SQL_FN_TD_*).
var timedateFunctionBits = []namedBit{
	{0x00000001, "NOW"},
	{0x00000002, "CURDATE"},
	{0x00000004, "DAYOFMONTH"},
	{0x00000008, "DAYOFWEEK"},
	{0x00000010, "DAYOFYEAR"},
	{0x00000020, "MONTH"},
	{0x00000040, "QUARTER"},
	{0x00000080, "WEEK"},
	{0x00000100, "YEAR"},
	{0x00000200, "CURTIME"},
	{0x00000400, "HOUR"},
	{0x00000800, "MINUTE"},
	{0x00001000, "SECOND"},
	{0x00002000, "TIMESTAMPADD"},
	{0x00004000, "TIMESTAMPDIFF"},
	{0x00008000, "DAYNAME"},
	{0x00010000, "MONTHNAME"},
	{0x00020000, "CURRENT_DATE"},
	{0x00040000, "CURRENT_TIME"},
	{0x00080000, "CURRENT_TIMESTAMP"},
	{0x00100000, "EXTRACT"},
}

// System scalar functions (SQL_FN_SYS_*).
var systemFunctionBits = []namedBit{
	{0x00000001, "USERNAME"},
	{0x00000002, "DBNAME"},
	{0x00000004, "IFNULL"},
}

// ScalarFunctionSupport is the decoded scalar-function capability set,
// grounded on original_source/src/discovery/driver_info.hpp's
// ScalarFunctionSupport struct.
type ScalarFunctionSupport struct {
	StringFunctions   []string
	NumericFunctions  []string
	TimedateFunctions []string
	SystemFunctions   []string

	StringBitmask   uint32
	NumericBitmask  uint32
	TimedateBitmask uint32
	SystemBitmask   uint32

	ConvertFunctionsBitmask uint32
	OJCapabilities          uint32
	DatetimeLiterals        uint32
	TimedateAddIntervals    uint32
	TimedateDiffIntervals   uint32
}

// collectScalarFunctions gathers the four SQL_*_FUNCTIONS bitmasks plus the
// conversion/outer-join/datetime-literal capability masks and decodes the
// four function-name lists from their bitmasks.
func collectScalarFunctions(conn *core.Connection) ScalarFunctionSupport {
	var s ScalarFunctionSupport

	s.StringBitmask = uint32Or0(conn, odbcapi.InfoStringFunctions)
	s.NumericBitmask = uint32Or0(conn, odbcapi.InfoNumericFunctions)
	s.TimedateBitmask = uint32Or0(conn, odbcapi.InfoTimedateFunctions)
	s.SystemBitmask = uint32Or0(conn, odbcapi.InfoSystemFunctions)
	s.ConvertFunctionsBitmask = uint32Or0(conn, odbcapi.InfoConvertFunctions)
	s.OJCapabilities = uint32Or0(conn, odbcapi.InfoOJCapabilities)
	s.DatetimeLiterals = uint32Or0(conn, odbcapi.InfoDatetimeLiterals)
	s.TimedateAddIntervals = uint32Or0(conn, odbcapi.InfoTimedateAddIntervals)
	s.TimedateDiffIntervals = uint32Or0(conn, odbcapi.InfoTimedateDiffIntervals)

	s.StringFunctions = decodeBits(s.StringBitmask, stringFunctionBits)
	s.NumericFunctions = decodeBits(s.NumericBitmask, numericFunctionBits)
	s.TimedateFunctions = decodeBits(s.TimedateBitmask, timedateFunctionBits)
	s.SystemFunctions = decodeBits(s.SystemBitmask, systemFunctionBits)
	return s
}

func uint32Or0(conn *core.Connection, info odbcapi.InfoType) uint32 {
	v, err := conn.GetInfoUint32(info)
	if err != nil {
		return 0
	}
	return v
}

func decodeBits(bitmask uint32, table []namedBit) []string {
	var names []string
	for _, b := range table {
		if bitmask&b.bit != 0 {
			names = append(names, b.name)
		}
	}
	return names
}
