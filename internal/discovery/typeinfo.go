package discovery

import (
	"odbccrusher/internal/core"
	"odbccrusher/internal/odbcapi"
)

// DataTypeInfo describes one row of the SQLGetTypeInfo result set, grounded
// on original_source/src/discovery/type_info.hpp's DataTypeInfo struct.
type DataTypeInfo struct {
	TypeName          string
	DataType          int16
	ColumnSize        int64
	LiteralPrefix     string
	LiteralSuffix     string
	CreateParams      string
	Nullable          int16
	CaseSensitive     int16
	Searchable        int16
	UnsignedAttribute int16
	FixedPrecScale    int16
	AutoUniqueValue   int16
	LocalTypeName     string
	MinimumScale      int16
	MaximumScale      int16
	SQLDataType       int16
	SQLDatetimeSub    int16
	NumPrecRadix      int64
}

// The 1-based column ordinals of the SQLGetTypeInfo result set, per the
// ODBC specification's fixed column order.
const (
	colTypeName          = 1
	colDataType          = 2
	colColumnSize        = 3
	colLiteralPrefix     = 4
	colLiteralSuffix     = 5
	colCreateParams      = 6
	colNullable          = 7
	colCaseSensitive     = 8
	colSearchable        = 9
	colUnsignedAttribute = 10
	colFixedPrecScale    = 11
	colAutoUniqueValue   = 12
	colLocalTypeName     = 13
	colMinimumScale      = 14
	colMaximumScale      = 15
	colSQLDataType       = 16
	colSQLDatetimeSub    = 17
	colNumPrecRadix      = 18

	typeNameBufLen = 256
)

// collectTypeInfo runs SQLGetTypeInfo(SQL_ALL_TYPES) and walks the result
// set by column, per §4.6's by-column retrieval requirement: the type
// catalog never uses SQLBindCol.
func collectTypeInfo(conn *core.Connection) ([]DataTypeInfo, error) {
	stmt, err := core.NewStatement(conn)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	if err := stmt.GetTypeInfo(odbcapi.SQLAllTypes); err != nil {
		return nil, err
	}

	var types []DataTypeInfo
	for {
		more, err := stmt.Fetch()
		if err != nil {
			return types, err
		}
		if !more {
			break
		}
		types = append(types, readTypeRow(stmt))
	}
	return types, nil
}

func readTypeRow(stmt *core.Statement) DataTypeInfo {
	var t DataTypeInfo
	t.TypeName, _ = stmt.GetDataString(colTypeName, typeNameBufLen)
	dt, _ := stmt.GetDataLong(colDataType)
	t.DataType = int16(dt)
	t.ColumnSize, _ = stmt.GetDataLong(colColumnSize)
	t.LiteralPrefix, _ = stmt.GetDataString(colLiteralPrefix, typeNameBufLen)
	t.LiteralSuffix, _ = stmt.GetDataString(colLiteralSuffix, typeNameBufLen)
	t.CreateParams, _ = stmt.GetDataString(colCreateParams, typeNameBufLen)
	nullable, _ := stmt.GetDataLong(colNullable)
	t.Nullable = int16(nullable)
	caseSensitive, _ := stmt.GetDataLong(colCaseSensitive)
	t.CaseSensitive = int16(caseSensitive)
	searchable, _ := stmt.GetDataLong(colSearchable)
	t.Searchable = int16(searchable)
	unsignedAttr, _ := stmt.GetDataLong(colUnsignedAttribute)
	t.UnsignedAttribute = int16(unsignedAttr)
	fixedPrecScale, _ := stmt.GetDataLong(colFixedPrecScale)
	t.FixedPrecScale = int16(fixedPrecScale)
	autoUnique, _ := stmt.GetDataLong(colAutoUniqueValue)
	t.AutoUniqueValue = int16(autoUnique)
	t.LocalTypeName, _ = stmt.GetDataString(colLocalTypeName, typeNameBufLen)
	minScale, _ := stmt.GetDataLong(colMinimumScale)
	t.MinimumScale = int16(minScale)
	maxScale, _ := stmt.GetDataLong(colMaximumScale)
	t.MaximumScale = int16(maxScale)
	sqlDataType, _ := stmt.GetDataLong(colSQLDataType)
	t.SQLDataType = int16(sqlDataType)
	datetimeSub, _ := stmt.GetDataLong(colSQLDatetimeSub)
	t.SQLDatetimeSub = int16(datetimeSub)
	t.NumPrecRadix, _ = stmt.GetDataLong(colNumPrecRadix)
	return t
}
