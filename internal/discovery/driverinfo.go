package discovery

import (
	"odbccrusher/internal/core"
	"odbccrusher/internal/odbcapi"
)

// DriverInfo is the driver/DBMS identity and terminology collected via
// SQLGetInfo, grounded on
// original_source/src/discovery/driver_info.{hpp,cpp}'s Properties struct.
// Each field is individually optional: a driver that doesn't advertise a
// given info type leaves the field at its zero value rather than failing
// collection.
type DriverInfo struct {
	DriverName      string
	DriverVersion   string
	DriverODBCVer   string
	ODBCVer         string
	DBMSName        string
	DBMSVersion     string
	DatabaseName    string
	ServerName      string
	UserName        string
	CatalogTerm     string
	SchemaTerm      string
	TableTerm       string
	ProcedureTerm   string
	IdentifierQuote string

	SQLConformance          uint16
	InterfaceConformance    uint16
	MaxConcurrentActivities uint32
	MaxIdentifierLen        uint16
}

// collectDriverInfo issues one SQLGetInfo call per field. A failing call
// is recorded as absent (zero value), not propagated as an error: §4.6
// requires each info type to be individually optional.
func collectDriverInfo(conn *core.Connection) DriverInfo {
	var info DriverInfo
	info.DriverName = infoStringOrEmpty(conn, odbcapi.InfoDriverName)
	info.DriverVersion = infoStringOrEmpty(conn, odbcapi.InfoDriverVer)
	info.DriverODBCVer = infoStringOrEmpty(conn, odbcapi.InfoDriverODBCVer)
	info.ODBCVer = infoStringOrEmpty(conn, odbcapi.InfoODBCVer)
	info.DBMSName = infoStringOrEmpty(conn, odbcapi.InfoDBMSName)
	info.DBMSVersion = infoStringOrEmpty(conn, odbcapi.InfoDBMSVer)
	info.DatabaseName = infoStringOrEmpty(conn, odbcapi.InfoDatabaseName)
	info.ServerName = infoStringOrEmpty(conn, odbcapi.InfoServerName)
	info.UserName = infoStringOrEmpty(conn, odbcapi.InfoUserName)
	info.CatalogTerm = infoStringOrEmpty(conn, odbcapi.InfoCatalogTerm)
	info.SchemaTerm = infoStringOrEmpty(conn, odbcapi.InfoSchemaTerm)
	info.TableTerm = infoStringOrEmpty(conn, odbcapi.InfoTableTerm)
	info.ProcedureTerm = infoStringOrEmpty(conn, odbcapi.InfoProcedureTerm)
	info.IdentifierQuote = infoStringOrEmpty(conn, odbcapi.InfoIdentifierQuoteChar)

	info.SQLConformance, _ = conn.GetInfoUint16(odbcapi.InfoSQLConformance)
	info.InterfaceConformance, _ = conn.GetInfoUint16(odbcapi.InfoODBCInterfaceConformance)
	info.MaxConcurrentActivities, _ = conn.GetInfoUint32(odbcapi.InfoMaxConcurrentActivities)
	info.MaxIdentifierLen, _ = conn.GetInfoUint16(odbcapi.InfoMaxIdentifierLen)
	return info
}

func infoStringOrEmpty(conn *core.Connection, info odbcapi.InfoType) string {
	value, err := conn.GetInfoString(info)
	if err != nil {
		return ""
	}
	return value
}
