package core

import "odbccrusher/internal/odbcapi"

// Driver is the seam between the handle wrappers in this package and the
// actual ODBC call-level interface. Production code always uses cgoDriver,
// a thin pass-through to internal/odbcapi; package tests substitute
// internal/core/faketest's in-process double so the recycle protocol,
// diagnostic extraction, and crash-guard behavior can be exercised without
// a real driver manager or network round trip.
type Driver interface {
	AllocHandle(kind odbcapi.HandleKind, parent odbcapi.Handle) (odbcapi.Handle, odbcapi.Return)
	FreeHandle(kind odbcapi.HandleKind, h odbcapi.Handle) odbcapi.Return
	SetEnvAttrInt(env odbcapi.Handle, attr int32, value int64) odbcapi.Return
	DriverConnect(dbc odbcapi.Handle, connStr string) (string, odbcapi.Return)
	Disconnect(dbc odbcapi.Handle) odbcapi.Return
	SetConnectAttrInt(dbc odbcapi.Handle, attr int32, value int64) odbcapi.Return
	GetConnectAttrInt(dbc odbcapi.Handle, attr int32) (int64, odbcapi.Return)
	EndTran(kind odbcapi.HandleKind, h odbcapi.Handle, completionType int16) odbcapi.Return
	GetInfoString(dbc odbcapi.Handle, info odbcapi.InfoType) (string, odbcapi.Return)
	GetInfoUint32(dbc odbcapi.Handle, info odbcapi.InfoType) (uint32, odbcapi.Return)
	GetInfoUint16(dbc odbcapi.Handle, info odbcapi.InfoType) (uint16, odbcapi.Return)
	GetFunctions(dbc odbcapi.Handle) ([]uint16, odbcapi.Return)

	ExecDirect(stmt odbcapi.Handle, sql string) odbcapi.Return
	Prepare(stmt odbcapi.Handle, sql string) odbcapi.Return
	Execute(stmt odbcapi.Handle) odbcapi.Return
	Fetch(stmt odbcapi.Handle) odbcapi.Return
	FreeStmt(stmt odbcapi.Handle, opt odbcapi.FreeStmtOption) odbcapi.Return
	Cancel(stmt odbcapi.Handle) odbcapi.Return
	NumResultCols(stmt odbcapi.Handle) (int16, odbcapi.Return)
	DescribeCol(stmt odbcapi.Handle, col int16) (string, int16, uint64, int16, int16, odbcapi.Return)
	GetDataString(stmt odbcapi.Handle, col int16, bufLen int) (string, int64, odbcapi.Return)
	GetDataLong(stmt odbcapi.Handle, col int16) (int64, int64, odbcapi.Return)
	SetStmtAttrInt(stmt odbcapi.Handle, attr int32, value int64) odbcapi.Return
	GetStmtAttrInt(stmt odbcapi.Handle, attr int32) (int64, odbcapi.Return)
	GetStmtDescriptor(stmt odbcapi.Handle, attr int32) (odbcapi.Handle, odbcapi.Return)

	CopyDesc(src, dst odbcapi.Handle) odbcapi.Return

	GetDiagRec(kind odbcapi.HandleKind, h odbcapi.Handle, recNumber int16) (string, int32, string, odbcapi.Return)
	GetDiagRecW(kind odbcapi.HandleKind, h odbcapi.Handle, recNumber int16) (string, int32, string, odbcapi.Return)

	GetTypeInfo(stmt odbcapi.Handle, dataType int16) odbcapi.Return
	SetDescFieldInt(desc odbcapi.Handle, recNumber int16, field int32, value int64) odbcapi.Return
	GetDescFieldInt(desc odbcapi.Handle, recNumber int16, field int32) (int64, odbcapi.Return)

	BindParameterString(stmt odbcapi.Handle, paramNumber int16, value *[]byte, indicator *int64, sqlType int16) odbcapi.Return
	BindParameterWString(stmt odbcapi.Handle, paramNumber int16, units *[]uint16, indicator *int64) odbcapi.Return
	BindParameterLong(stmt odbcapi.Handle, paramNumber int16, value *int32, indicator *int64) odbcapi.Return
	BindParameterArrayLong(stmt odbcapi.Handle, paramNumber int16, values []int32, indicators []int64) odbcapi.Return
	SetParamBindType(stmt odbcapi.Handle, rowSize int64) odbcapi.Return

	CatalogQuery(stmt odbcapi.Handle, fn odbcapi.CatalogFn, catalog, schema, table, columnOrType string) odbcapi.Return

	DriverConnectW(dbc odbcapi.Handle, connStr []uint16) ([]uint16, odbcapi.Return)
	GetInfoStringW(dbc odbcapi.Handle, info odbcapi.InfoType) ([]uint16, int, odbcapi.Return)
	DescribeColW(stmt odbcapi.Handle, col int16) ([]uint16, int16, uint64, int16, int16, odbcapi.Return)
	GetDataWString(stmt odbcapi.Handle, col int16, bufLenUnits int) ([]uint16, int64, odbcapi.Return)
}

// cgoDriver is the production Driver, a direct pass-through to
// internal/odbcapi's cgo bindings.
type cgoDriver struct{}

// DefaultDriver is the Driver every constructor in this package uses
// unless a test overrides it.
var DefaultDriver Driver = cgoDriver{}

func (cgoDriver) AllocHandle(kind odbcapi.HandleKind, parent odbcapi.Handle) (odbcapi.Handle, odbcapi.Return) {
	return odbcapi.AllocHandle(kind, parent)
}
func (cgoDriver) FreeHandle(kind odbcapi.HandleKind, h odbcapi.Handle) odbcapi.Return {
	return odbcapi.FreeHandle(kind, h)
}
func (cgoDriver) SetEnvAttrInt(env odbcapi.Handle, attr int32, value int64) odbcapi.Return {
	return odbcapi.SetEnvAttrInt(env, attr, value)
}
func (cgoDriver) DriverConnect(dbc odbcapi.Handle, connStr string) (string, odbcapi.Return) {
	return odbcapi.DriverConnect(dbc, connStr)
}
func (cgoDriver) Disconnect(dbc odbcapi.Handle) odbcapi.Return { return odbcapi.Disconnect(dbc) }
func (cgoDriver) SetConnectAttrInt(dbc odbcapi.Handle, attr int32, value int64) odbcapi.Return {
	return odbcapi.SetConnectAttrInt(dbc, attr, value)
}
func (cgoDriver) GetConnectAttrInt(dbc odbcapi.Handle, attr int32) (int64, odbcapi.Return) {
	return odbcapi.GetConnectAttrInt(dbc, attr)
}
func (cgoDriver) EndTran(kind odbcapi.HandleKind, h odbcapi.Handle, completionType int16) odbcapi.Return {
	return odbcapi.EndTran(kind, h, completionType)
}
func (cgoDriver) GetInfoString(dbc odbcapi.Handle, info odbcapi.InfoType) (string, odbcapi.Return) {
	return odbcapi.GetInfoString(dbc, info)
}
func (cgoDriver) GetInfoUint32(dbc odbcapi.Handle, info odbcapi.InfoType) (uint32, odbcapi.Return) {
	return odbcapi.GetInfoUint32(dbc, info)
}
func (cgoDriver) GetInfoUint16(dbc odbcapi.Handle, info odbcapi.InfoType) (uint16, odbcapi.Return) {
	return odbcapi.GetInfoUint16(dbc, info)
}
func (cgoDriver) GetFunctions(dbc odbcapi.Handle) ([]uint16, odbcapi.Return) {
	bitmap, rc := odbcapi.GetFunctions(dbc)
	return bitmap[:], rc
}
func (cgoDriver) ExecDirect(stmt odbcapi.Handle, sql string) odbcapi.Return {
	return odbcapi.ExecDirect(stmt, sql)
}
func (cgoDriver) Prepare(stmt odbcapi.Handle, sql string) odbcapi.Return {
	return odbcapi.Prepare(stmt, sql)
}
func (cgoDriver) Execute(stmt odbcapi.Handle) odbcapi.Return { return odbcapi.Execute(stmt) }
func (cgoDriver) Fetch(stmt odbcapi.Handle) odbcapi.Return    { return odbcapi.Fetch(stmt) }
func (cgoDriver) FreeStmt(stmt odbcapi.Handle, opt odbcapi.FreeStmtOption) odbcapi.Return {
	return odbcapi.FreeStmt(stmt, opt)
}
func (cgoDriver) Cancel(stmt odbcapi.Handle) odbcapi.Return { return odbcapi.Cancel(stmt) }
func (cgoDriver) NumResultCols(stmt odbcapi.Handle) (int16, odbcapi.Return) {
	return odbcapi.NumResultCols(stmt)
}
func (cgoDriver) DescribeCol(stmt odbcapi.Handle, col int16) (string, int16, uint64, int16, int16, odbcapi.Return) {
	return odbcapi.DescribeCol(stmt, col)
}
func (cgoDriver) GetDataString(stmt odbcapi.Handle, col int16, bufLen int) (string, int64, odbcapi.Return) {
	return odbcapi.GetDataString(stmt, col, bufLen)
}
func (cgoDriver) GetDataLong(stmt odbcapi.Handle, col int16) (int64, int64, odbcapi.Return) {
	return odbcapi.GetDataLong(stmt, col)
}
func (cgoDriver) SetStmtAttrInt(stmt odbcapi.Handle, attr int32, value int64) odbcapi.Return {
	return odbcapi.SetStmtAttrInt(stmt, attr, value)
}
func (cgoDriver) GetStmtAttrInt(stmt odbcapi.Handle, attr int32) (int64, odbcapi.Return) {
	return odbcapi.GetStmtAttrInt(stmt, attr)
}
func (cgoDriver) GetStmtDescriptor(stmt odbcapi.Handle, attr int32) (odbcapi.Handle, odbcapi.Return) {
	return odbcapi.GetStmtDescriptor(stmt, attr)
}
func (cgoDriver) CopyDesc(src, dst odbcapi.Handle) odbcapi.Return { return odbcapi.CopyDesc(src, dst) }
func (cgoDriver) GetDiagRec(kind odbcapi.HandleKind, h odbcapi.Handle, recNumber int16) (string, int32, string, odbcapi.Return) {
	return odbcapi.GetDiagRec(kind, h, recNumber)
}
func (cgoDriver) GetDiagRecW(kind odbcapi.HandleKind, h odbcapi.Handle, recNumber int16) (string, int32, string, odbcapi.Return) {
	return odbcapi.GetDiagRecW(kind, h, recNumber)
}
func (cgoDriver) GetTypeInfo(stmt odbcapi.Handle, dataType int16) odbcapi.Return {
	return odbcapi.GetTypeInfo(stmt, dataType)
}
func (cgoDriver) SetDescFieldInt(desc odbcapi.Handle, recNumber int16, field int32, value int64) odbcapi.Return {
	return odbcapi.SetDescFieldInt(desc, recNumber, field, value)
}
func (cgoDriver) GetDescFieldInt(desc odbcapi.Handle, recNumber int16, field int32) (int64, odbcapi.Return) {
	return odbcapi.GetDescFieldInt(desc, recNumber, field)
}
func (cgoDriver) BindParameterString(stmt odbcapi.Handle, paramNumber int16, value *[]byte, indicator *int64, sqlType int16) odbcapi.Return {
	return odbcapi.BindParameterString(stmt, paramNumber, value, indicator, sqlType)
}
func (cgoDriver) BindParameterWString(stmt odbcapi.Handle, paramNumber int16, units *[]uint16, indicator *int64) odbcapi.Return {
	return odbcapi.BindParameterWString(stmt, paramNumber, units, indicator)
}
func (cgoDriver) BindParameterLong(stmt odbcapi.Handle, paramNumber int16, value *int32, indicator *int64) odbcapi.Return {
	return odbcapi.BindParameterLong(stmt, paramNumber, value, indicator)
}
func (cgoDriver) BindParameterArrayLong(stmt odbcapi.Handle, paramNumber int16, values []int32, indicators []int64) odbcapi.Return {
	return odbcapi.BindParameterArrayLong(stmt, paramNumber, values, indicators)
}
func (cgoDriver) SetParamBindType(stmt odbcapi.Handle, rowSize int64) odbcapi.Return {
	return odbcapi.SetParamBindType(stmt, rowSize)
}
func (cgoDriver) CatalogQuery(stmt odbcapi.Handle, fn odbcapi.CatalogFn, catalog, schema, table, columnOrType string) odbcapi.Return {
	return odbcapi.CatalogQuery(stmt, fn, catalog, schema, table, columnOrType)
}
func (cgoDriver) DriverConnectW(dbc odbcapi.Handle, connStr []uint16) ([]uint16, odbcapi.Return) {
	return odbcapi.DriverConnectW(dbc, connStr)
}
func (cgoDriver) GetInfoStringW(dbc odbcapi.Handle, info odbcapi.InfoType) ([]uint16, int, odbcapi.Return) {
	return odbcapi.GetInfoStringW(dbc, info)
}
func (cgoDriver) DescribeColW(stmt odbcapi.Handle, col int16) ([]uint16, int16, uint64, int16, int16, odbcapi.Return) {
	return odbcapi.DescribeColW(stmt, col)
}
func (cgoDriver) GetDataWString(stmt odbcapi.Handle, col int16, bufLenUnits int) ([]uint16, int64, odbcapi.Return) {
	return odbcapi.GetDataWString(stmt, col, bufLenUnits)
}
