// Package faketest is an in-process double for internal/odbcapi, used by
// package tests elsewhere in the module to exercise the recycle protocol,
// diagnostic extraction, and discovery logic without a real ODBC driver
// manager or network connection. It is never linked into the production
// cgo path.
//
// Its connection-string protocol (Mode, FailOn, ErrorCode, Catalog,
// ResultSetSize, MaxConnections) is modeled on the behavior classes
// exercised by the reference implementation's own mock ODBC driver test
// suite: Mode=Success always succeeds, Mode=Partial fails whichever single
// call FailOn names with the SQLSTATE given in ErrorCode and succeeds on
// everything else.
package faketest

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"odbccrusher/internal/odbcapi"
)

type config struct {
	mode          string // "Success" or "Partial"
	failOn        string
	errorCode     string
	catalog       string
	resultSetSize int
	maxConns      int
}

func parseConnString(s string) config {
	cfg := config{mode: "Success", errorCode: "HY000", resultSetSize: 10}
	for _, part := range strings.Split(s, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		switch key {
		case "Mode":
			cfg.mode = value
		case "FailOn":
			cfg.failOn = value
		case "ErrorCode":
			cfg.errorCode = value
		case "Catalog":
			cfg.catalog = value
		case "ResultSetSize":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.resultSetSize = n
			}
		case "MaxConnections":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.maxConns = n
			}
		}
	}
	return cfg
}

type handleState struct {
	kind        odbcapi.HandleKind
	parent      odbcapi.Handle
	cfg         config
	diagnostics []diagRecord
	rowsFetched int
	cursorOpen  bool
	connAttrs   map[int32]int64
}

type diagRecord struct {
	sqlState    string
	nativeError int32
	message     string
}

// Driver is a fake implementation of core.Driver. Construct one with New;
// the zero value has no handle table and is not usable. It is safe for
// concurrent use by one connection at a time.
type Driver struct {
	mu      sync.Mutex
	next    uintptr
	handles map[odbcapi.Handle]*handleState
}

// New returns a ready-to-use fake driver.
func New() *Driver {
	return &Driver{handles: make(map[odbcapi.Handle]*handleState), next: 1}
}

func (d *Driver) alloc(kind odbcapi.HandleKind, parent odbcapi.Handle) odbcapi.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := odbcapi.Handle(d.next)
	d.next++
	cfg := config{mode: "Success", errorCode: "HY000", resultSetSize: 10}
	if parentState, ok := d.handles[parent]; ok {
		cfg = parentState.cfg
	}
	d.handles[h] = &handleState{kind: kind, parent: parent, cfg: cfg}
	return h
}

func (d *Driver) state(h odbcapi.Handle) *handleState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handles[h]
}

// fails reports whether fnName should fail for h's connection-scoped
// config, recording a diagnostic on h if so.
func (d *Driver) fails(h odbcapi.Handle, fnName string) odbcapi.Return {
	st := d.state(h)
	if st == nil {
		return odbcapi.InvalidHandle
	}
	if st.cfg.mode != "Partial" || st.cfg.failOn != fnName {
		return odbcapi.Success
	}
	d.mu.Lock()
	st.diagnostics = []diagRecord{{
		sqlState:    st.cfg.errorCode,
		nativeError: 1,
		message:     fmt.Sprintf("fake driver: injected failure on %s", fnName),
	}}
	d.mu.Unlock()
	return odbcapi.Error
}

func (d *Driver) AllocHandle(kind odbcapi.HandleKind, parent odbcapi.Handle) (odbcapi.Handle, odbcapi.Return) {
	return d.alloc(kind, parent), odbcapi.Success
}

func (d *Driver) FreeHandle(kind odbcapi.HandleKind, h odbcapi.Handle) odbcapi.Return {
	d.mu.Lock()
	delete(d.handles, h)
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) SetEnvAttrInt(odbcapi.Handle, int32, int64) odbcapi.Return { return odbcapi.Success }

func (d *Driver) DriverConnect(dbc odbcapi.Handle, connStr string) (string, odbcapi.Return) {
	cfg := parseConnString(connStr)
	st := d.state(dbc)
	if st == nil {
		return "", odbcapi.InvalidHandle
	}
	d.mu.Lock()
	st.cfg = cfg
	d.mu.Unlock()
	if rc := d.fails(dbc, "SQLDriverConnect"); rc != odbcapi.Success {
		return "", rc
	}
	return connStr, odbcapi.Success
}

func (d *Driver) Disconnect(dbc odbcapi.Handle) odbcapi.Return { return d.fails(dbc, "SQLDisconnect") }

func (d *Driver) SetConnectAttrInt(dbc odbcapi.Handle, attr int32, value int64) odbcapi.Return {
	st := d.state(dbc)
	if st == nil {
		return odbcapi.InvalidHandle
	}
	d.mu.Lock()
	if st.connAttrs == nil {
		st.connAttrs = make(map[int32]int64)
	}
	st.connAttrs[attr] = value
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) GetConnectAttrInt(dbc odbcapi.Handle, attr int32) (int64, odbcapi.Return) {
	st := d.state(dbc)
	if st == nil {
		return 0, odbcapi.InvalidHandle
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := st.connAttrs[attr]; ok {
		return v, odbcapi.Success
	}
	return 1, odbcapi.Success // ODBC default: autocommit on
}

func (d *Driver) EndTran(_ odbcapi.HandleKind, h odbcapi.Handle, _ int16) odbcapi.Return {
	return d.fails(h, "SQLEndTran")
}

func (d *Driver) GetInfoString(dbc odbcapi.Handle, info odbcapi.InfoType) (string, odbcapi.Return) {
	if rc := d.fails(dbc, "SQLGetInfo"); rc != odbcapi.Success {
		return "", rc
	}
	switch info {
	case odbcapi.InfoDriverName:
		return "fakeodbc.so", odbcapi.Success
	case odbcapi.InfoDriverVer:
		return "01.00.0000", odbcapi.Success
	case odbcapi.InfoDBMSName:
		return "FakeDB", odbcapi.Success
	case odbcapi.InfoDBMSVer:
		return "1.0", odbcapi.Success
	case odbcapi.InfoODBCVer:
		return "03.80", odbcapi.Success
	default:
		return "", odbcapi.Success
	}
}

func (d *Driver) GetInfoUint32(dbc odbcapi.Handle, info odbcapi.InfoType) (uint32, odbcapi.Return) {
	if rc := d.fails(dbc, "SQLGetInfo"); rc != odbcapi.Success {
		return 0, rc
	}
	if info == odbcapi.InfoMaxConcurrentActivities {
		return 8, odbcapi.Success
	}
	return 0, odbcapi.Success
}

func (d *Driver) GetInfoUint16(dbc odbcapi.Handle, info odbcapi.InfoType) (uint16, odbcapi.Return) {
	if rc := d.fails(dbc, "SQLGetInfo"); rc != odbcapi.Success {
		return 0, rc
	}
	return 0, odbcapi.Success
}

func (d *Driver) GetFunctions(dbc odbcapi.Handle) ([]uint16, odbcapi.Return) {
	if rc := d.fails(dbc, "SQLGetFunctions"); rc != odbcapi.Success {
		return nil, rc
	}
	bitmap := make([]uint16, 250)
	for i := range bitmap {
		bitmap[i] = 1
	}
	return bitmap, odbcapi.Success
}

func (d *Driver) ExecDirect(stmt odbcapi.Handle, _ string) odbcapi.Return {
	if rc := d.fails(stmt, "SQLExecDirect"); rc != odbcapi.Success {
		return rc
	}
	st := d.state(stmt)
	d.mu.Lock()
	st.cursorOpen = true
	st.rowsFetched = 0
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) Prepare(stmt odbcapi.Handle, _ string) odbcapi.Return {
	return d.fails(stmt, "SQLPrepare")
}

func (d *Driver) Execute(stmt odbcapi.Handle) odbcapi.Return {
	if rc := d.fails(stmt, "SQLExecute"); rc != odbcapi.Success {
		return rc
	}
	st := d.state(stmt)
	d.mu.Lock()
	st.cursorOpen = true
	st.rowsFetched = 0
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) Fetch(stmt odbcapi.Handle) odbcapi.Return {
	if rc := d.fails(stmt, "SQLFetch"); rc != odbcapi.Success {
		return rc
	}
	st := d.state(stmt)
	if st == nil {
		return odbcapi.InvalidHandle
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if st.rowsFetched >= st.cfg.resultSetSize {
		return odbcapi.NoData
	}
	st.rowsFetched++
	return odbcapi.Success
}

func (d *Driver) FreeStmt(stmt odbcapi.Handle, opt odbcapi.FreeStmtOption) odbcapi.Return {
	st := d.state(stmt)
	if st == nil {
		return odbcapi.InvalidHandle
	}
	d.mu.Lock()
	if opt == odbcapi.OptClose {
		st.cursorOpen = false
		st.rowsFetched = 0
	}
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) Cancel(stmt odbcapi.Handle) odbcapi.Return { return d.fails(stmt, "SQLCancel") }

func (d *Driver) NumResultCols(stmt odbcapi.Handle) (int16, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLNumResultCols"); rc != odbcapi.Success {
		return 0, rc
	}
	return 3, odbcapi.Success
}

func (d *Driver) DescribeCol(stmt odbcapi.Handle, col int16) (string, int16, uint64, int16, int16, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLDescribeCol"); rc != odbcapi.Success {
		return "", 0, 0, 0, 0, rc
	}
	return fmt.Sprintf("col%d", col), 12, 255, 0, 1, odbcapi.Success // SQL_VARCHAR, nullable
}

func (d *Driver) GetDataString(stmt odbcapi.Handle, col int16, _ int) (string, int64, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLGetData"); rc != odbcapi.Success {
		return "", 0, rc
	}
	st := d.state(stmt)
	value := fmt.Sprintf("value-%d-%d", col, st.rowsFetched)
	return value, int64(len(value)), odbcapi.Success
}

func (d *Driver) GetDataLong(stmt odbcapi.Handle, col int16) (int64, int64, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLGetData"); rc != odbcapi.Success {
		return 0, 0, rc
	}
	return int64(col), 0, odbcapi.Success
}

func (d *Driver) SetStmtAttrInt(odbcapi.Handle, int32, int64) odbcapi.Return { return odbcapi.Success }

func (d *Driver) GetStmtAttrInt(stmt odbcapi.Handle, attr int32) (int64, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLGetStmtAttr"); rc != odbcapi.Success {
		return 0, rc
	}
	return int64(attr), odbcapi.Success
}

func (d *Driver) GetStmtDescriptor(stmt odbcapi.Handle, _ int32) (odbcapi.Handle, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLGetStmtAttr"); rc != odbcapi.Success {
		return 0, rc
	}
	st := d.state(stmt)
	return d.alloc(odbcapi.HandleDescriptor, st.parent), odbcapi.Success
}

func (d *Driver) CopyDesc(_, dst odbcapi.Handle) odbcapi.Return { return d.fails(dst, "SQLCopyDesc") }

func (d *Driver) GetDiagRec(_ odbcapi.HandleKind, h odbcapi.Handle, recNumber int16) (string, int32, string, odbcapi.Return) {
	st := d.state(h)
	if st == nil || int(recNumber) > len(st.diagnostics) || recNumber < 1 {
		return "", 0, "", odbcapi.NoData
	}
	rec := st.diagnostics[recNumber-1]
	return rec.sqlState, rec.nativeError, rec.message, odbcapi.Success
}

func (d *Driver) GetDiagRecW(kind odbcapi.HandleKind, h odbcapi.Handle, recNumber int16) (string, int32, string, odbcapi.Return) {
	return d.GetDiagRec(kind, h, recNumber)
}

func (d *Driver) GetTypeInfo(stmt odbcapi.Handle, _ int16) odbcapi.Return {
	if rc := d.fails(stmt, "SQLGetTypeInfo"); rc != odbcapi.Success {
		return rc
	}
	st := d.state(stmt)
	d.mu.Lock()
	st.cursorOpen = true
	st.rowsFetched = 0
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) SetDescFieldInt(odbcapi.Handle, int16, int32, int64) odbcapi.Return {
	return odbcapi.Success
}

func (d *Driver) GetDescFieldInt(stmt odbcapi.Handle, _ int16, field int32) (int64, odbcapi.Return) {
	if rc := d.fails(stmt, "SQLGetDescField"); rc != odbcapi.Success {
		return 0, rc
	}
	return int64(field), odbcapi.Success
}

func (d *Driver) BindParameterString(stmt odbcapi.Handle, _ int16, _ *[]byte, _ *int64, _ int16) odbcapi.Return {
	return d.fails(stmt, "SQLBindParameter")
}

func (d *Driver) BindParameterWString(stmt odbcapi.Handle, _ int16, _ *[]uint16, _ *int64) odbcapi.Return {
	return d.fails(stmt, "SQLBindParameter")
}

func (d *Driver) BindParameterLong(stmt odbcapi.Handle, _ int16, _ *int32, _ *int64) odbcapi.Return {
	return d.fails(stmt, "SQLBindParameter")
}

func (d *Driver) BindParameterArrayLong(stmt odbcapi.Handle, _ int16, _ []int32, indicators []int64) odbcapi.Return {
	if rc := d.fails(stmt, "SQLBindParameter"); rc != odbcapi.Success {
		return rc
	}
	for i := range indicators {
		indicators[i] = 0
	}
	return odbcapi.Success
}

func (d *Driver) SetParamBindType(odbcapi.Handle, int64) odbcapi.Return { return odbcapi.Success }

func (d *Driver) CatalogQuery(stmt odbcapi.Handle, _ odbcapi.CatalogFn, _, _, _, _ string) odbcapi.Return {
	if rc := d.fails(stmt, "SQLCatalog"); rc != odbcapi.Success {
		return rc
	}
	st := d.state(stmt)
	d.mu.Lock()
	st.cursorOpen = true
	st.rowsFetched = 0
	d.mu.Unlock()
	return odbcapi.Success
}

func (d *Driver) DriverConnectW(dbc odbcapi.Handle, connStr []uint16) ([]uint16, odbcapi.Return) {
	if rc := d.fails(dbc, "SQLDriverConnectW"); rc != odbcapi.Success {
		return nil, rc
	}
	return connStr, odbcapi.Success
}

func (d *Driver) GetInfoStringW(dbc odbcapi.Handle, info odbcapi.InfoType) ([]uint16, int, odbcapi.Return) {
	s, rc := d.GetInfoString(dbc, info)
	units := make([]uint16, len(s))
	for i, r := range s {
		units[i] = uint16(r)
	}
	return units, len(s) * 2, rc
}

func (d *Driver) DescribeColW(stmt odbcapi.Handle, col int16) ([]uint16, int16, uint64, int16, int16, odbcapi.Return) {
	name, dataType, size, digits, nullable, rc := d.DescribeCol(stmt, col)
	units := make([]uint16, len(name))
	for i, r := range name {
		units[i] = uint16(r)
	}
	return units, dataType, size, digits, nullable, rc
}

func (d *Driver) GetDataWString(stmt odbcapi.Handle, col int16, _ int) ([]uint16, int64, odbcapi.Return) {
	value, ind, rc := d.GetDataString(stmt, col, 256)
	units := make([]uint16, len(value))
	for i, r := range value {
		units[i] = uint16(r)
	}
	return units, ind * 2, rc
}
