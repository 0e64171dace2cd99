package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// Statement attribute identifiers this category exercises directly. Apart
// from SQL_ATTR_PARAMSET_SIZE (core.Statement.SetParamsetSize), none of
// them have a dedicated core.Statement wrapper.
const (
	attrCursorType       int32 = 6  // SQL_ATTR_CURSOR_TYPE
	attrConcurrency      int32 = 7  // SQL_ATTR_CONCURRENCY
	attrAsyncEnable      int32 = 4  // SQL_ATTR_ASYNC_ENABLE
	attrRowArraySize     int32 = 27 // SQL_ATTR_ROW_ARRAY_SIZE
	attrParamsetSize     int32 = 22 // SQL_ATTR_PARAMSET_SIZE
	attrQueryTimeout     int32 = 0  // SQL_ATTR_QUERY_TIMEOUT
	attrMaxRows          int32 = 1  // SQL_ATTR_MAX_ROWS
	attrNoScan           int32 = 2  // SQL_ATTR_NOSCAN
	attrMaxLength        int32 = 3  // SQL_ATTR_MAX_LENGTH
	attrRetrieveData     int32 = 11 // SQL_ATTR_RETRIEVE_DATA

	cursorForwardOnly  int64 = 0
	cursorStatic       int64 = 3
	cursorKeysetDriven int64 = 1
	cursorDynamic      int64 = 2

	asyncEnableOn  int64 = 1
	asyncEnableOff int64 = 0
)

// AdvancedCategory exercises Level 2 statement-attribute features: cursor
// types, array/bulk parameter binding, asynchronous execution, rowset size,
// positioned-operation concurrency, and a general statement-attribute
// sweep. Grounded on original_source/src/tests/advanced_tests.cpp.
type AdvancedCategory struct{}

func (AdvancedCategory) Name() string { return "Advanced Features" }

func (c AdvancedCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "cursor-types", Run: c.probeCursorTypes},
		{Name: "array-binding", Run: c.probeArrayBinding},
		{Name: "async-capability", Run: c.probeAsyncCapability},
		{Name: "rowset-size", Run: c.probeRowsetSize},
		{Name: "positioned-operations", Run: c.probePositionedOperations},
		{Name: "statement-attributes", Run: c.probeStatementAttributes},
	}
}

func (c AdvancedCategory) probeCursorTypes(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "cursor-types", "SQLGetStmtAttr(SQL_ATTR_CURSOR_TYPE)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	value, err := stmt.GetAttrInt(attrCursorType)
	if err != nil {
		return probe.SkipUnsupported("cursor-types", "SQLGetStmtAttr(SQL_ATTR_CURSOR_TYPE)",
			"the default cursor type is queryable", "cursor type query not supported", "§4.8")
	}
	name := "Unknown"
	switch value {
	case cursorForwardOnly:
		name = "FORWARD ONLY"
	case cursorStatic:
		name = "STATIC"
	case cursorKeysetDriven:
		name = "KEYSET DRIVEN"
	case cursorDynamic:
		name = "DYNAMIC"
	}
	return probe.Pass("cursor-types", "SQLGetStmtAttr(SQL_ATTR_CURSOR_TYPE)",
		"the default cursor type is queryable", fmt.Sprintf("default cursor type: %s", name), "§4.8")
}

func (c AdvancedCategory) probeArrayBinding(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "array-binding", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.SetAttrInt(attrParamsetSize, 10); err != nil {
		return probe.SkipUnsupported("array-binding", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
			"an array/bulk parameter size can be set",
			"driver does not support SQL_ATTR_PARAMSET_SIZE for bulk operations", "§4.8")
	}
	check, err := stmt.GetAttrInt(attrParamsetSize)
	if err != nil || check != 10 {
		return probe.Fail("array-binding", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
			"an array/bulk parameter size can be set", "paramset size setting did not persist",
			harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("array-binding", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
		"an array/bulk parameter size can be set", "array binding supported, paramset size 10", "§4.8")
}

func (c AdvancedCategory) probeAsyncCapability(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "async-capability", "SQLSetStmtAttr(SQL_ATTR_ASYNC_ENABLE)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.SetAttrInt(attrAsyncEnable, asyncEnableOn); err != nil {
		return probe.SkipUnsupported("async-capability", "SQLSetStmtAttr(SQL_ATTR_ASYNC_ENABLE)",
			"asynchronous execution mode can be enabled", "driver does not support SQL_ATTR_ASYNC_ENABLE", "§4.8")
	}
	defer func() { _ = stmt.SetAttrInt(attrAsyncEnable, asyncEnableOff) }()

	value, err := stmt.GetAttrInt(attrAsyncEnable)
	if err != nil {
		return probe.SkipInconclusive("async-capability", "SQLGetStmtAttr(SQL_ATTR_ASYNC_ENABLE)",
			"asynchronous execution mode can be enabled", "SQLGetStmtAttr failed after setting", "", "§4.8")
	}
	if value != asyncEnableOn {
		return probe.SkipUnsupported("async-capability", "SQLGetStmtAttr(SQL_ATTR_ASYNC_ENABLE)",
			"asynchronous execution mode can be enabled",
			"driver accepted the setting but did not persist it", "§4.8")
	}
	return probe.Pass("async-capability", "SQLGetStmtAttr(SQL_ATTR_ASYNC_ENABLE)",
		"asynchronous execution mode can be enabled", "asynchronous execution supported", "§4.8")
}

func (c AdvancedCategory) probeRowsetSize(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "rowset-size", "SQLSetStmtAttr(SQL_ATTR_ROW_ARRAY_SIZE)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.SetAttrInt(attrRowArraySize, 100); err != nil {
		return probe.SkipUnsupported("rowset-size", "SQLSetStmtAttr(SQL_ATTR_ROW_ARRAY_SIZE)",
			"a block-cursor rowset size can be set", "SQL_ATTR_ROW_ARRAY_SIZE > 1 is a Level 2 feature", "§4.8")
	}
	check, err := stmt.GetAttrInt(attrRowArraySize)
	if err != nil || check != 100 {
		return probe.Fail("rowset-size", "SQLSetStmtAttr(SQL_ATTR_ROW_ARRAY_SIZE)",
			"a block-cursor rowset size can be set", "rowset size not preserved",
			harness.SeverityWarning, harness.ConformanceLevel2, "§4.8")
	}
	return probe.Pass("rowset-size", "SQLSetStmtAttr(SQL_ATTR_ROW_ARRAY_SIZE)",
		"a block-cursor rowset size can be set", "rowset size supported, set to 100", "§4.8")
}

func (c AdvancedCategory) probePositionedOperations(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "positioned-operations", "SQLSetStmtAttr(SQL_ATTR_CONCURRENCY)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	const concurLock int64 = 2 // SQL_CONCUR_LOCK
	if err := stmt.SetAttrInt(attrConcurrency, concurLock); err != nil {
		return probe.SkipUnsupported("positioned-operations", "SQLSetStmtAttr(SQL_ATTR_CONCURRENCY)",
			"non-read-only concurrency control is settable",
			"non-read-only SQL_ATTR_CONCURRENCY is a Level 2 feature", "§4.8")
	}
	value, err := stmt.GetAttrInt(attrConcurrency)
	if err != nil {
		return probe.SkipInconclusive("positioned-operations", "SQLGetStmtAttr(SQL_ATTR_CONCURRENCY)",
			"non-read-only concurrency control is settable", "SQLGetStmtAttr failed after setting", "", "§4.8")
	}
	return probe.Pass("positioned-operations", "SQLGetStmtAttr(SQL_ATTR_CONCURRENCY)",
		"non-read-only concurrency control is settable", fmt.Sprintf("concurrency mode: %d", value), "§4.8")
}

func (c AdvancedCategory) probeStatementAttributes(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "statement-attributes", "SQLGetStmtAttr (various)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	attrs := []int32{attrQueryTimeout, attrMaxRows, attrMaxLength, attrNoScan, attrRetrieveData}
	supported := 0
	for _, attr := range attrs {
		if _, err := stmt.GetAttrInt(attr); err == nil {
			supported++
		}
	}
	return probe.Pass("statement-attributes", "SQLGetStmtAttr (various)",
		"common statement attributes are queryable",
		fmt.Sprintf("%d/%d statement attributes queryable", supported, len(attrs)), "§4.8")
}
