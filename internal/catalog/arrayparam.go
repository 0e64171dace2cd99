package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/odbcapi"
	"odbccrusher/internal/probe"
)

// ArrayParamCategory exercises column-wise array parameter binding: a
// multi-row insert via SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE) plus
// SQLBindParameter, an array containing an explicit NULL row, and the
// paramset-size-one degenerate case. Grounded on
// original_source/src/tests/array_param_tests.cpp.
type ArrayParamCategory struct{}

func (ArrayParamCategory) Name() string { return "Array Parameter Binding" }

func (c ArrayParamCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "column-wise-array-binding", Run: c.probeColumnWiseArrayBinding},
		{Name: "array-with-null-values", Run: c.probeArrayWithNullValues},
		{Name: "paramset-size-one", Run: c.probeParamsetSizeOne},
	}
}

func (c ArrayParamCategory) probeColumnWiseArrayBinding(ctx *harness.Context) harness.TestResult {
	table, skip, ok := probe.AcquireTempTable(ctx.Conn, probe.DefaultTempTableName, probe.DefaultCreateDialects)
	if !ok {
		return skip
	}
	defer table.Drop()

	stmt, skip, ok := newStatement(ctx, "column-wise-array-binding", "SQLBindParameter (array)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Prepare(fmt.Sprintf("INSERT INTO %s (ID, VAL) VALUES (?, ?)", table.Name)); err != nil {
		r := probe.Fail("column-wise-array-binding", "SQLBindParameter (array)",
			"a column-wise bound parameter array inserts all rows in one SQLExecute",
			"could not prepare the parameterized insert", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	const rows = 5
	if err := stmt.SetParamsetSize(rows); err != nil {
		r := probe.Fail("column-wise-array-binding", "SQLBindParameter (array)",
			"a column-wise bound parameter array inserts all rows in one SQLExecute",
			"SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE) failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	ids := make([]int32, rows)
	idInd := make([]int64, rows)
	vals := make([]int32, rows)
	valInd := make([]int64, rows)
	for i := 0; i < rows; i++ {
		ids[i] = int32(i + 1)
		vals[i] = int32((i + 1) * 10)
	}
	if err := stmt.BindParamArrayLong(1, ids, idInd); err != nil {
		r := probe.Fail("column-wise-array-binding", "SQLBindParameter (array)",
			"a column-wise bound parameter array inserts all rows in one SQLExecute",
			"binding the ID array parameter failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if err := stmt.BindParamArrayLong(2, vals, valInd); err != nil {
		r := probe.Fail("column-wise-array-binding", "SQLBindParameter (array)",
			"a column-wise bound parameter array inserts all rows in one SQLExecute",
			"binding the VAL array parameter failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if err := stmt.ExecutePrepared(); err != nil {
		r := probe.Fail("column-wise-array-binding", "SQLBindParameter (array)",
			"a column-wise bound parameter array inserts all rows in one SQLExecute",
			"SQLExecute with an array-bound parameter set failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("column-wise-array-binding", "SQLBindParameter (array)",
		"a column-wise bound parameter array inserts all rows in one SQLExecute",
		fmt.Sprintf("executed one insert with a %d-row parameter array", rows), "§4.8")
}

func (c ArrayParamCategory) probeArrayWithNullValues(ctx *harness.Context) harness.TestResult {
	table, skip, ok := probe.AcquireTempTable(ctx.Conn, probe.DefaultTempTableName, probe.DefaultCreateDialects)
	if !ok {
		return skip
	}
	defer table.Drop()

	stmt, skip, ok := newStatement(ctx, "array-with-null-values", "SQLBindParameter (array, NULL row)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Prepare(fmt.Sprintf("INSERT INTO %s (ID, VAL) VALUES (?, ?)", table.Name)); err != nil {
		r := probe.Fail("array-with-null-values", "SQLBindParameter (array, NULL row)",
			"one row in a bound parameter array can carry a SQL_NULL_DATA indicator while its siblings carry real values",
			"could not prepare the parameterized insert", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	const rows = 3
	if err := stmt.SetParamsetSize(rows); err != nil {
		return probe.SkipInconclusive("array-with-null-values", "SQLBindParameter (array, NULL row)",
			"one row in a bound parameter array can carry a SQL_NULL_DATA indicator while its siblings carry real values",
			"SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE) failed", "", "§4.8")
	}
	ids := []int32{100, 101, 102}
	idInd := make([]int64, rows)
	vals := []int32{0, 20, 30}
	valInd := []int64{odbcapi.NullData, 0, 0}
	if err := stmt.BindParamArrayLong(1, ids, idInd); err != nil {
		r := probe.Fail("array-with-null-values", "SQLBindParameter (array, NULL row)",
			"one row in a bound parameter array can carry a SQL_NULL_DATA indicator while its siblings carry real values",
			"binding the ID array parameter failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if err := stmt.BindParamArrayLong(2, vals, valInd); err != nil {
		r := probe.Fail("array-with-null-values", "SQLBindParameter (array, NULL row)",
			"one row in a bound parameter array can carry a SQL_NULL_DATA indicator while its siblings carry real values",
			"binding the VAL array parameter failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if err := stmt.ExecutePrepared(); err != nil {
		r := probe.Fail("array-with-null-values", "SQLBindParameter (array, NULL row)",
			"one row in a bound parameter array can carry a SQL_NULL_DATA indicator while its siblings carry real values",
			"SQLExecute failed with a mixed NULL/non-NULL parameter array", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("array-with-null-values", "SQLBindParameter (array, NULL row)",
		"one row in a bound parameter array can carry a SQL_NULL_DATA indicator while its siblings carry real values",
		"executed insert with one NULL row among 3 array rows", "§4.8")
}

func (c ArrayParamCategory) probeParamsetSizeOne(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "paramset-size-one", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.SetParamsetSize(1); err != nil {
		r := probe.Fail("paramset-size-one", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
			"a paramset size of 1 behaves identically to an ordinary single-row bind",
			"SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE, 1) failed", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	query, ok := prepareParam(stmt)
	if !ok {
		return probe.SkipInconclusive("paramset-size-one", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
			"a paramset size of 1 behaves identically to an ordinary single-row bind",
			"could not prepare a parameterized query", "", "§4.8")
	}
	var value int32 = 7
	var indicator int64
	if err := stmt.BindParamLong(1, &value, &indicator); err != nil {
		return probe.SkipInconclusive("paramset-size-one", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
			"a paramset size of 1 behaves identically to an ordinary single-row bind",
			"SQLBindParameter failed", "", "§4.8")
	}
	if err := stmt.ExecutePrepared(); err != nil {
		r := probe.Fail("paramset-size-one", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
			"a paramset size of 1 behaves identically to an ordinary single-row bind",
			"execute with paramset size 1 failed on "+query, harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("paramset-size-one", "SQLSetStmtAttr(SQL_ATTR_PARAMSET_SIZE)",
		"a paramset size of 1 behaves identically to an ordinary single-row bind",
		"executed single-row bind with SQL_ATTR_PARAMSET_SIZE=1 on "+query, "§4.8")
}
