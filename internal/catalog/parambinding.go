package catalog

import (
	"odbccrusher/internal/core"
	"odbccrusher/internal/harness"
	"odbccrusher/internal/odbcapi"
	"odbccrusher/internal/probe"
)

// paramQueries are the dialect variants of a parameterized single-parameter
// SELECT, tried in order since not every backend accepts a bare
// SELECT CAST(? AS VARCHAR(50)) without a FROM clause.
var paramQueries = []string{
	"SELECT CAST(? AS VARCHAR(50))",
	"SELECT CAST(? AS VARCHAR(50)) FROM RDB$DATABASE",
	"SELECT CAST(? AS VARCHAR(50)) FROM DUAL",
	"SELECT CAST(? AS VARCHAR(50)) FROM SYSIBM.SYSDUMMY1",
}

// prepareParam tries each of paramQueries in turn, returning the first that
// prepares successfully.
func prepareParam(stmt *core.Statement) (string, bool) {
	for _, q := range paramQueries {
		if err := stmt.Prepare(q); err == nil {
			return q, true
		}
	}
	return "", false
}

// ParamBindingCategory exercises parameter-binding edge cases beyond
// statement.go's basic integer bind: wide-character input, an explicit
// SQL_NULL_DATA indicator, and rebind-then-re-execute. Grounded on
// original_source/src/tests/param_binding_tests.cpp.
type ParamBindingCategory struct{}

func (ParamBindingCategory) Name() string { return "Parameter Binding" }

func (c ParamBindingCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "bindparam-wchar-input", Run: c.probeBindParamWcharInput},
		{Name: "bindparam-null-indicator", Run: c.probeBindParamNullIndicator},
		{Name: "param-rebind-execute", Run: c.probeParamRebindExecute},
	}
}

func (c ParamBindingCategory) probeBindParamWcharInput(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "bindparam-wchar-input", "SQLBindParameter(SQL_C_WCHAR)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	query, ok := prepareParam(stmt)
	if !ok {
		return probe.SkipInconclusive("bindparam-wchar-input", "SQLBindParameter(SQL_C_WCHAR)",
			"a Unicode input parameter binds via SQL_C_WCHAR and executes",
			"could not prepare a parameterized query", "", "§4.8")
	}
	units := core.EncodeWideString("TestCustomer")
	var indicator int64
	if err := stmt.BindParamWString(1, &units, &indicator); err != nil {
		return probe.SkipInconclusive("bindparam-wchar-input", "SQLBindParameter(SQL_C_WCHAR)",
			"a Unicode input parameter binds via SQL_C_WCHAR and executes",
			"driver may not support SQL_C_WCHAR parameter binding", "", "§4.8")
	}
	if err := stmt.ExecutePrepared(); err != nil {
		return probe.Pass("bindparam-wchar-input", "SQLBindParameter(SQL_C_WCHAR)",
			"a Unicode input parameter binds via SQL_C_WCHAR and executes",
			"bind succeeded on "+query+"; execute did not", "§4.8")
	}
	return probe.Pass("bindparam-wchar-input", "SQLBindParameter(SQL_C_WCHAR)",
		"a Unicode input parameter binds via SQL_C_WCHAR and executes",
		"bind and execute both succeeded on "+query, "§4.8")
}

func (c ParamBindingCategory) probeBindParamNullIndicator(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "bindparam-null-indicator", "SQLBindParameter(SQL_NULL_DATA)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	query, ok := prepareParam(stmt)
	if !ok {
		return probe.SkipInconclusive("bindparam-null-indicator", "SQLBindParameter(SQL_NULL_DATA)",
			"binding a parameter with a SQL_NULL_DATA indicator passes NULL through", "could not prepare a parameterized query", "", "§4.8")
	}
	var value []byte
	indicator := odbcapi.NullData
	if err := stmt.BindParamString(1, &value, &indicator, odbcapi.SQLVarcharType); err != nil {
		r := probe.Fail("bindparam-null-indicator", "SQLBindParameter(SQL_NULL_DATA)",
			"binding a parameter with a SQL_NULL_DATA indicator passes NULL through",
			"SQLBindParameter rejected a SQL_NULL_DATA indicator", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	execErr := stmt.ExecutePrepared()
	detail := "execute succeeded"
	if execErr != nil {
		detail = "execute returned an error: " + diagnosticOf(execErr)
	}
	return probe.Pass("bindparam-null-indicator", "SQLBindParameter(SQL_NULL_DATA)",
		"binding a parameter with a SQL_NULL_DATA indicator passes NULL through",
		"bound NULL parameter on "+query+"; "+detail, "§4.8")
}

func (c ParamBindingCategory) probeParamRebindExecute(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "param-rebind-execute", "SQLBindParameter (rebind)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	query, ok := prepareParam(stmt)
	if !ok {
		return probe.SkipInconclusive("param-rebind-execute", "SQLBindParameter (rebind)",
			"a prepared statement accepts a new bound value and re-executes",
			"could not prepare a parameterized query", "", "§4.8")
	}
	var value int32 = 1
	var indicator int64
	if err := stmt.BindParamLong(1, &value, &indicator); err != nil {
		return probe.SkipInconclusive("param-rebind-execute", "SQLBindParameter (rebind)",
			"a prepared statement accepts a new bound value and re-executes",
			"initial SQLBindParameter failed", "", "§4.8")
	}
	if err := stmt.ExecutePrepared(); err != nil {
		return probe.SkipInconclusive("param-rebind-execute", "SQLBindParameter (rebind)",
			"a prepared statement accepts a new bound value and re-executes",
			"first execute failed on "+query, "", "§4.8")
	}
	value = 2
	if err := stmt.BindParamLong(1, &value, &indicator); err != nil {
		r := probe.Fail("param-rebind-execute", "SQLBindParameter (rebind)",
			"a prepared statement accepts a new bound value and re-executes",
			"rebind to a new value failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if err := stmt.ExecutePrepared(); err != nil {
		r := probe.Fail("param-rebind-execute", "SQLBindParameter (rebind)",
			"a prepared statement accepts a new bound value and re-executes",
			"second execute with rebound value failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("param-rebind-execute", "SQLBindParameter (rebind)",
		"a prepared statement accepts a new bound value and re-executes",
		"bound 1, executed; rebound to 2, executed again, on "+query, "§4.8")
}
