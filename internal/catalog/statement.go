package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// StatementCategory exercises direct execution, prepare/execute, parameter
// binding, fetch, column metadata, handle reuse, and multiple result sets.
// Grounded on original_source/src/tests/statement_tests.cpp.
type StatementCategory struct{}

func (StatementCategory) Name() string { return "Statement" }

func (c StatementCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "simple-query", Run: c.probeSimpleQuery},
		{Name: "prepared-statement", Run: c.probePreparedStatement},
		{Name: "parameter-binding", Run: c.probeParameterBinding},
		{Name: "result-fetching", Run: c.probeResultFetching},
		{Name: "column-metadata", Run: c.probeColumnMetadata},
		{Name: "statement-reuse", Run: c.probeStatementReuse},
		{Name: "multiple-result-sets", Run: c.probeMultipleResultSets},
	}
}

func (c StatementCategory) probeSimpleQuery(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "simple-query", "SQLExecDirect")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects)
	if !ok {
		return probe.SkipInconclusive("simple-query", "SQLExecDirect",
			"a trivial scalar SELECT executes", probe.ExhaustedDialectsHint(tried),
			"add a custom dialect via the config file", "§4.8")
	}
	return probe.Pass("simple-query", "SQLExecDirect", "a trivial scalar SELECT executes",
		"executed: "+winner, "§4.8")
}

func (c StatementCategory) probePreparedStatement(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "prepared-statement", "SQLPrepare/SQLExecute")
	if !ok {
		return skip
	}
	defer stmt.Close()

	for _, sql := range probe.ScalarProbeDialects {
		if err := stmt.Prepare(sql); err != nil {
			continue
		}
		if err := stmt.ExecutePrepared(); err == nil {
			return probe.Pass("prepared-statement", "SQLPrepare/SQLExecute",
				"a prepared statement executes", "prepared and executed: "+sql, "§4.8")
		}
	}
	return probe.SkipInconclusive("prepared-statement", "SQLPrepare/SQLExecute",
		"a prepared statement executes",
		"no scalar dialect could be prepared and executed",
		"add a custom dialect via the config file", "§4.8")
}

func (c StatementCategory) probeParameterBinding(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "parameter-binding", "SQLBindParameter")
	if !ok {
		return skip
	}
	defer stmt.Close()

	// Prepare recycles the handle (resetting bound parameters), so the
	// parameter is bound after it and run with ExecutePrepared.
	if err := stmt.Prepare("SELECT ?"); err != nil {
		return probe.SkipInconclusive("parameter-binding", "SQLBindParameter",
			"a parameterized scalar SELECT executes",
			"driver rejected a bound-parameter SELECT",
			"some DBMSes require a FROM clause even for a parameter echo", "§4.8")
	}
	var value int32 = 7
	var indicator int64
	if err := stmt.BindParamLong(1, &value, &indicator); err != nil {
		r := probe.Fail("parameter-binding", "SQLBindParameter", "an integer input parameter binds",
			"SQLBindParameter failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if err := stmt.ExecutePrepared(); err != nil {
		return probe.SkipInconclusive("parameter-binding", "SQLBindParameter",
			"a parameterized scalar SELECT executes",
			"driver rejected a bound-parameter SELECT",
			"some DBMSes require a FROM clause even for a parameter echo", "§4.8")
	}
	return probe.Pass("parameter-binding", "SQLBindParameter",
		"an integer input parameter binds and executes", "executed: SELECT ? with parameter 7", "§4.8")
}

func (c StatementCategory) probeResultFetching(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "result-fetching", "SQLFetch")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects)
	if !ok {
		return probe.SkipInconclusive("result-fetching", "SQLFetch",
			"a result row is fetchable", probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil {
		r := probe.Fail("result-fetching", "SQLFetch", "a result row is fetchable",
			"SQLFetch failed after "+winner, harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if !more {
		return probe.Fail("result-fetching", "SQLFetch", "a result row is fetchable",
			"SQLFetch returned SQL_NO_DATA immediately after "+winner,
			harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("result-fetching", "SQLFetch", "a result row is fetchable",
		"fetched one row after "+winner, "§4.8")
}

func (c StatementCategory) probeColumnMetadata(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "column-metadata", "SQLDescribeCol")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if _, _, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects); !ok {
		return probe.SkipInconclusive("column-metadata", "SQLDescribeCol",
			"column metadata is describable", "no scalar dialect executed", "", "§4.8")
	}
	n, err := stmt.NumResultCols()
	if err != nil || n < 1 {
		return probe.Fail("column-metadata", "SQLNumResultCols", "at least one result column",
			"SQLNumResultCols reported fewer than 1 column", harness.SeverityError, harness.ConformanceCore, "§4.8")
	}
	desc, err := stmt.DescribeColumn(1)
	if err != nil {
		r := probe.Fail("column-metadata", "SQLDescribeCol", "column 1 describes successfully",
			"SQLDescribeCol failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("column-metadata", "SQLDescribeCol", "column 1 describes successfully",
		fmt.Sprintf("name=%q type=%d size=%d", desc.Name, desc.DataType, desc.Size), "§4.8")
}

func (c StatementCategory) probeStatementReuse(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "statement-reuse", "SQLExecDirect (recycle)")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects)
	if !ok {
		return probe.SkipInconclusive("statement-reuse", "SQLExecDirect (recycle)",
			"the same handle executes twice via the recycle protocol", probe.ExhaustedDialectsHint(tried), "", "§4.3")
	}
	if err := stmt.Execute(winner); err != nil {
		r := probe.Fail("statement-reuse", "SQLExecDirect (recycle)",
			"the same handle executes twice via the recycle protocol",
			"second execution on the recycled handle failed", harness.SeverityError, harness.ConformanceCore, "§4.3")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("statement-reuse", "SQLExecDirect (recycle)",
		"the same handle executes twice via the recycle protocol", "executed "+winner+" twice on one handle", "§4.3")
}

func (c StatementCategory) probeMultipleResultSets(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "multiple-result-sets", "SQLMoreResults")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if _, _, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects); !ok {
		return probe.SkipInconclusive("multiple-result-sets", "SQLMoreResults",
			"a batch with multiple result sets is representable",
			"driver's scalar dialects don't exercise SQLMoreResults directly",
			"most drivers need a stored procedure or multi-statement batch to produce more than one result set",
			"§4.8")
	}
	return probe.SkipUnsupported("multiple-result-sets", "SQLMoreResults",
		"a batch with multiple result sets is representable",
		"this module has no generic multi-statement batch dialect to request a second result set", "§4.8")
}
