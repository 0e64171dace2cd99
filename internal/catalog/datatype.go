package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// DataTypeCategory exercises retrieval of the core scalar families:
// integer, decimal, float, string, date/time, and null indicators.
// Grounded on original_source/src/tests/datatype_tests.cpp.
type DataTypeCategory struct{}

func (DataTypeCategory) Name() string { return "Data Type" }

func (c DataTypeCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "integer-types", Run: c.probeIntegerTypes},
		{Name: "decimal-types", Run: c.probeDecimalTypes},
		{Name: "float-types", Run: c.probeFloatTypes},
		{Name: "string-types", Run: c.probeStringTypes},
		{Name: "date-time-types", Run: c.probeDateTimeTypes},
		{Name: "null-values", Run: c.probeNullValues},
	}
}

// selectLiteral runs the first of the given single-column SELECT forms
// that executes and fetches one row from it. A form that executes but
// yields no row fails the probe; the remaining forms are not tried.
func selectLiteral(ctx *harness.Context, testName, function string, dialects []string) (value string, long int64, haveLong bool, result harness.TestResult, ok bool) {
	stmt, skip, sok := newStatement(ctx, testName, function)
	if !sok {
		return "", 0, false, skip, false
	}
	defer stmt.Close()

	winner, tried, tok := probe.TryDialects(stmt, dialects)
	if !tok {
		return "", 0, false, probe.SkipInconclusive(testName, function,
			"a literal of this type round-trips through SQLGetData",
			probe.ExhaustedDialectsHint(tried), "add a custom dialect via the config file", "§4.8"), false
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return "", 0, false, probe.Fail(testName, function,
			"a literal of this type round-trips through SQLGetData",
			"no row fetched after "+winner, harness.SeverityError, harness.ConformanceCore, "§4.8"), false
	}
	s, _ := stmt.GetDataString(1, 256)
	l, lerr := stmt.GetDataLong(1)
	return s, l, lerr == nil, harness.TestResult{}, true
}

func (c DataTypeCategory) probeIntegerTypes(ctx *harness.Context) harness.TestResult {
	_, long, haveLong, skip, ok := selectLiteral(ctx, "integer-types", "SQLGetData", []string{"SELECT 42", "SELECT 42 FROM DUAL", "SELECT 42 FROM SYSIBM.SYSDUMMY1"})
	if !ok {
		return skip
	}
	if !haveLong || long != 42 {
		return probe.Fail("integer-types", "SQLGetData", "integer literal 42 round-trips",
			fmt.Sprintf("read back %d", long), harness.SeverityError, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("integer-types", "SQLGetData", "integer literal 42 round-trips", "read back 42", "§4.8")
}

func (c DataTypeCategory) probeDecimalTypes(ctx *harness.Context) harness.TestResult {
	s, _, _, skip, ok := selectLiteral(ctx, "decimal-types", "SQLGetData", []string{"SELECT 12.50", "SELECT 12.50 FROM DUAL", "SELECT 12.50 FROM SYSIBM.SYSDUMMY1"})
	if !ok {
		return skip
	}
	return probe.Pass("decimal-types", "SQLGetData", "decimal literal 12.50 round-trips as a string", "read back "+s, "§4.8")
}

func (c DataTypeCategory) probeFloatTypes(ctx *harness.Context) harness.TestResult {
	s, _, _, skip, ok := selectLiteral(ctx, "float-types", "SQLGetData", []string{"SELECT 3.14", "SELECT 3.14 FROM DUAL", "SELECT 3.14 FROM SYSIBM.SYSDUMMY1"})
	if !ok {
		return skip
	}
	return probe.Pass("float-types", "SQLGetData", "float literal 3.14 round-trips as a string", "read back "+s, "§4.8")
}

func (c DataTypeCategory) probeStringTypes(ctx *harness.Context) harness.TestResult {
	s, _, _, skip, ok := selectLiteral(ctx, "string-types", "SQLGetData", []string{"SELECT 'hello'", "SELECT 'hello' FROM DUAL", "SELECT 'hello' FROM SYSIBM.SYSDUMMY1"})
	if !ok {
		return skip
	}
	if s != "hello" {
		return probe.Fail("string-types", "SQLGetData", "string literal 'hello' round-trips exactly",
			fmt.Sprintf("read back %q", s), harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("string-types", "SQLGetData", "string literal 'hello' round-trips exactly", "read back \"hello\"", "§4.8")
}

func (c DataTypeCategory) probeDateTimeTypes(ctx *harness.Context) harness.TestResult {
	s, _, _, skip, ok := selectLiteral(ctx, "date-time-types", "SQLGetData",
		[]string{"SELECT {d '2024-01-15'}", "SELECT DATE '2024-01-15'", "SELECT '2024-01-15'"})
	if !ok {
		return skip
	}
	return probe.Pass("date-time-types", "SQLGetData", "a date-escape literal round-trips as a string", "read back "+s, "§4.8")
}

func (c DataTypeCategory) probeNullValues(ctx *harness.Context) harness.TestResult {
	stmt, skip, sok := newStatement(ctx, "null-values", "SQLGetData")
	if !sok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, []string{
		"SELECT NULL", "SELECT NULL FROM DUAL", "SELECT CAST(NULL AS INTEGER) FROM SYSIBM.SYSDUMMY1",
	})
	if !ok {
		return probe.SkipInconclusive("null-values", "SQLGetData", "a NULL literal reports SQL_NULL_DATA",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.Fail("null-values", "SQLGetData", "a NULL literal reports SQL_NULL_DATA",
			"no row fetched after "+winner, harness.SeverityError, harness.ConformanceCore, "§4.8")
	}
	_, err = stmt.GetDataLong(1)
	if err != nil {
		return probe.Fail("null-values", "SQLGetData", "a NULL literal reports SQL_NULL_DATA",
			"SQLGetData failed reading a NULL column", harness.SeverityError, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("null-values", "SQLGetData", "a NULL literal reports SQL_NULL_DATA",
		"NULL column read without error", "§4.8")
}
