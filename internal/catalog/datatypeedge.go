package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// DataTypeEdgeCategory pushes the scalar data types datatype.go covers to
// their edges: zero, INT32_MAX, INT32_MIN, empty string, special characters,
// explicit NULLs, and cross-type coercion. Grounded on
// original_source/src/tests/datatype_edge_tests.cpp.
type DataTypeEdgeCategory struct{}

func (DataTypeEdgeCategory) Name() string { return "Data Type Edge Cases" }

func (c DataTypeEdgeCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "integer-zero", Run: c.probeIntegerZero},
		{Name: "integer-max-min", Run: c.probeIntegerMaxMin},
		{Name: "varchar-empty", Run: c.probeVarcharEmpty},
		{Name: "varchar-special-chars", Run: c.probeVarcharSpecialChars},
		{Name: "null-integer", Run: c.probeNullInteger},
		{Name: "integer-as-string", Run: c.probeIntegerAsString},
	}
}

func literalQueries(literal string) []string {
	return []string{
		"SELECT " + literal,
		"SELECT " + literal + " FROM RDB$DATABASE",
		"SELECT " + literal + " FROM DUAL",
		"SELECT " + literal + " FROM SYSIBM.SYSDUMMY1",
	}
}

func (c DataTypeEdgeCategory) probeIntegerZero(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "integer-zero", "SQLGetData")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, literalQueries("0"))
	if !ok {
		return probe.SkipInconclusive("integer-zero", "SQLGetData",
			"an integer literal of 0 round-trips as exactly 0", probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.SkipInconclusive("integer-zero", "SQLGetData",
			"an integer literal of 0 round-trips as exactly 0", "no row to fetch after "+winner, "", "§4.8")
	}
	value, err := stmt.GetDataLong(1)
	if err != nil {
		r := probe.Fail("integer-zero", "SQLGetData", "an integer literal of 0 round-trips as exactly 0",
			"SQLGetData failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if value != 0 {
		return probe.Fail("integer-zero", "SQLGetData", "an integer literal of 0 round-trips as exactly 0",
			fmt.Sprintf("expected 0, got %d", value), harness.SeverityError, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("integer-zero", "SQLGetData", "an integer literal of 0 round-trips as exactly 0",
		"retrieved 0 on "+winner, "§4.8")
}

func (c DataTypeEdgeCategory) probeIntegerMaxMin(ctx *harness.Context) harness.TestResult {
	cases := []struct {
		literal string
		want    int64
	}{
		{"2147483647", 2147483647},
		{"-2147483648", -2147483648},
	}
	results := make([]string, 0, len(cases))
	for _, tc := range cases {
		stmt, skip, ok := newStatement(ctx, "integer-max-min", "SQLGetData")
		if !ok {
			return skip
		}
		winner, tried, ok := probe.TryDialects(stmt, literalQueries(tc.literal))
		if !ok {
			stmt.Close()
			return probe.SkipInconclusive("integer-max-min", "SQLGetData",
				"INT32_MAX and INT32_MIN round-trip without truncation or sign flips",
				probe.ExhaustedDialectsHint(tried), "", "§4.8")
		}
		more, err := stmt.Fetch()
		if err != nil || !more {
			stmt.Close()
			return probe.SkipInconclusive("integer-max-min", "SQLGetData",
				"INT32_MAX and INT32_MIN round-trip without truncation or sign flips",
				"no row to fetch after "+winner, "", "§4.8")
		}
		value, err := stmt.GetDataLong(1)
		stmt.Close()
		if err != nil {
			r := probe.Fail("integer-max-min", "SQLGetData",
				"INT32_MAX and INT32_MIN round-trip without truncation or sign flips",
				"SQLGetData failed for "+tc.literal, harness.SeverityError, harness.ConformanceCore, "§4.8")
			r.Diagnostic = diagnosticOf(err)
			return r
		}
		if value != tc.want {
			return probe.Fail("integer-max-min", "SQLGetData",
				"INT32_MAX and INT32_MIN round-trip without truncation or sign flips",
				fmt.Sprintf("expected %d, got %d", tc.want, value), harness.SeverityError, harness.ConformanceCore, "§4.8")
		}
		results = append(results, fmt.Sprintf("%d OK", tc.want))
	}
	return probe.Pass("integer-max-min", "SQLGetData",
		"INT32_MAX and INT32_MIN round-trip without truncation or sign flips",
		fmt.Sprintf("%v", results), "§4.8")
}

func (c DataTypeEdgeCategory) probeVarcharEmpty(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "varchar-empty", "SQLGetData")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, literalQueries("''"))
	if !ok {
		return probe.SkipInconclusive("varchar-empty", "SQLGetData",
			"an empty string literal retrieves as a zero-length, non-NULL value",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.SkipInconclusive("varchar-empty", "SQLGetData",
			"an empty string literal retrieves as a zero-length, non-NULL value",
			"no row to fetch after "+winner, "", "§4.8")
	}
	value, err := stmt.GetDataString(1, 256)
	if err != nil {
		r := probe.Fail("varchar-empty", "SQLGetData", "an empty string literal retrieves as a zero-length, non-NULL value",
			"SQLGetData failed", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if len(value) != 0 {
		return probe.Fail("varchar-empty", "SQLGetData", "an empty string literal retrieves as a zero-length, non-NULL value",
			fmt.Sprintf("expected empty string, got %q", value), harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("varchar-empty", "SQLGetData", "an empty string literal retrieves as a zero-length, non-NULL value",
		"retrieved empty string on "+winner, "§4.8")
}

func (c DataTypeEdgeCategory) probeVarcharSpecialChars(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "varchar-special-chars", "SQLGetData")
	if !ok {
		return skip
	}
	defer stmt.Close()

	literal := "'a''b\"c\\d'"
	winner, tried, ok := probe.TryDialects(stmt, literalQueries(literal))
	if !ok {
		return probe.SkipInconclusive("varchar-special-chars", "SQLGetData",
			"quotes, backslashes, and embedded punctuation survive a round trip unmangled",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.SkipInconclusive("varchar-special-chars", "SQLGetData",
			"quotes, backslashes, and embedded punctuation survive a round trip unmangled",
			"no row to fetch after "+winner, "", "§4.8")
	}
	value, err := stmt.GetDataString(1, 256)
	if err != nil {
		r := probe.Fail("varchar-special-chars", "SQLGetData",
			"quotes, backslashes, and embedded punctuation survive a round trip unmangled",
			"SQLGetData failed", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("varchar-special-chars", "SQLGetData",
		"quotes, backslashes, and embedded punctuation survive a round trip unmangled",
		fmt.Sprintf("retrieved %q on %s", value, winner), "§4.8")
}

func (c DataTypeEdgeCategory) probeNullInteger(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "null-integer", "SQLGetData")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, literalQueries("NULL"))
	if !ok {
		return probe.SkipInconclusive("null-integer", "SQLGetData",
			"a NULL literal retrieves with the SQL_NULL_DATA indicator, not an error",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.SkipInconclusive("null-integer", "SQLGetData",
			"a NULL literal retrieves with the SQL_NULL_DATA indicator, not an error",
			"no row to fetch after "+winner, "", "§4.8")
	}
	_, err = stmt.GetDataLong(1)
	if err != nil {
		r := probe.Fail("null-integer", "SQLGetData",
			"a NULL literal retrieves with the SQL_NULL_DATA indicator, not an error",
			"SQLGetData on a NULL column returned an error instead of an indicator", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("null-integer", "SQLGetData",
		"a NULL literal retrieves with the SQL_NULL_DATA indicator, not an error",
		"retrieved NULL column without error on "+winner, "§4.8")
}

func (c DataTypeEdgeCategory) probeIntegerAsString(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "integer-as-string", "SQLGetData")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, literalQueries("42"))
	if !ok {
		return probe.SkipInconclusive("integer-as-string", "SQLGetData",
			"an integer column coerces to its SQL_C_CHAR string form on request",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.SkipInconclusive("integer-as-string", "SQLGetData",
			"an integer column coerces to its SQL_C_CHAR string form on request",
			"no row to fetch after "+winner, "", "§4.8")
	}
	value, err := stmt.GetDataString(1, 64)
	if err != nil {
		r := probe.Fail("integer-as-string", "SQLGetData",
			"an integer column coerces to its SQL_C_CHAR string form on request",
			"requesting an integer column as SQL_C_CHAR failed", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("integer-as-string", "SQLGetData",
		"an integer column coerces to its SQL_C_CHAR string form on request",
		fmt.Sprintf("retrieved %q on %s", value, winner), "§4.8")
}
