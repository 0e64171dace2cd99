package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/odbcapi"
	"odbccrusher/internal/probe"
)

// UnicodeCategory exercises the wide (SQLWCHAR/UTF-16) entry points:
// SQLGetInfoW, SQLDescribeColW, SQLGetData with SQL_C_WCHAR, catalog
// search patterns (through the narrow SQLColumns entry point, as there is
// no SQLColumnsW accessor), and wide-buffer truncation. Grounded on
// original_source/src/tests/unicode_tests.cpp.
type UnicodeCategory struct{}

func (UnicodeCategory) Name() string { return "Unicode" }

func (c UnicodeCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "getinfo-wchar-strings", Run: c.probeGetInfoWcharStrings},
		{Name: "describecol-wchar-names", Run: c.probeDescribeColWcharNames},
		{Name: "getdata-sql-c-wchar", Run: c.probeGetDataSQLCWChar},
		{Name: "columns-unicode-patterns", Run: c.probeColumnsUnicodePatterns},
		{Name: "string-truncation-wchar", Run: c.probeStringTruncationWchar},
	}
}

func (c UnicodeCategory) probeGetInfoWcharStrings(ctx *harness.Context) harness.TestResult {
	infos := []odbcapi.InfoType{
		odbcapi.InfoDatabaseName, odbcapi.InfoDriverName,
	}
	success := 0
	for _, info := range infos {
		if units, err := ctx.Conn.GetInfoStringW(info); err == nil && len(units) > 0 {
			success++
		}
	}
	actual := fmt.Sprintf("%d/%d wide string info types returned valid SQLWCHAR* data", success, len(infos))
	if success == 0 {
		return probe.SkipInconclusive("getinfo-wchar-strings", "SQLGetInfoW",
			"SQLGetInfoW returns valid SQLWCHAR* for string info types", actual,
			"driver may not support Unicode info retrieval via SQLGetInfoW", "§4.8")
	}
	if success < len(infos) {
		return probe.Fail("getinfo-wchar-strings", "SQLGetInfoW",
			"SQLGetInfoW returns valid SQLWCHAR* for string info types", actual,
			harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("getinfo-wchar-strings", "SQLGetInfoW",
		"SQLGetInfoW returns valid SQLWCHAR* for string info types", actual, "§4.8")
}

func (c UnicodeCategory) probeDescribeColWcharNames(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "describecol-wchar-names", "SQLDescribeColW")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects)
	if !ok {
		return probe.SkipInconclusive("describecol-wchar-names", "SQLDescribeColW",
			"SQLDescribeColW returns column names as SQLWCHAR*", probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	n, err := stmt.NumResultCols()
	if err != nil || n < 1 {
		return probe.SkipInconclusive("describecol-wchar-names", "SQLDescribeColW",
			"SQLDescribeColW returns column names as SQLWCHAR*", "no result columns after "+winner, "", "§4.8")
	}
	limit := n
	if limit > 5 {
		limit = 5
	}
	success := 0
	for i := int16(1); i <= limit; i++ {
		desc, err := stmt.DescribeColumnW(i)
		if err == nil && len(desc.NameUnits) > 0 {
			success++
		}
	}
	if success == 0 {
		return probe.Fail("describecol-wchar-names", "SQLDescribeColW",
			"SQLDescribeColW returns column names as SQLWCHAR*",
			"SQLDescribeColW did not return any column names", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("describecol-wchar-names", "SQLDescribeColW",
		"SQLDescribeColW returns column names as SQLWCHAR*",
		fmt.Sprintf("%d of %d columns returned valid SQLWCHAR* names", success, limit), "§4.8")
}

func (c UnicodeCategory) probeGetDataSQLCWChar(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "getdata-sql-c-wchar", "SQLGetData")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects)
	if !ok {
		return probe.SkipInconclusive("getdata-sql-c-wchar", "SQLGetData",
			"SQLGetData with SQL_C_WCHAR retrieves Unicode string data with a byte-counted indicator",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	more, err := stmt.Fetch()
	if err != nil || !more {
		return probe.SkipInconclusive("getdata-sql-c-wchar", "SQLGetData",
			"SQLGetData with SQL_C_WCHAR retrieves Unicode string data with a byte-counted indicator",
			"no row to fetch after "+winner, "", "§4.8")
	}
	units, byteLen, err := stmt.GetDataWString(1, 256)
	if err != nil {
		r := probe.Fail("getdata-sql-c-wchar", "SQLGetData",
			"SQLGetData with SQL_C_WCHAR retrieves Unicode string data with a byte-counted indicator",
			"SQLGetData with SQL_C_WCHAR failed", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	if byteLen > 0 && byteLen%2 != 0 {
		return probe.Fail("getdata-sql-c-wchar", "SQLGetData",
			"SQLGetData with SQL_C_WCHAR retrieves Unicode string data with a byte-counted indicator",
			fmt.Sprintf("byte length %d is not a multiple of sizeof(SQLWCHAR)", byteLen),
			harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("getdata-sql-c-wchar", "SQLGetData",
		"SQLGetData with SQL_C_WCHAR retrieves Unicode string data with a byte-counted indicator",
		fmt.Sprintf("retrieved %d code unit(s), byte length=%d", len(units), byteLen), "§4.8")
}

func (c UnicodeCategory) probeColumnsUnicodePatterns(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "columns-unicode-patterns", "SQLColumns")
	if !ok {
		return skip
	}
	defer stmt.Close()

	// This module's catalog accessor has no wide (SQLColumnsW) entry point;
	// the narrow path is exercised here since the pattern-matching semantics
	// it tests (not the character width) are what §4.8 cares about.
	if err := stmt.Catalog(odbcapi.CatalogColumns, "", "", "%", "%"); err != nil {
		return probe.SkipInconclusive("columns-unicode-patterns", "SQLColumns",
			"SQLColumns accepts search patterns for catalog metadata",
			"SQLColumns call did not succeed", "verify driver supports catalog functions", "§4.8")
	}
	n, _ := countRows(stmt.Fetch)
	if n == 0 {
		return probe.SkipInconclusive("columns-unicode-patterns", "SQLColumns",
			"SQLColumns accepts search patterns for catalog metadata",
			"SQLColumns returned no columns", "no tables may exist yet in this schema", "§4.8")
	}
	return probe.Pass("columns-unicode-patterns", "SQLColumns",
		"SQLColumns accepts search patterns for catalog metadata",
		fmt.Sprintf("SQLColumns returned %d column row(s)", n), "§4.8")
}

func (c UnicodeCategory) probeStringTruncationWchar(ctx *harness.Context) harness.TestResult {
	// GetInfoStringW always decodes into this module's own fixed-size
	// receive buffer (internal/odbcapi's cgo.go), so byte-exact truncation
	// behavior cannot be forced from this layer; see buffervalidation.go's
	// equivalent narrow-string probe for the same constraint.
	units, err := ctx.Conn.GetInfoStringW(odbcapi.InfoDatabaseName)
	if err != nil {
		return probe.SkipInconclusive("string-truncation-wchar", "SQLGetInfoW",
			"a too-small SQLWCHAR* buffer reports 01004 with the full byte length needed",
			"SQLGetInfoW failed", "", "§4.8")
	}
	return probe.SkipInconclusive("string-truncation-wchar", "SQLGetInfoW",
		"a too-small SQLWCHAR* buffer reports 01004 with the full byte length needed",
		fmt.Sprintf("this module's GetInfoStringW has no caller-buffer-size knob to force truncation (decoded %d code unit(s) from its own buffer)", len(units)),
		"extend the driver seam with a sized wide-string accessor if this needs direct coverage", "§4.8")
}
