package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/odbcapi"
	"odbccrusher/internal/probe"
)

// CatalogDepthCategory goes beyond metadata.go's smoke tests into the
// catalog functions' search-pattern and result-shape contracts: table
// search patterns, column result shape, statistics, procedures, table
// privileges, and explicit NULL catalog/schema parameters. Grounded on
// original_source/src/tests/catalog_depth_tests.cpp.
type CatalogDepthCategory struct{}

func (CatalogDepthCategory) Name() string { return "Catalog Function Depth" }

func (c CatalogDepthCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "tables-search-patterns", Run: c.probeTablesSearchPatterns},
		{Name: "columns-result-set-shape", Run: c.probeColumnsResultSetShape},
		{Name: "statistics-result", Run: c.probeStatisticsResult},
		{Name: "procedures-result", Run: c.probeProceduresResult},
		{Name: "privileges-result", Run: c.probePrivilegesResult},
		{Name: "catalog-null-parameters", Run: c.probeCatalogNullParameters},
	}
}

func (c CatalogDepthCategory) probeTablesSearchPatterns(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "tables-search-patterns", "SQLTables")
	if !ok {
		return skip
	}
	defer stmt.Close()

	patterns := []string{"%", "T%", "%TABLE%"}
	matched := 0
	for _, p := range patterns {
		if err := stmt.Catalog(odbcapi.CatalogTables, "", "", p, ""); err != nil {
			continue
		}
		matched++
		_, _ = countRows(stmt.Fetch)
	}
	if matched == 0 {
		return probe.SkipInconclusive("tables-search-patterns", "SQLTables",
			"SQLTables accepts a range of search patterns for the table name argument",
			"none of the attempted search patterns executed without error", "", "§4.8")
	}
	return probe.Pass("tables-search-patterns", "SQLTables",
		"SQLTables accepts a range of search patterns for the table name argument",
		fmt.Sprintf("%d/%d search patterns executed without error", matched, len(patterns)), "§4.8")
}

func (c CatalogDepthCategory) probeColumnsResultSetShape(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "columns-result-set-shape", "SQLColumns")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogColumns, "", "", "%", "%"); err != nil {
		r := probe.Fail("columns-result-set-shape", "SQLColumns",
			"SQLColumns's result set exposes the standard 18 ordered columns",
			"SQLColumns failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, err := stmt.NumResultCols()
	if err != nil {
		r := probe.Fail("columns-result-set-shape", "SQLColumns",
			"SQLColumns's result set exposes the standard 18 ordered columns",
			"SQLNumResultCols failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	const expectedCols = 18
	if int(n) < expectedCols {
		return probe.Fail("columns-result-set-shape", "SQLColumns",
			"SQLColumns's result set exposes the standard 18 ordered columns",
			fmt.Sprintf("result set has %d columns, expected at least %d", n, expectedCols),
			harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("columns-result-set-shape", "SQLColumns",
		"SQLColumns's result set exposes the standard 18 ordered columns",
		fmt.Sprintf("result set has %d columns", n), "§4.8")
}

func (c CatalogDepthCategory) probeStatisticsResult(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "statistics-result", "SQLStatistics")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogStatistics, "", "", probe.DefaultTempTableName, ""); err != nil {
		r := probe.Fail("statistics-result", "SQLStatistics", "SQLStatistics returns a well-formed result set",
			"SQLStatistics failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("statistics-result", "SQLStatistics", "SQLStatistics returns a well-formed result set",
		fmt.Sprintf("fetched %d statistics row(s)", n), "§4.8")
}

func (c CatalogDepthCategory) probeProceduresResult(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "procedures-result", "SQLProcedures")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogProcedures, "", "", "%", ""); err != nil {
		return probe.SkipUnsupported("procedures-result", "SQLProcedures",
			"SQLProcedures returns a well-formed result set", "SQLProcedures not supported by this driver", "§4.8")
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("procedures-result", "SQLProcedures", "SQLProcedures returns a well-formed result set",
		fmt.Sprintf("fetched %d procedure row(s)", n), "§4.8")
}

func (c CatalogDepthCategory) probePrivilegesResult(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "privileges-result", "SQLTablePrivileges")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogTablePrivileges, "", "", "%", ""); err != nil {
		return probe.SkipUnsupported("privileges-result", "SQLTablePrivileges",
			"SQLTablePrivileges returns a well-formed result set", "SQLTablePrivileges not supported by this driver", "§4.8")
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("privileges-result", "SQLTablePrivileges", "SQLTablePrivileges returns a well-formed result set",
		fmt.Sprintf("fetched %d privilege row(s)", n), "§4.8")
}

func (c CatalogDepthCategory) probeCatalogNullParameters(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "catalog-null-parameters", "SQLTables")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogTables, "", "", "", ""); err != nil {
		r := probe.Fail("catalog-null-parameters", "SQLTables",
			"omitting the catalog/schema/table arguments is accepted as an unrestricted search",
			"SQLTables rejected all-empty search arguments", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("catalog-null-parameters", "SQLTables",
		"omitting the catalog/schema/table arguments is accepted as an unrestricted search",
		fmt.Sprintf("fetched %d row(s) with all-empty search arguments", n), "§4.8")
}
