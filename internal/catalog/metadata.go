package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/odbcapi"
	"odbccrusher/internal/probe"
)

// MetadataCategory exercises the core catalog functions: tables, columns,
// primary keys, statistics, special columns. Grounded on
// original_source/src/tests/metadata_tests.cpp.
type MetadataCategory struct{}

func (MetadataCategory) Name() string { return "Metadata/Catalog" }

func (c MetadataCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "tables-catalog", Run: c.probeTablesCatalog},
		{Name: "columns-catalog", Run: c.probeColumnsCatalog},
		{Name: "primary-keys", Run: c.probePrimaryKeys},
		{Name: "statistics", Run: c.probeStatistics},
		{Name: "special-columns", Run: c.probeSpecialColumns},
	}
}

// countRows consumes the statement's open result set, returning the number
// of rows fetched. Used by catalog probes that only need to know whether
// any rows came back, not their contents.
func countRows(stmtFetch func() (bool, error)) (int, error) {
	n := 0
	for {
		more, err := stmtFetch()
		if err != nil {
			return n, err
		}
		if !more {
			return n, nil
		}
		n++
	}
}

func (c MetadataCategory) probeTablesCatalog(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "tables-catalog", "SQLTables")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogTables, "", "", "%", ""); err != nil {
		r := probe.Fail("tables-catalog", "SQLTables", "SQLTables returns a result set",
			"SQLTables failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, err := countRows(stmt.Fetch)
	if err != nil {
		r := probe.Fail("tables-catalog", "SQLTables", "SQLTables result set is fetchable",
			"fetch failed while walking SQLTables results", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("tables-catalog", "SQLTables", "SQLTables returns a result set",
		fmt.Sprintf("fetched %d table row(s)", n), "§4.8")
}

func (c MetadataCategory) probeColumnsCatalog(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "columns-catalog", "SQLColumns")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogColumns, "", "", "%", "%"); err != nil {
		r := probe.Fail("columns-catalog", "SQLColumns", "SQLColumns returns a result set",
			"SQLColumns failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, err := countRows(stmt.Fetch)
	if err != nil {
		r := probe.Fail("columns-catalog", "SQLColumns", "SQLColumns result set is fetchable",
			"fetch failed while walking SQLColumns results", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("columns-catalog", "SQLColumns", "SQLColumns returns a result set",
		fmt.Sprintf("fetched %d column row(s)", n), "§4.8")
}

func (c MetadataCategory) probePrimaryKeys(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "primary-keys", "SQLPrimaryKeys")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogPrimaryKeys, "", "", probe.DefaultTempTableName, ""); err != nil {
		r := probe.Fail("primary-keys", "SQLPrimaryKeys", "SQLPrimaryKeys executes without error",
			"SQLPrimaryKeys failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("primary-keys", "SQLPrimaryKeys", "SQLPrimaryKeys executes without error",
		fmt.Sprintf("fetched %d primary key row(s) for %s", n, probe.DefaultTempTableName), "§4.8")
}

func (c MetadataCategory) probeStatistics(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "statistics", "SQLStatistics")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogStatistics, "", "", "%", ""); err != nil {
		r := probe.Fail("statistics", "SQLStatistics", "SQLStatistics executes without error",
			"SQLStatistics failed", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("statistics", "SQLStatistics", "SQLStatistics executes without error",
		fmt.Sprintf("fetched %d statistics row(s)", n), "§4.8")
}

func (c MetadataCategory) probeSpecialColumns(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "special-columns", "SQLSpecialColumns")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Catalog(odbcapi.CatalogSpecialColumns, "", "", probe.DefaultTempTableName, ""); err != nil {
		return probe.SkipInconclusive("special-columns", "SQLSpecialColumns",
			"SQLSpecialColumns executes without error",
			"SQLSpecialColumns failed, possibly because no working table exists yet",
			"run after a category that has acquired the shared working table", "§4.8")
	}
	n, _ := countRows(stmt.Fetch)
	return probe.Pass("special-columns", "SQLSpecialColumns", "SQLSpecialColumns executes without error",
		fmt.Sprintf("fetched %d special column row(s)", n), "§4.8")
}
