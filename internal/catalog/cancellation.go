package catalog

import (
	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// CancellationCategory exercises SQLCancel in its two ODBC roles: aborting
// an idle statement (where it should be a harmless no-op that still
// succeeds) and resetting statement state after a query has been executed
// and partially fetched. Grounded on
// original_source/src/tests/cancellation_tests.cpp.
type CancellationCategory struct{}

func (CancellationCategory) Name() string { return "Cancellation" }

func (c CancellationCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "cancel-idle", Run: c.probeCancelIdle},
		{Name: "cancel-as-reset", Run: c.probeCancelAsReset},
	}
}

func (c CancellationCategory) probeCancelIdle(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "cancel-idle", "SQLCancel")
	if !ok {
		return skip
	}
	defer stmt.Close()

	if err := stmt.Cancel(); err != nil {
		r := probe.Fail("cancel-idle", "SQLCancel",
			"SQLCancel on a freshly allocated, idle statement succeeds",
			"SQLCancel on an idle statement failed", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		r.Suggestion = "per the ODBC spec, SQLCancel should succeed on an idle statement"
		return r
	}
	return probe.Pass("cancel-idle", "SQLCancel",
		"SQLCancel on a freshly allocated, idle statement succeeds",
		"SQLCancel on idle statement returned success", "§4.8")
}

func (c CancellationCategory) probeCancelAsReset(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "cancel-as-reset", "SQLCancel")
	if !ok {
		return skip
	}
	defer stmt.Close()

	queries := []string{"SELECT 1", "SELECT 1 FROM RDB$DATABASE"}
	for _, query := range queries {
		if err := stmt.Execute(query); err != nil {
			continue
		}
		if _, err := stmt.Fetch(); err != nil {
			continue
		}
		if err := stmt.Cancel(); err == nil {
			return probe.Pass("cancel-as-reset", "SQLCancel",
				"SQLCancel after partial execution and fetch resets statement state",
				"SQLCancel after query execution succeeded on "+query, "§4.8")
		}
	}
	return probe.SkipInconclusive("cancel-as-reset", "SQLCancel",
		"SQLCancel after partial execution and fetch resets statement state",
		"could not reach a cancellable post-execution state with any trial query", "", "§4.8")
}
