package catalog

import (
	"fmt"

	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// TransactionCategory exercises autocommit toggling, manual commit/rollback,
// and transaction isolation level queries. Grounded on
// original_source/src/tests/transaction_tests.cpp.
type TransactionCategory struct{}

func (TransactionCategory) Name() string { return "Transaction" }

func (c TransactionCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "autocommit-on", Run: c.probeAutocommitOn},
		{Name: "autocommit-off", Run: c.probeAutocommitOff},
		{Name: "manual-commit", Run: c.probeManualCommit},
		{Name: "manual-rollback", Run: c.probeManualRollback},
		{Name: "transaction-isolation-levels", Run: c.probeIsolationLevels},
	}
}

// attrTxnIsolation is SQL_ATTR_TXN_ISOLATION.
const attrTxnIsolation int32 = 108

func (c TransactionCategory) probeAutocommitOn(ctx *harness.Context) harness.TestResult {
	before, err := ctx.Conn.GetAutocommit()
	if err != nil {
		return probe.SkipInconclusive("autocommit-on", "SQLSetConnectAttr(SQL_ATTR_AUTOCOMMIT)",
			"autocommit can be switched on", "could not read current autocommit state", "", "§4.5")
	}
	defer func() {
		_ = ctx.Conn.SetAutocommit(before)
	}()
	if err := ctx.Conn.SetAutocommit(true); err != nil {
		r := probe.Fail("autocommit-on", "SQLSetConnectAttr(SQL_ATTR_AUTOCOMMIT)",
			"autocommit can be switched on", "SQLSetConnectAttr failed", harness.SeverityError, harness.ConformanceCore, "§4.5")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("autocommit-on", "SQLSetConnectAttr(SQL_ATTR_AUTOCOMMIT)",
		"autocommit can be switched on", "autocommit set to ON", "§4.5")
}

func (c TransactionCategory) probeAutocommitOff(ctx *harness.Context) harness.TestResult {
	before, err := ctx.Conn.GetAutocommit()
	if err != nil {
		return probe.SkipInconclusive("autocommit-off", "SQLSetConnectAttr(SQL_ATTR_AUTOCOMMIT)",
			"autocommit can be switched off", "could not read current autocommit state", "", "§4.5")
	}
	defer func() {
		_ = ctx.Conn.SetAutocommit(before)
	}()
	if err := ctx.Conn.SetAutocommit(false); err != nil {
		return probe.SkipUnsupported("autocommit-off", "SQLSetConnectAttr(SQL_ATTR_AUTOCOMMIT)",
			"autocommit can be switched off", "driver rejected manual-commit mode", "§4.5")
	}
	return probe.Pass("autocommit-off", "SQLSetConnectAttr(SQL_ATTR_AUTOCOMMIT)",
		"autocommit can be switched off", "autocommit set to OFF", "§4.5")
}

func (c TransactionCategory) probeManualCommit(ctx *harness.Context) harness.TestResult {
	before, err := ctx.Conn.GetAutocommit()
	if err != nil {
		return probe.SkipInconclusive("manual-commit", "SQLEndTran(SQL_COMMIT)",
			"an explicit commit succeeds under manual-commit mode", "could not read current autocommit state", "", "§4.5")
	}
	if err := ctx.Conn.SetAutocommit(false); err != nil {
		return probe.SkipUnsupported("manual-commit", "SQLEndTran(SQL_COMMIT)",
			"an explicit commit succeeds under manual-commit mode", "driver rejected manual-commit mode", "§4.5")
	}
	defer func() {
		_ = ctx.Conn.SetAutocommit(before)
	}()
	if err := ctx.Conn.EndTransaction(true); err != nil {
		r := probe.Fail("manual-commit", "SQLEndTran(SQL_COMMIT)",
			"an explicit commit succeeds under manual-commit mode", "SQLEndTran(SQL_COMMIT) failed",
			harness.SeverityError, harness.ConformanceCore, "§4.5")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("manual-commit", "SQLEndTran(SQL_COMMIT)",
		"an explicit commit succeeds under manual-commit mode", "commit succeeded", "§4.5")
}

func (c TransactionCategory) probeManualRollback(ctx *harness.Context) harness.TestResult {
	before, err := ctx.Conn.GetAutocommit()
	if err != nil {
		return probe.SkipInconclusive("manual-rollback", "SQLEndTran(SQL_ROLLBACK)",
			"an explicit rollback succeeds under manual-commit mode", "could not read current autocommit state", "", "§4.5")
	}
	if err := ctx.Conn.SetAutocommit(false); err != nil {
		return probe.SkipUnsupported("manual-rollback", "SQLEndTran(SQL_ROLLBACK)",
			"an explicit rollback succeeds under manual-commit mode", "driver rejected manual-commit mode", "§4.5")
	}
	defer func() {
		_ = ctx.Conn.SetAutocommit(before)
	}()
	if err := ctx.Conn.EndTransaction(false); err != nil {
		r := probe.Fail("manual-rollback", "SQLEndTran(SQL_ROLLBACK)",
			"an explicit rollback succeeds under manual-commit mode", "SQLEndTran(SQL_ROLLBACK) failed",
			harness.SeverityError, harness.ConformanceCore, "§4.5")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("manual-rollback", "SQLEndTran(SQL_ROLLBACK)",
		"an explicit rollback succeeds under manual-commit mode", "rollback succeeded", "§4.5")
}

func (c TransactionCategory) probeIsolationLevels(ctx *harness.Context) harness.TestResult {
	level, err := ctx.Conn.GetAttrInt(attrTxnIsolation)
	if err != nil {
		return probe.SkipUnsupported("transaction-isolation-levels", "SQLGetConnectAttr(SQL_ATTR_TXN_ISOLATION)",
			"the connection's transaction isolation level is queryable",
			"driver does not expose SQL_ATTR_TXN_ISOLATION", "§4.5")
	}
	return probe.Pass("transaction-isolation-levels", "SQLGetConnectAttr(SQL_ATTR_TXN_ISOLATION)",
		"the connection's transaction isolation level is queryable",
		fmt.Sprintf("isolation level bitmask: %d", level), "§4.5")
}
