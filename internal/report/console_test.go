package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
)

func TestConsoleSinkRendersNonVerbose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, false)
	require.False(t, sink.color, "buffer is not a terminal, color must stay off")

	sink.Start("DSN=fake")
	sink.ReportDriverInfo(&discovery.Snapshot{Driver: discovery.DriverInfo{DriverName: "fakeodbc", SQLConformance: 1}})
	sink.ReportTypeInfo([]discovery.DataTypeInfo{{TypeName: "VARCHAR", DataType: 12, ColumnSize: 255}})
	sink.ReportFunctionInfo(discovery.FunctionSupport{Supported: map[discovery.FunctionID]bool{1: true}})
	sink.ReportCategory("Connection", []harness.TestResult{
		{TestName: "connect-ok", Status: harness.StatusPass},
		{TestName: "connect-bad", Status: harness.StatusFail, Severity: harness.SeverityCritical, Actual: "accepted a malformed DSN"},
	})
	sink.ReportSummary(harness.Summary{Total: 2, Pass: 1, Fail: 1})
	sink.End()

	out := buf.String()
	require.Contains(t, out, "DSN=fake")
	require.Contains(t, out, "fakeodbc")
	require.Contains(t, out, "VARCHAR")
	require.Contains(t, out, "[PASS] connect-ok")
	require.Contains(t, out, "[FAIL] connect-bad")
	require.Contains(t, out, "failures, most severe first")
	require.Contains(t, out, "CRITICAL")
	require.Contains(t, out, "OVERALL: FAIL")
	require.NotContains(t, out, "expected:")
}

func TestConsoleSinkVerboseIncludesDetail(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, true)

	sink.Start("DSN=fake")
	sink.ReportCategory("Statement", []harness.TestResult{
		{TestName: "execute-direct", Status: harness.StatusPass, Function: "SQLExecDirect",
			SpecRef: "ODBC 3.8 §execute", Conformance: harness.ConformanceCore,
			Expected: "returns SQL_SUCCESS", Actual: "returned SQL_SUCCESS", DurationMicros: 120},
	})
	sink.ReportSummary(harness.Summary{Total: 1, Pass: 1})
	sink.End()

	out := buf.String()
	require.Contains(t, out, "function:     SQLExecDirect")
	require.Contains(t, out, "spec ref:     ODBC 3.8 §execute")
	require.Contains(t, out, "duration:     120us")
	require.Contains(t, out, "OVERALL: PASS")
}

func TestConsoleSinkAllPassOmitsFailureSummary(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, false)
	sink.Start("DSN=fake")
	sink.ReportCategory("Connection", []harness.TestResult{{TestName: "ok", Status: harness.StatusPass}})
	sink.ReportSummary(harness.Summary{Total: 1, Pass: 1})
	sink.End()

	require.False(t, strings.Contains(buf.String(), "failures, most severe first"))
}
