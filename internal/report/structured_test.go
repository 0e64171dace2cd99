package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
)

func TestStructuredSinkBuildsDocument(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStructuredSink(&buf)

	sink.Start("DSN=fake")
	sink.ReportDriverInfo(&discovery.Snapshot{Driver: discovery.DriverInfo{DriverName: "fakeodbc"}})
	sink.ReportTypeInfo([]discovery.DataTypeInfo{{TypeName: "VARCHAR", DataType: 12}})
	sink.ReportFunctionInfo(discovery.FunctionSupport{Supported: map[discovery.FunctionID]bool{1: true}})
	sink.ReportCategory("Connection", []harness.TestResult{
		{TestName: "connect-ok", Status: harness.StatusPass, Severity: harness.SeverityInfo, Conformance: harness.ConformanceCore},
		{TestName: "connect-bad", Status: harness.StatusFail, Severity: harness.SeverityCritical, Conformance: harness.ConformanceCore, Actual: "accepted"},
	})
	sink.ReportSummary(harness.Summary{Total: 2, Pass: 1, Fail: 1, DurationMicros: 500})
	sink.End()

	doc := sink.Document()
	require.Equal(t, 1, doc.SchemaVersion)
	require.Equal(t, "DSN=fake", doc.ConnectionString)
	require.NotEmpty(t, doc.Timestamp)
	require.Equal(t, "fakeodbc", doc.DriverInfo.DriverName)
	require.Len(t, doc.TypeInfo, 1)
	require.NotEmpty(t, doc.FunctionInfo)
	require.Len(t, doc.Categories, 1)
	require.Equal(t, "Connection", doc.Categories[0].Name)
	require.Len(t, doc.Categories[0].Tests, 2)
	require.Equal(t, "PASS", doc.Categories[0].Tests[0].Status)
	require.Equal(t, 2, doc.Summary.Total)
	require.InDelta(t, 50.0, doc.Summary.PassRatePercent, 0.001)

	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, doc.ConnectionString, decoded.ConnectionString)
}

func TestDocumentFailuresBySeverityOrdersCriticalFirst(t *testing.T) {
	doc := Document{Categories: []CategoryDocument{
		{Name: "A", Tests: []TestDocument{
			{TestName: "warn", Status: "FAIL", Severity: "WARNING"},
			{TestName: "pass", Status: "PASS", Severity: "INFO"},
			{TestName: "crit", Status: "FAIL", Severity: "CRITICAL"},
		}},
	}}

	failures := doc.FailuresBySeverity()
	require.Len(t, failures, 2)
	require.Equal(t, "crit", failures[0].TestName)
	require.Equal(t, "warn", failures[1].TestName)
}

func TestStructuredSinkWithNilWriterStillAccumulates(t *testing.T) {
	sink := NewStructuredSink(nil)
	sink.Start("DSN=fake")
	sink.End()
	require.Equal(t, "DSN=fake", sink.Document().ConnectionString)
}
