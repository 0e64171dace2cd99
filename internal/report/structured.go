// Package report provides the two report sinks the spec's §6 "Structured
// report" and "Console report" sections describe: a JSON tree sink and a
// framed-layout terminal sink. Both implement harness.Sink and the
// optional harness.CapabilityReporter pre-category calls (§4.9).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
)

// schemaVersion is the structured report's schema_version field, a
// non-breaking extension point for future document shape changes.
const schemaVersion = 1

// Document is the full structured report tree:
// {connection_string, timestamp, driver_info, type_info, function_info,
// categories, summary}, plus the non-breaking schema_version extension.
type Document struct {
	SchemaVersion    int                `json:"schema_version"`
	ConnectionString string             `json:"connection_string"`
	Timestamp        string             `json:"timestamp"`
	DriverInfo       *discovery.DriverInfo `json:"driver_info,omitempty"`
	TypeInfo         []discovery.DataTypeInfo `json:"type_info,omitempty"`
	FunctionInfo     []FunctionInfoEntry `json:"function_info,omitempty"`
	Categories       []CategoryDocument  `json:"categories"`
	Summary          SummaryDocument     `json:"summary"`
}

// FunctionInfoEntry is one row of the function-support view §4.9's
// report_function_info call receives.
type FunctionInfoEntry struct {
	Name      string `json:"name"`
	Supported bool   `json:"supported"`
}

// CategoryDocument is one entry of Document.Categories: a category name
// plus every TestResult it produced, verbatim.
type CategoryDocument struct {
	Name  string         `json:"name"`
	Tests []TestDocument `json:"tests"`
}

// TestDocument carries every harness.TestResult field, with Status,
// Severity upper-cased (already true of the harness's own enum string
// values) and Conformance left as "Core"/"Level 1"/"Level 2" per §6.
type TestDocument struct {
	TestName       string `json:"test_name"`
	Function       string `json:"function"`
	Status         string `json:"status"`
	Severity       string `json:"severity"`
	Conformance    string `json:"conformance"`
	SpecReference  string `json:"spec_reference"`
	Expected       string `json:"expected"`
	Actual         string `json:"actual"`
	Diagnostic     string `json:"diagnostic,omitempty"`
	Suggestion     string `json:"suggestion,omitempty"`
	DurationMicros int64  `json:"duration_micros"`
}

// SummaryDocument is the structured report's closing summary, with an
// added pass-rate percentage (§6).
type SummaryDocument struct {
	Total             int     `json:"total"`
	Pass              int     `json:"pass"`
	Fail              int     `json:"fail"`
	SkipUnsupported   int     `json:"skip_unsupported"`
	SkipInconclusive  int     `json:"skip_inconclusive"`
	Error             int     `json:"error"`
	DurationMicros    int64   `json:"duration_micros"`
	PassRatePercent   float64 `json:"pass_rate_percent"`
}

// StructuredSink accumulates a Document across the harness's Sink calls
// and marshals it as indented JSON to w on End. Grounded on muster's
// internal/testing/structured_reporter.go mutex-guarded capture idiom,
// adapted from scenario/step results to category/test results.
type StructuredSink struct {
	mu  sync.Mutex
	w   io.Writer
	doc Document
}

// NewStructuredSink returns a StructuredSink that writes its Document as
// JSON to w when End is called. w may be nil, in which case the sink only
// accumulates state for Document() to retrieve later (used by tests and
// by any future query surface).
func NewStructuredSink(w io.Writer) *StructuredSink {
	return &StructuredSink{w: w, doc: Document{SchemaVersion: schemaVersion}}
}

func (s *StructuredSink) Start(connectionString string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.ConnectionString = connectionString
	s.doc.Timestamp = time.Now().UTC().Format(time.RFC3339)
}

func (s *StructuredSink) ReportDriverInfo(snapshot *discovery.Snapshot) {
	if snapshot == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	info := snapshot.Driver
	s.doc.DriverInfo = &info
}

func (s *StructuredSink) ReportTypeInfo(types []discovery.DataTypeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.TypeInfo = types
}

func (s *StructuredSink) ReportFunctionInfo(support discovery.FunctionSupport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]FunctionInfoEntry, 0, len(discovery.CuratedFunctions))
	for _, f := range discovery.CuratedFunctions {
		entries = append(entries, FunctionInfoEntry{Name: f.Name, Supported: support.IsSupported(f.ID)})
	}
	s.doc.FunctionInfo = entries
}

func (s *StructuredSink) ReportCategory(title string, results []harness.TestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tests := make([]TestDocument, 0, len(results))
	for _, r := range results {
		tests = append(tests, TestDocument{
			TestName:       r.TestName,
			Function:       r.Function,
			Status:         string(r.Status),
			Severity:       string(r.Severity),
			Conformance:    string(r.Conformance),
			SpecReference:  r.SpecRef,
			Expected:       r.Expected,
			Actual:         r.Actual,
			Diagnostic:     r.Diagnostic,
			Suggestion:     r.Suggestion,
			DurationMicros: r.DurationMicros,
		})
	}
	s.doc.Categories = append(s.doc.Categories, CategoryDocument{Name: title, Tests: tests})
}

func (s *StructuredSink) ReportSummary(summary harness.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Summary = SummaryDocument{
		Total:            summary.Total,
		Pass:             summary.Pass,
		Fail:             summary.Fail,
		SkipUnsupported:  summary.SkipUnsupported,
		SkipInconclusive: summary.SkipInconclusive,
		Error:            summary.Error,
		DurationMicros:   summary.DurationMicros,
		PassRatePercent:  summary.PassRate(),
	}
}

func (s *StructuredSink) End() {
	s.mu.Lock()
	doc := s.doc
	w := s.w
	s.mu.Unlock()
	if w == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(w, `{"error":%q}`+"\n", err.Error())
	}
}

// Document returns a copy of the sink's accumulated report, usable once
// ReportSummary/End have run (or earlier, for partial inspection).
func (s *StructuredSink) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// FailuresBySeverity returns every non-pass TestDocument across every
// category in the document, sorted critical-first, matching the
// severity-ranked summary convention §4.8 requires of the console sink.
// Exposed here too since a structured-report consumer commonly wants the
// same ordering.
func (d Document) FailuresBySeverity() []TestDocument {
	var failures []TestDocument
	for _, cat := range d.Categories {
		for _, t := range cat.Tests {
			if t.Status != string(harness.StatusPass) {
				failures = append(failures, t)
			}
		}
	}
	rank := map[string]int{"CRITICAL": 0, "ERROR": 1, "WARNING": 2, "INFO": 3}
	sort.SliceStable(failures, func(i, j int) bool {
		return rank[failures[i].Severity] < rank[failures[j].Severity]
	})
	return failures
}

var _ harness.Sink = (*StructuredSink)(nil)
var _ harness.CapabilityReporter = (*StructuredSink)(nil)
