package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
)

// statusPrefix is the bracketed §6 console status tag for each Status.
var statusPrefix = map[harness.Status]string{
	harness.StatusPass:             "[PASS]",
	harness.StatusFail:             "[FAIL]",
	harness.StatusSkipUnsupported:  "[N/S] ",
	harness.StatusSkipInconclusive: "[INC] ",
	harness.StatusError:            "[ERR!]",
}

// statusColor maps a Status to the fatih/color attribute the prefix is
// printed in when the sink decides color is appropriate.
var statusColor = map[harness.Status]*color.Color{
	harness.StatusPass:             color.New(color.FgGreen),
	harness.StatusFail:             color.New(color.FgRed),
	harness.StatusSkipUnsupported:  color.New(color.FgYellow),
	harness.StatusSkipInconclusive: color.New(color.FgYellow),
	harness.StatusError:            color.New(color.FgRed, color.Bold),
}

// ConsoleSink renders the §6 console report layout: banner, driver-info
// block, type-info table, function-info block, per-category status lines,
// a severity-ordered failure summary, and an overall pass/fail line.
// Grounded on muster's internal/formatting/table_formatter.go (go-pretty
// table idiom) and internal/cli/executor.go (spinner idiom), adapted from
// muster's resource tables to the type-info catalog and from its
// long-running-command spinner to a per-category progress indicator.
type ConsoleSink struct {
	harness.NoopCapabilityReporter
	w        io.Writer
	verbose  bool
	color    bool
	spin     *spinner.Spinner
	allTests []TestDocument
	summary  harness.Summary
}

// NewConsoleSink returns a ConsoleSink writing to w. Color is enabled only
// when w is a terminal, per the usual isatty-gated convention; verbose
// additionally prints per-result detail (function, spec citation,
// conformance, expected/actual, duration, diagnostic, suggestion).
func NewConsoleSink(w io.Writer, verbose bool) *ConsoleSink {
	colorEnabled := false
	if f, ok := w.(*os.File); ok {
		colorEnabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &ConsoleSink{w: w, verbose: verbose, color: colorEnabled}
}

func (s *ConsoleSink) Start(connectionString string) {
	fmt.Fprintln(s.w, "odbccrusher conformance report")
	fmt.Fprintf(s.w, "connection: %s\n", connectionString)
	fmt.Fprintf(s.w, "started:    %s\n\n", time.Now().UTC().Format(time.RFC3339))

	if s.color {
		s.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spin.Suffix = " running probes..."
		s.spin.Writer = s.w
		s.spin.Start()
	}
}

func (s *ConsoleSink) ReportDriverInfo(snapshot *discovery.Snapshot) {
	if snapshot == nil {
		return
	}
	s.stopSpinner()
	d := snapshot.Driver
	fmt.Fprintln(s.w, "driver info")
	fmt.Fprintf(s.w, "  name:             %s\n", d.DriverName)
	fmt.Fprintf(s.w, "  version:          %s\n", d.DriverVersion)
	fmt.Fprintf(s.w, "  odbc version:     %s\n", d.DriverODBCVer)
	fmt.Fprintf(s.w, "  dbms:             %s %s\n", d.DBMSName, d.DBMSVersion)
	fmt.Fprintf(s.w, "  sql conformance:  %d\n", d.SQLConformance)
	fmt.Fprintf(s.w, "  max concurrency:  %d\n\n", d.MaxConcurrentActivities)
}

func (s *ConsoleSink) ReportTypeInfo(types []discovery.DataTypeInfo) {
	if len(types) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(s.w)
	t.AppendHeader(table.Row{
		headerCell(s.color, "TYPE NAME"),
		headerCell(s.color, "SQL TYPE"),
		headerCell(s.color, "COLUMN SIZE"),
		headerCell(s.color, "NULLABLE"),
	})
	for _, ty := range types {
		t.AppendRow(table.Row{ty.TypeName, ty.DataType, ty.ColumnSize, ty.Nullable})
	}
	t.Render()
	fmt.Fprintln(s.w)
}

func headerCell(colorEnabled bool, label string) string {
	if !colorEnabled {
		return label
	}
	return text.FgHiCyan.Sprint(label)
}

func (s *ConsoleSink) ReportFunctionInfo(support discovery.FunctionSupport) {
	fmt.Fprintf(s.w, "function support: %d/%d curated functions advertised\n\n",
		support.SupportedCount(), len(discovery.CuratedFunctions))
}

func (s *ConsoleSink) ReportCategory(title string, results []harness.TestResult) {
	s.stopSpinner()
	fmt.Fprintf(s.w, "== %s ==\n", title)
	for _, r := range results {
		s.printResult(r)
		s.allTests = append(s.allTests, TestDocument{
			TestName: r.TestName, Function: r.Function, Status: string(r.Status),
			Severity: string(r.Severity), Conformance: string(r.Conformance),
			SpecReference: r.SpecRef, Expected: r.Expected, Actual: r.Actual,
			Diagnostic: r.Diagnostic, Suggestion: r.Suggestion, DurationMicros: r.DurationMicros,
		})
	}
	fmt.Fprintln(s.w)
}

func (s *ConsoleSink) printResult(r harness.TestResult) {
	prefix := statusPrefix[r.Status]
	line := fmt.Sprintf("%s %s", prefix, r.TestName)
	if s.color {
		if c, ok := statusColor[r.Status]; ok {
			line = fmt.Sprintf("%s %s", c.Sprint(prefix), r.TestName)
		}
	}
	fmt.Fprintln(s.w, line)

	if !s.verbose {
		return
	}
	if r.Function != "" {
		fmt.Fprintf(s.w, "    function:     %s\n", r.Function)
	}
	if r.SpecRef != "" {
		fmt.Fprintf(s.w, "    spec ref:     %s\n", r.SpecRef)
	}
	if r.Conformance != "" {
		fmt.Fprintf(s.w, "    conformance:  %s\n", r.Conformance)
	}
	if r.Expected != "" || r.Actual != "" {
		fmt.Fprintf(s.w, "    expected:     %s\n", r.Expected)
		fmt.Fprintf(s.w, "    actual:       %s\n", r.Actual)
	}
	fmt.Fprintf(s.w, "    duration:     %dus\n", r.DurationMicros)
	if r.Diagnostic != "" {
		fmt.Fprintf(s.w, "    diagnostic:   %s\n", r.Diagnostic)
	}
	if r.Suggestion != "" {
		fmt.Fprintf(s.w, "    suggestion:   %s\n", r.Suggestion)
	}
}

func (s *ConsoleSink) ReportSummary(summary harness.Summary) {
	s.stopSpinner()
	s.summary = summary

	failures := failuresBySeverity(s.allTests)
	if len(failures) > 0 {
		fmt.Fprintln(s.w, "failures, most severe first")
		for _, f := range failures {
			fmt.Fprintf(s.w, "  %-9s %-8s %s\n", f.Severity, f.Status, f.TestName)
		}
		fmt.Fprintln(s.w)
	}

	fmt.Fprintf(s.w, "total: %d  pass: %d  fail: %d  skip: %d  inconclusive: %d  error: %d  (%.1f%% pass)\n",
		summary.Total, summary.Pass, summary.Fail, summary.SkipUnsupported,
		summary.SkipInconclusive, summary.Error, summary.PassRate())

	if summary.Fail == 0 && summary.Error == 0 {
		if s.color {
			color.New(color.FgGreen, color.Bold).Fprintln(s.w, "OVERALL: PASS")
		} else {
			fmt.Fprintln(s.w, "OVERALL: PASS")
		}
		return
	}
	if s.color {
		color.New(color.FgRed, color.Bold).Fprintln(s.w, "OVERALL: FAIL")
	} else {
		fmt.Fprintln(s.w, "OVERALL: FAIL")
	}
}

func (s *ConsoleSink) End() {
	s.stopSpinner()
}

func (s *ConsoleSink) stopSpinner() {
	if s.spin != nil && s.spin.Active() {
		s.spin.Stop()
	}
}

func failuresBySeverity(tests []TestDocument) []TestDocument {
	var out []TestDocument
	for _, t := range tests {
		if t.Status != string(harness.StatusPass) {
			out = append(out, t)
		}
	}
	rank := map[string]int{"CRITICAL": 0, "ERROR": 1, "WARNING": 2, "INFO": 3}
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Severity] < rank[out[j].Severity] })
	return out
}

var _ harness.Sink = (*ConsoleSink)(nil)
var _ harness.CapabilityReporter = (*ConsoleSink)(nil)
