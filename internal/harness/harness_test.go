package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCategory struct {
	name   string
	probes []Probe
}

func (f fakeCategory) Name() string   { return f.name }
func (f fakeCategory) Probes() []Probe { return f.probes }

type recordingSink struct {
	started    string
	categories []string
	results    [][]TestResult
	summary    Summary
	ended      bool
}

func (r *recordingSink) Start(connectionString string) { r.started = connectionString }
func (r *recordingSink) ReportCategory(title string, results []TestResult) {
	r.categories = append(r.categories, title)
	r.results = append(r.results, results)
}
func (r *recordingSink) ReportSummary(s Summary) { r.summary = s }
func (r *recordingSink) End()                    { r.ended = true }

func TestHarnessRunOrdersCategoriesAndTallies(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeCategory{name: "Connection", probes: []Probe{
		{Name: "connect-ok", Run: func(*Context) TestResult {
			return TestResult{TestName: "connect-ok", Status: StatusPass, Expected: "connects", Conformance: ConformanceCore}
		}},
		{Name: "connect-bad-string", Run: func(*Context) TestResult {
			return TestResult{TestName: "connect-bad-string", Status: StatusFail, Expected: "rejects", Actual: "accepted", Severity: SeverityError}
		}},
	}})
	reg.Register(fakeCategory{name: "Statement", probes: []Probe{
		{Name: "execute-direct", Run: func(*Context) TestResult {
			return TestResult{TestName: "execute-direct", Status: StatusSkipUnsupported, Expected: "supported", Actual: "not advertised", Severity: SeverityInfo}
		}},
	}})

	sink := &recordingSink{}
	h := New(reg, sink)
	summary := h.Run(&Context{ConnectionString: "DSN=fake"})

	require.Equal(t, "DSN=fake", sink.started)
	require.Equal(t, []string{"Connection", "Statement"}, sink.categories)
	require.True(t, sink.ended)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.Pass)
	require.Equal(t, 1, summary.Fail)
	require.Equal(t, 1, summary.SkipUnsupported)
	require.Equal(t, summary, sink.summary)
}

func TestHarnessRunCatchesProbePanic(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeCategory{name: "Crashy", probes: []Probe{
		{Name: "panics", Run: func(*Context) TestResult {
			panic("driver returned a malformed length field")
		}},
	}})

	sink := &recordingSink{}
	h := New(reg, sink)
	summary := h.Run(&Context{})

	require.Equal(t, 1, summary.Error)
	require.Len(t, sink.results, 1)
	require.Len(t, sink.results[0], 1)
	got := sink.results[0][0]
	require.Equal(t, StatusError, got.Status)
	require.Equal(t, SeverityCritical, got.Severity)
	require.Contains(t, got.Actual, "driver returned a malformed length field")
	require.Contains(t, got.Actual, "likely a bug in the ODBC driver")
}

func TestHarnessRunContinuesAfterPanic(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeCategory{name: "Mixed", probes: []Probe{
		{Name: "panics", Run: func(*Context) TestResult { panic("boom") }},
		{Name: "still-runs", Run: func(*Context) TestResult {
			return TestResult{TestName: "still-runs", Status: StatusPass, Expected: "ok"}
		}},
	}})

	sink := &recordingSink{}
	h := New(reg, sink)
	summary := h.Run(&Context{})

	require.Equal(t, 2, summary.Total)
	require.Equal(t, 1, summary.Error)
	require.Equal(t, 1, summary.Pass)
}

func TestSummaryPassRate(t *testing.T) {
	require.Equal(t, float64(0), Summary{}.PassRate())
	require.InDelta(t, 50.0, Summary{Total: 4, Pass: 2}.PassRate(), 0.001)
}

func TestSeverityRank(t *testing.T) {
	require.True(t, SeverityCritical.Rank() < SeverityError.Rank())
	require.True(t, SeverityError.Rank() < SeverityWarning.Rank())
	require.True(t, SeverityWarning.Rank() < SeverityInfo.Rank())
}
