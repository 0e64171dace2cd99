// Package harness runs the registered probe categories against a connected
// session, crash-guarding and timing every probe body, then streams each
// category's results to the registered report sinks. Grounded on
// muster's internal/testing package for the reporter/runner shape, and on
// original_source/src/tests/test_base.hpp for the TestResult/TestStatus/
// Severity/ConformanceLevel vocabulary.
package harness

import (
	"context"

	"odbccrusher/internal/core"
	"odbccrusher/internal/discovery"
	"odbccrusher/internal/telemetry"
)

// Status is the graded outcome of a single probe.
type Status string

const (
	StatusPass             Status = "PASS"
	StatusFail             Status = "FAIL"
	StatusSkipUnsupported  Status = "SKIP_UNSUPPORTED"
	StatusSkipInconclusive Status = "SKIP_INCONCLUSIVE"
	StatusError            Status = "ERROR"
)

// Severity ranks how much a non-pass outcome should matter to the reader.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// severityRank orders Severity values for the failure summary, critical
// first.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityError:    1,
	SeverityWarning:  2,
	SeverityInfo:     3,
}

// Rank returns s's sort position in a severity-ranked summary; lower sorts
// first.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Conformance is the ODBC conformance tier a probe exercises.
type Conformance string

const (
	ConformanceCore   Conformance = "Core"
	ConformanceLevel1 Conformance = "Level 1"
	ConformanceLevel2 Conformance = "Level 2"
)

// TestResult is the harness's central product: exactly one is emitted per
// probe. Grounded on original_source/src/tests/test_base.hpp's TestResult
// struct.
type TestResult struct {
	TestName     string
	Function     string
	Status       Status
	Severity     Severity
	Conformance  Conformance
	SpecRef      string
	Expected     string
	Actual       string
	Diagnostic   string
	Suggestion   string
	DurationMicros int64
}

// Probe is a single behavioral test producing exactly one TestResult. The
// harness times and crash-guards every Probe invocation uniformly (§4.7),
// so a probe body is free to panic on driver misbehavior without
// poisoning the probes that follow it.
type Probe struct {
	Name string
	Run  func(ctx *Context) TestResult
}

// Category groups a named, ordered set of Probes. Grounded on
// original_source/src/tests/test_base.hpp's TestBase::run()/category_name()
// contract, re-keyed so the harness (not each category) owns crash-guard
// and timing, per §4.7.
type Category interface {
	// Name is the category's human-readable title, shown in sinks.
	Name() string
	// Probes returns this category's probes in registration order.
	Probes() []Probe
}

// Context is what a probe body needs: the connected session plus the
// capability snapshot discovery collected before any probe ran.
type Context struct {
	Conn             *core.Connection
	Snapshot         *discovery.Snapshot
	ConnectionString string

	// RunID correlates every TestResult and diagnostic produced by one
	// invocation, set once by the caller (typically a fresh uuid) before
	// Run starts.
	RunID string
	// GoContext carries span/deadline plumbing into Tracer.StartProbeSpan.
	// Defaults to context.Background() when nil.
	GoContext context.Context
	// Tracer and Metrics are ambient enrichment, both no-ops unless the
	// caller wires a real implementation (§ telemetry). Nil is the same
	// as a NoopTracer/NoopMetrics.
	Tracer  telemetry.Tracer
	Metrics telemetry.Metrics
}
