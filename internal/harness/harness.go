package harness

import (
	"context"
	"errors"
	"time"

	"odbccrusher/internal/core"
)

// Harness runs every registered category's probes in order, crash-guarding
// and timing each probe individually (§4.7), then streams each finished
// category to every registered sink and keeps a running Summary.
type Harness struct {
	registry *Registry
	sinks    []Sink
}

// New returns a Harness that runs reg's categories and reports to sinks,
// in the order given.
func New(reg *Registry, sinks ...Sink) *Harness {
	return &Harness{registry: reg, sinks: sinks}
}

// Run executes every registered category against ctx and returns the
// final Summary. It never returns an error: probe failures are captured
// as TestResults, not propagated (§7's "errors inside a probe body never
// terminate the run").
func (h *Harness) Run(ctx *Context) Summary {
	var summary Summary

	for _, sink := range h.sinks {
		sink.Start(connectionStringFrom(ctx))
	}
	if ctx.Snapshot != nil {
		for _, sink := range h.sinks {
			if cr, ok := sink.(CapabilityReporter); ok {
				cr.ReportDriverInfo(ctx.Snapshot)
				cr.ReportTypeInfo(ctx.Snapshot.Types)
				cr.ReportFunctionInfo(ctx.Snapshot.Functions)
			}
		}
	}

	for _, category := range h.registry.Categories() {
		results := h.runCategory(ctx, category)
		tally(&summary, results)
		if ctx.Metrics != nil {
			for _, r := range results {
				ctx.Metrics.ObserveResult(category.Name(), string(r.Status))
			}
		}
		for _, sink := range h.sinks {
			sink.ReportCategory(category.Name(), results)
		}
	}

	for _, sink := range h.sinks {
		sink.ReportSummary(summary)
		sink.End()
	}
	return summary
}

// runCategory runs every probe in category, applying the per-probe
// crash-guard/timing flow from §4.7.
func (h *Harness) runCategory(ctx *Context, category Category) []TestResult {
	probes := category.Probes()
	results := make([]TestResult, 0, len(probes))
	for _, probe := range probes {
		results = append(results, h.runProbe(ctx, category.Name(), probe))
	}
	return results
}

func (h *Harness) runProbe(ctx *Context, categoryName string, probe Probe) TestResult {
	var finishSpan func(status string, err error)
	if ctx.Tracer != nil {
		goCtx := ctx.GoContext
		if goCtx == nil {
			goCtx = context.Background()
		}
		_, finishSpan = ctx.Tracer.StartProbeSpan(goCtx, categoryName, probe.Name)
	}

	var result TestResult
	start := time.Now()
	crash, _ := core.RunWithCrashGuard(func() error {
		result = probe.Run(ctx)
		return nil
	})
	elapsed := time.Since(start)

	if crash.Crashed {
		result = TestResult{
			TestName:    probe.Name,
			Status:      StatusError,
			Severity:    SeverityCritical,
			Conformance: ConformanceCore,
			Expected:    "probe completes without a driver-originated fault",
			Actual:      crash.Description,
		}
	}
	result.DurationMicros = elapsed.Microseconds()

	if finishSpan != nil {
		var spanErr error
		if result.Status == StatusFail || result.Status == StatusError {
			spanErr = errors.New(result.Actual)
		}
		finishSpan(string(result.Status), spanErr)
	}
	return result
}

func tally(summary *Summary, results []TestResult) {
	for _, r := range results {
		summary.Total++
		summary.DurationMicros += r.DurationMicros
		switch r.Status {
		case StatusPass:
			summary.Pass++
		case StatusFail:
			summary.Fail++
		case StatusSkipUnsupported:
			summary.SkipUnsupported++
		case StatusSkipInconclusive:
			summary.SkipInconclusive++
		case StatusError:
			summary.Error++
		}
	}
}

func connectionStringFrom(ctx *Context) string {
	if ctx == nil {
		return ""
	}
	return ctx.ConnectionString
}
