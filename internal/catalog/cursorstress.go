package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"odbccrusher/internal/core"
	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// CursorStressCategory pushes statement lifecycle and multi-statement
// concurrency past a single happy-path call: a rapid open/fetch/close
// cycle repeated many times, watching for per-iteration slowdown, and
// several statements executing concurrently on one connection, fanned out
// with an errgroup and paced by a rate limiter sized off the driver's
// advertised SQL_MAX_CONCURRENT_ACTIVITIES. Grounded on
// original_source/src/tests/cursor_stress_tests.cpp.
type CursorStressCategory struct{}

func (CursorStressCategory) Name() string { return "Cursor Stress" }

func (c CursorStressCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "rapid-cursor-lifecycle", Run: c.probeRapidCursorLifecycle},
		{Name: "concurrent-statements", Run: c.probeConcurrentStatements},
	}
}

func (c CursorStressCategory) probeRapidCursorLifecycle(ctx *harness.Context) harness.TestResult {
	const iterations = 100
	successful := 0
	var first10, last10 time.Duration

	overallStart := time.Now()
	for i := 0; i < iterations; i++ {
		iterStart := time.Now()
		func() {
			stmt, err := core.NewStatement(ctx.Conn)
			if err != nil {
				return
			}
			defer stmt.Close()
			if err := stmt.Execute("SELECT 1"); err != nil {
				return
			}
			more, err := stmt.Fetch()
			if err != nil || !more {
				return
			}
			_, _ = stmt.GetDataLong(1)
			if err := stmt.CloseCursor(); err != nil {
				return
			}
			successful++
		}()
		iterDur := time.Since(iterStart)
		if i < 10 {
			first10 += iterDur
		}
		if i >= iterations-10 {
			last10 += iterDur
		}
	}
	total := time.Since(overallStart)

	actual := fmt.Sprintf("%d/%d cycles completed in %s (%s/iteration)",
		successful, iterations, total, total/iterations)
	severity := harness.SeverityInfo
	suggestion := ""
	if first10 > 0 && last10 > first10*10 {
		actual += fmt.Sprintf(" [last 10 iterations %s vs first 10 %s — possible leak]", last10, first10)
		severity = harness.SeverityWarning
		suggestion = "performance degradation detected over 100 cycles; possible handle or memory leak"
	}
	if successful < iterations*9/10 {
		r := probe.Fail("rapid-cursor-lifecycle", "SQLExecDirect + SQLFetch + SQLCloseCursor",
			"100 rapid SELECT->Fetch->Close cycles complete without leaks or degradation",
			actual, harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Suggestion = "too many cursor lifecycle failures; driver may have cursor exhaustion issues"
		return r
	}
	r := probe.Pass("rapid-cursor-lifecycle", "SQLExecDirect + SQLFetch + SQLCloseCursor",
		"100 rapid SELECT->Fetch->Close cycles complete without leaks or degradation", actual, "§4.8")
	r.Severity = severity
	r.Suggestion = suggestion
	return r
}

func (c CursorStressCategory) probeConcurrentStatements(ctx *harness.Context) harness.TestResult {
	maxActive := 5
	if ctx.Snapshot != nil && ctx.Snapshot.Driver.MaxConcurrentActivities == 1 {
		return probe.SkipUnsupported("concurrent-statements", "SQLAllocHandle + SQLExecDirect + SQLFetch",
			"multiple statement handles on one connection execute and fetch independently",
			"driver supports only 1 concurrent activity", "§4.8")
	}
	if ctx.Snapshot != nil && ctx.Snapshot.Driver.MaxConcurrentActivities > 0 &&
		int(ctx.Snapshot.Driver.MaxConcurrentActivities) < maxActive {
		maxActive = int(ctx.Snapshot.Driver.MaxConcurrentActivities)
	}

	goCtx := ctx.GoContext
	if goCtx == nil {
		goCtx = context.Background()
	}
	limiter := rate.NewLimiter(rate.Limit(maxActive*10), maxActive)
	group, gctx := errgroup.WithContext(goCtx)

	var mu sync.Mutex
	correct := 0
	for i := 0; i < maxActive; i++ {
		i := i
		group.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return nil
			}
			stmt, err := core.NewStatement(ctx.Conn)
			if err != nil {
				return nil
			}
			defer stmt.Close()
			if err := stmt.Execute(fmt.Sprintf("SELECT %d", i+1)); err != nil {
				return nil
			}
			more, err := stmt.Fetch()
			if err != nil || !more {
				return nil
			}
			value, err := stmt.GetDataLong(1)
			if err != nil || value != int64(i+1) {
				return nil
			}
			mu.Lock()
			correct++
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	actual := fmt.Sprintf("%d/%d concurrent statements returned correct results", correct, maxActive)
	if ctx.Snapshot != nil {
		actual += fmt.Sprintf(" (max_concurrent_activities=%d)", ctx.Snapshot.Driver.MaxConcurrentActivities)
	}
	if correct < maxActive {
		r := probe.Fail("concurrent-statements", "SQLAllocHandle + SQLExecDirect + SQLFetch",
			"multiple statement handles on one connection execute and fetch independently",
			actual, harness.SeverityWarning, harness.ConformanceCore, "§4.8")
		r.Suggestion = "concurrent statement results were incorrect; driver may not support multiple active statements"
		return r
	}
	return probe.Pass("concurrent-statements", "SQLAllocHandle + SQLExecDirect + SQLFetch",
		"multiple statement handles on one connection execute and fetch independently", actual, "§4.8")
}
