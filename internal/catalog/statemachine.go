package catalog

import (
	"fmt"

	"odbccrusher/internal/core"
	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
)

// StateMachineCategory exercises the statement/connection state machine:
// valid transitions, rejection of operations made in the wrong state,
// state reset via SQLCloseCursor, and repeated prepare/execute cycles.
// Grounded on original_source/src/tests/state_machine_tests.cpp.
type StateMachineCategory struct{}

func (StateMachineCategory) Name() string { return "State Machine Validation" }

func (c StateMachineCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "valid-transitions", Run: c.probeValidTransitions},
		{Name: "invalid-operation", Run: c.probeInvalidOperation},
		{Name: "state-reset", Run: c.probeStateReset},
		{Name: "prepare-execute-cycle", Run: c.probePrepareExecuteCycle},
		{Name: "connection-state", Run: c.probeConnectionState},
		{Name: "multiple-statements", Run: c.probeMultipleStatements},
	}
}

func (c StateMachineCategory) probeValidTransitions(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "valid-transitions", "SQLAllocHandle")
	if !ok {
		return skip
	}
	defer stmt.Close()
	return probe.Pass("valid-transitions", "SQLAllocHandle",
		"allocate then free a statement handle is a valid state transition",
		"statement allocation succeeded", "§4.8")
}

func (c StateMachineCategory) probeInvalidOperation(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "invalid-operation", "SQLFetch")
	if !ok {
		return skip
	}
	defer stmt.Close()

	_, err := stmt.Fetch()
	return expectErrorWithState("invalid-operation", "SQLFetch",
		"fetching with no executed statement is rejected", "§4.8",
		[]string{"HY010", "24000"}, err)
}

func (c StateMachineCategory) probeStateReset(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "state-reset", "SQLCloseCursor")
	if !ok {
		return skip
	}
	defer stmt.Close()

	winner, tried, ok := probe.TryDialects(stmt, probe.ScalarProbeDialects)
	if !ok {
		return probe.SkipInconclusive("state-reset", "SQLCloseCursor",
			"closing the cursor transitions the statement back out of the fetchable state",
			probe.ExhaustedDialectsHint(tried), "", "§4.8")
	}
	if _, err := stmt.Fetch(); err != nil {
		return probe.SkipInconclusive("state-reset", "SQLCloseCursor",
			"closing the cursor transitions the statement back out of the fetchable state",
			"could not fetch a row after "+winner+" to establish an open cursor", "", "§4.8")
	}
	if err := stmt.CloseCursor(); err != nil {
		r := probe.Fail("state-reset", "SQLCloseCursor",
			"closing the cursor transitions the statement back out of the fetchable state",
			"SQLCloseCursor failed on an open cursor", harness.SeverityError, harness.ConformanceCore, "§4.8")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	_, err := stmt.Fetch()
	return expectErrorWithState("state-reset", "SQLCloseCursor",
		"closing the cursor transitions the statement back out of the fetchable state", "§4.8",
		[]string{"HY010", "24000"}, err)
}

func (c StateMachineCategory) probePrepareExecuteCycle(ctx *harness.Context) harness.TestResult {
	stmt, skip, ok := newStatement(ctx, "prepare-execute-cycle", "SQLPrepare/SQLExecute")
	if !ok {
		return skip
	}
	defer stmt.Close()

	cycles := 0
	for _, sql := range probe.ScalarProbeDialects {
		if err := stmt.Prepare(sql); err != nil {
			continue
		}
		if err := stmt.ExecutePrepared(); err != nil {
			continue
		}
		cycles++
		if err := stmt.ExecutePrepared(); err != nil {
			break
		}
		cycles++
		break
	}
	if cycles < 2 {
		return probe.SkipInconclusive("prepare-execute-cycle", "SQLPrepare/SQLExecute",
			"the same prepared statement executes repeatedly without re-preparing",
			fmt.Sprintf("only %d execute cycle(s) completed on a prepared statement", cycles),
			"add a custom dialect via the config file", "§4.8")
	}
	return probe.Pass("prepare-execute-cycle", "SQLPrepare/SQLExecute",
		"the same prepared statement executes repeatedly without re-preparing",
		fmt.Sprintf("executed a prepared statement %d times", cycles), "§4.8")
}

func (c StateMachineCategory) probeConnectionState(ctx *harness.Context) harness.TestResult {
	on, err := ctx.Conn.GetAutocommit()
	if err != nil {
		return probe.Pass("connection-state", "SQLGetConnectAttr",
			"the connection is active and its state is queryable",
			"connection state queryable", "§4.8")
	}
	return probe.Pass("connection-state", "SQLGetConnectAttr",
		"the connection is active and its state is queryable",
		fmt.Sprintf("connection active, autocommit=%v", on), "§4.8")
}

func (c StateMachineCategory) probeMultipleStatements(ctx *harness.Context) harness.TestResult {
	stmt1, err := core.NewStatement(ctx.Conn)
	if err != nil {
		return probe.SkipInconclusive("multiple-statements", "SQLAllocHandle",
			"two statements on one connection carry independent handles and independent state",
			"could not allocate the first statement", "", "§4.8")
	}
	defer stmt1.Close()
	stmt2, err := core.NewStatement(ctx.Conn)
	if err != nil {
		return probe.SkipInconclusive("multiple-statements", "SQLAllocHandle",
			"two statements on one connection carry independent handles and independent state",
			"could not allocate the second statement", "", "§4.8")
	}
	defer stmt2.Close()

	if stmt1.Handle() == stmt2.Handle() {
		return probe.Fail("multiple-statements", "SQLAllocHandle",
			"two statements on one connection carry independent handles and independent state",
			"two allocations returned the same handle", harness.SeverityError, harness.ConformanceCore, "§4.8")
	}
	return probe.Pass("multiple-statements", "SQLAllocHandle",
		"two statements on one connection carry independent handles and independent state",
		"allocated two statements with distinct handles", "§4.8")
}
