package probe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"odbccrusher/internal/core"
	"odbccrusher/internal/core/faketest"
	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
)

func connectFake(t *testing.T, connStr string) *core.Connection {
	t.Helper()
	drv := faketest.New()
	env, err := core.NewEnvironmentWithDriver(drv)
	require.NoError(t, err)
	t.Cleanup(func() { env.Close() })
	conn, err := core.NewConnection(env)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_, err = conn.Connect(connStr)
	require.NoError(t, err)
	return conn
}

func TestResultBuilders(t *testing.T) {
	p := Pass("t1", "SQLExecDirect", "returns success", "returned success", "§4.8")
	require.Equal(t, harness.StatusPass, p.Status)
	require.Equal(t, harness.SeverityInfo, p.Severity)

	f := Fail("t2", "SQLPrepare", "prepares", "rejected", harness.SeverityWarning, harness.ConformanceCore, "§4.8")
	require.Equal(t, harness.StatusFail, f.Status)
	require.Equal(t, harness.SeverityWarning, f.Severity)

	su := SkipUnsupported("t3", "SQLBindParameter", "array binding supported", "not advertised", "§4.8")
	require.Equal(t, harness.StatusSkipUnsupported, su.Status)

	si := SkipInconclusive("t4", "SQLExecDirect", "setup succeeds", "setup failed", "retry with a different dialect", "§4.8")
	require.Equal(t, harness.StatusSkipInconclusive, si.Status)
	require.NotEmpty(t, si.Suggestion)

	withDiag := WithDiagnostic(f, "[42000] syntax error")
	require.Equal(t, "[42000] syntax error", withDiag.Diagnostic)
}

func TestTryDialectsFirstWins(t *testing.T) {
	conn := connectFake(t, "Mode=Success;")
	stmt, err := core.NewStatement(conn)
	require.NoError(t, err)
	defer stmt.Close()

	winner, tried, ok := TryDialects(stmt, ScalarProbeDialects)
	require.True(t, ok)
	require.Equal(t, "SELECT 1", winner)
	require.Len(t, tried, 1)
}

func TestTryDialectsExhausted(t *testing.T) {
	conn := connectFake(t, "Mode=Partial;FailOn=SQLExecDirect;ErrorCode=42000;")
	stmt, err := core.NewStatement(conn)
	require.NoError(t, err)
	defer stmt.Close()

	winner, tried, ok := TryDialects(stmt, ScalarProbeDialects)
	require.False(t, ok)
	require.Empty(t, winner)
	require.Equal(t, ScalarProbeDialects, tried)
	require.Contains(t, ExhaustedDialectsHint(tried), "SELECT 1")
}

func TestGateOnFunctionSkipsWhenUnsupported(t *testing.T) {
	snap := &discovery.Snapshot{Functions: discovery.FunctionSupport{Supported: map[discovery.FunctionID]bool{1: false}}}
	result, skipped := GateOnFunction(snap, 1, "t", "SQLConnect", "§4.8")
	require.True(t, skipped)
	require.Equal(t, harness.StatusSkipUnsupported, result.Status)

	snap.Functions.Supported[1] = true
	_, skipped = GateOnFunction(snap, 1, "t", "SQLConnect", "§4.8")
	require.False(t, skipped)
}

func TestGateOnScalarFunction(t *testing.T) {
	_, skipped := GateOnScalarFunction([]string{"CONCAT"}, "LEFT", "t", "fn", "§4.8")
	require.True(t, skipped)
	_, skipped = GateOnScalarFunction([]string{"CONCAT"}, "CONCAT", "t", "fn", "§4.8")
	require.False(t, skipped)
}

func TestGateOnConformance(t *testing.T) {
	snap := &discovery.Snapshot{Driver: discovery.DriverInfo{SQLConformance: 0}}
	result, skipped := GateOnConformance(snap, 1, harness.ConformanceLevel1, "t", "fn", "§4.8")
	require.True(t, skipped)
	require.Equal(t, harness.ConformanceLevel1, result.Conformance)

	snap.Driver.SQLConformance = 1
	_, skipped = GateOnConformance(snap, 1, harness.ConformanceLevel1, "t", "fn", "§4.8")
	require.False(t, skipped)
}

func TestAcquireTempTableCreatesAndDrops(t *testing.T) {
	conn := connectFake(t, "Mode=Success;")
	require.NoError(t, conn.SetAutocommit(false))

	table, skip, ok := AcquireTempTable(conn, DefaultTempTableName, DefaultCreateDialects)
	require.True(t, ok)
	require.Equal(t, harness.TestResult{}, skip)
	require.Equal(t, DefaultTempTableName, table.Name)

	ac, err := conn.GetAutocommit()
	require.NoError(t, err)
	require.False(t, ac, "autocommit must be restored to its entry value after the lifecycle")

	table.Drop()
	ac, err = conn.GetAutocommit()
	require.NoError(t, err)
	require.False(t, ac)
}

func TestAcquireTempTableExhaustedDialectsSkips(t *testing.T) {
	conn := connectFake(t, "Mode=Partial;FailOn=SQLExecDirect;ErrorCode=42000;")

	table, skip, ok := AcquireTempTable(conn, DefaultTempTableName, DefaultCreateDialects)
	require.False(t, ok)
	require.Nil(t, table)
	require.Equal(t, harness.StatusSkipInconclusive, skip.Status)
	require.NotEmpty(t, skip.Suggestion)
}
