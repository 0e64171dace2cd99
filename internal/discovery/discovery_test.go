package discovery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"odbccrusher/internal/core"
	"odbccrusher/internal/core/faketest"
)

func newTestConnection(t *testing.T) (*core.Connection, func()) {
	t.Helper()
	drv := faketest.New()
	env, err := core.NewEnvironmentWithDriver(drv)
	require.NoError(t, err)
	conn, err := core.NewConnection(env)
	require.NoError(t, err)
	_, err = conn.Connect("Mode=Success")
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		env.Close()
	}
}

func TestCollectDriverInfo(t *testing.T) {
	conn, done := newTestConnection(t)
	defer done()

	info := collectDriverInfo(conn)
	require.Equal(t, "fakeodbc.so", info.DriverName)
	require.Equal(t, "01.00.0000", info.DriverVersion)
	require.Equal(t, "FakeDB", info.DBMSName)
	require.Equal(t, uint32(8), info.MaxConcurrentActivities)
}

func TestCollectTypeInfo(t *testing.T) {
	conn, done := newTestConnection(t)
	defer done()

	types, err := collectTypeInfo(conn)
	require.NoError(t, err)
	require.Len(t, types, 10) // faketest's default ResultSetSize
	require.NotEmpty(t, types[0].TypeName)
}

func TestCollectFunctionInfo(t *testing.T) {
	conn, done := newTestConnection(t)
	defer done()

	support, err := collectFunctionInfo(conn)
	require.NoError(t, err)
	require.Len(t, support.Supported, len(CuratedFunctions))
	require.True(t, support.IsSupported(4000)) // SQLEndTran: id is a multiple of 16, set in faketest's bitmap
}

func TestBitmapBit(t *testing.T) {
	bitmap := make([]uint16, 4)
	bitmap[1] = 1 << 3 // id 16*1+3 = 19
	require.True(t, bitmapBit(bitmap, 19))
	require.False(t, bitmapBit(bitmap, 20))
	require.False(t, bitmapBit(bitmap, 1000)) // out of range word
}

func TestCollectScalarFunctions(t *testing.T) {
	conn, done := newTestConnection(t)
	defer done()

	scalar := collectScalarFunctions(conn)
	require.Empty(t, scalar.StringFunctions) // faketest reports 0 for unrecognized uint32 info types
	require.Equal(t, uint32(0), scalar.StringBitmask)
}

func TestCollectSnapshot(t *testing.T) {
	conn, done := newTestConnection(t)
	defer done()

	snap, err := Collect(conn)
	require.NoError(t, err)
	require.Equal(t, "fakeodbc.so", snap.Driver.DriverName)
	require.NotEmpty(t, snap.Types)
	require.Len(t, snap.Functions.Supported, len(CuratedFunctions))
}

func TestSnapshotTypeByName(t *testing.T) {
	conn, done := newTestConnection(t)
	defer done()

	snap, err := Collect(conn)
	require.NoError(t, err)
	_, ok := snap.TypeByName("nonexistent-type-name")
	require.False(t, ok)
}

func TestFunctionSupportFailure(t *testing.T) {
	conn, done := newTestConnectionWithConfig(t, "Mode=Partial;FailOn=SQLGetFunctions;ErrorCode=HY000")
	defer done()

	_, err := collectFunctionInfo(conn)
	require.Error(t, err)
}

func newTestConnectionWithConfig(t *testing.T, connStr string) (*core.Connection, func()) {
	t.Helper()
	drv := faketest.New()
	env, err := core.NewEnvironmentWithDriver(drv)
	require.NoError(t, err)
	conn, err := core.NewConnection(env)
	require.NoError(t, err)
	_, err = conn.Connect(connStr)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		env.Close()
	}
}
