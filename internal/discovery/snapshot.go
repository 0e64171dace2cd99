package discovery

import (
	"odbccrusher/internal/core"
)

// Snapshot is the immutable capability picture collected once per
// connection, before any probe runs. Every probe category gates its own
// behavior off a Snapshot rather than re-querying the driver.
type Snapshot struct {
	Driver         DriverInfo
	Types          []DataTypeInfo
	Functions      FunctionSupport
	ScalarFunctions ScalarFunctionSupport
}

// TypeByName returns the first cataloged type with a case-sensitive exact
// name match, used by probes that need a concrete driver-advertised type
// name rather than a guessed literal.
func (s *Snapshot) TypeByName(name string) (DataTypeInfo, bool) {
	for _, t := range s.Types {
		if t.TypeName == name {
			return t, true
		}
	}
	return DataTypeInfo{}, false
}

// TypesByDataType returns every cataloged type sharing a SQL data type
// code, since a single SQL type (e.g. SQL_VARCHAR) commonly has more than
// one driver-specific name.
func (s *Snapshot) TypesByDataType(dataType int16) []DataTypeInfo {
	var out []DataTypeInfo
	for _, t := range s.Types {
		if t.DataType == dataType {
			out = append(out, t)
		}
	}
	return out
}

// Collect runs driver-info, type-catalog, function-support, and
// scalar-function collection against an already-connected conn and
// returns the composed Snapshot. Each sub-collector is independently
// best-effort per §4.6; only the type catalog and function-support calls
// can fail the whole collection, since a probe harness with no type
// catalog at all has nothing useful to gate on.
func Collect(conn *core.Connection) (*Snapshot, error) {
	snap := &Snapshot{
		Driver: collectDriverInfo(conn),
	}

	types, err := collectTypeInfo(conn)
	if err != nil {
		return nil, err
	}
	snap.Types = types

	functions, err := collectFunctionInfo(conn)
	if err != nil {
		return nil, err
	}
	snap.Functions = functions

	snap.ScalarFunctions = collectScalarFunctions(conn)
	return snap, nil
}
