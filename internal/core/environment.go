package core

import (
	"fmt"

	"odbccrusher/internal/odbcapi"
)

const (
	attrODBCVersion int32 = 200 // SQL_ATTR_ODBC_VERSION
	odbcVersion3    int64 = 3   // SQL_OV_ODBC3
)

// Environment owns the root ODBC environment handle. Unlike Connection and
// Statement it has no further parent and may be shared across connections,
// but each instance still owns exactly one underlying handle.
type Environment struct {
	handle odbcapi.Handle
	drv    Driver
}

// NewEnvironment allocates an environment handle against the production
// driver and requests ODBC 3.x driver manager behavior.
func NewEnvironment() (*Environment, error) {
	return NewEnvironmentWithDriver(DefaultDriver)
}

// NewEnvironmentWithDriver is NewEnvironment with an injected Driver, used
// by package tests to run against internal/core/faketest instead of a real
// driver manager.
func NewEnvironmentWithDriver(drv Driver) (*Environment, error) {
	h, rc := drv.AllocHandle(odbcapi.HandleEnvironment, 0)
	if !odbcapi.Succeeded(rc) {
		return nil, fmt.Errorf("allocate environment handle: return code %d", rc)
	}
	env := &Environment{handle: h, drv: drv}
	if rc := drv.SetEnvAttrInt(h, attrODBCVersion, odbcVersion3); !odbcapi.Succeeded(rc) {
		err := newError(drv, "set ODBC version to 3.x", odbcapi.HandleEnvironment, h)
		drv.FreeHandle(odbcapi.HandleEnvironment, h)
		return nil, err
	}
	return env, nil
}

// Handle returns the underlying environment handle for use by child
// connections.
func (e *Environment) Handle() odbcapi.Handle { return e.handle }

// Close frees the environment handle. It is a no-op if already closed.
func (e *Environment) Close() error {
	if e.handle.IsNull() {
		return nil
	}
	rc := e.drv.FreeHandle(odbcapi.HandleEnvironment, e.handle)
	e.handle = 0
	if !odbcapi.Succeeded(rc) {
		return fmt.Errorf("free environment handle: return code %d", rc)
	}
	return nil
}
