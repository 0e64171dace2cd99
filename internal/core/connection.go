package core

import (
	"fmt"

	"github.com/google/uuid"

	"odbccrusher/internal/odbcapi"
)

// Connection owns a single ODBC connection handle, scoped to the lifetime
// of one Environment. A Connection is not safe to share across goroutines.
type Connection struct {
	handle    odbcapi.Handle
	drv       Driver
	connected bool
	tag       string
}

// NewConnection allocates a connection handle under env, using env's
// driver. The handle is tagged with a fresh uuid so log lines and probe
// diagnostics touching several connections in one run can be correlated
// back to the handle that produced them.
func NewConnection(env *Environment) (*Connection, error) {
	drv := env.drv
	h, rc := drv.AllocHandle(odbcapi.HandleConnection, env.Handle())
	if !odbcapi.Succeeded(rc) {
		return nil, newError(drv, "allocate connection handle", odbcapi.HandleEnvironment, env.Handle())
	}
	return &Connection{handle: h, drv: drv, tag: uuid.NewString()}, nil
}

// Handle returns the underlying connection handle for use by child
// statements and descriptors.
func (c *Connection) Handle() odbcapi.Handle { return c.handle }

// Tag returns this connection's correlation id.
func (c *Connection) Tag() string { return c.tag }

// Connect opens the connection using the given driver connection string,
// returning the driver's (possibly expanded) completed string. It fails if
// already connected.
func (c *Connection) Connect(connStr string) (string, error) {
	if c.connected {
		return "", fmt.Errorf("connection already open")
	}
	out, rc := c.drv.DriverConnect(c.handle, connStr)
	if err := checkResult(c.drv, rc, "connect", odbcapi.HandleConnection, c.handle); err != nil {
		return "", err
	}
	c.connected = true
	return out, nil
}

// Disconnect closes an open connection. It is a no-op if not connected.
func (c *Connection) Disconnect() error {
	if !c.connected {
		return nil
	}
	if err := checkResult(c.drv, c.drv.Disconnect(c.handle), "disconnect", odbcapi.HandleConnection, c.handle); err != nil {
		return err
	}
	c.connected = false
	return nil
}

// Close disconnects if needed (swallowing any disconnect error, mirroring
// the original destructor's exception-swallow) and frees the handle.
func (c *Connection) Close() error {
	if c.connected {
		_ = c.Disconnect()
	}
	if c.handle.IsNull() {
		return nil
	}
	rc := c.drv.FreeHandle(odbcapi.HandleConnection, c.handle)
	c.handle = 0
	if !odbcapi.Succeeded(rc) {
		return fmt.Errorf("free connection handle: return code %d", rc)
	}
	return nil
}

// attrAutocommit is SQL_ATTR_AUTOCOMMIT.
const attrAutocommit int32 = 102

// SetAutocommit toggles SQL_ATTR_AUTOCOMMIT on the connection.
func (c *Connection) SetAutocommit(on bool) error {
	value := int64(0)
	if on {
		value = 1
	}
	return checkResult(c.drv, c.drv.SetConnectAttrInt(c.handle, attrAutocommit, value), "set autocommit", odbcapi.HandleConnection, c.handle)
}

// GetAttrInt reads an arbitrary SQLGetConnectAttr integer attribute.
func (c *Connection) GetAttrInt(attr int32) (int64, error) {
	value, rc := c.drv.GetConnectAttrInt(c.handle, attr)
	if err := checkResult(c.drv, rc, "get connect attribute", odbcapi.HandleConnection, c.handle); err != nil {
		return 0, err
	}
	return value, nil
}

// SetAttrInt sets an arbitrary SQLSetConnectAttr integer attribute. Used
// directly (rather than through a named helper like SetAutocommit) by
// probes exercising attributes this module has no dedicated wrapper for,
// including deliberately invalid attribute identifiers.
func (c *Connection) SetAttrInt(attr int32, value int64) error {
	return checkResult(c.drv, c.drv.SetConnectAttrInt(c.handle, attr, value), "set connect attribute", odbcapi.HandleConnection, c.handle)
}

// GetInfoStringW is GetInfoString's wide-character counterpart, used by
// the wide-character capability probes.
func (c *Connection) GetInfoStringW(info odbcapi.InfoType) ([]uint16, error) {
	units, _, rc := c.drv.GetInfoStringW(c.handle, info)
	if err := checkResult(c.drv, rc, fmt.Sprintf("get info %d (wide)", info), odbcapi.HandleConnection, c.handle); err != nil {
		return nil, err
	}
	return units, nil
}

// ConnectW opens the connection through the wide (SQLWCHAR) driver-connect
// entry point. No probe in this module calls it.
func (c *Connection) ConnectW(connStrUnits []uint16) ([]uint16, error) {
	if c.connected {
		return nil, fmt.Errorf("connection already open")
	}
	out, rc := c.drv.DriverConnectW(c.handle, connStrUnits)
	if err := checkResult(c.drv, rc, "connect (wide)", odbcapi.HandleConnection, c.handle); err != nil {
		return nil, err
	}
	c.connected = true
	return out, nil
}

// GetAutocommit reads the connection's current SQL_ATTR_AUTOCOMMIT state,
// used to save it before a lifecycle that needs autocommit on and restore
// it afterward.
func (c *Connection) GetAutocommit() (bool, error) {
	value, rc := c.drv.GetConnectAttrInt(c.handle, attrAutocommit)
	if err := checkResult(c.drv, rc, "get autocommit", odbcapi.HandleConnection, c.handle); err != nil {
		return false, err
	}
	return value != 0, nil
}

// EndTransaction commits or rolls back the connection's current
// transaction. commit selects SQL_COMMIT; otherwise SQL_ROLLBACK.
func (c *Connection) EndTransaction(commit bool) error {
	completion := int16(1) // SQL_ROLLBACK
	if commit {
		completion = 0 // SQL_COMMIT
	}
	return checkResult(c.drv, c.drv.EndTran(odbcapi.HandleConnection, c.handle, completion), "end transaction", odbcapi.HandleConnection, c.handle)
}

// GetInfoString queries a string-valued SQLGetInfo field.
func (c *Connection) GetInfoString(info odbcapi.InfoType) (string, error) {
	value, rc := c.drv.GetInfoString(c.handle, info)
	if err := checkResult(c.drv, rc, fmt.Sprintf("get info %d", info), odbcapi.HandleConnection, c.handle); err != nil {
		return "", err
	}
	return value, nil
}

// GetInfoUint32 queries a SQLUINTEGER-valued SQLGetInfo field.
func (c *Connection) GetInfoUint32(info odbcapi.InfoType) (uint32, error) {
	value, rc := c.drv.GetInfoUint32(c.handle, info)
	if err := checkResult(c.drv, rc, fmt.Sprintf("get info %d", info), odbcapi.HandleConnection, c.handle); err != nil {
		return 0, err
	}
	return value, nil
}

// GetInfoUint16 queries a SQLUSMALLINT-valued SQLGetInfo field.
func (c *Connection) GetInfoUint16(info odbcapi.InfoType) (uint16, error) {
	value, rc := c.drv.GetInfoUint16(c.handle, info)
	if err := checkResult(c.drv, rc, fmt.Sprintf("get info %d", info), odbcapi.HandleConnection, c.handle); err != nil {
		return 0, err
	}
	return value, nil
}

// GetFunctions returns the ODBC 3.x all-functions support bitmap.
func (c *Connection) GetFunctions() ([]uint16, error) {
	bitmap, rc := c.drv.GetFunctions(c.handle)
	if err := checkResult(c.drv, rc, "get functions", odbcapi.HandleConnection, c.handle); err != nil {
		return nil, err
	}
	return bitmap, nil
}
