package core

import (
	"fmt"

	"odbccrusher/internal/odbcapi"
)

// Descriptor field identifiers, the subset this module's probes exercise.
const (
	AppRowDesc   int32 = 10010 // SQL_ATTR_APP_ROW_DESC
	AppParamDesc int32 = 10011 // SQL_ATTR_APP_PARAM_DESC
	ImpRowDesc   int32 = 10012 // SQL_ATTR_IMP_ROW_DESC
	ImpParamDesc int32 = 10013 // SQL_ATTR_IMP_PARAM_DESC
)

// Descriptor wraps an explicitly allocated ODBC descriptor handle. Most
// probes instead use a statement's implicit descriptors (see
// ImplicitDescriptor), which do not need independent allocation or
// freeing.
type Descriptor struct {
	handle odbcapi.Handle
	drv    Driver
}

// NewDescriptor allocates a standalone descriptor handle under conn, for
// use with SQLCopyDesc/SQLSetStmtAttr(SQL_ATTR_APP_ROW_DESC, ...).
func NewDescriptor(conn *Connection) (*Descriptor, error) {
	drv := conn.drv
	h, rc := drv.AllocHandle(odbcapi.HandleDescriptor, conn.Handle())
	if !odbcapi.Succeeded(rc) {
		return nil, newError(drv, "allocate descriptor handle", odbcapi.HandleConnection, conn.Handle())
	}
	return &Descriptor{handle: h, drv: drv}, nil
}

// Handle returns the underlying descriptor handle.
func (d *Descriptor) Handle() odbcapi.Handle { return d.handle }

// Close frees the descriptor handle.
func (d *Descriptor) Close() error {
	if d.handle.IsNull() {
		return nil
	}
	rc := d.drv.FreeHandle(odbcapi.HandleDescriptor, d.handle)
	d.handle = 0
	if !odbcapi.Succeeded(rc) {
		return fmt.Errorf("free descriptor handle: return code %d", rc)
	}
	return nil
}

// CopyFrom copies every descriptor field from src into d via SQLCopyDesc.
func (d *Descriptor) CopyFrom(src *Descriptor) error {
	return checkResult(d.drv, d.drv.CopyDesc(src.handle, d.handle), "copy descriptor", odbcapi.HandleDescriptor, d.handle)
}

// SetFieldInt sets an integer-valued descriptor field on a 1-based record.
func (d *Descriptor) SetFieldInt(recNumber int16, field int32, value int64) error {
	return checkResult(d.drv, d.drv.SetDescFieldInt(d.handle, recNumber, field, value), "set descriptor field", odbcapi.HandleDescriptor, d.handle)
}

// GetFieldInt reads an integer-valued descriptor field from a 1-based record.
func (d *Descriptor) GetFieldInt(recNumber int16, field int32) (int64, error) {
	value, rc := d.drv.GetDescFieldInt(d.handle, recNumber, field)
	if err := checkResult(d.drv, rc, "get descriptor field", odbcapi.HandleDescriptor, d.handle); err != nil {
		return 0, err
	}
	return value, nil
}

// ImplicitDescriptor returns one of a statement's four implicit
// descriptor handles (application/implementation row/parameter
// descriptors) without allocating a new one.
func ImplicitDescriptor(s *Statement, which int32) (odbcapi.Handle, error) {
	h, rc := s.drv.GetStmtDescriptor(s.Handle(), which)
	if err := checkResult(s.drv, rc, "get implicit descriptor", odbcapi.HandleStatement, s.Handle()); err != nil {
		return 0, err
	}
	return h, nil
}

// WrapImplicitDescriptor returns which of a statement's implicit
// descriptors as a *Descriptor, so probes can use the same field
// accessors as an explicitly allocated descriptor. The returned
// Descriptor must not be Close()d: it does not own the handle.
func WrapImplicitDescriptor(s *Statement, which int32) (*Descriptor, error) {
	h, err := ImplicitDescriptor(s, which)
	if err != nil {
		return nil, err
	}
	return &Descriptor{handle: h, drv: s.drv}, nil
}
