package catalog

import (
	"fmt"

	"odbccrusher/internal/core"
	"odbccrusher/internal/harness"
	"odbccrusher/internal/odbcapi"
	"odbccrusher/internal/probe"
)

// attrConnectionTimeout is SQL_ATTR_CONNECTION_TIMEOUT.
const attrConnectionTimeout int32 = 113

// attrEnlistInDTC is SQL_ATTR_ENLIST_IN_DTC, an optional connection
// attribute many drivers decline; stands in here for
// original_source's environment-scoped SQL_ATTR_CONNECTION_POOLING probe,
// since this module reads/writes attributes at the connection handle
// only (§4.2 exposes no environment-attribute accessor).
const attrEnlistInDTC int32 = 1207

// ConnectionCategory exercises connection-level info, attributes, and
// multi-statement allocation. Grounded on
// original_source/src/tests/connection_tests.cpp.
type ConnectionCategory struct{}

func (ConnectionCategory) Name() string { return "Connection" }

func (c ConnectionCategory) Probes() []harness.Probe {
	return []harness.Probe{
		{Name: "connection-info", Run: c.probeConnectionInfo},
		{Name: "connection-string-format", Run: c.probeConnectionStringFormat},
		{Name: "multiple-statements", Run: c.probeMultipleStatements},
		{Name: "connection-attributes", Run: c.probeConnectionAttributes},
		{Name: "connection-timeout", Run: c.probeConnectionTimeout},
		{Name: "connection-pooling", Run: c.probeConnectionPooling},
	}
}

func (c ConnectionCategory) probeConnectionInfo(ctx *harness.Context) harness.TestResult {
	name, err := ctx.Conn.GetInfoString(odbcapi.InfoDatabaseName)
	if err != nil {
		return probe.SkipInconclusive("connection-info", "SQLGetInfo",
			"can retrieve connection information", "could not retrieve database name",
			"SQL_DATABASE_NAME is optional; some drivers omit it", "§4.6")
	}
	return probe.Pass("connection-info", "SQLGetInfo", "can retrieve connection information",
		fmt.Sprintf("database name: %s", name), "§4.6")
}

func (c ConnectionCategory) probeConnectionStringFormat(ctx *harness.Context) harness.TestResult {
	name, err := ctx.Conn.GetInfoString(odbcapi.InfoDriverName)
	if err != nil {
		r := probe.Fail("connection-string-format", "SQLGetInfo(SQL_DRIVER_NAME)",
			"connection is active and driver name is retrievable", "driver did not return a driver name",
			harness.SeverityError, harness.ConformanceCore, "§4.6")
		r.Diagnostic = diagnosticOf(err)
		return r
	}
	return probe.Pass("connection-string-format", "SQLGetInfo(SQL_DRIVER_NAME)",
		"connection is active and driver name is retrievable", "driver: "+name, "§4.6")
}

func (c ConnectionCategory) probeMultipleStatements(ctx *harness.Context) harness.TestResult {
	var stmts []*core.Statement
	defer func() {
		for _, s := range stmts {
			s.Close()
		}
	}()
	for i := 0; i < 3; i++ {
		stmt, err := core.NewStatement(ctx.Conn)
		if err != nil {
			r := probe.Fail("multiple-statements", "SQLAllocHandle(STMT)",
				"can allocate multiple statement handles on one connection",
				fmt.Sprintf("failed allocating statement %d of 3", i+1),
				harness.SeverityError, harness.ConformanceCore, "§4.2")
			r.Diagnostic = diagnosticOf(err)
			return r
		}
		stmts = append(stmts, stmt)
	}
	return probe.Pass("multiple-statements", "SQLAllocHandle(STMT)",
		"can allocate multiple statement handles on one connection",
		"successfully allocated 3 statement handles", "§4.2")
}

func (c ConnectionCategory) probeConnectionAttributes(ctx *harness.Context) harness.TestResult {
	on, err := ctx.Conn.GetAutocommit()
	if err != nil {
		return probe.SkipInconclusive("connection-attributes", "SQLGetConnectAttr",
			"can get/set connection attributes", "could not retrieve autocommit status",
			"driver may not expose SQL_ATTR_AUTOCOMMIT through SQLGetConnectAttr", "§4.6")
	}
	state := "OFF"
	if on {
		state = "ON"
	}
	return probe.Pass("connection-attributes", "SQLGetConnectAttr",
		"can get/set connection attributes", "autocommit: "+state, "§4.6")
}

func (c ConnectionCategory) probeConnectionTimeout(ctx *harness.Context) harness.TestResult {
	timeout, err := ctx.Conn.GetAttrInt(attrConnectionTimeout)
	if err != nil {
		return probe.SkipUnsupported("connection-timeout", "SQLGetConnectAttr(SQL_ATTR_CONNECTION_TIMEOUT)",
			"connection timeout attribute is queryable",
			"connection timeout attribute not supported", "§4.6")
	}
	return probe.Pass("connection-timeout", "SQLGetConnectAttr(SQL_ATTR_CONNECTION_TIMEOUT)",
		"can query connection timeout setting", fmt.Sprintf("connection timeout: %d seconds", timeout), "§4.6")
}

func (c ConnectionCategory) probeConnectionPooling(ctx *harness.Context) harness.TestResult {
	_, err := ctx.Conn.GetAttrInt(attrEnlistInDTC)
	if err != nil {
		r := probe.SkipUnsupported("connection-pooling", "SQLGetConnectAttr(SQL_ATTR_ENLIST_IN_DTC)",
			"can query an optional connection-pooling-adjacent attribute",
			"optional attribute not supported by driver", "§4.6")
		r.Suggestion = "this is normal - connection pooling attributes are an optional ODBC feature"
		return r
	}
	return probe.Pass("connection-pooling", "SQLGetConnectAttr(SQL_ATTR_ENLIST_IN_DTC)",
		"can query an optional connection-pooling-adjacent attribute", "attribute query succeeded", "§4.6")
}
