package probe

import (
	"fmt"

	"odbccrusher/internal/core"
	"odbccrusher/internal/harness"
)

// DefaultTempTableName is the table name temp-schema lifecycle probes
// share within one category run. §6 scenario 6 assumes the schema is
// exclusive to this run; reuse of a pre-existing table with this name is
// the correct, intended behavior, not a collision to guard against.
const DefaultTempTableName = "ODBCCRUSHER_TEMP"

// DefaultCreateDialects are CREATE TABLE forms tried in order until one
// succeeds, covering the standard form, a narrower INTEGER/INT spelling,
// and the two common temporary-table spellings some DBMSes require for a
// session-scoped working table.
var DefaultCreateDialects = []string{
	"CREATE TABLE %s (ID INTEGER, NAME VARCHAR(50), VAL INTEGER)",
	"CREATE TABLE %s (ID INT, NAME VARCHAR(50), VAL INT)",
	"CREATE TEMPORARY TABLE %s (ID INTEGER, NAME VARCHAR(50), VAL INTEGER)",
	"CREATE GLOBAL TEMPORARY TABLE %s (ID INTEGER, NAME VARCHAR(50), VAL INTEGER)",
}

// TempTable is a working table acquired for the lifetime of one category's
// stateful probes, per §4.8's temp-schema lifecycle.
type TempTable struct {
	Name string
	conn *core.Connection
}

// AcquireTempTable probes for name's pre-existence and reuses it if
// present; otherwise it tries each of dialects in turn, rolling back
// before each retry, with auto-commit forced on for the DDL and restored
// to its entry value on every exit path, whether or not table creation
// ultimately succeeded. If every dialect fails, ok is false and skip is a
// ready-to-use skip-inconclusive TestResult naming the root cause, meant
// to be attached to every dependent probe in the category.
func AcquireTempTable(conn *core.Connection, name string, dialects []string) (table *TempTable, skip harness.TestResult, ok bool) {
	if reflectivelyExists(conn, name) {
		return &TempTable{Name: name, conn: conn}, harness.TestResult{}, true
	}

	entryAutocommit, acErr := conn.GetAutocommit()
	if acErr == nil && !entryAutocommit {
		_ = conn.SetAutocommit(true)
	}

	var lastErr error
	created := false
	for _, dialect := range dialects {
		stmt, err := core.NewStatement(conn)
		if err != nil {
			lastErr = err
			continue
		}
		execErr := stmt.Execute(fmt.Sprintf(dialect, name))
		stmt.Close()
		if execErr == nil {
			created = true
			break
		}
		lastErr = execErr
		_ = conn.EndTransaction(false)
	}

	if acErr == nil {
		_ = conn.SetAutocommit(entryAutocommit)
	}

	if !created {
		msg := "could not create a working table with any known CREATE TABLE dialect"
		if lastErr != nil {
			msg = fmt.Sprintf("%s: %v", msg, lastErr)
		}
		return nil, SkipInconclusive(
			"temp-schema-create", "SQLExecDirect (CREATE TABLE)",
			"a working table is created or reused for this category's dependent probes",
			msg,
			"verify the driver/DBMS's CREATE TABLE syntax and supply a custom dialect via the config file's dialects list",
			"§4.8",
		), false
	}
	return &TempTable{Name: name, conn: conn}, harness.TestResult{}, true
}

// reflectivelyExists probes for name via a zero-row SELECT rather than a
// catalog lookup, since a bare SELECT...WHERE 1=0 is the one query every
// SQL dialect in the fallback set understands identically.
func reflectivelyExists(conn *core.Connection, name string) bool {
	stmt, err := core.NewStatement(conn)
	if err != nil {
		return false
	}
	defer stmt.Close()
	return stmt.Execute(fmt.Sprintf("SELECT 1 FROM %s WHERE 1=0", name)) == nil
}

// Drop best-effort drops t's table, forcing auto-commit on for the DDL and
// restoring it afterward; a failed DROP rolls back but never fails the
// run (§4.8: teardown is best-effort).
func (t *TempTable) Drop() {
	if t == nil || t.conn == nil {
		return
	}
	entryAutocommit, acErr := t.conn.GetAutocommit()
	if acErr == nil && !entryAutocommit {
		_ = t.conn.SetAutocommit(true)
	}

	stmt, err := core.NewStatement(t.conn)
	if err == nil {
		if dropErr := stmt.Execute(fmt.Sprintf("DROP TABLE %s", t.Name)); dropErr != nil {
			_ = t.conn.EndTransaction(false)
		}
		stmt.Close()
	}

	if acErr == nil {
		_ = t.conn.SetAutocommit(entryAutocommit)
	}
}
