package probe

import (
	"fmt"
	"strings"

	"odbccrusher/internal/core"
)

// ScalarProbeDialects is the ordered list of dialect-specific forms a probe
// needing a trivial scalar result tries in turn, per §4.8's multi-dialect
// SQL fallback convention.
var ScalarProbeDialects = []string{
	"SELECT 1",
	"SELECT 1 FROM DUAL",
	"SELECT 1 FROM SYSIBM.SYSDUMMY1",
	"SELECT 1 AS ONE",
}

// TryDialects runs stmt.Execute against each of dialects in order, stopping
// at the first that succeeds. It returns the dialect that worked; if none
// did, ok is false and tried lists every dialect attempted, for a
// skip-inconclusive hint naming the missing dialect.
func TryDialects(stmt *core.Statement, dialects []string) (winner string, tried []string, ok bool) {
	for _, sql := range dialects {
		tried = append(tried, sql)
		if err := stmt.Execute(sql); err == nil {
			return sql, tried, true
		}
	}
	return "", tried, false
}

// ExhaustedDialectsHint formats the skip-inconclusive suggestion text for a
// probe that ran out of dialects to try.
func ExhaustedDialectsHint(tried []string) string {
	return fmt.Sprintf("none of the following scalar-select dialects succeeded, the driver may use a different trivial-select idiom: %s", strings.Join(tried, "; "))
}

// ApplyConfiguredDialects prepends extra ahead of ScalarProbeDialects, so
// every probe that falls back to ScalarProbeDialects tries a
// user-configured dialect first. Meant to be called once at startup, from
// wherever the run's configuration is loaded; a nil or empty extra is a
// no-op.
func ApplyConfiguredDialects(extra []string) {
	if len(extra) == 0 {
		return
	}
	combined := make([]string, 0, len(extra)+len(ScalarProbeDialects))
	combined = append(combined, extra...)
	combined = append(combined, ScalarProbeDialects...)
	ScalarProbeDialects = combined
}
