package probe

import (
	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
)

// GateOnFunction short-circuits a probe to skip-unsupported when snap
// reports id as unsupported, per §4.8's capability-gating convention: a
// feature the driver does not advertise is a skip, never a fail.
func GateOnFunction(snap *discovery.Snapshot, id discovery.FunctionID, testName, function, specRef string) (harness.TestResult, bool) {
	if snap == nil || snap.Functions.IsSupported(id) {
		return harness.TestResult{}, false
	}
	return SkipUnsupported(testName, function,
		"driver advertises support for the function under test",
		"driver's SQLGetFunctions bitmap does not report this function as supported",
		specRef), true
}

// GateOnScalarFunction short-circuits to skip-unsupported when name is not
// present in one of the four decoded scalar-function name lists (string,
// numeric, timedate, system).
func GateOnScalarFunction(names []string, name, testName, function, specRef string) (harness.TestResult, bool) {
	for _, n := range names {
		if n == name {
			return harness.TestResult{}, false
		}
	}
	return SkipUnsupported(testName, function,
		"driver advertises the "+name+" scalar function",
		"driver's scalar-function bitmask does not include "+name,
		specRef), true
}

// GateOnConformance short-circuits to skip-unsupported when the driver's
// advertised SQL conformance tier is below minTier (an ODBC SQL_SC_*
// ordinal, higher means richer). Used by Level 1/Level 2 probes that
// would otherwise report a hard fail against a Core-only driver.
func GateOnConformance(snap *discovery.Snapshot, minTier uint16, conformance harness.Conformance, testName, function, specRef string) (harness.TestResult, bool) {
	if snap == nil || snap.Driver.SQLConformance >= minTier {
		return harness.TestResult{}, false
	}
	r := SkipUnsupported(testName, function,
		"driver advertises sufficient SQL conformance for this feature",
		"driver's advertised SQL_SQL_CONFORMANCE is below the tier this test requires",
		specRef)
	r.Conformance = conformance
	r.Suggestion = "this feature belongs to " + string(conformance) + "; a driver may legitimately omit it"
	return r, true
}
