// Package probe is the authoring vocabulary every catalog category probe
// is built from: a result builder, multi-dialect SQL fallback, temporary
// schema lifecycle, and capability gating against a discovery snapshot.
// Grounded on original_source/src/tests/test_base.{hpp,cpp}'s TestBase
// helpers and the repeated dialect-fallback/temp-table idiom visible
// across original_source/src/tests/*_tests.cpp.
package probe

import "odbccrusher/internal/harness"

// NewResult is the result-builder helper from §4.8: it takes the fields a
// probe knows up front and defaults the rest, mirroring
// TestBase::make_result. Probes mutate the returned TestResult
// incrementally (setting Diagnostic, Suggestion, etc.) as they proceed.
func NewResult(testName, function string, status harness.Status, expected, actual string, severity harness.Severity, conformance harness.Conformance, specRef string) harness.TestResult {
	return harness.TestResult{
		TestName:    testName,
		Function:    function,
		Status:      status,
		Severity:    severity,
		Conformance: conformance,
		SpecRef:     specRef,
		Expected:    expected,
		Actual:      actual,
	}
}

// Pass is NewResult's common case: severity info, conformance Core.
func Pass(testName, function, expected, actual, specRef string) harness.TestResult {
	return NewResult(testName, function, harness.StatusPass, expected, actual, harness.SeverityInfo, harness.ConformanceCore, specRef)
}

// Fail builds a failing result at the given severity/conformance.
func Fail(testName, function, expected, actual string, severity harness.Severity, conformance harness.Conformance, specRef string) harness.TestResult {
	return NewResult(testName, function, harness.StatusFail, expected, actual, severity, conformance, specRef)
}

// SkipUnsupported builds a skip-unsupported result at severity info, per
// §4.8's capability-gating convention.
func SkipUnsupported(testName, function, expected, actual, specRef string) harness.TestResult {
	return NewResult(testName, function, harness.StatusSkipUnsupported, expected, actual, harness.SeverityInfo, harness.ConformanceCore, specRef)
}

// SkipInconclusive builds a skip-inconclusive result with a remediation
// suggestion attached, per §4.8's temp-schema-failure and dialect-exhaustion
// conventions.
func SkipInconclusive(testName, function, expected, actual, suggestion, specRef string) harness.TestResult {
	r := NewResult(testName, function, harness.StatusSkipInconclusive, expected, actual, harness.SeverityInfo, harness.ConformanceCore, specRef)
	r.Suggestion = suggestion
	return r
}

// WithDiagnostic attaches driver diagnostic text to an already-built
// result, for the fail/error cases where §7 requires a non-empty
// diagnostic or actual.
func WithDiagnostic(r harness.TestResult, diagnostic string) harness.TestResult {
	r.Diagnostic = diagnostic
	return r
}
