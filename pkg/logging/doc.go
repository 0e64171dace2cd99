// Package logging provides the process-wide structured logger used by the
// probe CLI and every package it calls into.
//
// # Log Levels
//
//   - Trace: per-call driver chatter (every CLI function invocation)
//   - Debug: probe-level detail (category start/end, recycle calls)
//   - Info: run-level milestones (connection opened, capability discovery done)
//   - Warn: recoverable anomalies (a capability query came back empty)
//   - Error: probe or setup failures
//   - Fatal: unrecoverable startup failure; logs then exits the process
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("harness", "starting category %s", category.Name())
//	logging.Error("core", err, "connect failed")
//
// An optional file sink mirrors every line to disk with a Sync() after each
// write:
//
//	f, err := logging.InitFileSink("/tmp/odbccrusher.log")
//
// The logger is never used to emit TestResult data — that is the report
// sink's job (internal/report). This package is strictly diagnostic chatter
// about running the tool.
package logging
