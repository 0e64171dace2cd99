package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"odbccrusher/internal/catalog"
	"odbccrusher/internal/config"
	"odbccrusher/internal/core"
	"odbccrusher/internal/discovery"
	"odbccrusher/internal/harness"
	"odbccrusher/internal/probe"
	"odbccrusher/internal/report"
	"odbccrusher/internal/telemetry"
	"odbccrusher/pkg/logging"
)

// runOptions holds every flag newRunCmd exposes, gathered in one struct so
// runRun can be tested as an ordinary function of its inputs.
type runOptions struct {
	connectionString string
	verbose          bool
	format           string
	outputPath       string
	configPath       string
	metricsAddr      string
	otelStdout       bool
	logLevel         string
	logFile          string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <connection-string>",
		Short: "Connect to an ODBC driver and run the conformance probe catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.connectionString = args[0]
			return runRun(cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "include per-probe detail (function, spec ref, expected/actual, duration) in the console report")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "console", `report format: "console" or "json"`)
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to an optional YAML configuration file")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus probe-outcome metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVar(&opts.otelStdout, "otel-stdout", false, "emit one OpenTelemetry span per probe to stdout")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "minimum log level: trace, debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "additionally mirror log output to this file")
	return cmd
}

func runRun(cmd *cobra.Command, opts *runOptions) error {
	logging.InitForCLI(parseLogLevel(opts.logLevel), cmd.ErrOrStderr())
	if opts.logFile != "" {
		f, err := logging.InitFileSink(opts.logFile)
		if err != nil {
			return NewExitError(ExitCodeHostError, err)
		}
		defer f.Close()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return NewExitError(ExitCodeHostError, err)
	}
	probe.ApplyConfiguredDialects(cfg.Dialects)

	out, closeOut, err := openOutput(opts.outputPath)
	if err != nil {
		return NewExitError(ExitCodeHostError, err)
	}
	defer closeOut()

	env, err := core.NewEnvironment()
	if err != nil {
		return NewExitError(ExitCodeDriverError, fmt.Errorf("allocate ODBC environment: %w", err))
	}
	defer env.Close()

	conn, err := core.NewConnection(env)
	if err != nil {
		return NewExitError(ExitCodeDriverError, fmt.Errorf("allocate ODBC connection: %w", err))
	}
	defer conn.Close()

	if _, err := conn.Connect(opts.connectionString); err != nil {
		return NewExitError(ExitCodeDriverError, fmt.Errorf("connect: %w", err))
	}
	defer conn.Disconnect()
	logging.Info("run", "connected to driver")

	snapshot, err := discovery.Collect(conn)
	if err != nil {
		return NewExitError(ExitCodeDriverError, fmt.Errorf("capability discovery: %w", err))
	}

	metrics, shutdownMetrics, err := setupMetrics(opts.metricsAddr)
	if err != nil {
		return NewExitError(ExitCodeHostError, err)
	}
	defer shutdownMetrics()

	tracer, shutdownTracer, err := setupTracer(opts.otelStdout)
	if err != nil {
		return NewExitError(ExitCodeHostError, err)
	}
	defer shutdownTracer()

	reg := filteredRegistry(cfg, opts.configPath)

	sink := selectSink(opts.format, out, opts.verbose)
	h := harness.New(reg, sink)

	runID := uuid.NewString()
	logging.Info("run", "starting probe run %s against %d categories", runID, len(reg.Categories()))

	probeCtx := &harness.Context{
		Conn:             conn,
		Snapshot:         snapshot,
		ConnectionString: opts.connectionString,
		RunID:            runID,
		Tracer:           tracer,
		Metrics:          metrics,
	}

	summary := h.Run(probeCtx)
	logging.Info("run", "run %s complete: %d/%d passed (%.1f%%)", runID, summary.Pass, summary.Total, summary.PassRate())
	if summary.Fail > 0 || summary.Error > 0 {
		return NewExitError(ExitCodeProbeFailure, fmt.Errorf("%d failed, %d errored of %d probes", summary.Fail, summary.Error, summary.Total))
	}
	return nil
}

// parseLogLevel maps a --log-level flag value to a logging.LogLevel,
// defaulting to info for anything unrecognized.
func parseLogLevel(s string) logging.LogLevel {
	switch s {
	case "trace":
		return logging.LevelTrace
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// filteredRegistry builds the full category registry, then wraps any
// category or test cfg excludes so each still reports a
// skip-inconclusive result naming configSource instead of disappearing
// from the run.
func filteredRegistry(cfg *config.Config, configSource string) *harness.Registry {
	full := harness.NewRegistry()
	catalog.Register(full)

	reg := harness.NewRegistry()
	for _, category := range full.Categories() {
		reg.Register(skipFilteredCategory{inner: category, cfg: cfg, configSource: configSource})
	}
	return reg
}

// skipFilteredCategory replaces the Run func of every probe cfg excludes,
// whether by category or by individual test name, with one that reports
// a skip-inconclusive result instead of actually probing the driver.
type skipFilteredCategory struct {
	inner        harness.Category
	cfg          *config.Config
	configSource string
}

func (c skipFilteredCategory) Name() string { return c.inner.Name() }

func (c skipFilteredCategory) Probes() []harness.Probe {
	categorySkipped := c.cfg.SkipsCategory(c.inner.Name())
	all := c.inner.Probes()
	out := make([]harness.Probe, 0, len(all))
	for _, p := range all {
		if categorySkipped || c.cfg.SkipsTest(p.Name) {
			out = append(out, c.configSkipProbe(p.Name))
			continue
		}
		out = append(out, p)
	}
	return out
}

// configSkipProbe builds a probe whose Run always reports
// skip-inconclusive, naming c.configSource as the reason the test never
// actually ran.
func (c skipFilteredCategory) configSkipProbe(name string) harness.Probe {
	source := c.configSource
	if source == "" {
		source = "the run's configuration"
	}
	return harness.Probe{
		Name: name,
		Run: func(*harness.Context) harness.TestResult {
			return probe.SkipInconclusive(
				name, "",
				"the probe runs and reports pass/fail/skip-unsupported",
				"excluded before running",
				fmt.Sprintf("remove %q from skip_categories/skip_tests in %s to include this test", name, source),
				"",
			)
		},
	}
}

func selectSink(format string, w io.Writer, verbose bool) harness.Sink {
	if format == "json" {
		return report.NewStructuredSink(w)
	}
	return report.NewConsoleSink(w, verbose)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func setupMetrics(addr string) (telemetry.Metrics, func(), error) {
	if addr == "" {
		m := telemetry.NewNoopMetrics()
		return m, func() {}, nil
	}
	m, err := telemetry.NewPrometheusMetrics(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("start metrics listener on %q: %w", addr, err)
	}
	return m, func() { m.Shutdown() }, nil
}

func setupTracer(stdout bool) (telemetry.Tracer, func(), error) {
	if !stdout {
		t := telemetry.NewNoopTracer()
		return t, func() {}, nil
	}
	t, err := telemetry.NewStdoutTracer("odbccrusher")
	if err != nil {
		return nil, nil, fmt.Errorf("start stdout tracer: %w", err)
	}
	return t, func() { t.Shutdown(context.Background()) }, nil
}
