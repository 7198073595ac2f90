// Package main provides the CLI entrypoint for topbars.
package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/topbars/internal/chart"
	"github.com/verte-zerg/topbars/internal/config"
	"github.com/verte-zerg/topbars/internal/dataset"
	"github.com/verte-zerg/topbars/internal/model"
	"github.com/verte-zerg/topbars/internal/output"
	"github.com/verte-zerg/topbars/internal/server"
	"github.com/verte-zerg/topbars/internal/stats"
)

const (
	defaultLogLevel     = "warn"
	defaultInvalidCount = string(model.InvalidCountZero)
	defaultTimeout      = 60 * time.Second
)

var (
	logLevel string

	dataPath         string
	dataFormat       string
	dataTable        string
	dataReasonColumn string
	dataCountColumn  string
	dataTimeout      time.Duration

	chartHeadline     string
	chartSubheadline  string
	chartFallback     string
	chartWidth        int
	chartTop          int
	chartInvalidCount string

	renderFormat string
	renderOut    string

	serveHost    string
	servePort    int
	serveMetrics bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "topbars",
		Short: "Render a top-N horizontal bar chart from category counts",
		Long: `topbars loads a table of category counts (CSV file, CSV over HTTP or a
SQLite table), keeps the largest ten and renders them as a horizontal bar
chart: an HTML page, SVG, PNG, terminal bars or a JSON/YAML geometry dump.`,
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: func(*cobra.Command, []string) error { return initLogging(logLevel) },
		RunE:              runRenderCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error, disabled)")
	pf.StringVar(&dataPath, "data", dataset.DefaultPath, "dataset path or http(s) URL")
	pf.StringVar(&dataFormat, "data-format", "", "dataset format: csv, http or sqlite (default: detect)")
	pf.StringVar(&dataTable, "table", dataset.DefaultTable, "SQLite table name")
	pf.StringVar(&dataReasonColumn, "reason-column", dataset.DefaultReasonColumn, "category column name")
	pf.StringVar(&dataCountColumn, "count-column", dataset.DefaultCountColumn, "count column name")
	pf.DurationVar(&dataTimeout, "timeout", defaultTimeout, "HTTP dataset timeout")
	pf.StringVar(&chartHeadline, "headline", chart.DefaultHeadline, "headline text")
	pf.StringVar(&chartSubheadline, "subheadline", chart.DefaultSubheadline, "subheadline text")
	pf.StringVar(&chartFallback, "fallback", chart.DefaultFallbackText, "text shown when the data cannot be loaded")
	pf.IntVar(&chartWidth, "width", 0, "chart width in pixels (default: 960)")
	pf.IntVar(&chartTop, "top", stats.DefaultTop, "number of categories to keep")
	pf.StringVar(&chartInvalidCount, "invalid-count", defaultInvalidCount, "policy for non-numeric counts: zero or error")

	rootCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: html, svg, png, text, json, yaml (default: from --out, else html)")
	rootCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// initLogging configures the global logger
func initLogging(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled", "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("unknown --log-level %q", level)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func runRenderCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	chartCfg, dataCfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	format, err := resolveFormat(renderFormat, renderOut)
	if err != nil {
		return err
	}
	source, err := dataset.Open(dataCfg)
	if err != nil {
		return err
	}

	opts := chart.OptionsFromConfig(chartCfg)
	doc := chart.NewPage(opts, chartCfg.Width)
	g, runErr := chart.New(doc, source, opts).Run(cmd.Context())
	surface := output.Surface{Doc: doc, Options: opts, Geometry: g, Failed: runErr != nil}

	write := func(w io.Writer) error { return output.Write(w, format, surface) }
	if renderOut == "" {
		err = write(cmd.OutOrStdout())
	} else {
		err = writeFileAtomic(renderOut, write)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	return runErr
}

func newTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Print the ranked categories as a table",
		Args:  cobra.NoArgs,
		RunE:  runTopCmd,
	}
}

func runTopCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	chartCfg, dataCfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	source, err := dataset.Open(dataCfg)
	if err != nil {
		return err
	}
	rows, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load data from %s: %w", source.Describe(), err)
	}
	records, issues, err := dataset.Coerce(rows, chartCfg.InvalidCount)
	for _, issue := range issues {
		log.Warn().Int("line", issue.Line).Str("value", issue.Value).Msg(issue.Detail)
	}
	if err != nil {
		return err
	}
	return stats.RenderTable(cmd.OutOrStdout(), stats.Top(records, chartCfg.Top))
}

func newServeCmd() *cobra.Command {
	defaults := server.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart page over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveHost, "host", defaults.Host, "listen host")
	cmd.Flags().IntVar(&servePort, "port", defaults.Port, "listen port")
	cmd.Flags().BoolVar(&serveMetrics, "metrics", defaults.EnableMetrics, "expose Prometheus metrics on /metrics")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	chartCfg, dataCfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "host", &serveHost, fileCfg.Serve.Host)
	applyIntConfig(cmd, "port", &servePort, fileCfg.Serve.Port)
	applyBoolConfig(cmd, "metrics", &serveMetrics, fileCfg.Serve.Metrics)
	if servePort < 0 || servePort > 65535 {
		return fmt.Errorf("--port must be between 0 and 65535")
	}

	serveCfg := server.DefaultConfig()
	serveCfg.Host = serveHost
	serveCfg.Port = servePort
	serveCfg.EnableMetrics = serveMetrics

	if _, err := dataset.Open(dataCfg); err != nil {
		return err
	}
	logErrf("Serving %s on http://%s/\n", dataCfg.Path, net.JoinHostPort(serveHost, strconv.Itoa(servePort)))
	return server.New(serveCfg, dataCfg, chart.OptionsFromConfig(chartCfg)).Run(cmd.Context())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig merges the config file under the flags and validates the result.
func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.ChartConfig, model.DataConfig, error) {
	applyStringConfig(cmd, "headline", &chartHeadline, fileCfg.Chart.Headline)
	applyStringConfig(cmd, "subheadline", &chartSubheadline, fileCfg.Chart.Subheadline)
	applyStringConfig(cmd, "fallback", &chartFallback, fileCfg.Chart.Fallback)
	applyIntConfig(cmd, "width", &chartWidth, fileCfg.Chart.Width)
	applyIntConfig(cmd, "top", &chartTop, fileCfg.Chart.Top)
	applyStringConfig(cmd, "invalid-count", &chartInvalidCount, fileCfg.Chart.InvalidCount)

	applyStringConfig(cmd, "data", &dataPath, fileCfg.Data.Path)
	applyStringConfig(cmd, "data-format", &dataFormat, fileCfg.Data.Format)
	applyStringConfig(cmd, "table", &dataTable, fileCfg.Data.Table)
	applyStringConfig(cmd, "reason-column", &dataReasonColumn, fileCfg.Data.ReasonColumn)
	applyStringConfig(cmd, "count-column", &dataCountColumn, fileCfg.Data.CountColumn)
	if fileCfg.Data.Timeout != nil && !cmd.Flags().Changed("timeout") {
		timeout, err := time.ParseDuration(*fileCfg.Data.Timeout)
		if err != nil {
			return model.ChartConfig{}, model.DataConfig{}, fmt.Errorf("invalid data.timeout in config: %w", err)
		}
		dataTimeout = timeout
	}

	policy, err := dataset.ParsePolicy(chartInvalidCount)
	if err != nil {
		return model.ChartConfig{}, model.DataConfig{}, fmt.Errorf("invalid --invalid-count: %w", err)
	}
	chartCfg := model.ChartConfig{
		ContainerID:   chart.DefaultContainerID,
		HeadlineID:    chart.DefaultHeadlineID,
		SubheadlineID: chart.DefaultSubheadlineID,
		Headline:      chartHeadline,
		Subheadline:   chartSubheadline,
		FallbackText:  chartFallback,
		Width:         chartWidth,
		Top:           chartTop,
		InvalidCount:  policy,
	}
	dataCfg := model.DataConfig{
		Path:         dataPath,
		Format:       dataFormat,
		Table:        dataTable,
		ReasonColumn: dataReasonColumn,
		CountColumn:  dataCountColumn,
		Timeout:      dataTimeout,
	}
	if err := validateConfig(chartCfg, dataCfg); err != nil {
		return model.ChartConfig{}, model.DataConfig{}, err
	}
	return chartCfg, dataCfg, nil
}

func validateConfig(chartCfg model.ChartConfig, dataCfg model.DataConfig) error {
	if chartCfg.Top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if chartCfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	if strings.TrimSpace(dataCfg.Path) == "" {
		return fmt.Errorf("--data must not be empty")
	}
	if dataCfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	return nil
}

func resolveFormat(name, outPath string) (output.Format, error) {
	if name != "" {
		return output.ParseFormat(name)
	}
	if format, ok := output.FormatFromPath(outPath); ok {
		return format, nil
	}
	return output.DefaultFormat, nil
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".topbars-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# topbars configuration
# Uncomment a value to enable it. CLI flags override config values.

[chart]
# headline = %q
# subheadline = %q
# fallback = %q
# width = 960             # Chart width in pixels
# top = %d                # Number of categories to keep
# invalid-count = %q      # zero: coerce bad counts to 0, error: abort

[data]
# path = %q
# format = "csv"          # csv, http or sqlite (default: detect from path)
# table = %q
# reason-column = %q
# count-column = %q
# timeout = "60s"         # HTTP dataset timeout

[serve]
# host = "localhost"
# port = 8080
# metrics = true          # Expose Prometheus metrics on /metrics
`,
		chart.DefaultHeadline,
		chart.DefaultSubheadline,
		chart.DefaultFallbackText,
		stats.DefaultTop,
		defaultInvalidCount,
		dataset.DefaultPath,
		dataset.DefaultTable,
		dataset.DefaultReasonColumn,
		dataset.DefaultCountColumn,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
