package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Thg-prog/laba8sem/internal/catalog"
	"github.com/Thg-prog/laba8sem/internal/config"
	"github.com/Thg-prog/laba8sem/internal/export"
	"github.com/Thg-prog/laba8sem/internal/metrics"
	"github.com/Thg-prog/laba8sem/internal/options"
	"github.com/Thg-prog/laba8sem/internal/records"
	"github.com/Thg-prog/laba8sem/internal/stats"
	"github.com/Thg-prog/laba8sem/pkg/tmi"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tmi-analyze [capture]",
		Short: "Decode telemetry captures",
		Long:  "tmi-analyze decodes binary telemetry captures and reports their records and statistics.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := analyze(cmd.Context(), args)
			if err != nil {
				return err
			}
			return export.WriteSummary(cmd.OutOrStdout(), a.result.Meta(), a.result.Stream)
		},
	}

	paramsCmd = &cobra.Command{
		Use:   "params [capture]",
		Short: "List the parameter names present in a capture",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := analyze(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range a.result.Stream.Names() {
				bucket := a.result.Stream.Bucket(name)
				line := fmt.Sprintf("%-24s %6d", name, len(bucket))
				if full := a.params.FullName(bucket[0].Meta().Number); full != "" {
					line += "  " + full
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	showCmd = &cobra.Command{
		Use:   "show <name>...",
		Short: "Print the records of parameters sorted by time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var capture []string
			if showCapture != "" {
				capture = []string{showCapture}
			}
			a, err := analyze(cmd.Context(), capture)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range args {
				bucket := a.result.Stream.Bucket(name)
				if len(bucket) == 0 {
					logrus.WithField("parameter", name).Warn("parameter not present in capture")
					continue
				}
				fmt.Fprintln(out, records.Listing(name, bucket))
			}
			return nil
		},
	}

	statsCmd = &cobra.Command{
		Use:   "stats [capture]",
		Short: "Print selected statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			general, perParam, err := stats.Selection(strings.Split(statsSelect, ","))
			if err != nil {
				return err
			}
			a, err := analyze(cmd.Context(), args)
			if err != nil {
				return err
			}
			if statsOut == "" {
				return export.WriteSelected(cmd.OutOrStdout(), a.result.Stream, general, perParam, statsParam)
			}
			f, err := os.Create(statsOut)
			if err != nil {
				return err
			}
			if err := export.WriteSelected(f, a.result.Stream, general, perParam, statsParam); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			logrus.WithField("path", statsOut).Info("statistics saved")
			return nil
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export [capture]",
		Short: "Export decoded records as text, JSON, CBOR or SQLite",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cfg.Export.Format = exportFormat
			}
			if cmd.Flags().Changed("out") {
				cfg.Export.Output = exportOut
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a, err := analyze(cmd.Context(), args)
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), cfg.Export, a.result)
		},
	}

	configPath      string
	paramsPath      string
	dimsPath        string
	logLevel        string
	metricsTextfile string

	showCapture string

	statsSelect string
	statsParam  string
	statsOut    string

	exportFormat string
	exportOut    string

	cfg *config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "YAML configuration file")
	pf.StringVar(&paramsPath, "params", "", "parameter catalog (XML)")
	pf.StringVar(&dimsPath, "dims", "", "dimension catalog")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&metricsTextfile, "metrics-textfile", "", "write decode metrics in Prometheus text format to this file")

	showCmd.Flags().StringVar(&showCapture, "capture", "", "capture file (defaults to the configured capture)")

	statsCmd.Flags().StringVar(&statsSelect, "select", "total,useful,unknown,unique", "comma-separated statistic keys")
	statsCmd.Flags().StringVar(&statsParam, "param", "", "parameter name for param.* statistics")
	statsCmd.Flags().StringVar(&statsOut, "out", "", "save the report to this file")

	exportCmd.Flags().StringVar(&exportFormat, "format", "text", "export format: text, json, cbor or sqlite")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (stdout when empty, required for sqlite)")

	rootCmd.AddCommand(paramsCmd, showCmd, statsCmd, exportCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// setup loads the configuration and lets flags override it.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("params") {
		cfg.Parameters = paramsPath
	}
	if flags.Changed("dims") {
		cfg.Dimensions = dimsPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = metricsTextfile
	}
	level, err := options.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

type analysis struct {
	result tmi.Result
	params *catalog.Parameters
}

func analyze(ctx context.Context, args []string) (analysis, error) {
	path := cfg.Capture
	if len(args) > 0 {
		path = args[0]
	}
	log := logrus.WithField("capture", path)
	params := catalog.ParametersOrEmpty(cfg.Parameters, log)
	dims := catalog.DimensionsOrEmpty(cfg.Dimensions, log)

	var m *metrics.Decode
	if cfg.Metrics.Textfile != "" {
		m = metrics.New()
	}
	result, err := tmi.DecodeFile(ctx, path, tmi.DecodeOptions{
		Parameters: params,
		Dimensions: dims,
		Logger:     log,
		Metrics:    m,
	})
	if err != nil {
		return analysis{}, err
	}
	if m != nil {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.WithError(err).Warn("failed to write metrics textfile")
		}
	}
	return analysis{result: result, params: params}, nil
}
