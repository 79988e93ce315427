package main

import (
	"io"

	"github.com/spf13/cobra"
)

const usageExample = `  almanac-optimizer input.txt
  almanac-optimizer --mode seeds input.txt
  almanac-optimizer --json --verbose --metrics-out run.prom almanac.json
  cat input.txt | almanac-optimizer -`

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "almanac-optimizer [flags] <input|->",
		Short: "Find the lowest final value over every seed range of an almanac",
		Long: `almanac-optimizer maps every seed through the almanac's remap stages on a
data-parallel compute device and prints the lowest final value.

Input files ending in .json are read as JSON almanacs; anything else (or "-"
for stdin) uses the text form.`,
		Example:       usageExample,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileCfg, err := LoadConfig(configPath)
				if err != nil {
					return err
				}
				mergeFlags(cmd, &fileCfg, cfg)
				cfg = fileCfg
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args[0], stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file (flags override its values)")
	f.StringVar(&cfg.Mode, "mode", cfg.Mode, `seed line interpretation: "ranges" or "seeds"`)
	f.IntVar(&cfg.ComputeUnits, "compute-units", cfg.ComputeUnits, "parallel compute units (0 = GOMAXPROCS)")
	f.IntVar(&cfg.WorkGroupSize, "work-group-size", cfg.WorkGroupSize, "work-items per work-group (0 = 500)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print per-range results to stderr")
	f.BoolVar(&cfg.JSON, "json", cfg.JSON, "output results as JSON")
	f.StringVar(&cfg.MetricsOut, "metrics-out", cfg.MetricsOut, "write Prometheus metrics to this file")
	f.BoolVar(&cfg.Trace, "trace", cfg.Trace, "export trace spans to stderr")
	return cmd
}

// mergeFlags copies explicitly set flags from flagCfg over dst.
func mergeFlags(cmd *cobra.Command, dst *Config, flagCfg Config) {
	f := cmd.Flags()
	if f.Changed("mode") {
		dst.Mode = flagCfg.Mode
	}
	if f.Changed("compute-units") {
		dst.ComputeUnits = flagCfg.ComputeUnits
	}
	if f.Changed("work-group-size") {
		dst.WorkGroupSize = flagCfg.WorkGroupSize
	}
	if f.Changed("log-level") {
		dst.LogLevel = flagCfg.LogLevel
	}
	if f.Changed("verbose") {
		dst.Verbose = flagCfg.Verbose
	}
	if f.Changed("json") {
		dst.JSON = flagCfg.JSON
	}
	if f.Changed("metrics-out") {
		dst.MetricsOut = flagCfg.MetricsOut
	}
	if f.Changed("trace") {
		dst.Trace = flagCfg.Trace
	}
}
