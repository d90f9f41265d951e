package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/alexshd/beerslaw"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	jsonOut     bool
	logLevel    string
	metricsFile string

	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *beerslaw.Metrics
}

func newApp(stdout, stderr io.Writer) *app {
	reg := prometheus.NewRegistry()
	m, err := beerslaw.NewMetrics(reg)
	if err != nil {
		// Fresh registry: registration cannot collide
		panic(err)
	}

	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		logLevel: "info",
		registry: reg,
		metrics:  m,
	}
	a.logger = newLogger(stderr, slog.LevelInfo)
	return a
}

// run executes the command line and flushes metrics, whatever the outcome.
func (a *app) run(args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		a.logger.Error("command failed", "err", err)
	}

	if a.metricsFile != "" {
		if werr := prometheus.WriteToTextfile(a.metricsFile, a.registry); werr != nil {
			a.logger.Error("failed to write metrics", "path", a.metricsFile, "err", werr)
			if err == nil {
				err = werr
			}
		}
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "beerslaw",
		Short:         "Beer's-Law calibration and sample back-calculation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := parseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = newLogger(a.stderr, level)
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.BoolVar(&a.jsonOut, "json", false, "write a JSON report instead of tables")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write run counters to this Prometheus textfile")

	root.AddCommand(a.fitCmd())
	root.AddCommand(a.evaluateCmd())
	root.AddCommand(a.curveCmd())
	root.AddCommand(a.initCmd())
	return root
}

func (a *app) fitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit [worksheet]",
		Short: "Fit the calibration curve and grade it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runFit(args[0])
		},
	}
}

func (a *app) evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [worksheet]",
		Short: "Fit the curve, then back-calculate sample concentrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runEvaluate(args[0])
		},
	}
}

func (a *app) curveCmd() *cobra.Command {
	var points int

	cmd := &cobra.Command{
		Use:   "curve [worksheet]",
		Short: "Print the fitted line as points for plotting",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runCurve(args[0], points)
		},
	}

	cmd.Flags().IntVarP(&points, "points", "n", beerslaw.DefaultConfig().CurvePoints, "number of points")
	return cmd
}

func (a *app) initCmd() *cobra.Command {
	var standards int

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a blank worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInit(args[0], standards)
		},
	}

	cmd.Flags().IntVarP(&standards, "standards", "s", beerslaw.DefaultConfig().MinStandards, "number of standard rows (3-20)")
	return cmd
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
