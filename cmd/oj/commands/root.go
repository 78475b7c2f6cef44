package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"ojtools/lib/serviceutil"
	"ojtools/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var verbose *bool
var tel telemetry.Telemetry

var rootCmd = &cobra.Command{
	Use:   "oj",
	Short: "Resolve online judge URLs and download sample test cases.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		tel = setupTelemetry(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shut down telemetry", "err", err)
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

// setupTelemetry starts the otlp pipeline when a telemetry.json5 is
// present; without one the global no-op providers stay in place and
// spans cost nothing.
func setupTelemetry(ctx context.Context) telemetry.Telemetry {
	t, err := telemetry.SetupFromEnv(ctx, "ojtools.cmd.oj")
	if errors.Is(err, os.ErrNotExist) {
		return telemetry.Telemetry{}
	}
	if err != nil {
		serviceutil.Fatal("failed to set up telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)
	return t
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
