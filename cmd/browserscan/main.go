// Package main implements browserscan, which finds browser-class applications in the host's software inventory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ilexum-group/browserscan/internal/config"
	"github.com/ilexum-group/browserscan/internal/hostfs"
	"github.com/ilexum-group/browserscan/internal/inventory"
	"github.com/ilexum-group/browserscan/internal/scanner"
	"github.com/ilexum-group/browserscan/internal/sender"
	"github.com/ilexum-group/browserscan/internal/utils"
	"github.com/ilexum-group/browserscan/pkg/models"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "browserscan",
	Short:         "Find browser-class applications among installed software",
	Long:          `browserscan enumerates installed software, detects applications embedding a browser engine and reports their engine, size and icon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of installed software entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCount(cmd)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan installed software and stream browser reports as JSON lines",
	Long: `Scan installed software and stream one "detection-started" JSON line per
browser to stdout, followed by a "summary" line.

The scan never waits on stdout. Reports are buffered (BROWSERSCAN_SINK_BUFFER,
default 64); when a slow reader lets the buffer fill, further reports are
dropped. The summary still counts dropped browsers, and its emit_failures
field says how many reports the stream is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "browserscan v%s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("workers", 0, "records processed concurrently (default from BROWSERSCAN_WORKERS)")
	flags.String("hive-dir", "", "directory holding an offline SOFTWARE hive")
	flags.String("user-hive", "", "offline NTUSER.DAT for the per-user location")
	flags.StringArray("dir", nil, "glob of candidate install directories (repeatable)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	scanCmd.Flags().String("metrics-file", "", "write scan metrics in Prometheus text format to this file")

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("hive-dir") {
		cfg.HiveDir, _ = flags.GetString("hive-dir")
	}
	if flags.Changed("user-hive") {
		cfg.UserHive, _ = flags.GetString("user-hive")
	}
	if flags.Changed("dir") {
		cfg.Directories, _ = flags.GetStringArray("dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if f := flags.Lookup("metrics-file"); f != nil && f.Changed {
		cfg.MetricsFile = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := utils.InitDefaultLogger(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// buildInventory reads offline hives when configured, the live registry
// otherwise, followed by any directory patterns.
func buildInventory(cfg *config.Config) inventory.Inventory {
	var store inventory.Store = inventory.NewLive()
	if cfg.HiveDir != "" || cfg.UserHive != "" {
		store = inventory.NewOffline(cfg.HiveDir, cfg.UserHive)
	}

	inv := inventory.Multi{inventory.NewRegistry(store)}
	if len(cfg.Directories) > 0 {
		inv = append(inv, inventory.NewDirectories(hostfs.New(), cfg.Directories...))
	}
	return inv
}

func runCount(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n := scanner.New(buildInventory(cfg), cfg).CountInstalled(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

type summaryLine struct {
	Event        string             `json:"event"`
	ScanID       string             `json:"scan_id"`
	Summary      models.ScanSummary `json:"summary"`
	EmitFailures int                `json:"emit_failures"`
}

func runScan(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.LogInfo("Starting browserscan", map[string]string{"version": version})

	reg := prometheus.NewRegistry()
	s := scanner.New(buildInventory(cfg), cfg, scanner.WithMetrics(scanner.NewMetrics(reg)))
	out := sender.NewWriterSink(cmd.OutOrStdout())

	// The scan never waits on stdout; a slow reader costs emit failures
	sink := sender.NewChannelSink(cfg.SinkBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sink.Events() {
			if err := out.Emit(ev.Name, ev.Payload); err != nil {
				utils.LogError("Failed to write event", map[string]string{"error": err.Error()})
			}
		}
	}()

	rec, scanErr := s.Scan(ctx, sink)
	sink.Close()
	<-done

	if err := out.WriteValue(summaryLine{
		Event:        "summary",
		ScanID:       rec.ID,
		Summary:      rec.Summary,
		EmitFailures: rec.EmitFailures,
	}); err != nil {
		utils.LogError("Failed to write summary", map[string]string{"error": err.Error()})
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			utils.LogError("Failed to write metrics", map[string]string{
				"file":  cfg.MetricsFile,
				"error": err.Error(),
			})
		}
	}

	if errors.Is(scanErr, context.Canceled) {
		return fmt.Errorf("scan interrupted after %d browsers: %w", rec.Summary.Count, scanErr)
	}
	return scanErr
}
