// cmd/ddb/main.go
//
// ddb – Drupal extraction CLI entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (conf/.env via the config loader).
//
//  2. Load and validate conf/global.yaml, resolving any vault: secret into
//     the DSN.
//
//  3. Start the daily rotating logger (tees to stderr in a TTY; stdout is
//     reserved for JSON output).
//
//  4. Open the Drupal pool, which pings and applies the table-cache tuning.
//
//  5. Optionally expose Prometheus /metrics when --metrics-addr is set.
//
// Subcommands produce JSON on stdout and exit non-zero on any resolution
// error, so cron wrappers can tell a bad run from an empty one.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanizio/ddb/internal/config"
	"github.com/yanizio/ddb/internal/database"
	"github.com/yanizio/ddb/internal/logger"
	_ "github.com/yanizio/ddb/internal/metrics" // register collectors
	"github.com/yanizio/ddb/internal/microsite"
)

var (
	flagMetricsAddr string

	db  *sqlx.DB
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:           "ddb",
	Short:         "Extract structured content from the legacy Drupal store",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: boot,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

// boot wires config, logger, and the database pool before any subcommand.
func boot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err = logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}

	maxOpen, maxIdle := cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns
	if maxOpen == 0 {
		maxOpen = 15
	}
	if maxIdle == 0 {
		maxIdle = 5
	}
	db, err = database.OpenWithOptions(ctx, cfg.Database.DSN, maxOpen, maxIdle)
	if err != nil {
		return fmt.Errorf("connect Drupal store: %w", err)
	}
	log.Infow("drupal store online", "max_open", maxOpen)

	metricsAddr := flagMetricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.Metrics.ListenAddr
	}
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Warnw("metrics listener failed", "addr", metricsAddr, "err", err)
			}
		}()
	}
	return nil
}

// resolver builds the microsite resolver from the loaded config.
func resolver() *microsite.Resolver {
	cfg := config.Get()
	overrides := make([]microsite.OverridePair, 0, len(cfg.Microsites.Overrides))
	for _, p := range cfg.Microsites.Overrides {
		overrides = append(overrides, microsite.OverridePair{
			ClubNID:     p.ClubNID,
			HomepageNID: p.HomepageNID,
		})
	}
	return microsite.NewResolver(db, overrides, cfg.Microsites.Workers, log)
}

// printJSON writes v to stdout, indented, one trailing newline.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runningInTTY returns true when stderr is a character device.
func runningInTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "ddb:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "",
		"expose Prometheus metrics on this address (e.g. :9090)")
}
