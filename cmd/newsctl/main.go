// Command newsctl queries the scored news gold layer offline, exports
// results and copies the dataset into the warehouse table.
//
// Configuration comes from the same environment variables as the server.
// The --source and --type flags override SOURCE_PATH and SOURCE_TYPE.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"news-sentiment-service/internal/app"
	"news-sentiment-service/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	source   string
	typ      string
	logLevel string
	jsonOut  bool
	timeout  time.Duration

	app *app.App
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "newsctl",
		Short: "Search and export the financial news sentiment gold layer",
		Long: `newsctl reads the scored news gold layer (a Parquet folder, a Parquet
file, a CSV file or a Postgres table) and answers the same questions as the
news search API: filtered search, article detail, annual trend and yearly
summary. It can also export results and load the dataset into the warehouse.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsDataset(cmd) {
				return nil
			}
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.app != nil {
				opts.app.Close()
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.source, "source", "s", "", "Gold layer path (or set SOURCE_PATH env)")
	cmd.PersistentFlags().StringVar(&opts.typ, "type", "", "Source type: auto, parquet, csv or postgres (or set SOURCE_TYPE env)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print JSON instead of a table")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Operation timeout")

	cmd.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newTrendCmd(opts),
		newSummaryCmd(opts),
		newExportCmd(opts),
		newLoadCmd(opts),
	)
	return cmd
}

// needsDataset is false for cobra's built-in help and completion commands,
// which must work without a reachable source.
func needsDataset(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// setup loads configuration, applies flag overrides and loads the dataset.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.source != "" {
		os.Setenv("SOURCE_PATH", o.source)
	}
	if o.typ != "" {
		os.Setenv("SOURCE_TYPE", o.typ)
	}
	// Watching makes no sense for a one-shot command.
	os.Setenv("SOURCE_WATCH", "false")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx, cancel := o.context(cmd)
	defer cancel()

	a, err := app.New(ctx, cfg, nil)
	if err != nil {
		return err
	}
	if err := a.Datasets.Reload(ctx); err != nil {
		a.Close()
		return fmt.Errorf("load dataset: %w", err)
	}
	o.app = a
	return nil
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, o.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
