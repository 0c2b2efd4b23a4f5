package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketlens/internal/gateway/app"
	"marketlens/internal/gateway/config"
	"marketlens/internal/logging"
	"marketlens/internal/util/jsonutil"
)

var errAnalysisFailed = errors.New("analysis failed")

// cli holds the lazily opened app shared by every subcommand.
type cli struct {
	offline  bool
	logLevel string

	app *app.App
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "marketlens",
		Short:        "Etsy market research from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&c.offline, "offline", false, "answer analyses with canned data instead of calling the model")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		c.keywordCmd(),
		c.shopCmd(),
		c.productCmd(),
		c.rankCmd(),
		c.bulkCmd(),
		c.compareCmd(),
		c.listsCmd(),
		c.favoritesCmd(),
		profitCmd(),
	)
	return root
}

// run opens the app for fn and closes it afterwards.
func (c *cli) run(fn func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.open(cmd.Context())
		if err != nil {
			return err
		}
		err = fn(cmd, args, a)
		if cerr := c.close(); err == nil {
			err = cerr
		}
		return err
	}
}

func (c *cli) open(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	if c.offline {
		_ = os.Setenv("LLM_PROVIDER", "fake")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.offline {
		cfg.Offline()
	}
	c.log = logging.New(c.logLevel, "console")
	a, err := app.New(ctx, cfg, c.log)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	_ = c.log.Sync()
	c.app = nil
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := jsonutil.MarshalNoEscapeIndent(v, "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
