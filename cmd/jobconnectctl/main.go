// Package main provides maintenance commands for the jobconnect service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobconnect/internal/app"
	"jobconnect/internal/config"
	"jobconnect/internal/database/seeder"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:           "jobconnectctl",
		Short:         "Maintenance commands for jobconnect",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall command timeout")

	cmd.AddCommand(migrateCmd(&timeout))
	cmd.AddCommand(seedCmd(&timeout))
	cmd.AddCommand(syncPostsCmd(&timeout))
	return cmd
}

func migrateCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and default seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(*timeout, func(ctx context.Context, c *app.Container) error {
				return c.Migrate(ctx)
			})
		},
	}
}

func seedCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Run the default seeders only",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(*timeout, func(ctx context.Context, c *app.Container) error {
				return seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}.Run(ctx, c.DB)
			})
		},
	}
}

func syncPostsCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-posts",
		Short: "Push locally pending community posts to the remote store once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(*timeout, func(ctx context.Context, c *app.Container) error {
				res, err := c.Syncer.SyncPending(ctx)
				if err != nil {
					return err
				}
				if res.Skipped {
					fmt.Fprintln(cmd.OutOrStdout(), "skipped: another sync pass is running")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "synced=%d failed=%d\n", res.Synced, res.Failed)
				return nil
			})
		},
	}
}

func withContainer(timeout time.Duration, fn func(context.Context, *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, log.New(os.Stderr, "", log.LstdFlags))
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return fn(ctx, c)
}
