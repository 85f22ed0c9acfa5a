package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/app"
	"github.com/rxpad/rxpad/internal/config"
	"github.com/rxpad/rxpad/internal/platform/db"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rxpad",
		Short:        "Prescription writer for a single clinician",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(patientCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(prescriptionCmd())
	root.AddCommand(imageCmd())
	root.AddCommand(tokenCmd())
	return root
}

// withApp loads the configuration, opens the application and runs fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the local API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return a.Serve(ctx)
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				statuses, err := db.Status(ctx, a.DB, app.Models()...)
				if err != nil {
					return fmt.Errorf("failed to get schema status: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-20s %s\n", "TABLE", "STATUS")
				fmt.Fprintln(out, "-------------------- ----------")
				for _, s := range statuses {
					status := "missing"
					if s.Exists {
						status = "present"
					}
					fmt.Fprintf(out, "%-20s %s\n", s.Table, status)
				}
				return nil
			})
		},
	})
	return cmd
}

func parseID(s, what string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return uint(n), nil
}
