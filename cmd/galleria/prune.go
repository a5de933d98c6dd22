package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/galleria/config"
)

var pruneCmd = &cobra.Command{
	Use:   "prune [flags] [prefix]",
	Short: "Remove stored images no picture references",
	Long: `Remove image objects that have no picture row.

Orphans are left behind when the server stops between writing an image
and recording its picture. Run this while no uploads are in flight.

Examples:
  # Show what would be removed
  galleria prune --dry-run

  # Prune a single gallery
  galleria prune 0b7c6f0e-4a57-4c8e-9d0a-0d2b0fb2b6a1/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrune,
}

var pruneDryRun bool

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "list orphaned objects without deleting them")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	var prefix string
	if len(args) == 1 {
		prefix = args[0]
	}

	svc, err := openServices(ctx, cfg, false, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	slog.Info("starting prune", "prefix", prefix, "dry_run", pruneDryRun)

	orphans, err := svc.pictures.Prune(ctx, prefix, pruneDryRun)
	for _, key := range orphans {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	if err != nil {
		return err
	}

	slog.Info("prune complete", "orphans", len(orphans), "dry_run", pruneDryRun)
	return nil
}
