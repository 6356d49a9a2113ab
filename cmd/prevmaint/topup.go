package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var topupCmd = &cobra.Command{
	Use:   "topup",
	Short: "Extend every equipment's service schedule up to the horizon and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context(), envFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(context.Background()); err != nil {
				log.WithError(err).Error("Failed to close store")
			}
		}()

		summary, err := app.reconciler.ReconcileAll(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Equipment: %d\nCreated:   %d\nFailed:    %d\n",
			summary.Equipment, summary.Created, summary.Failed)
		if err != nil {
			return fmt.Errorf("top-up finished with errors: %w", err)
		}
		return nil
	},
}
