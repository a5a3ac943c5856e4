package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
)

var showCmd = &cobra.Command{
	Use:   "show <resume-id>",
	Short: "Print a saved resume",
	Long:  `Print a saved resume's sections in a readable boxed layout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, _, err := newPersistenceService(ctx)
	if err != nil {
		return err
	}

	saved, err := svc.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintResume(saved)
	return nil
}
