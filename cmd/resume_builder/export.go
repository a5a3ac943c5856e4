package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var (
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export <resume-id>",
	Short: "Export a saved resume as a PDF",
	Long:  `Render a saved resume to an A4 PDF via headless Chrome and write it to the output directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "Directory to write the PDF into")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, _, err := newPersistenceService(ctx)
	if err != nil {
		return err
	}

	saved, err := svc.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	export, err := rendering.NewExporter().ExportPDF(ctx, saved.Data())
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	path, err := export.SaveTo(exportOut)
	if err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Exported %s\n", path)
	return nil
}
