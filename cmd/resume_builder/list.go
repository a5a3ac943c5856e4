package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/dashboard"
)

var (
	listQuery  string
	listStatus string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resumes",
	Long:  `List saved resumes from the resume API, falling back to the local store when the API is unreachable.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listQuery, "query", "", "Filter by title or name substring")
	listCmd.Flags().StringVar(&listStatus, "status", dashboard.StatusAll, "Filter by status (all, draft, completed)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	svc, _, err := newPersistenceService(ctx)
	if err != nil {
		return err
	}

	resumes, err := dashboard.New(svc).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load resumes: %w", err)
	}

	filtered := dashboard.Filter(resumes, listQuery, listStatus)
	if len(filtered) == 0 {
		fmt.Println("No resumes found.")
		return nil
	}

	for _, r := range filtered {
		fmt.Printf("%s  %-10s %-30s updated %s\n", r.ID, r.Status, r.Title, r.UpdatedAt)
	}
	return nil
}
