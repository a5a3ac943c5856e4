package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
)

var (
	saveDraft bool
	saveEdit  string
)

var saveCmd = &cobra.Command{
	Use:   "save <document.json>",
	Short: "Save a resume document",
	Long: `Run a resume document through an editing session and save it.
Completed saves pass the validation gate; drafts save as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveCmd.Flags().BoolVar(&saveDraft, "draft", false, "Save as a draft without the completion gate")
	saveCmd.Flags().StringVar(&saveEdit, "edit", "", "Update the saved resume with this ID instead of creating")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	svc, cfg, err := newPersistenceService(ctx)
	if err != nil {
		return err
	}

	store := wizard.NewStore(wizard.StoreOptions{
		EditingID: saveEdit,
		Limits:    wizard.LimitsFromConfig(cfg),
	})
	store.SetPersonalInfo(data.PersonalInfo)
	store.SetWorkExperience(data.WorkExperience)
	store.SetEducation(data.Education)
	store.SetSkills(data.Skills)
	store.SetSummary(data.Summary)

	w := wizard.New(store, svc)

	var saved *types.SavedResume
	switch {
	case saveDraft && saveEdit != "":
		saved, err = w.UpdateDraft(ctx)
	case saveDraft:
		saved, err = w.SaveDraft(ctx)
	case saveEdit != "":
		saved, err = w.UpdateCompleted(ctx)
	default:
		saved, err = w.SaveCompleted(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}

	fmt.Printf("Saved %s (%s) %s\n", saved.ID, saved.Status, saved.Title)
	return nil
}
