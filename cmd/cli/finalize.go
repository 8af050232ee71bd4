package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/essaihub/dossier/internal/managers"
)

func NewFinalizeCommand(app *App) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "finalize <identifier>",
		Short: "Archive a fully validated affaire",
		Long: `Run the terminal sequence of an affaire: delete the validation record,
convert the residual Word documents of the PV sub-folder to PDF, move
the folder to the archive location and drop a reminder marker. The
affaire must be fully validated first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(cmd, app, args[0], skipConfirm)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runFinalize(cmd *cobra.Command, app *App, rawIdentifier string, skipConfirm bool) error {
	ctx := cmd.Context()

	session, services, err := app.OpenSession(ctx, rawIdentifier)
	if err != nil {
		return err
	}

	record, err := services.Validation.Load(ctx, session)
	if err != nil {
		return err
	}
	if !record.CanFinalize() {
		printValidationRecord(session, record)
		return fmt.Errorf("affaire %s is not fully validated", session.Identifier)
	}

	if !skipConfirm {
		confirmed, err := confirm(fmt.Sprintf("Finalize and archive %s? This cannot be undone.", session.FolderName))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	report, err := services.Finalizer.Finalize(ctx, session)
	if report != nil {
		printFinalizeReport(report)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✅ Affaire %s archived as %s\n", session.Identifier, report.ArchivedFolder.Name)
	return nil
}

func printFinalizeReport(report *managers.FinalizeReport) {
	if report.ValidationDeleted {
		fmt.Println("   Validation record deleted")
	}

	for _, c := range report.Conversions {
		if c.Failed() {
			fmt.Printf("   ❌ %s (%s): %v\n", c.Name, c.Stage, c.Err)
		} else {
			fmt.Printf("   ✅ %s converted to PDF\n", c.Name)
		}
	}
	if failed := report.FailedConversions(); len(failed) > 0 {
		fmt.Printf("   %d of %d conversions failed, originals kept\n", len(failed), len(report.Conversions))
	}

	if report.Moved && !report.ReminderCreated {
		fmt.Println("   ⚠ Reminder marker could not be created")
	}
}
