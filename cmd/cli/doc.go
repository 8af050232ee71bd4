package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/essaihub/dossier/internal/launcher"
	"github.com/essaihub/dossier/internal/managers"
	"github.com/essaihub/dossier/internal/tui"
)

func NewDocCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Open the tracked documents of an affaire",
	}

	cmd.AddCommand(newDocOpenCommand(app))

	return cmd
}

func newDocOpenCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <identifier> <FP|PVEE|PVEA>",
		Short: "Open a tracked document for viewing or editing",
		Long: `Open the FP, PVEE or PVEA document of the affaire. PDFs are edited
locally and re-uploaded when changed; Word and Excel documents open in
the web editor. A missing PVEA document can be created from a standard
template.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocOpen(cmd, app, args[0], args[1])
		},
	}
}

func runDocOpen(cmd *cobra.Command, app *App, rawIdentifier, rawPrefix string) error {
	ctx := cmd.Context()

	prefix, err := domain.ParseDocPrefix(rawPrefix)
	if err != nil {
		return err
	}

	session, services, err := app.OpenSession(ctx, rawIdentifier)
	if err != nil {
		return err
	}

	doc, err := services.Documents.Open(ctx, session, prefix)
	if errors.Is(err, domain.ErrDocumentNotFound) && prefix == domain.PrefixPVEA {
		return runTemplateFlow(cmd, app, session, services)
	}
	if err != nil {
		return err
	}

	switch doc.Kind {
	case managers.KindLocalPDF:
		return runLocalPDF(cmd, session, services, doc)
	case managers.KindWebLink:
		fmt.Printf("Opening %s in the web editor\n", doc.Item.Name)
		return launcher.Open(doc.WebURL)
	default:
		return fmt.Errorf("unhandled document kind %d", doc.Kind)
	}
}

// runLocalPDF hands the scratch copy to the system viewer, waits for the
// user to finish and re-uploads when the file changed on disk.
func runLocalPDF(cmd *cobra.Command, session *domain.Session, services *Services, doc *managers.OpenedDocument) error {
	fmt.Printf("Opening %s\n", doc.Item.Name)
	if err := launcher.Open(doc.LocalPath); err != nil {
		return err
	}

	done, err := confirm(fmt.Sprintf("Finished editing %s?", doc.Item.Name))
	if err != nil {
		return err
	}
	if !done {
		fmt.Println("Document left open, changes will not be uploaded")
		return nil
	}

	uploaded, err := services.Documents.ReuploadIfEdited(cmd.Context(), session, doc)
	if err != nil {
		return err
	}

	if uploaded {
		fmt.Printf("✅ Uploaded %s\n", doc.Item.Name)
	} else {
		fmt.Println("No changes detected, nothing uploaded")
	}
	return nil
}

// runTemplateFlow offers the standard templates when the affaire has no
// PVEA document yet.
func runTemplateFlow(cmd *cobra.Command, app *App, session *domain.Session, services *Services) error {
	ctx := cmd.Context()

	create, err := confirm("No PVEA document found. Create one from a standard template?")
	if err != nil {
		return err
	}
	if !create {
		fmt.Println("Cancelled")
		return nil
	}

	templates, err := services.Templates.List(ctx, session.Folder.DriveID)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		return fmt.Errorf("no templates available")
	}

	chosen, picked, err := tui.PickTemplate(templates)
	if err != nil {
		return err
	}
	if !picked {
		fmt.Println("Cancelled")
		return nil
	}

	newName, _, err := services.Templates.CopyToPV(ctx, session, chosen)
	if err != nil {
		return err
	}
	services.Photos.Refresh(session)

	fmt.Printf("✅ Created %s from %s\n", newName, chosen.DisplayName())
	fmt.Println("The copy may take a moment to appear, then reopen the document")
	return nil
}
