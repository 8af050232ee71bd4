package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewFindCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <identifier>",
		Short: "Locate the folder of an affaire",
		Long:  `Validate the 8-character affaire identifier and locate its folder in the working directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, app, args[0])
		},
	}

	return cmd
}

func runFind(cmd *cobra.Command, app *App, rawIdentifier string) error {
	ctx := cmd.Context()

	session, _, err := app.OpenSession(ctx, rawIdentifier)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Affaire %s\n", session.Identifier)
	fmt.Printf("   Folder: %s\n", session.FolderName)
	fmt.Printf("   Client: %s\n", session.ClientName)
	return nil
}
