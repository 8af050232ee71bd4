package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewResetCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Sign out and reset configuration",
		Long:  `Drop the cached tokens and remove the stored configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, app)
		},
	}

	return cmd
}

func runReset(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()

	// Sign out first while the credential provider can still be built
	// from the current configuration.
	if credential, err := app.Credential(ctx); err == nil {
		if err := credential.SignOut(); err != nil {
			return fmt.Errorf("failed to drop cached tokens: %w", err)
		}
	}

	if err := app.ConfigManager().ResetConfig(ctx); err != nil {
		return err
	}

	fmt.Println("✅ Configuration reset successfully")
	fmt.Printf("Run '%s status' to review the remaining environment settings\n", os.Args[0])
	return nil
}
