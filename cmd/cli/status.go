package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewStatusCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and sign-in status",
		Long:  `Display the effective configuration, which required values are missing and whether an account is signed in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, app)
		},
	}

	return cmd
}

func runStatus(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()

	cfg, err := app.ConfigManager().GetConfig(ctx)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("❌ Configuration is incomplete")
		fmt.Printf("   %v\n", err)
		fmt.Printf("Set the DOSSIER_* environment variables or edit %s\n", "$HOME/.dossier/config.json")
		return nil
	}

	fmt.Println("✅ Configuration is complete")
	fmt.Printf("   Tenant: %s\n", cfg.TenantID)
	fmt.Printf("   Site: %s\n", cfg.SiteHostPath)
	fmt.Printf("   Working directory: %s\n", cfg.WorkingPath)
	fmt.Printf("   Archive directory: %s\n", cfg.ArchivePath)
	fmt.Printf("   Templates directory: %s\n", cfg.TemplatesPath)

	credential, err := app.Credential(ctx)
	if err != nil {
		return err
	}

	if account, ok := credential.CachedAccount(); ok {
		fmt.Printf("   Signed in as: %s\n", account)
	} else {
		fmt.Println("   Not signed in")
		fmt.Printf("Run '%s login' to sign in\n", os.Args[0])
	}

	return nil
}
