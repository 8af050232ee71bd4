package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewLoginCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the document site",
		Long:  `Sign in through the device-code flow and cache the resulting tokens for later commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, app)
		},
	}

	return cmd
}

func runLogin(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()

	credential, err := app.Credential(ctx)
	if err != nil {
		return err
	}

	tokens, err := credential.SignInInteractive(ctx)
	if err != nil {
		return err
	}

	if tokens.Account != "" {
		fmt.Printf("✅ Signed in as %s\n", tokens.Account)
	} else {
		fmt.Println("✅ Signed in")
	}
	return nil
}
