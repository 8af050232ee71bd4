package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dossier",
		Short: "Dossier affaire management CLI",
		Long: `Dossier manages the document folders of test affaires on the shared
document site: photos, tracked documents, validation state and the final
archiving sequence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(NewLoginCommand(app))
	rootCmd.AddCommand(NewStatusCommand(app))
	rootCmd.AddCommand(NewResetCommand(app))
	rootCmd.AddCommand(NewFindCommand(app))
	rootCmd.AddCommand(NewPhotosCommand(app))
	rootCmd.AddCommand(NewDocCommand(app))
	rootCmd.AddCommand(NewValidateCommand(app))
	rootCmd.AddCommand(NewFinalizeCommand(app))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
