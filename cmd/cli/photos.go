package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/essaihub/dossier/internal/domain"
)

func NewPhotosCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Manage the photos of an affaire",
	}

	cmd.AddCommand(newPhotosListCommand(app))
	cmd.AddCommand(newPhotosAddCommand(app))
	cmd.AddCommand(newPhotosGetCommand(app))
	cmd.AddCommand(newPhotosDeleteCommand(app))

	return cmd
}

func newPhotosListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <identifier>",
		Short: "List the photos of an affaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, services, err := app.OpenSession(ctx, args[0])
			if err != nil {
				return err
			}

			photos, err := services.Photos.List(ctx, session)
			if err != nil {
				return err
			}

			if len(photos) == 0 {
				fmt.Printf("No photos in %s\n", session.FolderName)
				return nil
			}

			fmt.Printf("Photos of %s (%d):\n", session.Identifier, len(photos))
			for _, p := range photos {
				fmt.Printf("   %s\n", p.Name)
			}
			return nil
		},
	}
}

func newPhotosAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <identifier> <local-file>",
		Short: "Upload a photo under the next conventional name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, services, err := app.OpenSession(ctx, args[0])
			if err != nil {
				return err
			}

			remoteName, err := services.Photos.NextName(ctx, session)
			if err != nil {
				return err
			}

			photo, err := services.Photos.Upload(ctx, session, args[1], remoteName)
			if err != nil {
				return err
			}
			services.Photos.Refresh(session)

			fmt.Printf("✅ Uploaded %s\n", photo.Name)
			return nil
		},
	}
}

func newPhotosGetCommand(app *App) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "get <identifier> <photo-name>",
		Short: "Download a photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, services, err := app.OpenSession(ctx, args[0])
			if err != nil {
				return err
			}

			photo, err := findPhotoByName(cmd, session, services, args[1])
			if err != nil {
				return err
			}

			localPath, err := services.Photos.Download(ctx, session, photo, outDir)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Saved %s\n", localPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to save the photo into")
	return cmd
}

func newPhotosDeleteCommand(app *App) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <identifier> <photo-name>",
		Short: "Delete a photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, services, err := app.OpenSession(ctx, args[0])
			if err != nil {
				return err
			}

			photo, err := findPhotoByName(cmd, session, services, args[1])
			if err != nil {
				return err
			}

			if !skipConfirm {
				confirmed, err := confirm(fmt.Sprintf("Delete %s?", photo.Name))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled")
					return nil
				}
			}

			if err := services.Photos.Delete(ctx, session, photo.ID); err != nil {
				return err
			}
			services.Photos.Refresh(session)

			fmt.Printf("✅ Deleted %s\n", photo.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func findPhotoByName(cmd *cobra.Command, session *domain.Session, services *Services, name string) (domain.PhotoEntry, error) {
	photos, err := services.Photos.List(cmd.Context(), session)
	if err != nil {
		return domain.PhotoEntry{}, err
	}

	for _, p := range photos {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.PhotoEntry{}, fmt.Errorf("photo %s not found in %s", name, session.FolderName)
}

// confirm shows a yes/no prompt and returns the answer.
func confirm(title string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Oui").
			Negative("Non").
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
