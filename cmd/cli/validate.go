package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/essaihub/dossier/internal/domain"
)

func NewValidateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Show or change the validation state of an affaire",
	}

	cmd.AddCommand(newValidateShowCommand(app))
	cmd.AddCommand(newValidateSetCommand(app))

	return cmd
}

func newValidateShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <identifier>",
		Short: "Show the validation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, services, err := app.OpenSession(ctx, args[0])
			if err != nil {
				return err
			}

			record, err := services.Validation.Load(ctx, session)
			if err != nil {
				return err
			}

			printValidationRecord(session, record)
			return nil
		},
	}
}

func newValidateSetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <identifier> <FP|PVEE|PVEA> [value]",
		Short: "Change one validation flag",
		Long: `Change one flag of the validation record. FP and PVEE take true or
false; PVEA takes one of its three states. Without a value the new state
is asked interactively.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			key, err := parseValidationKey(args[1])
			if err != nil {
				return err
			}

			session, services, err := app.OpenSession(ctx, args[0])
			if err != nil {
				return err
			}

			record, err := services.Validation.Load(ctx, session)
			if err != nil {
				return err
			}

			var value string
			if len(args) == 3 {
				value = args[2]
			} else {
				value, err = askValidationValue(key, record)
				if err != nil {
					return err
				}
				if value == "" {
					fmt.Println("Cancelled")
					return nil
				}
			}

			if err := services.Validation.Set(ctx, session, &record, key, value); err != nil {
				return err
			}

			printValidationRecord(session, record)
			return nil
		},
	}
}

func parseValidationKey(raw string) (domain.ValidationKey, error) {
	switch domain.ValidationKey(raw) {
	case domain.KeyFP, domain.KeyPVEE, domain.KeyPVEA:
		return domain.ValidationKey(raw), nil
	}
	return "", fmt.Errorf("invalid validation key %q, expected FP, PVEE or PVEA", raw)
}

// askValidationValue prompts for the new value of one flag. An empty
// return means the user declined the change.
func askValidationValue(key domain.ValidationKey, record domain.ValidationRecord) (string, error) {
	if key == domain.KeyPVEA {
		value := string(record.PVEA)
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("État du PVEA").
				Options(
					huh.NewOption("Validé", string(domain.PVEAValide)),
					huh.NewOption("Non nécessaire", string(domain.PVEANonNecessair)),
					huh.NewOption("Non validé", string(domain.PVEANonValide)),
				).
				Value(&value),
		))
		if err := form.Run(); err != nil {
			return "", fmt.Errorf("selection prompt failed: %w", err)
		}
		return value, nil
	}

	current := record.FP
	if key == domain.KeyPVEE {
		current = record.PVEE
	}

	confirmed, err := confirm(fmt.Sprintf("Set %s to %t?", key, !current))
	if err != nil {
		return "", err
	}
	if !confirmed {
		return "", nil
	}
	return fmt.Sprintf("%t", !current), nil
}

func printValidationRecord(session *domain.Session, record domain.ValidationRecord) {
	fmt.Printf("Validation of %s:\n", session.Identifier)
	fmt.Printf("   FP:   %s\n", checkmark(record.FP))
	fmt.Printf("   PVEE: %s\n", checkmark(record.PVEE))
	fmt.Printf("   PVEA: %s\n", record.PVEA)
	if record.CanFinalize() {
		fmt.Println("✅ The affaire can be finalized")
	}
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
