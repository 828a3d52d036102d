package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/venv"
	"github.com/rozeraf/mkvenv/src/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:     "wizard",
	Aliases: []string{"new"},
	Short:   "Create an environment through a guided prompt sequence",
	Run: func(cmd *cobra.Command, args []string) {
		wd := workingDir()
		defaults, _ := loadDefaults(wd)

		w := &wizard.Wizard{
			In:       os.Stdin,
			Out:      os.Stdout,
			Catalog:  newCatalog(),
			Defaults: defaults,
			Exists: func(dir string) bool {
				return venv.Exists(filepath.Join(wd, dir))
			},
			Create: newCreator(wd).Create,
		}

		outcome, err := w.Run(context.Background())
		if err != nil {
			switch {
			case errors.Is(err, wizard.ErrAborted):
				pterm.Info.Println("Cancelled, nothing was created.")
			case errors.Is(err, wizard.ErrInvalidSelection):
				pterm.Error.Printf("%v\n", err)
			default:
				pterm.Error.Printf("Creation failed: %v\n", err)
			}
			return
		}

		pterm.Success.Printf("Created %s (Python %s)\n", outcome.Result.Dir, outcome.Result.Version)
		if outcome.Activate {
			if err := activateShell(outcome.Result.Dir); err != nil {
				pterm.Error.Printf("Failed to spawn shell: %v\n", err)
			}
			return
		}
		pterm.Info.Printf("Activate with: source %s\n", venv.ActivateScript(outcome.Result.Dir))
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}
