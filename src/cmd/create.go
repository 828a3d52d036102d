package cmd

import (
	"context"
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/interpreter"
	"github.com/rozeraf/mkvenv/src/internal/venv"
)

var (
	createPython   string
	createForce    bool
	createNoBase   bool
	createActivate bool
	createExtra    []string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a virtual environment in the current directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wd := workingDir()
		defaults, proj := loadDefaults(wd)

		name := defaults.DefaultName
		if len(args) > 0 {
			name = normalizeEnvName(args[0])
		}
		if name == "" {
			pterm.Error.Println("Invalid environment name")
			return
		}

		version := createPython
		if version == "" {
			version = proj.Python
		}

		res, err := newCreator(wd).Create(context.Background(), venv.Request{
			Dir:          name,
			Version:      version,
			Force:        createForce,
			InstallBase:  !createNoBase,
			BasePackages: defaults.BasePackages,
			Extra:        createExtra,
		})
		if err != nil {
			switch {
			case errors.Is(err, venv.ErrAlreadyExists):
				pterm.Error.Printf("%s already exists. Re-run with --force to overwrite it.\n", name)
			case errors.Is(err, interpreter.ErrNotFound):
				pterm.Error.Printf("%v\n", err)
			default:
				pterm.Error.Printf("Failed to create %s: %v\n", name, err)
			}
			return
		}

		pterm.Success.Printf("Created %s (Python %s)\n", res.Dir, res.Version)
		if createActivate {
			if err := activateShell(res.Dir); err != nil {
				pterm.Error.Printf("Failed to spawn shell: %v\n", err)
			}
			return
		}
		pterm.Info.Printf("Activate with: source %s\n", venv.ActivateScript(res.Dir))
	},
}

func init() {
	createCmd.Flags().StringVarP(&createPython, "python", "p", "", "python version to use (e.g. 3.11 or 3.11.4)")
	createCmd.Flags().BoolVarP(&createForce, "force", "f", false, "replace the environment if it already exists")
	createCmd.Flags().BoolVar(&createNoBase, "no-base", false, "skip installing the configured base packages")
	createCmd.Flags().BoolVarP(&createActivate, "activate", "a", false, "spawn a shell with the new environment activated")
	createCmd.Flags().StringSliceVarP(&createExtra, "extra", "e", nil, "extra packages to install")
	rootCmd.AddCommand(createCmd)
}
