package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/pip"
	"github.com/rozeraf/mkvenv/src/internal/venv"
)

var freezeOutput string

var freezeCmd = &cobra.Command{
	Use:   "freeze [name]",
	Short: "Print the environment's installed packages as a requirements manifest",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, ok := resolveEnvArg(args)
		if !ok {
			return
		}
		manifest, err := pip.New(dir).Freeze(context.Background())
		if err != nil {
			pterm.Error.Printf("Freeze failed: %v\n", err)
			return
		}
		if freezeOutput == "" {
			fmt.Print(manifest)
			return
		}
		if err := os.WriteFile(freezeOutput, []byte(manifest), 0644); err != nil {
			pterm.Error.Printf("Failed to write %s: %v\n", freezeOutput, err)
			return
		}
		pterm.Success.Printf("Wrote %s\n", freezeOutput)
	},
}

var listCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List packages installed in an environment",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, ok := resolveEnvArg(args)
		if !ok {
			return
		}
		out, err := pip.New(dir).List(context.Background())
		if err != nil {
			pterm.Error.Printf("List failed: %v\n", err)
			return
		}
		fmt.Print(out)
	},
}

// resolveEnvArg maps an optional environment name argument to a directory,
// falling back to the configured default name.
func resolveEnvArg(args []string) (string, bool) {
	wd := workingDir()
	defaults, _ := loadDefaults(wd)
	name := defaults.DefaultName
	if len(args) > 0 {
		name = normalizeEnvName(args[0])
	}
	dir := filepath.Join(wd, name)
	if !venv.IsEnv(dir) {
		pterm.Error.Printf("Environment %s does not exist\n", name)
		return "", false
	}
	return dir, true
}

func init() {
	freezeCmd.Flags().StringVarP(&freezeOutput, "output", "o", "", "write the manifest to a file instead of stdout")
	rootCmd.AddCommand(freezeCmd)
	rootCmd.AddCommand(listCmd)
}
