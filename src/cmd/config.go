package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the persisted defaults",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		pterm.Info.Printf("default name:  %s\n", cfg.DefaultName)
		pterm.Info.Printf("base packages: %s\n", strings.Join(cfg.BasePackages, " "))
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <name|packages>",
	Short: "Print a single default",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		switch args[0] {
		case "name":
			pterm.Println(cfg.DefaultName)
		case "packages":
			pterm.Println(strings.Join(cfg.BasePackages, " "))
		default:
			pterm.Error.Printf("Unknown key %q (use `name` or `packages`)\n", args[0])
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <name|packages> <value>...",
	Short: "Set a default (environment name or base package list)",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		switch args[0] {
		case "name":
			name := normalizeEnvName(args[1])
			if name == "" {
				pterm.Error.Println("Invalid environment name")
				return
			}
			cfg.DefaultName = name
		case "packages":
			cfg.BasePackages = args[1:]
		default:
			pterm.Error.Printf("Unknown key %q (use `name` or `packages`)\n", args[0])
			return
		}
		if err := config.Save(cfg); err != nil {
			pterm.Error.Printf("Failed to save config: %v\n", err)
			return
		}
		pterm.Success.Println("Defaults updated")
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
