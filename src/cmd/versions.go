package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the Python versions available on this machine",
	Run: func(cmd *cobra.Command, args []string) {
		entries := newCatalog().Enumerate()
		if len(entries) == 0 {
			pterm.Warning.Println("No Python interpreters found (checked pyenv and PATH)")
			return
		}
		data := pterm.TableData{{"#", "Version", "Source"}}
		for i, e := range entries {
			data = append(data, []string{pterm.Sprintf("%d", i+1), e.Label, string(e.Source)})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
