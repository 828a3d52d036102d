package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/pip"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Clear pip's global download cache",
	Run: func(cmd *cobra.Command, args []string) {
		if err := pip.PurgeCache(context.Background()); err != nil {
			pterm.Error.Printf("Purge failed: %v\n", err)
			return
		}
		pterm.Success.Println("pip cache purged")
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
