package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/venv"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a virtual environment",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wd := workingDir()
		name := normalizeEnvName(args[0])
		dir := filepath.Join(wd, name)

		if !venv.Exists(dir) {
			pterm.Error.Printf("Environment %s does not exist\n", name)
			if near := nearbyEnvNames(wd, name); len(near) > 0 {
				pterm.Info.Printf("Did you mean: %s\n", strings.Join(near, ", "))
			}
			return
		}
		if !venv.IsEnv(dir) {
			pterm.Error.Printf("%s exists but does not look like a virtual environment; refusing to delete it\n", name)
			return
		}

		if !deleteForce {
			fmt.Printf("Delete %s and everything in it? (y/N): ", dir)
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "y" && input != "yes" {
				pterm.Info.Println("Deletion cancelled.")
				return
			}
		}

		if err := venv.Remove(dir); err != nil {
			pterm.Error.Printf("Failed to delete %s: %v\n", name, err)
			return
		}
		pterm.Success.Printf("Deleted %s\n", name)
	},
}

// nearbyEnvNames ranks the venv directories under wd against a missed name.
func nearbyEnvNames(wd, miss string) []string {
	entries, err := os.ReadDir(wd)
	if err != nil {
		return nil
	}
	candidates := []string{}
	for _, e := range entries {
		if e.IsDir() && venv.IsEnv(filepath.Join(wd, e.Name())) {
			candidates = append(candidates, e.Name())
		}
	}
	ranks := fuzzy.RankFindFold(miss, candidates)
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
	rootCmd.AddCommand(deleteCmd)
}
