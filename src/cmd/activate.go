package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rozeraf/mkvenv/src/internal/venv"
)

var activateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Enter a new shell with the environment activated",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := filepath.Join(workingDir(), normalizeEnvName(args[0]))
		if !venv.IsEnv(dir) {
			pterm.Error.Printf("%s is not a virtual environment. Create it first with 'mkvenv create %s'\n", args[0], args[0])
			return
		}
		pterm.Info.Printf("Entering shell with %s activated. Type 'exit' to leave.\n", args[0])
		if err := activateShell(dir); err != nil {
			pterm.Error.Printf("Failed to spawn shell: %v\n", err)
			pterm.Info.Printf("Activate manually with: source %s\n", venv.ActivateScript(dir))
		}
	},
}

// activateShell spawns an interactive subshell with the environment applied:
// VIRTUAL_ENV set, the env's bin dir first on PATH, PYTHONHOME cleared.
func activateShell(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if runtime.GOOS == "windows" {
		shell := exec.Command("cmd.exe", "/K", venv.ActivateScript(abs))
		shell.Stdin = os.Stdin
		shell.Stdout = os.Stdout
		shell.Stderr = os.Stderr
		return shell.Run()
	}

	name := os.Getenv("SHELL")
	if name == "" {
		name = "/bin/sh"
	}

	env := make([]string, 0, len(os.Environ())+2)
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "PYTHONHOME=") {
			continue
		}
		if strings.HasPrefix(e, "PATH=") {
			e = "PATH=" + venv.BinDir(abs) + string(os.PathListSeparator) + strings.TrimPrefix(e, "PATH=")
		}
		env = append(env, e)
	}
	env = append(env, "VIRTUAL_ENV="+abs)
	env = append(env, fmt.Sprintf("VIRTUAL_ENV_PROMPT=(%s)", filepath.Base(abs)))

	shell := exec.Command(name)
	shell.Env = env
	shell.Stdin = os.Stdin
	shell.Stdout = os.Stdout
	shell.Stderr = os.Stderr
	return shell.Run()
}

func init() {
	rootCmd.AddCommand(activateCmd)
}
