package cmd

import (
	"os"
	"strings"

	"github.com/rozeraf/mkvenv/src/internal/config"
	"github.com/rozeraf/mkvenv/src/internal/interpreter"
	"github.com/rozeraf/mkvenv/src/internal/pip"
	"github.com/rozeraf/mkvenv/src/internal/pyenv"
	"github.com/rozeraf/mkvenv/src/internal/venv"
)

// detectManager keeps the interface nil when pyenv is absent; a typed nil
// *pyenv.Manager inside the interface would defeat the nil checks downstream.
func detectManager() interpreter.Manager {
	if m := pyenv.Detect(); m != nil {
		return m
	}
	return nil
}

func newResolver() *interpreter.Resolver {
	return interpreter.NewResolver(detectManager())
}

func newCatalog() *interpreter.Catalog {
	return interpreter.NewCatalog(detectManager())
}

func newCreator(workDir string) *venv.Creator {
	return &venv.Creator{
		Resolver:     newResolver(),
		WorkDir:      workDir,
		Materialize:  venv.Materialize,
		NewInstaller: func(envDir string) venv.Installer { return pip.New(envDir) },
		ProbeVersion: interpreter.ProbeVersion,
	}
}

// loadDefaults merges the user config with a project-level mkvenv.toml when
// the working directory has one.
func loadDefaults(workDir string) (config.Config, config.Project) {
	cfg := config.Load()
	proj, found, err := config.LoadProject(workDir)
	if err != nil || !found {
		return cfg, config.Project{}
	}
	return cfg.WithProject(proj), proj
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func normalizeEnvName(name string) string {
	n := strings.TrimSpace(name)
	n = strings.ReplaceAll(n, " ", "-")
	allowed := make([]rune, 0, len(n))
	for _, r := range n {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' {
			allowed = append(allowed, r)
		}
	}
	return strings.Trim(string(allowed), "-")
}
