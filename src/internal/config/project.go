package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const ProjectFileName = "mkvenv.toml"

// Project is the optional per-directory override file. Any zero field falls
// back to the user defaults.
type Project struct {
	Name         string   `toml:"name"`
	Python       string   `toml:"python"`
	BasePackages []string `toml:"base_packages"`
}

func LoadProject(dir string) (Project, bool, error) {
	path := filepath.Join(dir, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Project{}, false, nil
	}
	var p Project
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Project{}, false, err
	}
	return p, true, nil
}

func SaveProject(dir string, p Project) error {
	f, err := os.Create(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}

// WithProject layers project overrides on top of the user defaults.
func (c Config) WithProject(p Project) Config {
	out := c
	if p.Name != "" {
		out.DefaultName = p.Name
	}
	if len(p.BasePackages) > 0 {
		out.BasePackages = append([]string(nil), p.BasePackages...)
	}
	return out
}
