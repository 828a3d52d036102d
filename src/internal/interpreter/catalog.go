package interpreter

import (
	"fmt"
	"os/exec"

	"github.com/Masterminds/semver/v3"
)

type Source string

const (
	SourceManaged Source = "pyenv"
	SourceSystem  Source = "system"
)

// Entry is one selectable interpreter version. Identifier round-trips through
// Resolver.Resolve back to the interpreter the entry was derived from.
type Entry struct {
	Label      string
	Source     Source
	Identifier string
}

type Catalog struct {
	Manager      Manager
	LookPath     func(name string) (string, error)
	ProbeVersion func(exe string) (string, error)
}

func NewCatalog(mgr Manager) *Catalog {
	return &Catalog{
		Manager:      mgr,
		LookPath:     exec.LookPath,
		ProbeVersion: ProbeVersion,
	}
}

// probeNames is the fixed probe order for system binaries: recent minor
// releases first, then the two unversioned fallbacks.
var probeNames = []string{
	"python3.13",
	"python3.12",
	"python3.11",
	"python3.10",
	"python3.9",
	"python3.8",
	"python3",
	"python",
}

// Enumerate lists every distinct interpreter version: pyenv-managed versions
// first (global at the top), then system binaries whose version is not
// already covered by a managed entry. A source that is absent or unreadable
// simply contributes nothing.
func (c *Catalog) Enumerate() []Entry {
	entries := []Entry{}
	seen := map[string]bool{}

	if c.Manager != nil {
		global, err := c.Manager.GlobalVersion()
		// A fresh pyenv install sets the global to "system", which names no
		// managed version; the PATH probes below cover that interpreter.
		if err != nil || global == "system" {
			global = ""
		}
		if global != "" {
			entries = append(entries, Entry{
				Label:      fmt.Sprintf("%s (pyenv, global)", global),
				Source:     SourceManaged,
				Identifier: global,
			})
			seen[normalizeVersion(global)] = true
		}

		installed, _ := c.Manager.ListInstalled()
		for _, v := range installed {
			if v == global {
				continue
			}
			key := normalizeVersion(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, Entry{
				Label:      fmt.Sprintf("%s (pyenv)", v),
				Source:     SourceManaged,
				Identifier: v,
			})
		}
	}

	for _, name := range probeNames {
		if _, err := c.LookPath(name); err != nil {
			continue
		}
		version, err := c.ProbeVersion(name)
		if err != nil {
			continue
		}
		key := normalizeVersion(version)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, Entry{
			Label:      fmt.Sprintf("%s (%s)", name, version),
			Source:     SourceSystem,
			Identifier: name,
		})
	}

	return entries
}

// normalizeVersion keys the dedup: "3.11" and "3.11.0" collapse to the same
// logical version. pyenv can list names semver cannot parse (conda distros,
// dev builds); those dedup on the raw string.
func normalizeVersion(v string) string {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return parsed.String()
}
