// Package interpreter decides which python binary a command should use. The
// resolver turns an optional requested version into a concrete interpreter,
// and the catalog enumerates every distinct version visible on the machine.
package interpreter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrNotFound = errors.New("python interpreter not found")

// Ref is a resolved, invocable interpreter: either an absolute path into a
// pyenv installation or a bare command name reachable on PATH.
type Ref struct {
	Exe string
}

// Manager is the slice of a version manager the resolver and catalog need.
// A nil Manager means no version manager is installed.
type Manager interface {
	ListInstalled() ([]string, error)
	GlobalVersion() (string, error)
	VersionPath(version string) string
	Match(requested string) (string, bool)
}

type Resolver struct {
	Manager      Manager
	LookPath     func(name string) (string, error)
	Executable   func(path string) bool
	ProbeVersion func(exe string) (string, error)
}

func NewResolver(mgr Manager) *Resolver {
	return &Resolver{
		Manager:      mgr,
		LookPath:     exec.LookPath,
		Executable:   isExecutable,
		ProbeVersion: ProbeVersion,
	}
}

// Resolve picks an interpreter for the requested version string. An explicit
// request that cannot be satisfied errors out rather than substituting a
// different version; only an empty request triggers auto-detection.
func (r *Resolver) Resolve(requested string) (Ref, error) {
	requested = strings.TrimSpace(requested)

	if requested != "" {
		// Catalog entries for system binaries carry the literal binary name
		// as their identifier; honoring it here keeps the entry resolving to
		// the exact binary it was derived from even when a managed version
		// shares the same minor prefix.
		if strings.HasPrefix(requested, "python") {
			if _, err := r.LookPath(requested); err == nil {
				return Ref{Exe: requested}, nil
			}
		}
		if r.Manager != nil {
			if matched, ok := r.Manager.Match(requested); ok {
				return Ref{Exe: r.Manager.VersionPath(matched)}, nil
			}
		}
		name := "python" + requested
		if _, err := r.LookPath(name); err == nil {
			return Ref{Exe: name}, nil
		}
		return Ref{}, r.notFound(requested)
	}

	if r.Manager != nil {
		global, err := r.Manager.GlobalVersion()
		if err == nil && global != "" {
			path := r.Manager.VersionPath(global)
			if r.Executable(path) {
				return Ref{Exe: path}, nil
			}
		}
	}

	for _, name := range []string{"python3", "python"} {
		if _, err := r.LookPath(name); err == nil {
			return Ref{Exe: name}, nil
		}
	}

	return Ref{}, fmt.Errorf("no python interpreter available: %w", ErrNotFound)
}

func (r *Resolver) notFound(requested string) error {
	if suggestions := r.suggest(requested); len(suggestions) > 0 {
		return fmt.Errorf("version %s not found (closest installed: %s): %w",
			requested, strings.Join(suggestions, ", "), ErrNotFound)
	}
	return fmt.Errorf("version %s not found: %w", requested, ErrNotFound)
}

// suggest ranks installed manager versions against the miss so the error can
// point at likely typos.
func (r *Resolver) suggest(requested string) []string {
	if r.Manager == nil {
		return nil
	}
	installed, err := r.Manager.ListInstalled()
	if err != nil || len(installed) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindFold(requested, installed)
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, rk := range ranks {
		out = append(out, rk.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// ProbeVersion asks a binary for its version string, e.g. "3.11.4" out of
// "Python 3.11.4".
func ProbeVersion(exe string) (string, error) {
	out, err := exec.Command(exe, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("probe %s: %v", exe, err)
	}
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) < 2 {
		return "", fmt.Errorf("unexpected version output from %s: %q", exe, strings.TrimSpace(string(out)))
	}
	return fields[len(fields)-1], nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
