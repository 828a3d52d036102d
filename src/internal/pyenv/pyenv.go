// Package pyenv reads the state of a pyenv installation: which interpreter
// versions it has, which one is the configured global, and where each
// version's python binary lives.
package pyenv

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Manager struct {
	Root string
}

// Detect returns nil when no pyenv root exists on this machine.
func Detect() *Manager {
	root := os.Getenv("PYENV_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		root = filepath.Join(home, ".pyenv")
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}
	return &Manager{Root: root}
}

func (m *Manager) ListInstalled() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.Root, "versions"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	return versions, nil
}

// GlobalVersion reads the first line of <root>/version. An absent file means
// no global is configured, which is not an error.
func (m *Manager) GlobalVersion() (string, error) {
	f, err := os.Open(filepath.Join(m.Root, "version"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", scanner.Err()
}

func (m *Manager) VersionPath(version string) string {
	return filepath.Join(m.Root, "versions", version, "bin", "python")
}

// Match resolves a requested version against the installed set the way pyenv
// does: an exact match wins, otherwise the highest installed version whose
// number starts with the requested prefix (so "3.11" matches "3.11.9" over
// "3.11.2"). The second return reports whether anything matched.
func (m *Manager) Match(requested string) (string, bool) {
	installed, err := m.ListInstalled()
	if err != nil {
		return "", false
	}
	best := ""
	prefix := requested + "."
	for _, v := range installed {
		if v == requested {
			return v, true
		}
		if !strings.HasPrefix(v, prefix) {
			continue
		}
		if best == "" || compareVersion(v, best) > 0 {
			best = v
		}
	}
	return best, best != ""
}

func compareVersion(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		va := 0
		vb := 0
		if i < len(pa) {
			va, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			vb, _ = strconv.Atoi(pb[i])
		}
		if va > vb {
			return 1
		}
		if va < vb {
			return -1
		}
	}
	return 0
}
