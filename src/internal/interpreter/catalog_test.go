package interpreter

import (
	"errors"
	"strings"
	"testing"
)

func newTestCatalog(mgr Manager, binaries map[string]string) *Catalog {
	names := make([]string, 0, len(binaries))
	for name := range binaries {
		names = append(names, name)
	}
	return &Catalog{
		Manager:  mgr,
		LookPath: fakeLookPath(names...),
		ProbeVersion: func(exe string) (string, error) {
			if v, ok := binaries[exe]; ok {
				return v, nil
			}
			return "", errors.New("probe failed")
		},
	}
}

func TestEnumerateGlobalFirst(t *testing.T) {
	mgr := &fakeManager{installed: []string{"3.10.2", "3.11.4", "3.12.1"}, global: "3.11.4", root: "/py"}
	c := newTestCatalog(mgr, nil)

	entries := c.Enumerate()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Identifier != "3.11.4" {
		t.Fatalf("global must come first, got %+v", entries[0])
	}
	if !strings.Contains(entries[0].Label, "global") {
		t.Fatalf("global entry should be labeled as such: %q", entries[0].Label)
	}
	for _, e := range entries[1:] {
		if e.Identifier == "3.11.4" {
			t.Fatalf("global emitted twice: %+v", entries)
		}
	}
}

func TestEnumerateDedupPrefersManaged(t *testing.T) {
	mgr := &fakeManager{installed: []string{"3.11.4"}, global: "3.11.4", root: "/py"}
	c := newTestCatalog(mgr, map[string]string{"python3.11": "3.11.4", "python3.10": "3.10.9"})

	entries := c.Enumerate()
	count := 0
	for _, e := range entries {
		if normalizeVersion("3.11.4") == normalizeVersion(entryVersion(e)) {
			count++
			if e.Source != SourceManaged {
				t.Fatalf("3.11.4 entry should be manager-sourced, got %+v", e)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one 3.11.4 entry, got %d in %+v", count, entries)
	}

	found310 := false
	for _, e := range entries {
		if e.Source == SourceSystem && e.Identifier == "python3.10" {
			found310 = true
		}
	}
	if !found310 {
		t.Fatalf("non-duplicate system binary should survive: %+v", entries)
	}
}

// entryVersion recovers the version number a test entry was built from.
func entryVersion(e Entry) string {
	if e.Source == SourceManaged {
		return e.Identifier
	}
	start := strings.Index(e.Label, "(")
	end := strings.Index(e.Label, ")")
	if start < 0 || end < start {
		return e.Identifier
	}
	return e.Label[start+1 : end]
}

func TestEnumerateNoManager(t *testing.T) {
	c := newTestCatalog(nil, map[string]string{"python3.12": "3.12.1", "python3": "3.12.1"})

	entries := c.Enumerate()
	if len(entries) != 1 {
		t.Fatalf("python3 reporting the same version should dedup, got %+v", entries)
	}
	if entries[0].Source != SourceSystem || entries[0].Identifier != "python3.12" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestEnumerateProbeOrderStable(t *testing.T) {
	c := newTestCatalog(nil, map[string]string{
		"python3.10": "3.10.9",
		"python3.12": "3.12.1",
	})

	first := c.Enumerate()
	second := c.Enumerate()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 entries, got %d and %d", len(first), len(second))
	}
	if first[0].Identifier != "python3.12" || first[1].Identifier != "python3.10" {
		t.Fatalf("entries must follow probe order, got %+v", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("enumeration not deterministic: %+v vs %+v", first, second)
		}
	}
}

func TestEnumerateSkipsFailedProbes(t *testing.T) {
	c := newTestCatalog(nil, map[string]string{"python3.11": "3.11.4"})
	c.LookPath = fakeLookPath("python3.11", "python3.9")

	entries := c.Enumerate()
	if len(entries) != 1 || entries[0].Identifier != "python3.11" {
		t.Fatalf("unprobeable binary should be skipped, got %+v", entries)
	}
}

func TestEnumerateSystemGlobalSkipped(t *testing.T) {
	// A fresh pyenv install writes "system" to <root>/version; no managed
	// entry may claim it, and the wizard's default pick must stay resolvable.
	mgr := &fakeManager{installed: []string{"3.11.4"}, global: "system", root: "/py"}
	c := newTestCatalog(mgr, map[string]string{"python3": "3.12.1"})

	entries := c.Enumerate()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	for _, e := range entries {
		if e.Identifier == "system" || strings.Contains(e.Label, "global") {
			t.Fatalf("no entry may be derived from the system global: %+v", entries)
		}
	}
	if entries[0].Source != SourceManaged || entries[0].Identifier != "3.11.4" {
		t.Fatalf("managed versions still come first: %+v", entries[0])
	}

	r := &Resolver{
		Manager:    mgr,
		LookPath:   fakeLookPath("python3"),
		Executable: func(string) bool { return true },
	}
	if _, err := r.Resolve(entries[0].Identifier); err != nil {
		t.Fatalf("default selection must resolve: %v", err)
	}
}

func TestEnumerateEmptySystem(t *testing.T) {
	c := newTestCatalog(nil, nil)
	if entries := c.Enumerate(); len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}

func TestEnumerateResolveRoundTrip(t *testing.T) {
	// python3.11 reports a different patch than the managed 3.11.2, so its
	// entry survives dedup and must still resolve to the system binary, not
	// to the managed install sharing the minor prefix. The bare python entry
	// must resolve to python itself, not through auto-detection.
	mgr := &fakeManager{installed: []string{"3.10.2", "3.11.2"}, global: "3.11.2", root: "/py"}
	binaries := map[string]string{
		"python3.12": "3.12.1",
		"python3.11": "3.11.9",
		"python3.10": "3.10.2",
		"python":     "2.7.18",
	}
	c := newTestCatalog(mgr, binaries)

	names := make([]string, 0, len(binaries))
	for name := range binaries {
		names = append(names, name)
	}
	r := &Resolver{
		Manager:    mgr,
		LookPath:   fakeLookPath(names...),
		Executable: func(string) bool { return true },
	}

	entries := c.Enumerate()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %+v", entries)
	}
	for _, e := range entries {
		ref, err := r.Resolve(e.Identifier)
		if err != nil {
			t.Fatalf("resolve(%q) failed for entry %+v: %v", e.Identifier, e, err)
		}
		switch e.Source {
		case SourceManaged:
			want := mgr.VersionPath(e.Identifier)
			if ref.Exe != want {
				t.Fatalf("entry %+v resolved to %s, want %s", e, ref.Exe, want)
			}
		case SourceSystem:
			if ref.Exe != e.Identifier {
				t.Fatalf("entry %+v resolved to %s, not the binary it came from", e, ref.Exe)
			}
		}
	}
}

func TestNormalizeVersion(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"3.11", "3.11.0"},
		{"3.11.0", "3.11.0"},
		{"3.11.4", "3.11.4"},
		{"miniconda3-24.1", "miniconda3-24.1"},
	}
	for _, tc := range cases {
		if got := normalizeVersion(tc.in); got != tc.want {
			t.Fatalf("normalizeVersion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
