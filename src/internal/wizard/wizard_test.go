package wizard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rozeraf/mkvenv/src/internal/config"
	"github.com/rozeraf/mkvenv/src/internal/interpreter"
	"github.com/rozeraf/mkvenv/src/internal/venv"
)

type fakeCatalog struct {
	entries []interpreter.Entry
}

func (c *fakeCatalog) Enumerate() []interpreter.Entry { return c.entries }

func twoVersions() *fakeCatalog {
	return &fakeCatalog{entries: []interpreter.Entry{
		{Label: "3.12.1 (pyenv, global)", Source: interpreter.SourceManaged, Identifier: "3.12.1"},
		{Label: "python3.10 (3.10.9)", Source: interpreter.SourceSystem, Identifier: "python3.10"},
	}}
}

type runResult struct {
	outcome *Outcome
	err     error
	created []venv.Request
	output  string
}

func run(t *testing.T, input string, catalog Catalog, existing map[string]bool) runResult {
	t.Helper()
	var out bytes.Buffer
	var created []venv.Request
	w := &Wizard{
		In:       strings.NewReader(input),
		Out:      &out,
		Catalog:  catalog,
		Defaults: config.Config{DefaultName: "venv", BasePackages: []string{"pip", "wheel"}},
		Exists:   func(dir string) bool { return existing[dir] },
		Create: func(_ context.Context, req venv.Request) (*venv.Result, error) {
			created = append(created, req)
			return &venv.Result{Dir: req.Dir, Version: "3.12.1"}, nil
		},
	}
	outcome, err := w.Run(context.Background())
	return runResult{outcome: outcome, err: err, created: created, output: out.String()}
}

func TestRunAllDefaults(t *testing.T) {
	r := run(t, "\n\n\n\n", twoVersions(), nil)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if len(r.created) != 1 {
		t.Fatalf("expected one creation, got %d", len(r.created))
	}
	req := r.created[0]
	if req.Dir != "venv" {
		t.Fatalf("empty name should use the default, got %q", req.Dir)
	}
	if req.Version != "3.12.1" {
		t.Fatalf("default selection must be the first entry, got %q", req.Version)
	}
	if !req.InstallBase || len(req.BasePackages) != 2 {
		t.Fatalf("base packages not threaded: %+v", req)
	}
	if len(req.Extra) != 0 {
		t.Fatalf("expected no extra packages, got %v", req.Extra)
	}
	if !r.outcome.Activate {
		t.Fatal("activate should default to yes")
	}
}

func TestRunExplicitChoices(t *testing.T) {
	r := run(t, "api\n2\nrequests flask\nn\n", twoVersions(), nil)
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	req := r.created[0]
	if req.Dir != "api" {
		t.Fatalf("expected dir api, got %q", req.Dir)
	}
	if req.Version != "python3.10" {
		t.Fatalf("menu pick 2 should map to the second entry, got %q", req.Version)
	}
	if len(req.Extra) != 2 || req.Extra[0] != "requests" || req.Extra[1] != "flask" {
		t.Fatalf("unexpected extras: %v", req.Extra)
	}
	if r.outcome.Activate {
		t.Fatal("answering n must disable activation")
	}
	if !strings.Contains(r.output, "1) 3.12.1 (pyenv, global)") {
		t.Fatalf("menu should be 1-indexed with labels, got:\n%s", r.output)
	}
}

func TestRunSelectionZero(t *testing.T) {
	r := run(t, "venv\n0\n", twoVersions(), nil)
	if !errors.Is(r.err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", r.err)
	}
	if len(r.created) != 0 {
		t.Fatal("no creation may be attempted after an invalid selection")
	}
}

func TestRunSelectionBeyondRange(t *testing.T) {
	r := run(t, "venv\n3\n", twoVersions(), nil)
	if !errors.Is(r.err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", r.err)
	}
	if len(r.created) != 0 {
		t.Fatal("no creation may be attempted after an invalid selection")
	}
}

func TestRunSelectionNotANumber(t *testing.T) {
	r := run(t, "venv\nlatest\n", twoVersions(), nil)
	if !errors.Is(r.err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", r.err)
	}
}

func TestRunDeclinedOverwriteAborts(t *testing.T) {
	r := run(t, "venv\nn\n", twoVersions(), map[string]bool{"venv": true})
	if !errors.Is(r.err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", r.err)
	}
	if len(r.created) != 0 {
		t.Fatal("declining overwrite must have no side effects")
	}
}

func TestRunAcceptedOverwriteSetsForce(t *testing.T) {
	r := run(t, "venv\ny\n1\n\n\n", twoVersions(), map[string]bool{"venv": true})
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if !r.created[0].Force {
		t.Fatal("accepted overwrite must set force")
	}
}

func TestRunEmptyCatalog(t *testing.T) {
	r := run(t, "venv\n", &fakeCatalog{}, nil)
	if !errors.Is(r.err, interpreter.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty catalog, got %v", r.err)
	}
}
