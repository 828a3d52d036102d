// Package wizard drives the guided environment creation flow. All terminal
// I/O goes through the injected reader and writer so the step logic runs in
// tests without a terminal.
package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rozeraf/mkvenv/src/internal/config"
	"github.com/rozeraf/mkvenv/src/internal/interpreter"
	"github.com/rozeraf/mkvenv/src/internal/venv"
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrAborted          = errors.New("wizard aborted")
)

type Catalog interface {
	Enumerate() []interpreter.Entry
}

type Wizard struct {
	In       io.Reader
	Out      io.Writer
	Catalog  Catalog
	Defaults config.Config
	Exists   func(dir string) bool
	Create   func(ctx context.Context, req venv.Request) (*venv.Result, error)
}

type Outcome struct {
	Result   *venv.Result
	Activate bool
}

// Run walks the prompt sequence: name, overwrite confirmation, interpreter
// pick, extra packages, activate-after. Declining the overwrite aborts with
// no side effects; an out-of-range menu pick is an error before anything is
// created.
func (w *Wizard) Run(ctx context.Context) (*Outcome, error) {
	r := bufio.NewReader(w.In)

	name := w.prompt(r, fmt.Sprintf("Environment name [%s]: ", w.Defaults.DefaultName))
	if name == "" {
		name = w.Defaults.DefaultName
	}

	force := false
	if w.Exists(name) {
		if !w.confirm(r, fmt.Sprintf("%s already exists. Overwrite? (y/N): ", name), false) {
			return nil, ErrAborted
		}
		force = true
	}

	entries := w.Catalog.Enumerate()
	if len(entries) == 0 {
		return nil, fmt.Errorf("no python interpreters found: %w", interpreter.ErrNotFound)
	}
	fmt.Fprintln(w.Out, "Available Python versions:")
	for i, e := range entries {
		fmt.Fprintf(w.Out, "  %d) %s\n", i+1, e.Label)
	}

	choice := w.prompt(r, "Select a version [1]: ")
	idx := 1
	if choice != "" {
		n, err := strconv.Atoi(choice)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", choice, ErrInvalidSelection)
		}
		idx = n
	}
	if idx < 1 || idx > len(entries) {
		return nil, fmt.Errorf("%d is out of range 1-%d: %w", idx, len(entries), ErrInvalidSelection)
	}

	extra := strings.Fields(w.prompt(r, "Extra packages (space-separated, empty for none): "))
	activate := w.confirm(r, "Activate after creation? (Y/n): ", true)

	res, err := w.Create(ctx, venv.Request{
		Dir:          name,
		Version:      entries[idx-1].Identifier,
		Force:        force,
		InstallBase:  true,
		BasePackages: w.Defaults.BasePackages,
		Extra:        extra,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{Result: res, Activate: activate}, nil
}

func (w *Wizard) prompt(r *bufio.Reader, question string) string {
	fmt.Fprint(w.Out, question)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func (w *Wizard) confirm(r *bufio.Reader, question string, def bool) bool {
	answer := strings.ToLower(w.prompt(r, question))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}
