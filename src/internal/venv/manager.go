// Package venv creates and inspects Python virtual environments. The Creator
// orchestrates interpreter resolution, materialization and package
// installation; every step is a hard gate and a failed creation leaves the
// partial directory on disk for the user to inspect.
package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rozeraf/mkvenv/src/internal/interpreter"
	"github.com/rozeraf/mkvenv/src/internal/telemetry"
)

var (
	ErrAlreadyExists = errors.New("environment already exists")
	ErrInstallFailed = errors.New("package installation failed")
)

const ManifestName = "requirements.txt"

// Request carries the full parameter set for one creation. Dir is relative to
// the creator's working directory unless absolute.
type Request struct {
	Dir          string
	Version      string
	Force        bool
	InstallBase  bool
	BasePackages []string
	Extra        []string
}

type Result struct {
	Dir       string
	PythonExe string
	Version   string
}

// Installer is the slice of pip the creator drives.
type Installer interface {
	UpgradeSelf(ctx context.Context) error
	Install(ctx context.Context, pkgs []string) error
	InstallRequirements(ctx context.Context, path string) error
}

type Creator struct {
	Resolver     *interpreter.Resolver
	WorkDir      string
	Materialize  func(ctx context.Context, exe, target string) error
	NewInstaller func(envDir string) Installer
	ProbeVersion func(exe string) (string, error)
}

func (c *Creator) Create(ctx context.Context, req Request) (res *Result, retErr error) {
	done := telemetry.StartSpan("venv.create", "dir", req.Dir, "version", req.Version, "force", req.Force)
	defer func() {
		fields := []any{"status", "ok"}
		if retErr != nil {
			fields[1] = "error"
			fields = append(fields, "error", retErr.Error())
		}
		done(fields...)
	}()

	target := req.Dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(c.WorkDir, target)
	}

	if _, err := os.Stat(target); err == nil {
		if !req.Force {
			return nil, fmt.Errorf("%s: %w", req.Dir, ErrAlreadyExists)
		}
		if err := os.RemoveAll(target); err != nil {
			return nil, fmt.Errorf("remove existing %s: %w", target, err)
		}
	}

	ref, err := c.Resolver.Resolve(req.Version)
	if err != nil {
		return nil, err
	}

	if err := c.Materialize(ctx, ref.Exe, target); err != nil {
		return nil, fmt.Errorf("create environment at %s: %w", target, err)
	}

	inst := c.NewInstaller(target)
	if err := inst.UpgradeSelf(ctx); err != nil {
		return nil, installErr("upgrade pip", err)
	}

	if req.InstallBase && len(req.BasePackages) > 0 {
		if err := inst.Install(ctx, req.BasePackages); err != nil {
			return nil, installErr("install base packages", err)
		}
	}

	if len(req.Extra) > 0 {
		if err := inst.Install(ctx, req.Extra); err != nil {
			return nil, installErr("install extra packages", err)
		}
	}

	// The manifest is project truth: it installs whenever present, even when
	// base packages were skipped.
	manifest := filepath.Join(c.WorkDir, ManifestName)
	if _, err := os.Stat(manifest); err == nil {
		if err := inst.InstallRequirements(ctx, manifest); err != nil {
			return nil, installErr("install "+ManifestName, err)
		}
	}

	// Prefer the interpreter's reported version; when probing fails the
	// requested identifier is still a truthful label for the environment.
	version := req.Version
	if c.ProbeVersion != nil {
		if v, err := c.ProbeVersion(ref.Exe); err == nil {
			version = v
		}
	}

	return &Result{Dir: target, PythonExe: PythonExe(target), Version: version}, nil
}

func installErr(step string, err error) error {
	return fmt.Errorf("%s: %w: %v", step, ErrInstallFailed, err)
}

// Materialize runs `<interpreter> -m venv <target>`.
func Materialize(ctx context.Context, exe, target string) error {
	out, err := exec.CommandContext(ctx, exe, "-m", "venv", target).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s -m venv: %v: %s", exe, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// IsEnv reports whether dir looks like a virtual environment rather than an
// arbitrary directory; pyvenv.cfg is written by every venv materializer.
func IsEnv(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "pyvenv.cfg"))
	return err == nil
}

func Remove(dir string) error {
	return os.RemoveAll(dir)
}

func PythonExe(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

func ActivateScript(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "activate.bat")
	}
	return filepath.Join(dir, "bin", "activate")
}

func BinDir(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts")
	}
	return filepath.Join(dir, "bin")
}
