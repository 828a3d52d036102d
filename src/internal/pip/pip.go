// Package pip shells out to the pip binary inside a virtual environment.
package pip

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rozeraf/mkvenv/src/internal/telemetry"
)

type Client struct {
	EnvDir string
}

func New(envDir string) *Client {
	return &Client{EnvDir: envDir}
}

func (c *Client) Binary() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(c.EnvDir, "Scripts", "pip.exe")
	}
	return filepath.Join(c.EnvDir, "bin", "pip")
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	done := telemetry.StartSpan("pip.run", "env", c.EnvDir, "arg0", args[0])
	out, err := exec.CommandContext(ctx, c.Binary(), args...).CombinedOutput()
	if err != nil {
		done("status", "error", "error", err.Error())
		return out, fmt.Errorf("pip %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	done("status", "ok", "output_bytes", len(out))
	return out, nil
}

func (c *Client) Install(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	_, err := c.run(ctx, append([]string{"install"}, pkgs...)...)
	return err
}

// UpgradeSelf brings the environment's own pip up to date. A stale pip is
// treated as a broken environment by the creator, so callers must not ignore
// the error.
func (c *Client) UpgradeSelf(ctx context.Context) error {
	_, err := c.run(ctx, "install", "--upgrade", "pip")
	return err
}

func (c *Client) InstallRequirements(ctx context.Context, path string) error {
	_, err := c.run(ctx, "install", "-r", path)
	return err
}

func (c *Client) Freeze(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "freeze")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (c *Client) List(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "list")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PurgeCache clears pip's global download cache. It is not tied to any single
// environment, so it runs against whichever pip is on PATH.
func PurgeCache(ctx context.Context) error {
	for _, name := range []string{"pip3", "pip"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		out, err := exec.CommandContext(ctx, name, "cache", "purge").CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s cache purge: %v: %s", name, err, strings.TrimSpace(string(out)))
		}
		return nil
	}
	return fmt.Errorf("no pip binary found on PATH")
}
