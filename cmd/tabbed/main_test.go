package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hinke/tabbed/internal/config"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--version"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "tabbed "+version+"\n" {
		t.Errorf("output = %q, want version line", got)
	}
}

func TestRunWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabbed", "config.toml")

	var out bytes.Buffer
	err := run([]string{
		"--config", path,
		"--key-policy", "index",
		"--log-file", "tabbed.log",
		"--write-config",
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output = %q, want it to name %s", out.String(), path)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Content.KeyPolicy != "index" {
		t.Errorf("key_policy = %q, want %q", cfg.Content.KeyPolicy, "index")
	}
	if cfg.Log.File != "tabbed.log" {
		t.Errorf("log file = %q, want %q", cfg.Log.File, "tabbed.log")
	}
	if cfg.Undo.DelayMS != 2000 {
		t.Errorf("delay_ms = %d, want default 2000", cfg.Undo.DelayMS)
	}
}

func TestRunWriteConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	err := run([]string{"--config", path, "--key-policy", "nope", "--write-config"}, &bytes.Buffer{})
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("run error = %v, want ErrInvalid", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("config file written despite invalid flags: %v", err)
	}
}
