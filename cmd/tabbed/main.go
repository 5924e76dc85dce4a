// tabbed is a terminal tab switcher. Each content tab owns a details
// toggle and a like counter that reset whenever the tab's identity
// changes; the last tab is a panel of a different kind.
package main

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/pflag"

	"github.com/hinke/tabbed/internal/config"
	"github.com/hinke/tabbed/internal/logging"
	"github.com/hinke/tabbed/internal/tui"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		configPath  string
		contentPath string
		keyPolicy   string
		logFile     string
		writeConfig bool
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("tabbed", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", config.DefaultPath(), "path to the TOML config file")
	flagSet.StringVar(&contentPath, "content", "", "tab content file (.toml, .yaml or .yml)")
	flagSet.StringVar(&keyPolicy, "key-policy", "", "tab identity key: summary, id or index")
	flagSet.StringVar(&logFile, "log-file", "", "write JSON log records to this file")
	flagSet.BoolVar(&writeConfig, "write-config", false, "save the merged config to --config and exit")
	flagSet.BoolVarP(&showVersion, "version", "v", false, "print the version and exit")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Fprintf(stdout, "tabbed %s\n", version)
		return nil
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if contentPath != "" {
		cfg.Content.File = contentPath
	}
	if keyPolicy != "" {
		cfg.Content.KeyPolicy = keyPolicy
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if writeConfig {
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(stdout, "wrote %s\n", configPath)
		return nil
	}

	level, _ := cfg.Log.SlogLevel()
	logger, closeLog, err := logging.Open(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closeLog()

	records, err := cfg.Records()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	logger.Info("starting",
		"version", version,
		"records", len(records),
		"key_policy", cfg.Content.KeyPolicy,
		"undo_delay", cfg.UndoDelay().String(),
	)

	p := tea.NewProgram(tui.NewApp(cfg, records, logger))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
