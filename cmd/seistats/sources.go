package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"seistats/internal/config"
	"seistats/internal/format"
	"seistats/internal/logging"
	"seistats/internal/results"
)

// sourceFlags is the flag set shared by every command that runs the
// aggregation pipeline.
type sourceFlags struct {
	dirs       []string
	files      []string
	sort       bool
	debug      string
	logFormat  string
	markdown   bool
	configPath string
}

func (sf *sourceFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&sf.dirs, "dirs", nil, "Directories to scan for result files")
	f.StringSliceVar(&sf.files, "files", nil, "Explicit result file paths (default: results.json)")
	f.BoolVar(&sf.sort, "sort", false, "Sort directory entries lexically before parsing")
	f.StringVar(&sf.debug, "debug", "info", "Log level: debug, info, warn, error")
	f.StringVar(&sf.logFormat, "log-format", "text", "Log format: text or json")
	f.BoolVar(&sf.markdown, "markdown", false, "Render tables as Markdown")
	f.StringVar(&sf.configPath, "config", "", "Config file path (default: "+config.DefaultPath+" if present)")
	cmd.MarkFlagsMutuallyExclusive("dirs", "files")
}

// resolve merges config-file defaults under explicitly set flags, initializes
// logging and returns the sources to enumerate. Flags win over file values.
func (sf *sourceFlags) resolve(cmd *cobra.Command) (results.Sources, error) {
	cfg, err := sf.loadConfig()
	if err != nil {
		return results.Sources{}, err
	}
	if cfg != nil {
		flags := cmd.Flags()
		if !flags.Changed("dirs") && !flags.Changed("files") {
			sf.dirs = cfg.Dirs
			sf.files = cfg.Files
		}
		if !flags.Changed("sort") {
			sf.sort = cfg.Sort
		}
		if !flags.Changed("debug") && cfg.Debug != "" {
			sf.debug = cfg.Debug
		}
		if !flags.Changed("markdown") {
			sf.markdown = cfg.Markdown
		}
	}

	level, err := logging.ParseLevel(sf.debug)
	if err != nil {
		return results.Sources{}, err
	}
	logging.Init(level, sf.logFormat)

	if len(sf.dirs) == 0 && len(sf.files) == 0 {
		sf.files = []string{"results.json"}
	}
	return results.Sources{Dirs: sf.dirs, Files: sf.files, Sorted: sf.sort}, nil
}

// loadConfig reads the config file. An explicit --config path must exist; the
// default path is optional.
func (sf *sourceFlags) loadConfig() (*config.Config, error) {
	if sf.configPath != "" {
		cfg, err := config.LoadFromPath(sf.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadFromPath(config.DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (sf *sourceFlags) tableMode() format.Mode {
	if sf.markdown {
		return format.Markdown
	}
	return format.ASCII
}

func printTable(s string) {
	fmt.Fprintln(os.Stdout, s)
}
