package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
)

// configFiles maps the config subcommand argument to a file and its
// default contents.
var configFiles = map[string]struct {
	path     func(config.Paths) string
	defaults string
}{
	"alphabets": {config.Paths.Alphabets, config.DefaultAlphabets},
	"settings":  {config.Paths.Settings, config.DefaultSettings},
	"options":   {config.Paths.Options, config.DefaultOptionsFile},
}

var configCmd = &cobra.Command{
	Use:       "config [alphabets|settings|options]",
	Hidden:    false,
	Short:     "Edit the chinfusor configuration files",
	Long:      paragraph(fmt.Sprintf("\n%s a chinfusor configuration file. We’ll use EDITOR to determine which editor to use. If the file doesn't exist, it will be created with defaults.", keyword("Edit"))),
	Example:   paragraph("sd_chinfusor config\nsd_chinfusor config settings --config-dir path/to/dir"),
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"alphabets", "settings", "options"},
	RunE: func(_ *cobra.Command, args []string) error {
		which := "alphabets"
		if len(args) == 1 {
			which = args[0]
		}

		paths, err := resolvePaths()
		if err != nil {
			return err
		}
		file := configFiles[which]
		path := file.path(paths)
		if err := ensureConfigFile(path, file.defaults); err != nil {
			return err
		}

		c, err := editor.Cmd("Chinfusor", path)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", path)
		return nil
	},
}

// ensureConfigFile writes defaults to path unless the file already exists.
func ensureConfigFile(path, defaults string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaults); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
