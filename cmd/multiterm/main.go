// Package main implements multiterm, a keyboard-driven terminal workspace
// manager with tiling, monocle, and tabbed layouts across nine workspaces.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/wallon-qodo/multi-term-sub000/internal/config"
	"github.com/wallon-qodo/multi-term-sub000/internal/snapshot"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var debugMode bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "multiterm",
		Short: "Tiling terminal workspace manager",
		Long: `multiterm - Tiling terminal workspace manager

A terminal multiplexer frontend that arranges panes with binary space
partitioning. Nine workspaces, each switchable between tiled, monocle,
and tabbed layouts, all driven by a tmux-style prefix key.`,
		Example: `  # Run multiterm
  multiterm

  # Run with debug logging
  multiterm --debug

  # Print the configuration file path
  multiterm config path`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage multiterm configuration",
		Long:  `Manage the multiterm configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(config.ConfigPath())
			return nil
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	stateClearCmd := &cobra.Command{
		Use:   "clear-state",
		Short: "Delete the saved session snapshot",
		Long:  `Delete the saved workspace arrangement so the next launch starts empty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := snapshot.StatePath()
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove snapshot: %w", err)
			}
			fmt.Printf("Removed %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(configCmd, stateClearCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

// editConfigFile opens the config file in the user's editor, creating a
// default file first if none exists.
func editConfigFile() error {
	configPath := config.ConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// resetConfigToDefaults overwrites the configuration file after confirmation.
func resetConfigToDefaults() error {
	configPath := config.ConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Println("Configuration reset to defaults")
	fmt.Printf("  Location: %s\n", configPath)
	return nil
}
