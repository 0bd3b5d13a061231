// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flechette-insolente/flechette/internal/config"
)

// newConfigCommand creates the `flechette config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect flechette configuration",
		Long: `Inspect flechette configuration.

Configuration is read from config.cue or config.toml in:
  - Linux: ~/.config/flechette/
  - macOS: ~/Library/Application Support/flechette/
  - Windows: %APPDATA%\flechette\
  - then the current directory

Every key can be overridden with a FLECHETTE_ environment variable,
for example FLECHETTE_EXECUTABLE or FLECHETTE_COMPILE_STYLE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), cmd.Flags().Changed("verbosity"))
			if err != nil {
				return app.fail(cmd, err)
			}
			showConfig(cmd.OutOrStdout(), cfg, app.Platform().Code())
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), cmd.Flags().Changed("verbosity"))
			if err != nil {
				return app.fail(cmd, err)
			}
			content, err := config.ToTOML(cfg)
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, build string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	executable := cfg.Executable
	if executable == "" {
		executable = SubtitleStyle.Render(fmt.Sprintf("(bundled %s build)", build))
	} else {
		executable = valueStyle.Render(executable)
	}
	logFile := SubtitleStyle.Render("(none)")
	if cfg.LogFile != "" {
		logFile = valueStyle.Render(cfg.LogFile)
	}
	loadPaths := SubtitleStyle.Render("(none)")
	if len(cfg.Compile.LoadPaths) > 0 {
		loadPaths = valueStyle.Render(strings.Join(cfg.Compile.LoadPaths, ", "))
	}

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("executable"), executable)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("vendor_dir"), valueStyle.Render(cfg.VendorDir))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("timeout"), valueStyle.Render(cfg.Timeout.Duration().String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("verbosity"), valueStyle.Render(fmt.Sprint(int(cfg.Verbosity))))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("log_file"), logFile)
	fmt.Fprintln(w)

	fmt.Fprintln(w, SubtitleStyle.Render("Compile defaults:"))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("style"), valueStyle.Render(cfg.Compile.Style.String()))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("load_paths"), loadPaths)
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("source_map"), valueStyle.Render(fmt.Sprint(cfg.Compile.SourceMap)))
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
	if err != nil {
		return app.fail(cmd, err)
	}
	if path != "" {
		if abs, absErr := filepath.Abs(path); absErr == nil {
			path = abs
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return app.fail(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExts[0]))
	fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("(file does not exist, using defaults)"))
	return nil
}
