package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

const appVersion = "0.2.0"

// cliRuntime carries flag values and the opened storage between the root
// command's hooks and its subcommands.
type cliRuntime struct {
	configPath string
	backend    string
	dbPath     string
	logFormat  string
	verbose    bool

	cfg     Config
	storage Storage
	app     *App
	logger  *slog.Logger
}

// needsState reports whether cmd works on the stored rows. Help and shell
// completion must not create the storage file.
func needsState(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || strings.HasPrefix(cmd.Name(), "__complete") {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return false
		}
	}
	return true
}

// open loads config, opens storage and restores the rows.
func (rt *cliRuntime) open(cmd *cobra.Command) error {
	cfg, err := LoadConfig(rt.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("backend") {
		cfg.Storage.Backend = rt.backend
	}
	if cmd.Flags().Changed("db") {
		cfg.Storage.Path = rt.dbPath
	}
	rt.cfg = cfg

	logger := NewLogger(cmd.ErrOrStderr(), rt.logFormat, rt.verbose)
	rt.logger = logger

	storage, err := OpenStorage(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		return err
	}
	rt.storage = storage
	logger.Debug("opened storage", "backend", cfg.Storage.Backend, "path", cfg.StoragePath())

	rt.app = NewApp(NewRowStore(storage, logger), cmd.OutOrStdout(), logger)

	return rt.app.Restore()
}

func (rt *cliRuntime) Close() error {
	if rt.storage == nil {
		return nil
	}
	err := rt.storage.Close()
	rt.storage = nil
	return err
}

// Logger is the logger built from the flags, or the default one before the
// flags were applied.
func (rt *cliRuntime) Logger() *slog.Logger {
	if rt.logger == nil {
		return slog.Default()
	}
	return rt.logger
}

// closeAndLog closes storage, reporting a failure through the configured logger.
func (rt *cliRuntime) closeAndLog() {
	if err := rt.Close(); err != nil {
		rt.Logger().Warn("failed to close storage", "error", err)
	}
}

func SetupCommands(rt *cliRuntime) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "timesum",
		Short:         "Sum durations entered as HH:MM:SS.mmm rows",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsState(cmd) {
				return nil
			}
			return rt.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.Display(rt.cfg.Display.Format)
		},
	}
	rootCmd.SetVersionTemplate("timesum v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&rt.configPath, "config", DefaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&rt.backend, "backend", BackendSQLite, "Storage backend (sqlite, bolt, memory)")
	rootCmd.PersistentFlags().StringVar(&rt.dbPath, "db", "", "Storage file (default depends on backend)")
	rootCmd.PersistentFlags().StringVar(&rt.logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable debug logging")

	// command for appending a blank row
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a blank row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.AddRow(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added row %d\n", len(rt.app.Rows()))
			return nil
		},
	}

	// command for removing a row, without an index a menu is shown
	removeCmd := &cobra.Command{
		Use:   "remove [row]",
		Short: "Remove a row",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var index int
			if len(args) > 0 {
				i, err := parseRowIndex(args[0])
				if err != nil {
					return err
				}
				index = i
			} else {
				i, ok, err := PickRow(rt.app.Rows())
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				index = i
			}

			if err := rt.app.RemoveRow(index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed row %d\n", index+1)
			return nil
		},
	}

	// command for editing a single field of a row
	setCmd := &cobra.Command{
		Use:   "set <row> <field> [value]",
		Short: "Set a field of a row",
		Long:  "Set hours, minutes, seconds or milliseconds of a row. The value is clamped to the field's range.",
		Args:  cobra.RangeArgs(2, 3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, f := range Fields {
				names = append(names, f.String())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRowIndex(args[0])
			if err != nil {
				return err
			}
			field, err := ParseFieldName(args[1])
			if err != nil {
				return err
			}
			var value string
			if len(args) == 3 {
				value = args[2]
			}

			stored, err := rt.app.EditField(index, field, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Row %d %s = %s\n", index+1, field, stored)
			return nil
		},
	}

	// values like -5 are arguments, not flags
	setCmd.Flags().SetInterspersed(false)

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the total of all rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", totalStyle.Render(rt.app.Calculate()))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all rows and stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared all rows\nTotal: %s\n", rt.app.Total())
			return nil
		},
	}

	var outputFormat string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show rows and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := rt.cfg.Display.Format
			if cmd.Flags().Changed("output") {
				format = outputFormat
			}
			return rt.app.Display(format)
		},
	}
	showCmd.Flags().StringVarP(&outputFormat, "output", "o", FormatTable, "Output format (table, json, yaml)")

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write rows to a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.Export(args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file|url>",
		Short: "Replace rows with a snapshot from a file or URL",
		Long:  "Replace rows with a snapshot from a file or URL. Both export output (a row list) and show -o json|yaml output are accepted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.Import(args[0])
		},
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := NewShell(rt.app)
			if err != nil {
				return err
			}
			return sh.Run()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit rows in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(rt.app)
		},
	}

	// add commands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(tuiCmd)

	return rootCmd
}
