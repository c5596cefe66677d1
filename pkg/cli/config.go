package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskmgr/pkg/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify taskmgr configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(out, "Config file: %s\n", used)
			} else {
				fmt.Fprintln(out, "Config file: (none - using defaults)")
			}
			for _, key := range config.Keys {
				fmt.Fprintf(out, "%s: %v\n", key, a.v.Get(key))
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the user's config file.

Valid keys:
  log.level          - DEBUG, INFO, WARN or ERROR
  log.file           - log file path; empty logs to stderr
  display.color      - colored output (true/false)
  defaults.priority  - priority for task file entries without one
  defaults.kind      - kind for task file entries without one
  agenda.duration    - calendar event length, e.g. 30m`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(a.v, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			used := a.v.ConfigFileUsed()
			if used == "" {
				used = config.GetConfigPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), used)
			return nil
		},
	}

	cmd.AddCommand(show, set, path)
	return cmd
}
