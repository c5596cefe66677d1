package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskmgr/pkg/agenda"
	"github.com/harrisonrobin/taskmgr/pkg/colors"
	"github.com/harrisonrobin/taskmgr/pkg/export"
	"github.com/harrisonrobin/taskmgr/pkg/model"
	"github.com/harrisonrobin/taskmgr/pkg/overdue"
)

func (a *app) newListCmd() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in load order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			palette := colors.Palette{Enabled: a.cfg.Display.Color}

			shown := 0
			for _, t := range m.List() {
				if open && t.Status().IsClosed() {
					continue
				}
				fmt.Fprintln(out, palette.Task(t))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "No tasks in the task list.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "hide closed tasks")
	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one task by its exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManager(cmd)
			if err != nil {
				return err
			}
			t, err := m.Get(args[0])
			if err != nil {
				return err
			}
			writeTask(cmd, t, colors.Palette{Enabled: a.cfg.Display.Color})
			return nil
		},
	}
}

func writeTask(cmd *cobra.Command, t *model.Task, p colors.Palette) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:        %s\n", t.Name())
	fmt.Fprintf(out, "Priority:    %s\n", p.Priority(t.Priority()))
	fmt.Fprintf(out, "Status:      %s\n", p.Status(t.Status()))
	fmt.Fprintf(out, "Kind:        %s\n", t.Kind())
	if t.HasDue() {
		fmt.Fprintf(out, "Due:         %s\n", t.Due().Format(model.DueDateLayout))
	}
	if t.Project() != "" {
		fmt.Fprintf(out, "Project:     %s\n", t.Project())
	}
	if tags := t.Tags(); len(tags) > 0 {
		fmt.Fprintf(out, "Tags:        %s\n", strings.Join(tags, ", "))
	}
	if t.Description() != "" {
		fmt.Fprintf(out, "Description: %s\n", t.Description())
	}
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that task names are unique across all sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManager(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d tasks, no duplicate names\n", m.Len())
			return nil
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list",
		Long:  "Export the task list as " + strings.Join(export.Formats, ", ") + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManager(cmd)
			if err != nil {
				return err
			}
			data, err := export.NewExporter(m).Export(format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			a.log.Info("exported task list", "format", format, "path", output, "count", m.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (a *app) newAgendaCmd() *cobra.Command {
	var previous string
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print dated tasks as Google Calendar events (JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManager(cmd)
			if err != nil {
				return err
			}
			events, err := agenda.NewConverter(a.cfg.Agenda.Duration).Events(m.List())
			if err != nil {
				return err
			}
			if previous != "" {
				data, err := os.ReadFile(previous)
				if err != nil {
					return fmt.Errorf("failed to read previous agenda: %w", err)
				}
				var old []*calendar.Event
				if err := json.Unmarshal(data, &old); err != nil {
					return fmt.Errorf("%s: %w", previous, err)
				}
				if events, err = agenda.Changed(old, events); err != nil {
					return err
				}
				a.log.Debug("compared agenda", "previous", len(old), "changed", len(events))
			}
			if events == nil {
				events = []*calendar.Event{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		},
	}
	cmd.Flags().StringVar(&previous, "previous", "", "earlier agenda output; print only new or changed events")
	return cmd
}

func (a *app) newOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List open tasks whose due date has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManager(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			palette := colors.Palette{Enabled: a.cfg.Display.Color}

			entries := overdue.FromTasks(m.List()).Sweep(time.Now())
			if len(entries) == 0 {
				fmt.Fprintln(out, "No overdue tasks.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s %s\n",
					e.Due.Format(model.DueDateLayout),
					palette.Priority(e.Priority),
					e.Name,
				)
			}
			return nil
		},
	}
}
