// Package cli implements the taskmgr command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harrisonrobin/taskmgr/pkg/config"
	"github.com/harrisonrobin/taskmgr/pkg/logging"
	"github.com/harrisonrobin/taskmgr/pkg/manager"
	"github.com/harrisonrobin/taskmgr/pkg/model"
	"github.com/harrisonrobin/taskmgr/pkg/orgmode"
	"github.com/harrisonrobin/taskmgr/pkg/taskfile"
	"github.com/harrisonrobin/taskmgr/pkg/taskwarrior"
)

type options struct {
	configFile  string
	files       []string
	taskwarrior string
	fromTask    bool
	taskFilter  []string
	orgFiles    []string
	logLevel    string
	noColor     bool
}

// app carries the state shared by every sub-command of one invocation.
type app struct {
	opts options
	v    *viper.Viper
	cfg  *config.Config
	log  *logging.Logger
}

// Execute runs the root command
func Execute() error {
	return execute(newRootCmd())
}

// execute runs root and closes the log afterwards, including when the
// command failed and cobra skipped its post-run hooks.
func execute(root *cobra.Command, a *app) error {
	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "taskmgr",
		Short: "Inspect a task list gathered from task files, taskwarrior and org-mode",
		Long: `taskmgr loads tasks from YAML task files, taskwarrior exports and org-mode
files into a single task list in which every task name is unique.

Tasks whose names collide across sources are reported and the command fails.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configFile, "config", "c", "", "config file (default is $HOME/.config/taskmgr/config.yaml)")
	flags.StringArrayVarP(&a.opts.files, "file", "f", nil, "YAML task file (repeatable)")
	flags.StringVar(&a.opts.taskwarrior, "taskwarrior", "", "taskwarrior export JSON file, or - for stdin")
	flags.BoolVar(&a.opts.fromTask, "from-task", false, "import tasks by running 'task export'")
	flags.StringArrayVar(&a.opts.taskFilter, "task-filter", nil, "filter argument passed to taskwarrior with --from-task (repeatable)")
	flags.StringArrayVar(&a.opts.orgFiles, "org", nil, "org-mode file (repeatable)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR (overrides log.level)")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.newListCmd(),
		a.newShowCmd(),
		a.newCheckCmd(),
		a.newExportCmd(),
		a.newAgendaCmd(),
		a.newOverdueCmd(),
		a.newConfigCmd(),
	)
	return root, a
}

func (a *app) close() error {
	if a.log == nil {
		return nil
	}
	return a.log.Close()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	v, err := config.New(a.opts.configFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if a.opts.logLevel != "" {
		if !logging.ValidLevel(a.opts.logLevel) {
			return fmt.Errorf("invalid --log-level %q", a.opts.logLevel)
		}
		cfg.Log.Level = a.opts.logLevel
	}
	if a.opts.noColor {
		cfg.Display.Color = false
	}

	logger, err := logging.NewLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	a.v, a.cfg, a.log = v, cfg, logger.With("command", cmd.Name())
	return nil
}

// loadManager gathers tasks from every configured source into one manager.
// All sources are read before the manager is built so that every duplicate
// name is reported together.
func (a *app) loadManager(cmd *cobra.Command) (*manager.Manager, error) {
	var tasks []*model.Task
	defaults := taskfile.Defaults{Priority: a.cfg.DefaultPriority(), Kind: a.cfg.DefaultKind()}

	for _, path := range a.opts.files {
		loaded, err := taskfile.Load(path, defaults)
		if err != nil {
			return nil, err
		}
		a.log.Debug("loaded task file", "path", path, "count", len(loaded))
		tasks = append(tasks, loaded...)
	}

	tw := taskwarrior.NewClient()
	switch a.opts.taskwarrior {
	case "":
	case "-":
		loaded, err := tw.ReadTasks(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		a.log.Debug("loaded taskwarrior export", "path", "-", "count", len(loaded))
		tasks = append(tasks, loaded...)
	default:
		f, err := os.Open(a.opts.taskwarrior)
		if err != nil {
			return nil, fmt.Errorf("failed to open taskwarrior export: %w", err)
		}
		loaded, err := tw.ReadTasks(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.opts.taskwarrior, err)
		}
		a.log.Debug("loaded taskwarrior export", "path", a.opts.taskwarrior, "count", len(loaded))
		tasks = append(tasks, loaded...)
	}
	if a.opts.fromTask {
		loaded, err := tw.Export(a.opts.taskFilter)
		if err != nil {
			return nil, err
		}
		a.log.Debug("ran taskwarrior export", "filter", a.opts.taskFilter, "count", len(loaded))
		tasks = append(tasks, loaded...)
	}

	if len(a.opts.orgFiles) > 0 {
		loaded, err := orgmode.ParseFiles(a.opts.orgFiles)
		if err != nil {
			return nil, err
		}
		a.log.Debug("loaded org files", "count", len(loaded))
		tasks = append(tasks, loaded...)
	}

	m, err := manager.New(tasks, manager.WithLogger(a.log))
	if err != nil {
		a.log.Debug("task list rejected", "error", err)
		return nil, err
	}
	return m, nil
}
