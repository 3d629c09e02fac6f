// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/infra/config"
	"github.com/runoshun/goals/internal/infra/gitstore"
	"github.com/runoshun/goals/internal/infra/jsonstore"
	"github.com/runoshun/goals/internal/infra/logging"
	"github.com/runoshun/goals/internal/infra/prompt"
	"github.com/runoshun/goals/internal/infra/sqlitestore"
	"github.com/runoshun/goals/internal/tui"
	"github.com/runoshun/goals/internal/usecase"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// Options holds the values the container is built from.
// Fields are ordered to minimize memory padding.
type Options struct {
	In         io.Reader // Answers (os.Stdin)
	Out        io.Writer // Prompts and output (os.Stdout)
	ConfigPath string    // Config file (default: XDG location)
	DataDir    string    // Default directory for the database and log (default: XDG location)
	DBPath     string    // SQLite file overriding the configured store
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Goals            domain.WeeklyGoalRepository
	Objectives       domain.DailyObjectiveRepository
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	Prompter         domain.Prompter
	Presenter        domain.Presenter
	Logger           domain.Logger
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager

	// Configuration
	Config        *domain.Config
	StoreLocation string // Database file or repository shown to the user

	closers []io.Closer
}

// New loads the configuration and creates the terminal adapters and logger.
// The store is opened separately by OpenStore.
func New(opts Options) (*Container, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultConfigPath()
	}
	if opts.DataDir == "" {
		opts.DataDir = config.DefaultDataDir()
	}

	loader := flagLoader{
		base:   config.NewLoaderWithPaths(opts.ConfigPath, opts.DataDir),
		dbPath: opts.DBPath,
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))

	styles := tui.PlainStyles()
	if isTerminal(opts.Out) {
		styles = tui.DefaultStyles()
	}
	var prompter domain.Prompter = prompt.NewLine(opts.In, opts.Out)
	if isTerminal(opts.In) {
		prompter = tui.NewPrompter(opts.In, opts.Out, styles)
	}

	return &Container{
		Clock:         domain.RealClock{},
		Prompter:      prompter,
		Presenter:     tui.NewPresenter(opts.Out, styles),
		Logger:        logger,
		ConfigLoader:  loader,
		ConfigManager: config.NewManagerWithPath(opts.ConfigPath),
		Config:        cfg,
		closers:       []io.Closer{logger},
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The store is considered open.
func NewWithDeps(
	cfg *domain.Config,
	goals domain.WeeklyGoalRepository,
	objectives domain.DailyObjectiveRepository,
	tasks domain.TaskRepository,
	storeInit domain.StoreInitializer,
	clock domain.Clock,
	prompter domain.Prompter,
	presenter domain.Presenter,
	logger domain.Logger,
) *Container {
	return &Container{
		Goals:            goals,
		Objectives:       objectives,
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Clock:            clock,
		Prompter:         prompter,
		Presenter:        presenter,
		Logger:           logger,
		Config:           cfg,
		StoreLocation:    cfg.Store.Path,
	}
}

// OpenStore opens the configured backend and binds the repository ports.
// Calling it again once the store is open does nothing.
func (c *Container) OpenStore() error {
	if c.Tasks != nil {
		return nil
	}

	switch c.Config.Store.Type {
	case domain.StoreGit:
		store, err := gitstore.New(c.Config.Store.Repo, c.Config.Store.Namespace)
		if err != nil {
			return err
		}
		c.Goals = store.WeeklyGoals()
		c.Objectives = store.DailyObjectives()
		c.Tasks = store
		c.StoreInitializer = store
		c.StoreLocation = fmt.Sprintf("%s (refs/%s/)", c.Config.Store.Repo, c.Config.Store.Namespace)
	case domain.StoreJSON:
		store := jsonstore.New(c.Config.Store.Path)
		c.Goals = store.WeeklyGoals()
		c.Objectives = store.DailyObjectives()
		c.Tasks = store
		c.StoreInitializer = store
		c.StoreLocation = store.Path()
	default:
		db, err := sqlitestore.Open(c.Config.Store.Path)
		if err != nil {
			return err
		}
		c.Goals = sqlitestore.NewWeeklyGoalRepository(db)
		c.Objectives = sqlitestore.NewDailyObjectiveRepository(db)
		c.Tasks = sqlitestore.NewTaskRepository(db)
		c.StoreInitializer = db
		c.StoreLocation = db.Path()
		c.closers = append(c.closers, db)
	}

	c.Logger.Debug("store", "opened "+c.StoreLocation)
	return nil
}

// Close releases the store and the log file.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer, c.StoreLocation)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// SetWeeklyGoalUseCase returns a new SetWeeklyGoal use case.
func (c *Container) SetWeeklyGoalUseCase() *usecase.SetWeeklyGoal {
	return usecase.NewSetWeeklyGoal(c.weeklyGoalStore(), c.Prompter, c.Presenter)
}

// SetDailyObjectiveUseCase returns a new SetDailyObjective use case.
func (c *Container) SetDailyObjectiveUseCase() *usecase.SetDailyObjective {
	return usecase.NewSetDailyObjective(c.weeklyGoalStore(), c.dailyObjectiveStore(), c.Prompter, c.Presenter)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// ResolveTaskUseCase returns a new ResolveTask use case.
func (c *Container) ResolveTaskUseCase() *usecase.ResolveTask {
	return usecase.NewResolveTask(c.Tasks)
}

// RunWizardUseCase returns a new RunWizard use case.
func (c *Container) RunWizardUseCase() *usecase.RunWizard {
	return usecase.NewRunWizard(usecase.WizardDeps{
		Clock:      c.Clock,
		Goals:      c.weeklyGoalStore(),
		Objectives: c.dailyObjectiveStore(),
		Tasks:      c.Tasks,
		Unfinished: usecase.NewListUnfinished(c.Tasks),
		Reconcile:  usecase.NewReconcileTasks(c.Tasks, c.Prompter, c.Logger),
		Collect:    usecase.NewCollectTasks(c.Prompter),
		Persist:    usecase.NewPersistTasks(c.Tasks, c.Logger),
		Presenter:  c.Presenter,
		Logger:     c.Logger,
	})
}

func (c *Container) weeklyGoalStore() *shared.PeriodStore[domain.WeekKey] {
	return shared.NewWeeklyGoalStore(c.Goals, c.Prompter, c.Logger)
}

func (c *Container) dailyObjectiveStore() *shared.PeriodStore[domain.DayKey] {
	return shared.NewDailyObjectiveStore(c.Objectives, c.Prompter, c.Logger)
}

// flagLoader applies command-line overrides on top of the file configuration.
type flagLoader struct {
	base   domain.ConfigLoader
	dbPath string
}

// Load implements domain.ConfigLoader. --db selects the SQLite store at that path.
func (l flagLoader) Load() (*domain.Config, error) {
	cfg, err := l.base.Load()
	if err != nil {
		return nil, err
	}
	if l.dbPath != "" {
		cfg.Store.Type = domain.StoreSQLite
		cfg.Store.Path = l.dbPath
	}
	return cfg, nil
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
