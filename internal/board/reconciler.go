package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"aventra/internal/models"
)

// Strategy selects how the cache follows a successful mutation.
type Strategy string

const (
	// StrategyReload refetches the whole board after every mutation.
	StrategyReload Strategy = "reload"
	// StrategyPatch applies the confirmed change to the cached record only.
	StrategyPatch Strategy = "patch"

	DefaultStrategy = StrategyReload
)

func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultStrategy, nil
	case StrategyReload:
		return StrategyReload, nil
	case StrategyPatch:
		return StrategyPatch, nil
	default:
		return "", fmt.Errorf("invalid sync strategy %q (want %s or %s)", raw, StrategyReload, StrategyPatch)
	}
}

// MoveOutcome reports what a status move did.
type MoveOutcome int

const (
	MoveNoop MoveOutcome = iota
	MoveApplied
)

func (o MoveOutcome) String() string {
	if o == MoveApplied {
		return "applied"
	}
	return "noop"
}

type Options struct {
	UserID   int64
	Strategy Strategy
	Notifier Notifier
	Logger   *slog.Logger
}

// Reconciler keeps the cached board in step with the remote task store.
// Status changes are written to the cache only after the store confirms them.
type Reconciler struct {
	tasks    TaskStore
	projects ProjectStore
	cache    *Cache
	userID   int64
	strategy Strategy
	notifier Notifier
	logger   *slog.Logger
	lanes    *lanes
}

func New(tasks TaskStore, projects ProjectStore, cache *Cache, opts Options) *Reconciler {
	if cache == nil {
		cache = NewCache()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	userID := opts.UserID
	if userID <= 0 {
		userID = 1
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = DefaultStrategy
	}

	return &Reconciler{
		tasks:    tasks,
		projects: projects,
		cache:    cache,
		userID:   userID,
		strategy: strategy,
		notifier: notifier,
		logger:   logger.With("component", "board"),
		lanes:    newLanes(),
	}
}

func (r *Reconciler) Cache() *Cache {
	return r.cache
}

func (r *Reconciler) UserID() int64 {
	return r.userID
}

func (r *Reconciler) Strategy() Strategy {
	return r.strategy
}

func (r *Reconciler) Snapshot() Snapshot {
	return r.cache.Snapshot()
}

// Projection derives the columns from the current snapshot.
func (r *Reconciler) Projection() Projection {
	return Project(r.cache.Snapshot().Tasks)
}

// Load mounts the board.
func (r *Reconciler) Load(ctx context.Context) error {
	return r.reload(ctx, "load board")
}

// Reload replaces the board with a fresh copy from the stores.
func (r *Reconciler) Reload(ctx context.Context) error {
	return r.reload(ctx, "reload board")
}

// Unmount discards the cached board.
func (r *Reconciler) Unmount() {
	r.cache.Discard()
}

func (r *Reconciler) reload(ctx context.Context, action string) error {
	mark := r.cache.Mark()

	var (
		tasks    []models.Task
		projects []models.Project
		g        errgroup.Group
	)

	// Projects only label cards, so their failure must not block the tasks.
	g.Go(func() error {
		list, err := r.projects.ListProjects(ctx, r.userID)
		if err != nil {
			r.logger.Warn("project list unavailable", "user_id", r.userID, "error", err)
			projects = []models.Project{}
			return nil
		}
		projects = list
		return nil
	})
	g.Go(func() error {
		list, err := r.tasks.ListTasks(ctx, r.userID)
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		tasks = list
		return nil
	})

	if err := g.Wait(); err != nil {
		r.cache.ReplaceProjectsSince(mark, projects)
		r.notifier.Alert(action, err)
		return err
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	if !r.cache.ReplaceSince(mark, tasks, projects) {
		r.logger.Debug("dropped outdated board snapshot", "action", action)
		return nil
	}
	r.logger.Debug("board loaded", "action", action, "tasks", len(tasks), "projects", len(projects))
	return nil
}

// Move changes a task's column. Moving a task onto its own column is a no-op
// that sends nothing. The cache changes only after the store accepts the new
// status; on failure the user is alerted and the cache is left alone.
func (r *Reconciler) Move(ctx context.Context, id int64, target models.Column) (MoveOutcome, error) {
	if _, ok := models.ParseColumn(string(target)); !ok {
		return MoveNoop, fmt.Errorf("%w: %q", ErrInvalidColumn, target)
	}
	task, ok := r.cache.Find(id)
	if !ok {
		return MoveNoop, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if task.Column() == target {
		return MoveNoop, nil
	}

	release, err := r.lanes.acquire(ctx, id)
	if err != nil {
		return MoveNoop, err
	}

	// An earlier request for the same task may have landed while waiting.
	task, ok = r.cache.Find(id)
	if !ok {
		release()
		return MoveNoop, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	from := task.Column()
	if from == target {
		release()
		return MoveNoop, nil
	}

	if err := r.tasks.UpdateTaskStatus(ctx, id, string(target)); err != nil {
		release()
		err = fmt.Errorf("move task %d to %s: %w", id, target, err)
		r.notifier.Alert("move task", err)
		return MoveNoop, err
	}
	r.cache.SetStatus(id, string(target))
	release()

	r.logger.Debug("task moved", "task_id", id, "from", from, "to", target)
	r.afterMutation(ctx)
	return MoveApplied, nil
}

func (r *Reconciler) afterMutation(ctx context.Context) {
	if r.strategy != StrategyReload || !r.cache.Mounted() {
		return
	}
	// The mutation itself succeeded; reload failures are alerted by reload.
	_ = r.reload(ctx, "reload board")
}
