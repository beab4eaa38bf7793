package bancho

import (
	"log/slog"
	"sync"
	"time"
)

// Task is one scheduled callback. Loop tasks re-arm after every run;
// one-shot tasks are removed after their first run.
type Task struct {
	Name     string
	Run      func()
	Interval time.Duration
	Loop     bool
	Threaded bool

	lastRun time.Time
}

// TaskManager owns the scheduled callbacks. Execute is called once per
// main-loop cycle; due tasks run on the driver or, when marked threaded,
// on the worker pool.
type TaskManager struct {
	mu     sync.Mutex
	tasks  []*Task
	pool   *WorkerPool
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskManager creates an empty manager backed by the given pool.
func NewTaskManager(pool *WorkerPool, logger *slog.Logger) *TaskManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskManager{
		pool:   pool,
		logger: logger,
		now:    time.Now,
	}
}

// Register schedules a task. The first run happens one interval from now.
func (tm *TaskManager) Register(task *Task) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	task.lastRun = tm.now()
	tm.tasks = append(tm.tasks, task)
}

// Seed installs preconstructed tasks, replacing the current list.
func (tm *TaskManager) Seed(tasks []*Task) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	now := tm.now()
	for _, t := range tasks {
		t.lastRun = now
	}
	tm.tasks = tasks
}

// Len returns the number of scheduled tasks.
func (tm *TaskManager) Len() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.tasks)
}

// Execute runs every due task exactly once and drops finished one-shots.
func (tm *TaskManager) Execute() {
	tm.mu.Lock()
	now := tm.now()

	var due []*Task
	remaining := tm.tasks[:0]
	for _, task := range tm.tasks {
		if now.Sub(task.lastRun) < task.Interval {
			remaining = append(remaining, task)
			continue
		}
		task.lastRun = now
		due = append(due, task)
		if task.Loop {
			remaining = append(remaining, task)
		}
	}
	tm.tasks = remaining
	tm.mu.Unlock()

	for _, task := range due {
		if task.Threaded {
			tm.pool.Submit(task.Run)
			continue
		}
		tm.run(task)
	}
}

func (tm *TaskManager) run(task *Task) {
	defer func() {
		if r := recover(); r != nil {
			tm.logger.Error("panic in task", "task", task.Name, "panic", r)
		}
	}()
	task.Run()
}
