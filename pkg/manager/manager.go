// Package manager holds an ordered collection of tasks in which no two
// tasks share a name.
package manager

import (
	"fmt"
	"strings"
	"sync"

	"github.com/harrisonrobin/taskmgr/pkg/index"
	"github.com/harrisonrobin/taskmgr/pkg/logging"
	"github.com/harrisonrobin/taskmgr/pkg/model"
)

// Manager owns the order of its tasks; the tasks themselves may be shared
// with other code. All methods are safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	tasks []*model.Task
	index *index.NameIndex
	log   *logging.Logger
}

// Option configures a Manager in New.
type Option func(*Manager)

// WithLogger sends debug entries for every mutation to l.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New builds a manager holding tasks in the given order. If two tasks share a
// name it returns a *DuplicateTaskError naming every repeated name and no
// manager.
func New(tasks []*model.Task, opts ...Option) (*Manager, error) {
	m := &Manager{
		index: index.NewNameIndex(),
		log:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	names := make([]string, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return nil, fmt.Errorf("%w: position %d", ErrNilTask, i)
		}
		names[i] = t.Name()
	}
	if dups := m.index.Build(names); len(dups) > 0 {
		m.log.Debug("rejected duplicate tasks", "names", dups)
		return nil, &DuplicateTaskError{Names: dups}
	}

	m.tasks = append(make([]*model.Task, 0, len(tasks)), tasks...)
	m.log.Debug("task manager created", "tasks", len(m.tasks))
	return m, nil
}

// Add appends task. A task with the same name already present is a
// *DuplicateTaskError and leaves the manager unchanged.
func (m *Manager) Add(task *model.Task) error {
	if task == nil {
		return ErrNilTask
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index.Has(task.Name()) {
		return &DuplicateTaskError{Names: []string{task.Name()}}
	}
	m.index.Set(task.Name(), len(m.tasks))
	m.tasks = append(m.tasks, task)
	m.log.Debug("task added", "task", task.Name(), "tasks", len(m.tasks))
	return nil
}

// Remove drops the task called name and returns it. The remaining tasks keep
// their relative order.
func (m *Manager) Remove(name string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, ok := m.index.Get(name)
	if !ok {
		return nil, &TaskNotFoundError{Name: name}
	}
	removed := m.tasks[pos]
	m.tasks = append(m.tasks[:pos:pos], m.tasks[pos+1:]...)
	m.index.Remove(name)
	m.log.Debug("task removed", "task", name, "tasks", len(m.tasks))
	return removed, nil
}

// Get returns the task called name, the same pointer that was added.
func (m *Manager) Get(name string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pos, ok := m.index.Get(name)
	if !ok {
		return nil, &TaskNotFoundError{Name: name}
	}
	return m.tasks[pos], nil
}

// Contains reports whether a task called name is held.
func (m *Manager) Contains(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.Has(name)
}

// List returns the tasks in insertion order. The slice is a copy; changing
// it does not affect the manager.
func (m *Manager) List() []*model.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*model.Task(nil), m.tasks...)
}

// Len returns the number of tasks held.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// String renders a numbered listing:
//
//	Task List:
//	  1.	Fix login (High, In Progress)
//	  2.	Write docs (Low, Accepted)
func (m *Manager) String() string {
	var b strings.Builder
	b.WriteString("Task List:\n")
	tasks := m.List()
	if len(tasks) == 0 {
		b.WriteString("  - No tasks in the task list.\n")
		return b.String()
	}
	for i, t := range tasks {
		fmt.Fprintf(&b, "  %d.\t%s\n", i+1, t)
	}
	return b.String()
}
