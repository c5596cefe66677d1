package manager

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrDuplicateTask = errors.New("duplicate task")
	ErrTaskNotFound  = errors.New("task not found")
	ErrNilTask       = errors.New("task must not be nil")
)

// DuplicateTaskError is returned when construction or Add would hold two
// tasks with the same name.
type DuplicateTaskError struct {
	Names []string
}

func (e *DuplicateTaskError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return fmt.Sprintf("duplicate task: %s already in the task list", strings.Join(quoted, ", "))
}

func (e *DuplicateTaskError) Is(target error) bool {
	return target == ErrDuplicateTask
}

// TaskNotFoundError is returned when Get or Remove names a task the manager
// does not hold.
type TaskNotFoundError struct {
	Name string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("no task found with name %q", e.Name)
}

func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}
