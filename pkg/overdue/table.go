package overdue

import (
	"sort"
	"time"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

type Entry struct {
	Name     string
	Priority model.Priority
	Due      time.Time
}

// Table tracks open tasks that have a due date.
type Table struct {
	Entries map[string]Entry
}

func NewTable() *Table {
	return &Table{Entries: make(map[string]Entry)}
}

// FromTasks builds a table from a task snapshot.
func FromTasks(tasks []*model.Task) *Table {
	t := NewTable()
	for _, task := range tasks {
		t.Update(task)
	}
	return t
}

// Update adds or refreshes task if it is open and has a due date.
// Otherwise, it removes it.
func (t *Table) Update(task *model.Task) {
	if task.HasDue() && !task.Status().IsClosed() {
		t.Entries[task.Name()] = Entry{
			Name:     task.Name(),
			Priority: task.Priority(),
			Due:      task.Due(),
		}
		return
	}
	t.Remove(task.Name())
}

func (t *Table) Remove(name string) {
	delete(t.Entries, name)
}

// Sweep returns entries that have become overdue (Due < now) and removes
// them, earliest due date first. Ties go to the more urgent priority.
func (t *Table) Sweep(now time.Time) []Entry {
	var swept []Entry
	for name, entry := range t.Entries {
		if entry.Due.Before(now) {
			swept = append(swept, entry)
			delete(t.Entries, name)
		}
	}
	sort.Slice(swept, func(i, j int) bool {
		if !swept[i].Due.Equal(swept[j].Due) {
			return swept[i].Due.Before(swept[j].Due)
		}
		if swept[i].Priority != swept[j].Priority {
			return swept[i].Priority < swept[j].Priority
		}
		return swept[i].Name < swept[j].Name
	})
	return swept
}
