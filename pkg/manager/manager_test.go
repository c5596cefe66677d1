package manager

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/harrisonrobin/taskmgr/pkg/logging"
	"github.com/harrisonrobin/taskmgr/pkg/model"
)

func listOfTasks(count int) []*model.Task {
	tasks := make([]*model.Task, 0, count)
	for i := 1; i <= count; i++ {
		tasks = append(tasks, model.MustTask(fmt.Sprintf("Task %d", i),
			model.WithDescription("Task description."),
			model.WithStatus(model.StatusInProgress),
		))
	}
	return tasks
}

func names(tasks []*model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name()
	}
	return out
}

func assertNames(t *testing.T, m *Manager, want ...string) {
	t.Helper()
	got := names(m.List())
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Expected tasks %v, got %v", want, got)
	}
}

func TestNewEmpty(t *testing.T) {
	for _, in := range [][]*model.Task{nil, {}} {
		m, err := New(in)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", in, err)
		}
		if len(m.List()) != 0 || m.Len() != 0 {
			t.Errorf("Expected an empty list, got %v", m.List())
		}
	}
}

func TestNewPreservesOrder(t *testing.T) {
	tasks := listOfTasks(3)
	m, err := New(tasks)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := m.List()
	for i := range tasks {
		if got[i] != tasks[i] {
			t.Errorf("Position %d: expected %s, got %s", i, tasks[i], got[i])
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	t1 := model.MustTask("Task 1")
	m, err := New([]*model.Task{t1, t1, t1})
	if m != nil {
		t.Error("Expected no manager on failed construction")
	}
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("Expected ErrDuplicateTask, got %v", err)
	}
	var dupErr *DuplicateTaskError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Expected *DuplicateTaskError, got %T", err)
	}
	if len(dupErr.Names) != 1 || dupErr.Names[0] != "Task 1" {
		t.Errorf("Expected duplicate names [Task 1], got %v", dupErr.Names)
	}
	if !strings.Contains(err.Error(), `"Task 1"`) {
		t.Errorf("Expected the error to name the task, got %q", err)
	}
}

func TestNewRejectsDistinctInstancesWithSameName(t *testing.T) {
	_, err := New([]*model.Task{
		model.MustTask("a", model.WithPriority(model.PriorityHigh)),
		model.MustTask("b"),
		model.MustTask("a", model.WithPriority(model.PriorityLow)),
	})
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("Expected ErrDuplicateTask, got %v", err)
	}
}

func TestNewRejectsNil(t *testing.T) {
	_, err := New([]*model.Task{model.MustTask("a"), nil})
	if !errors.Is(err, ErrNilTask) {
		t.Fatalf("Expected ErrNilTask, got %v", err)
	}
}

func TestNewCopiesInput(t *testing.T) {
	tasks := listOfTasks(2)
	m, err := New(tasks)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tasks[0] = model.MustTask("Replaced")
	assertNames(t, m, "Task 1", "Task 2")
}

func TestAdd(t *testing.T) {
	tasks := listOfTasks(3)
	m, err := New(tasks[:2])
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := m.Add(tasks[2]); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	assertNames(t, m, "Task 1", "Task 2", "Task 3")

	err = m.Add(model.MustTask("Task 1"))
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("Expected ErrDuplicateTask, got %v", err)
	}
	assertNames(t, m, "Task 1", "Task 2", "Task 3")

	if got, _ := m.Get("Task 1"); got != tasks[0] {
		t.Error("Failed Add must not replace the stored task")
	}
	if err := m.Add(nil); !errors.Is(err, ErrNilTask) {
		t.Errorf("Expected ErrNilTask, got %v", err)
	}
}

func TestAddToEmpty(t *testing.T) {
	m, _ := New(nil)
	for _, task := range listOfTasks(3) {
		if err := m.Add(task); err != nil {
			t.Fatalf("Add(%s) failed: %v", task.Name(), err)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Expected 3 tasks, got %d", m.Len())
	}
}

func TestRemove(t *testing.T) {
	tasks := listOfTasks(3)
	m, _ := New(tasks)

	removed, err := m.Remove("Task 2")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != tasks[1] {
		t.Errorf("Expected the removed task to be returned, got %s", removed)
	}
	assertNames(t, m, "Task 1", "Task 3")

	_, err = m.Remove("Task 2")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Expected ErrTaskNotFound, got %v", err)
	}
	var nf *TaskNotFoundError
	if !errors.As(err, &nf) || nf.Name != "Task 2" {
		t.Errorf("Expected *TaskNotFoundError for Task 2, got %v", err)
	}
	assertNames(t, m, "Task 1", "Task 3")

	if got, err := m.Get("Task 3"); err != nil || got != tasks[2] {
		t.Errorf("Index out of step after Remove: %v, %v", got, err)
	}
}

func TestRemoveThenAddSameName(t *testing.T) {
	m, _ := New(listOfTasks(3))
	if _, err := m.Remove("Task 1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	replacement := model.MustTask("Task 1", model.WithKind(model.KindTest))
	if err := m.Add(replacement); err != nil {
		t.Fatalf("Add after Remove failed: %v", err)
	}
	assertNames(t, m, "Task 2", "Task 3", "Task 1")
	if got, _ := m.Get("Task 1"); got != replacement {
		t.Error("Expected Get to resolve to the re-added task")
	}
}

func TestRemoveFromEmpty(t *testing.T) {
	m, _ := New(nil)
	if _, err := m.Remove("anything"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestGet(t *testing.T) {
	tasks := listOfTasks(5)
	m, _ := New(tasks)

	for _, task := range tasks {
		got, err := m.Get(task.Name())
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", task.Name(), err)
		}
		if got != task {
			t.Errorf("Get(%s) returned a different task", task.Name())
		}
		if got.Description() != "Task description." || got.Status() != model.StatusInProgress {
			t.Errorf("Unexpected attributes: %#v", got)
		}
	}

	if _, err := m.Get("Not Added"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
	if m.Contains("Not Added") || !m.Contains("Task 4") {
		t.Error("Contains disagrees with Get")
	}
}

func TestListIsSnapshot(t *testing.T) {
	m, _ := New(listOfTasks(3))

	first := m.List()
	second := m.List()
	if strings.Join(names(first), "|") != strings.Join(names(second), "|") {
		t.Errorf("List is not idempotent: %v vs %v", names(first), names(second))
	}

	first[0] = nil
	_ = append(first[:1], model.MustTask("Intruder"))
	assertNames(t, m, "Task 1", "Task 2", "Task 3")
}

func TestStatusChangedByCollaborator(t *testing.T) {
	tasks := listOfTasks(1)
	m, _ := New(tasks)
	if err := tasks[0].SetStatus(model.StatusClosedResolved); err != nil {
		t.Fatal(err)
	}
	got, _ := m.Get("Task 1")
	if got.Status() != model.StatusClosedResolved {
		t.Errorf("Expected the shared task to reflect the new status, got %s", got.Status())
	}
}

func TestString(t *testing.T) {
	m, _ := New(nil)
	if got, want := m.String(), "Task List:\n  - No tasks in the task list.\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	m, _ = New([]*model.Task{
		model.MustTask("title", model.WithPriority(model.PriorityHigh)),
		model.MustTask("title1", model.WithStatus(model.StatusOnHold)),
	})
	want := "Task List:\n  1.\ttitle (High, Accepted)\n  2.\ttitle1 (Medium, On Hold)\n"
	if got := m.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	m, err := New(listOfTasks(1), WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_ = m.Add(model.MustTask("Task 2"))
	_, _ = m.Remove("Task 1")

	out := buf.String()
	for _, msg := range []string{"task manager created", "task added", "task removed"} {
		if !strings.Contains(out, msg) {
			t.Errorf("Expected log entry %q in %s", msg, out)
		}
	}
}

func TestConcurrentAddKeepsNamesUnique(t *testing.T) {
	m, _ := New(nil)

	const workers = 8
	const perWorker = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	dupErrors := 0
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				err := m.Add(model.MustTask(fmt.Sprintf("task-%d", i)))
				if errors.Is(err, ErrDuplicateTask) {
					mu.Lock()
					dupErrors++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if m.Len() != perWorker {
		t.Errorf("Expected %d unique tasks, got %d", perWorker, m.Len())
	}
	if dupErrors != (workers-1)*perWorker {
		t.Errorf("Expected %d duplicate errors, got %d", (workers-1)*perWorker, dupErrors)
	}
}
