// Package taskfile reads and writes task lists as YAML:
//
//	tasks:
//	  - name: Fix login bug
//	    priority: high
//	    status: in progress
//	    kind: bugfix
//	    due: 5/1/2024
//	    project: web
//	    tags: [auth]
package taskfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

// File is the on-disk document.
type File struct {
	Tasks []Entry `yaml:"tasks"`
}

// Entry is one task as written in YAML. Empty classification fields take
// the model defaults.
type Entry struct {
	Name        string   `yaml:"name"`
	Priority    string   `yaml:"priority,omitempty"`
	Status      string   `yaml:"status,omitempty"`
	Kind        string   `yaml:"kind,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Due         string   `yaml:"due,omitempty"`
	Project     string   `yaml:"project,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Defaults fill in classification fields an entry leaves empty.
type Defaults struct {
	Priority model.Priority
	Kind     model.Kind
}

// Task converts the entry, reporting the entry's name on any bad field.
func (e Entry) Task(d Defaults) (*model.Task, error) {
	var opts []model.Option
	if d.Priority.Valid() {
		opts = append(opts, model.WithPriority(d.Priority))
	}
	if d.Kind.Valid() {
		opts = append(opts, model.WithKind(d.Kind))
	}
	if e.Priority != "" {
		p, err := model.ParsePriority(e.Priority)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", e.Name, err)
		}
		opts = append(opts, model.WithPriority(p))
	}
	if e.Status != "" {
		s, err := model.ParseStatus(e.Status)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", e.Name, err)
		}
		opts = append(opts, model.WithStatus(s))
	}
	if e.Kind != "" {
		k, err := model.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", e.Name, err)
		}
		opts = append(opts, model.WithKind(k))
	}
	if e.Due != "" {
		due, err := model.ParseDueDate(e.Due)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", e.Name, err)
		}
		opts = append(opts, model.WithDue(due))
	}
	opts = append(opts,
		model.WithDescription(e.Description),
		model.WithProject(e.Project),
		model.WithTags(e.Tags...),
	)
	return model.NewTask(e.Name, opts...)
}

// FromTask is the inverse of Entry.Task.
func FromTask(t *model.Task) Entry {
	e := Entry{
		Name:        t.Name(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		Kind:        t.Kind().String(),
		Description: t.Description(),
		Project:     t.Project(),
		Tags:        t.Tags(),
	}
	if t.HasDue() {
		e.Due = t.Due().Format(model.DueDateLayout)
	}
	return e
}

// Decode parses a YAML task list from r.
func Decode(r io.Reader, d Defaults) ([]*model.Task, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode task file: %w", err)
	}
	tasks := make([]*model.Task, 0, len(f.Tasks))
	for i, e := range f.Tasks {
		t, err := e.Task(d)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Load reads the YAML task list at path.
func Load(path string, d Defaults) ([]*model.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tasks, err := Decode(f, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// Encode writes tasks as a YAML task list.
func Encode(w io.Writer, tasks []*model.Task) error {
	f := File{Tasks: make([]Entry, len(tasks))}
	for i, t := range tasks {
		f.Tasks[i] = FromTask(t)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode task file: %w", err)
	}
	return enc.Close()
}
