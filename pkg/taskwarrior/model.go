package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
	RECURRING = "recurring"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

func (ct *CustomTime) set() bool {
	return ct != nil && !ct.IsZero()
}

type Annotation struct {
	Description string      `json:"description"`
	Entry       *CustomTime `json:"entry"`
}

// Task is one entry of `task export`.
type Task struct {
	UUID        string       `json:"uuid"`
	Description string       `json:"description"`
	Due         *CustomTime  `json:"due,omitempty"`
	Start       *CustomTime  `json:"start,omitempty"`
	Status      string       `json:"status"`
	Parent      string       `json:"parent,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	Project     string       `json:"project,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// kindTags maps conventional taskwarrior tags onto task kinds. The first
// matching tag wins.
var kindTags = map[string]model.Kind{
	"bug":      model.KindBugFix,
	"bugfix":   model.KindBugFix,
	"fix":      model.KindBugFix,
	"refactor": model.KindRefactor,
	"docs":     model.KindDocumentation,
	"doc":      model.KindDocumentation,
	"test":     model.KindTest,
	"tests":    model.KindTest,
}

// ToModel converts an exported taskwarrior task. The description becomes the
// task name and annotations are joined into the description.
func (t Task) ToModel() (*model.Task, error) {
	opts := []model.Option{
		model.WithStatus(t.status()),
		model.WithPriority(t.priority()),
		model.WithKind(t.kind()),
		model.WithProject(t.Project),
		model.WithTags(t.Tags...),
	}
	// Taskwarrior stores dates in UTC; a date-only due is local midnight.
	if t.Due.set() {
		opts = append(opts, model.WithDue(t.Due.Time.Local()))
	}
	if len(t.Annotations) > 0 {
		notes := make([]string, len(t.Annotations))
		for i, a := range t.Annotations {
			notes[i] = a.Description
		}
		opts = append(opts, model.WithDescription(strings.Join(notes, "\n")))
	}
	task, err := model.NewTask(t.Description, opts...)
	if err != nil {
		return nil, fmt.Errorf("taskwarrior task %s: %w", t.UUID, err)
	}
	return task, nil
}

func (t Task) status() model.Status {
	switch t.Status {
	case COMPLETED:
		return model.StatusClosedResolved
	case DELETED:
		return model.StatusClosedUnresolved
	case WAITING:
		return model.StatusOnHold
	}
	if t.Start.set() {
		return model.StatusInProgress
	}
	return model.StatusAccepted
}

func (t Task) priority() model.Priority {
	for _, tag := range t.Tags {
		if strings.EqualFold(tag, "critical") {
			return model.PriorityCritical
		}
	}
	switch strings.ToUpper(t.Priority) {
	case "H":
		return model.PriorityHigh
	case "L":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

func (t Task) kind() model.Kind {
	for _, tag := range t.Tags {
		if k, ok := kindTags[strings.ToLower(tag)]; ok {
			return k
		}
	}
	return model.KindFeature
}
