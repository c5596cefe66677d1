package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/harrisonrobin/taskmgr/pkg/model"
	"github.com/harrisonrobin/taskmgr/pkg/taskfile"
)

// Lister is the read side of a task manager.
type Lister interface {
	List() []*model.Task
}

// Formats lists the accepted Export formats.
var Formats = []string{"text", "json", "csv", "yaml", "pdf"}

type Exporter struct{ src Lister }

func NewExporter(src Lister) *Exporter { return &Exporter{src: src} }

type record struct {
	Name        string   `json:"name"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
	Due         string   `json:"due,omitempty"`
	Project     string   `json:"project,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func toRecord(t *model.Task) record {
	e := taskfile.FromTask(t)
	return record{
		Name:        e.Name,
		Priority:    e.Priority,
		Status:      e.Status,
		Kind:        e.Kind,
		Description: e.Description,
		Due:         e.Due,
		Project:     e.Project,
		Tags:        e.Tags,
	}
}

// Export renders the current task list in format.
func (e *Exporter) Export(format string) ([]byte, error) {
	all := e.src.List()
	switch strings.ToLower(format) {
	case "text":
		var b strings.Builder
		b.WriteString("Task List:\n")
		if len(all) == 0 {
			b.WriteString("  - No tasks in the task list.\n")
		}
		for i, t := range all {
			fmt.Fprintf(&b, "  %d.\t%s\n", i+1, t)
		}
		return []byte(b.String()), nil
	case "json":
		records := make([]record, len(all))
		for i, t := range all {
			records[i] = toRecord(t)
		}
		return json.MarshalIndent(records, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"name", "priority", "status", "kind", "due", "project", "tags", "description"})
		for _, t := range all {
			r := toRecord(t)
			_ = w.Write([]string{r.Name, r.Priority, r.Status, r.Kind, r.Due, r.Project, strings.Join(r.Tags, ";"), r.Description})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case "yaml":
		var buf bytes.Buffer
		if err := taskfile.Encode(&buf, all); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "pdf":
		return renderPDF(all)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func renderPDF(all []*model.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(all) == 0 {
		pdf.MultiCell(0, 6, "No tasks in the task list.", "0", "L", false)
	}
	for i, t := range all {
		r := toRecord(t)
		line := fmt.Sprintf("%d. [%s] %s (%s, %s)", i+1, r.Priority, r.Name, r.Status, r.Kind)
		if r.Due != "" {
			line += " due " + r.Due
		}
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
