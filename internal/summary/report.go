package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/tinytelemetry/pawprefs/internal/model"
	"gopkg.in/yaml.v3"
)

// Report is the printable form of a summary.
type Report struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Total       int       `yaml:"total"`
	Liked       Group     `yaml:"liked"`
	Disliked    Group     `yaml:"disliked"`
}

// Group lists the ids in one classification.
type Group struct {
	Count int   `yaml:"count"`
	IDs   []int `yaml:"ids"`
}

// NewReport builds a report from s.
func NewReport(s Summary, now time.Time) Report {
	return Report{
		GeneratedAt: now.UTC(),
		Total:       s.Total(),
		Liked:       newGroup(s.Liked),
		Disliked:    newGroup(s.Disliked),
	}
}

func newGroup(items []model.Item) Group {
	g := Group{Count: len(items), IDs: make([]int, 0, len(items))}
	for _, it := range items {
		g.IDs = append(g.IDs, it.ID)
	}
	return g
}

// WriteYAML encodes r as YAML to w.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("summary: encode report: %w", err)
	}
	return enc.Close()
}
