package warehouse

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TableRef identifies a warehouse table. Project may be left empty and filled in later,
// typically from the project of the service account in use.
type TableRef struct {
	Project string
	Dataset string
	Table   string
}

// ParseTableRef parses either `dataset.table` or `project.dataset.table`. Surrounding backticks are ignored.
func ParseTableRef(s string) (TableRef, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "`"), ".")
	for _, p := range parts {
		if p == "" {
			return TableRef{}, errors.Errorf("invalid table reference %q", s)
		}
	}
	switch len(parts) {
	case 2:
		return TableRef{Dataset: parts[0], Table: parts[1]}, nil
	case 3:
		return TableRef{Project: parts[0], Dataset: parts[1], Table: parts[2]}, nil
	default:
		return TableRef{}, errors.Errorf("invalid table reference %q: expected dataset.table or project.dataset.table", s)
	}
}

// WithDefaultProject returns a copy of t whose project is set to project if t doesn't name one already.
func (t TableRef) WithDefaultProject(project string) TableRef {
	if t.Project == "" {
		t.Project = project
	}
	return t
}

func (t TableRef) String() string {
	if t.Project == "" {
		return fmt.Sprintf("%s.%s", t.Dataset, t.Table)
	}
	return fmt.Sprintf("%s.%s.%s", t.Project, t.Dataset, t.Table)
}

// SelectAllQuery returns the statement that reads every row of t.
func SelectAllQuery(t TableRef) string {
	return fmt.Sprintf("SELECT * FROM `%s`", t)
}
