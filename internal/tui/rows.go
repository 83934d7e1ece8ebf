package tui

import (
	"fmt"

	"github.com/justsurfingit/job-board/internal/grouping"
	"github.com/justsurfingit/job-board/internal/models"
)

type rowKind int

const (
	rowDate rowKind = iota
	rowCompany
	rowApplication
)

// row is one rendered line of the board. Date and company rows are headers
// the cursor can land on; application rows are display only.
type row struct {
	kind      rowKind
	key       string
	collapsed bool
	label     string
	count     int
	company   string
	app       models.Application
}

func (r row) selectable() bool {
	return r.kind != rowApplication
}

// flatten walks the grouped view in display order. Collapsed dates hide
// everything beneath them; a collapsed company hides only its applications.
func flatten(groups []grouping.DateGroup) []row {
	var rows []row
	for _, dg := range groups {
		rows = append(rows, row{kind: rowDate, key: dg.Key, collapsed: dg.Collapsed, label: dg.Label, count: dg.Total})
		if dg.Collapsed {
			continue
		}
		for _, cg := range dg.Companies {
			if cg.Collapsible {
				rows = append(rows, row{kind: rowCompany, key: cg.Key, collapsed: cg.Collapsed, label: cg.Name, count: cg.RejectedCount()})
			}
			if !cg.Visible() {
				continue
			}
			for _, app := range cg.Applications {
				rows = append(rows, row{kind: rowApplication, key: cg.Key, company: cg.Name, app: app})
			}
		}
	}
	return rows
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
