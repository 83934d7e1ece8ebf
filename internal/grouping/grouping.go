// Package grouping turns a flat application list into the nested
// date → company → application structure the board renders.
//
// Everything here is a pure function of its inputs. Bad records degrade to
// the safest bucket ("no-date", "Unknown") instead of failing the pass.
package grouping

import (
	"cmp"
	"slices"
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

const (
	// NoDateKey groups applications without a usable applied date. It always sorts last.
	NoDateKey = "no-date"
	// UnknownCompany stands in for a missing company name.
	UnknownCompany = "Unknown"

	dateKeyLayout   = "2006-01-02"
	dateLabelLayout = "Jan 02, 2006"
)

// CompanyGroup is every application for one company on one applied date.
type CompanyGroup struct {
	Key          string               `json:"key"`
	Date         string               `json:"date"`
	Name         string               `json:"name"`
	Applications []models.Application `json:"applications"`

	HasAnyRejection bool `json:"has_any_rejection"`
	AllRejected     bool `json:"all_rejected"`

	// Only fully rejected companies get a header row and can be folded.
	Collapsible bool `json:"collapsible"`
	Collapsed   bool `json:"collapsed"`
}

// Visible reports whether the group's application rows are rendered.
func (c CompanyGroup) Visible() bool {
	return !c.Collapsed
}

func (c CompanyGroup) RejectedCount() int {
	n := 0
	for _, a := range c.Applications {
		if a.IsRejected() {
			n++
		}
	}
	return n
}

// DateGroup is every application applied for on one calendar day.
type DateGroup struct {
	Key       string         `json:"key"`
	Label     string         `json:"label"`
	Companies []CompanyGroup `json:"companies"`
	Total     int            `json:"total"`
	Collapsed bool           `json:"collapsed"`
}

// DateKey returns the local calendar day an application was submitted on
// as YYYY-MM-DD, or NoDateKey when the date is missing or unparseable.
func DateKey(app models.Application) string {
	return dateKeyIn(app, time.Local)
}

func dateKeyIn(app models.Application, loc *time.Location) string {
	if !app.AppliedDate.Valid {
		return NoDateKey
	}
	// Use the local Y-M-D, never the raw ISO string, so late-evening UTC
	// stamps land on the day the user actually applied.
	y, m, d := app.AppliedDate.Time.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Format(dateKeyLayout)
}

// CompanyName is the grouping name for app, falling back to UnknownCompany.
func CompanyName(app models.Application) string {
	if app.CompanyName == "" {
		return UnknownCompany
	}
	return app.CompanyName
}

// CompanyKey identifies a company within a date. Names containing "-" are
// not escaped.
func CompanyKey(dateKey, company string) string {
	return dateKey + "-" + company
}

// DateLabel renders a date key for a header, e.g. "Jan 05, 2024".
func DateLabel(key string) string {
	return labelIn(key, time.Local)
}

// BuildGroupedView partitions apps by applied date and then by company and
// orders every level for display:
//
//   - dates newest first, NoDateKey last
//   - fully rejected companies after everything else, then companies with
//     some rejection, then by case-sensitive name
//   - rejected applications after the rest, otherwise in input order
//
// Collapse flags are resolved from the two sets. apps is not modified.
func BuildGroupedView(apps []models.Application, collapsedDates, collapsedCompanies CollapseSet) []DateGroup {
	return buildIn(apps, collapsedDates, collapsedCompanies, time.Local)
}

type dateBucket struct {
	companies []string
	byCompany map[string][]models.Application
}

func buildIn(apps []models.Application, collapsedDates, collapsedCompanies CollapseSet, loc *time.Location) []DateGroup {
	buckets := make(map[string]*dateBucket)
	var dates []string

	for _, app := range apps {
		dk := dateKeyIn(app, loc)
		b, ok := buckets[dk]
		if !ok {
			b = &dateBucket{byCompany: make(map[string][]models.Application)}
			buckets[dk] = b
			dates = append(dates, dk)
		}
		name := CompanyName(app)
		if _, ok := b.byCompany[name]; !ok {
			b.companies = append(b.companies, name)
		}
		b.byCompany[name] = append(b.byCompany[name], app)
	}

	slices.SortFunc(dates, compareDateKeys)

	out := make([]DateGroup, 0, len(dates))
	for _, dk := range dates {
		b := buckets[dk]
		group := DateGroup{
			Key:       dk,
			Label:     labelIn(dk, loc),
			Collapsed: collapsedDates.Has(dk),
			Companies: make([]CompanyGroup, 0, len(b.companies)),
		}
		for _, name := range b.companies {
			cg := newCompanyGroup(dk, name, b.byCompany[name])
			cg.Collapsed = cg.Collapsible && collapsedCompanies.Has(cg.Key)
			group.Companies = append(group.Companies, cg)
			group.Total += len(cg.Applications)
		}
		slices.SortFunc(group.Companies, compareCompanies)
		out = append(out, group)
	}
	return out
}

func newCompanyGroup(dateKey, name string, apps []models.Application) CompanyGroup {
	ordered := slices.Clone(apps)
	slices.SortStableFunc(ordered, compareRejectedLast)

	anyRejected, allRejected := false, true
	for _, a := range ordered {
		if a.IsRejected() {
			anyRejected = true
		} else {
			allRejected = false
		}
	}
	return CompanyGroup{
		Key:             CompanyKey(dateKey, name),
		Date:            dateKey,
		Name:            name,
		Applications:    ordered,
		HasAnyRejection: anyRejected,
		AllRejected:     allRejected,
		Collapsible:     allRejected,
	}
}

// compareDateKeys orders YYYY-MM-DD keys newest first with NoDateKey last.
func compareDateKeys(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == NoDateKey:
		return 1
	case b == NoDateKey:
		return -1
	}
	return cmp.Compare(b, a)
}

func compareCompanies(a, b CompanyGroup) int {
	if a.AllRejected != b.AllRejected {
		if a.AllRejected {
			return 1
		}
		return -1
	}
	if a.HasAnyRejection != b.HasAnyRejection {
		if a.HasAnyRejection {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.Name, b.Name)
}

// compareRejectedLast only separates rejected from non-rejected; used with a
// stable sort it keeps the input order inside each half.
func compareRejectedLast(a, b models.Application) int {
	switch {
	case a.IsRejected() == b.IsRejected():
		return 0
	case a.IsRejected():
		return 1
	}
	return -1
}

func labelIn(key string, loc *time.Location) string {
	if key == NoDateKey {
		return "No Date"
	}
	t, err := time.ParseInLocation(dateKeyLayout, key, loc)
	if err != nil {
		return key
	}
	return t.Format(dateLabelLayout)
}
