// Package state holds the board's only mutable data: the latest application
// snapshot and the two collapse sets. Each is swapped wholesale, never edited.
package state

import (
	"slices"
	"sync"
	"time"

	"github.com/justsurfingit/job-board/internal/grouping"
	"github.com/justsurfingit/job-board/internal/models"
)

// Snapshot is an immutable view of the board at one instant.
type Snapshot struct {
	Applications       []models.Application
	Filter             models.Status
	FetchedAt          time.Time
	CollapsedDates     grouping.CollapseSet
	CollapsedCompanies grouping.CollapseSet
}

type Board struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewBoard() *Board {
	return &Board{snap: Snapshot{Applications: []models.Application{}}}
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Replace installs a freshly fetched list. Collapse sets survive so the user's
// folds persist across refreshes.
func (b *Board) Replace(apps []models.Application, filter models.Status, at time.Time) {
	apps = slices.Clone(apps)
	if apps == nil {
		apps = []models.Application{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.Applications = apps
	b.snap.Filter = filter
	b.snap.FetchedAt = at
}

func (b *Board) ToggleDate(key string) grouping.CollapseSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.CollapsedDates = grouping.ToggleDateCollapse(b.snap.CollapsedDates, key)
	return b.snap.CollapsedDates
}

func (b *Board) ToggleCompany(key string) grouping.CollapseSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap.CollapsedCompanies = grouping.ToggleCompanyCollapse(b.snap.CollapsedCompanies, key)
	return b.snap.CollapsedCompanies
}

// View groups the current snapshot. It runs outside the lock.
func (b *Board) View() []grouping.DateGroup {
	s := b.Snapshot()
	return grouping.BuildGroupedView(s.Applications, s.CollapsedDates, s.CollapsedCompanies)
}
