package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/repository"
)

// Repository keeps reports in process memory. Used for demos and tests.
type Repository struct {
	mu      sync.RWMutex
	reports []models.Report
	byID    map[string]int
}

// NewRepository creates an empty in-memory report store.
func NewRepository() *Repository {
	return &Repository{byID: make(map[string]int)}
}

// Save appends the report. Ids must be unique.
func (r *Repository) Save(_ context.Context, report models.Report) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[report.ID]; exists {
		return "", fmt.Errorf("report %s already stored", report.ID)
	}
	r.byID[report.ID] = len(r.reports)
	r.reports = append(r.reports, report)
	return report.ID, nil
}

// Get returns the report with the given id.
func (r *Repository) Get(_ context.Context, id string) (models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return models.Report{}, repository.ErrNotFound
	}
	return r.reports[idx], nil
}

// List returns matching reports, newest first.
func (r *Repository) List(_ context.Context, filter models.ReportFilter) ([]models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Report, 0, len(r.reports))
	for i := len(r.reports) - 1; i >= 0; i-- {
		report := r.reports[i]
		if filter.AuthorID != "" && report.Author.ID != filter.AuthorID {
			continue
		}
		if !filter.Since.IsZero() && report.CreatedAt.Before(filter.Since) {
			continue
		}
		matched = append(matched, report)
	}

	// Reverse insertion order breaks timestamp ties.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit := filter.EffectiveLimit(); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
