// Package repositorytest exercises any report store backend against the
// shared append-only contract.
package repositorytest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/repository"
)

// Store mirrors the operations the reporting service needs.
type Store interface {
	Save(ctx context.Context, report models.Report) (string, error)
	Get(ctx context.Context, id string) (models.Report, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
}

var base = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

// NewReport builds a stored-shape report created offset minutes after a
// fixed base time.
func NewReport(id, authorID string, offset int) models.Report {
	return models.Report{
		ID:        id,
		CreatedAt: base.Add(time.Duration(offset) * time.Minute),
		Author:    models.Author{ID: authorID, Name: "Dr. " + authorID, Role: models.RoleVeterinarian, Institution: "Veterinary Dispensary"},
		Inputs: models.CensusInput{
			CattleCount:        100,
			BuffaloCount:       50,
			AvgMilkYieldPerDay: 8,
			MilkPricePerLitre:  45,
			VillageName:        "Village " + id,
			District:           "Nalgonda",
		},
		Results: models.Results{
			MilkBreakdown: models.MilkBreakdown{
				BreedableAnimals: 105,
				InMilkAnimals:    63,
				DailyProduction:  504,
				AnnualProduction: 183960,
				GSDP:             8278200,
				InputCost:        3311280,
				GVA:              4966920,
			},
			BuffaloMeatBreakdown: models.BuffaloMeatBreakdown{SlaughterCount: 12},
			TotalVillageGVA:      4966920,
		},
		SettingsUsed: models.Coefficients{
			Milk: models.MilkCoefficients{BreedablePercentage: 70, InMilkPercentage: 60, InputCostPercentage: 40},
			Egg:  models.EggCoefficients{InputCostPercentage: 40},
		},
	}
}

// Run executes the contract suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("save and get round trip", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		report := NewReport("r-1", "vet-1", 0)

		id, err := store.Save(ctx, report)
		require.NoError(t, err)
		assert.Equal(t, "r-1", id)

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, report.CreatedAt.Equal(got.CreatedAt))
		got.CreatedAt = report.CreatedAt
		assert.Equal(t, report, got)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := newStore(t).Get(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		_, err := store.Save(ctx, NewReport("dup", "vet-1", 0))
		require.NoError(t, err)
		_, err = store.Save(ctx, NewReport("dup", "vet-1", 1))
		assert.Error(t, err)
	})

	t.Run("list newest first", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		for i, offset := range []int{10, 30, 20} {
			_, err := store.Save(ctx, NewReport(fmt.Sprintf("r-%d", i), "vet-1", offset))
			require.NoError(t, err)
		}

		got, err := store.List(ctx, models.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"r-1", "r-2", "r-0"}, ids(got))
	})

	t.Run("list filters by author and since", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		_, _ = store.Save(ctx, NewReport("a-1", "vet-a", 1))
		_, _ = store.Save(ctx, NewReport("b-1", "vet-b", 2))
		_, _ = store.Save(ctx, NewReport("a-2", "vet-a", 3))

		got, err := store.List(ctx, models.ReportFilter{AuthorID: "vet-a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a-2", "a-1"}, ids(got))

		got, err = store.List(ctx, models.ReportFilter{Since: base.Add(2 * time.Minute)})
		require.NoError(t, err)
		assert.Equal(t, []string{"a-2", "b-1"}, ids(got))
	})

	t.Run("list honours limit", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		for i := 0; i < 5; i++ {
			_, err := store.Save(ctx, NewReport(fmt.Sprintf("r-%d", i), "vet-1", i))
			require.NoError(t, err)
		}

		got, err := store.List(ctx, models.ReportFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"r-4", "r-3"}, ids(got))
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		got, err := newStore(t).List(context.Background(), models.ReportFilter{AuthorID: "nobody"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func ids(reports []models.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}
