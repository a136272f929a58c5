package gva

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

var (
	// ErrInvalidInput is wrapped by every input validation failure.
	ErrInvalidInput = errors.New("invalid gva input")

	// ErrEmptyCensus rejects a census in which every species count is zero.
	ErrEmptyCensus = fmt.Errorf("%w: at least one livestock count is required", ErrInvalidInput)
)

// MaxAmount caps every derived quantity and amount of a report.
const MaxAmount = 1e15

// MaxCount caps each species count. With at most 366 batches per year the
// derived head counts stay well inside the exact float64 integer range.
const MaxCount = 1_000_000_000

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ValidateInput rejects negative or non-finite values, counts above MaxCount
// and an all-zero census.
func ValidateInput(in models.CensusInput) error {
	counts := []struct {
		field string
		value int64
	}{
		{"cattle_count", in.CattleCount},
		{"buffalo_count", in.BuffaloCount},
		{"sheep_count", in.SheepCount},
		{"goat_count", in.GoatCount},
		{"poultry_count", in.PoultryCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &ValidationError{Field: c.field, Reason: "must not be negative"}
		}
		if c.value > MaxCount {
			return &ValidationError{Field: c.field, Reason: fmt.Sprintf("must not exceed %d", MaxCount)}
		}
	}

	rates := []struct {
		field string
		value float64
	}{
		{"avg_milk_yield_per_day", in.AvgMilkYieldPerDay},
		{"milk_price_per_litre", in.MilkPricePerLitre},
		{"avg_live_weight_kg", in.AvgLiveWeightKg},
		{"meat_price_per_kg", in.MeatPricePerKg},
		{"eggs_per_bird_per_year", in.EggsPerBirdPerYear},
		{"egg_price", in.EggPrice},
		{"poultry_meat_price_per_kg", in.PoultryMeatPricePerKg},
	}
	for _, r := range rates {
		if !finite(r.value) {
			return &ValidationError{Field: r.field, Reason: "must be a finite number"}
		}
		if r.value < 0 {
			return &ValidationError{Field: r.field, Reason: "must not be negative"}
		}
	}

	if in.TotalAnimals() == 0 {
		return ErrEmptyCensus
	}
	return nil
}

// checkResults rejects results that overflowed float64 or exceed MaxAmount.
// Inputs that pass ValidateInput can still multiply past either bound.
func checkResults(res models.Results) error {
	values := []struct {
		field string
		value float64
	}{
		{"milk_daily_production", res.MilkBreakdown.DailyProduction},
		{"milk_annual_production", res.MilkBreakdown.AnnualProduction},
		{"milk_gsdp", res.MilkBreakdown.GSDP},
		{"milk_input_cost", res.MilkBreakdown.InputCost},
		{"milk_gva", res.MilkBreakdown.GVA},
		{"sheep_goat_meat_production", res.SheepGoatBreakdown.MeatProduction},
		{"sheep_goat_annual_meat", res.SheepGoatBreakdown.AnnualMeat},
		{"sheep_goat_gsdp", res.SheepGoatBreakdown.GSDP},
		{"sheep_goat_input_cost", res.SheepGoatBreakdown.InputCost},
		{"sheep_goat_gva", res.SheepGoatBreakdown.GVA},
		{"buffalo_meat_production", res.BuffaloMeatBreakdown.MeatProduction},
		{"buffalo_gsdp", res.BuffaloMeatBreakdown.GSDP},
		{"buffalo_input_cost", res.BuffaloMeatBreakdown.InputCost},
		{"buffalo_meat_gva", res.BuffaloMeatBreakdown.GVA},
		{"poultry_dressed_meat", res.PoultryMeatBreakdown.DressedMeat},
		{"poultry_gsdp", res.PoultryMeatBreakdown.GSDP},
		{"poultry_input_cost", res.PoultryMeatBreakdown.InputCost},
		{"poultry_meat_gva", res.PoultryMeatBreakdown.GVA},
		{"egg_annual_production", res.EggBreakdown.AnnualProduction},
		{"egg_gsdp", res.EggBreakdown.GSDP},
		{"egg_input_cost", res.EggBreakdown.InputCost},
		{"egg_gva", res.EggBreakdown.GVA},
		{"total_village_gva", res.TotalVillageGVA},
	}
	for _, v := range values {
		if !finite(v.value) || v.value > MaxAmount {
			return &ValidationError{Field: v.field, Reason: "is out of range, inputs are too large"}
		}
	}
	return nil
}
