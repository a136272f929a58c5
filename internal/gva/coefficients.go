package gva

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

// ErrInvalidCoefficients reports a coefficient table that cannot be used.
var ErrInvalidCoefficients = errors.New("invalid gva coefficients")

// DefaultCoefficients returns the standard livestock GVA table.
func DefaultCoefficients() models.Coefficients {
	return models.Coefficients{
		Milk: models.MilkCoefficients{
			BreedablePercentage: 70,
			InMilkPercentage:    60,
			InputCostPercentage: 40,
		},
		SheepGoat: models.SheepGoatCoefficients{
			SlaughterRate:       45,
			SeasonsPerYear:      3,
			InputCostPercentage: 20,
		},
		BuffaloMeat: models.BuffaloMeatCoefficients{
			SlaughterRate:       25,
			InputCostPercentage: 15,
		},
		PoultryMeat: models.PoultryMeatCoefficients{
			BatchesPerYear:      8,
			SlaughterRate:       95,
			DressingPercentage:  70,
			BirdWeightKg:        1,
			InputCostPercentage: 45,
		},
		Egg: models.EggCoefficients{
			InputCostPercentage: 40,
		},
	}
}

// LoadCoefficients reads a YAML coefficient file layered over the defaults.
// An empty path yields the defaults. The result is always validated.
func LoadCoefficients(path string) (models.Coefficients, error) {
	coeffs := DefaultCoefficients()
	if path == "" {
		return coeffs, ValidateCoefficients(coeffs)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Coefficients{}, fmt.Errorf("read coefficients file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&coeffs); err != nil {
		return models.Coefficients{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidCoefficients, path, err)
	}

	if err := ValidateCoefficients(coeffs); err != nil {
		return models.Coefficients{}, err
	}
	return coeffs, nil
}

// maxPerYear bounds the seasons and batches multipliers: at most one per day.
const maxPerYear = 366

// ValidateCoefficients checks that every percentage lies within [0,100], that
// seasons and batches lie within [0,366] and that the bird weight is finite
// and non-negative.
func ValidateCoefficients(c models.Coefficients) error {
	percentages := []struct {
		name  string
		value float64
	}{
		{"milk.breedable_percentage", c.Milk.BreedablePercentage},
		{"milk.in_milk_percentage", c.Milk.InMilkPercentage},
		{"milk.input_cost_percentage", c.Milk.InputCostPercentage},
		{"sheep_goat.slaughter_rate", c.SheepGoat.SlaughterRate},
		{"sheep_goat.input_cost_percentage", c.SheepGoat.InputCostPercentage},
		{"buffalo_meat.slaughter_rate", c.BuffaloMeat.SlaughterRate},
		{"buffalo_meat.input_cost_percentage", c.BuffaloMeat.InputCostPercentage},
		{"poultry_meat.slaughter_rate", c.PoultryMeat.SlaughterRate},
		{"poultry_meat.dressing_percentage", c.PoultryMeat.DressingPercentage},
		{"poultry_meat.input_cost_percentage", c.PoultryMeat.InputCostPercentage},
		{"egg.input_cost_percentage", c.Egg.InputCostPercentage},
	}
	for _, p := range percentages {
		if !finite(p.value) || p.value < 0 || p.value > 100 {
			return fmt.Errorf("%w: %s must be between 0 and 100, got %v", ErrInvalidCoefficients, p.name, p.value)
		}
	}

	perYear := []struct {
		name  string
		value float64
	}{
		{"sheep_goat.seasons_per_year", c.SheepGoat.SeasonsPerYear},
		{"poultry_meat.batches_per_year", c.PoultryMeat.BatchesPerYear},
	}
	for _, m := range perYear {
		if !finite(m.value) || m.value < 0 || m.value > maxPerYear {
			return fmt.Errorf("%w: %s must be between 0 and %d, got %v", ErrInvalidCoefficients, m.name, maxPerYear, m.value)
		}
	}

	if w := c.PoultryMeat.BirdWeightKg; !finite(w) || w < 0 {
		return fmt.Errorf("%w: poultry_meat.bird_weight_kg must be a non-negative number, got %v", ErrInvalidCoefficients, w)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
