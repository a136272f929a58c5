package models

// Coefficients is the table of fixed multipliers the GVA calculators apply.
// Percentages are expressed on a 0-100 scale.
type Coefficients struct {
	Milk        MilkCoefficients        `bson:"milk" json:"milk" yaml:"milk"`
	SheepGoat   SheepGoatCoefficients   `bson:"sheep_goat" json:"sheep_goat" yaml:"sheep_goat"`
	BuffaloMeat BuffaloMeatCoefficients `bson:"buffalo_meat" json:"buffalo_meat" yaml:"buffalo_meat"`
	PoultryMeat PoultryMeatCoefficients `bson:"poultry_meat" json:"poultry_meat" yaml:"poultry_meat"`
	Egg         EggCoefficients         `bson:"egg" json:"egg" yaml:"egg"`
}

// MilkCoefficients applies to the combined cattle and buffalo herd.
type MilkCoefficients struct {
	BreedablePercentage float64 `bson:"breedable_percentage" json:"breedable_percentage" yaml:"breedable_percentage"`
	InMilkPercentage    float64 `bson:"in_milk_percentage" json:"in_milk_percentage" yaml:"in_milk_percentage"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage" yaml:"input_cost_percentage"`
}

type SheepGoatCoefficients struct {
	SlaughterRate       float64 `bson:"slaughter_rate" json:"slaughter_rate" yaml:"slaughter_rate"`
	SeasonsPerYear      float64 `bson:"seasons_per_year" json:"seasons_per_year" yaml:"seasons_per_year"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage" yaml:"input_cost_percentage"`
}

type BuffaloMeatCoefficients struct {
	SlaughterRate       float64 `bson:"slaughter_rate" json:"slaughter_rate" yaml:"slaughter_rate"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage" yaml:"input_cost_percentage"`
}

// PoultryMeatCoefficients models broiler production; BirdWeightKg is the
// live weight the dressing percentage is applied to.
type PoultryMeatCoefficients struct {
	BatchesPerYear      float64 `bson:"batches_per_year" json:"batches_per_year" yaml:"batches_per_year"`
	SlaughterRate       float64 `bson:"slaughter_rate" json:"slaughter_rate" yaml:"slaughter_rate"`
	DressingPercentage  float64 `bson:"dressing_percentage" json:"dressing_percentage" yaml:"dressing_percentage"`
	BirdWeightKg        float64 `bson:"bird_weight_kg" json:"bird_weight_kg" yaml:"bird_weight_kg"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage" yaml:"input_cost_percentage"`
}

type EggCoefficients struct {
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage" yaml:"input_cost_percentage"`
}

// Lookup returns a copy of the coefficients for one category keyed by their
// wire names. The second result is false for unknown categories.
func (c Coefficients) Lookup(category Category) (map[string]float64, bool) {
	switch category {
	case CategoryMilk:
		return map[string]float64{
			"breedable_percentage":  c.Milk.BreedablePercentage,
			"in_milk_percentage":    c.Milk.InMilkPercentage,
			"input_cost_percentage": c.Milk.InputCostPercentage,
		}, true
	case CategorySheepGoatMeat:
		return map[string]float64{
			"slaughter_rate":        c.SheepGoat.SlaughterRate,
			"seasons_per_year":      c.SheepGoat.SeasonsPerYear,
			"input_cost_percentage": c.SheepGoat.InputCostPercentage,
		}, true
	case CategoryBuffaloMeat:
		return map[string]float64{
			"slaughter_rate":        c.BuffaloMeat.SlaughterRate,
			"input_cost_percentage": c.BuffaloMeat.InputCostPercentage,
		}, true
	case CategoryPoultryMeat:
		return map[string]float64{
			"batches_per_year":      c.PoultryMeat.BatchesPerYear,
			"slaughter_rate":        c.PoultryMeat.SlaughterRate,
			"dressing_percentage":   c.PoultryMeat.DressingPercentage,
			"bird_weight_kg":        c.PoultryMeat.BirdWeightKg,
			"input_cost_percentage": c.PoultryMeat.InputCostPercentage,
		}, true
	case CategoryEgg:
		return map[string]float64{
			"input_cost_percentage": c.Egg.InputCostPercentage,
		}, true
	default:
		return nil, false
	}
}
