package models

// CensusInput captures the village livestock census and the market/production
// parameters a GVA calculation runs on. It is copied verbatim into the report.
type CensusInput struct {
	// Livestock census
	CattleCount  int64 `bson:"cattle_count" json:"cattle_count"`
	BuffaloCount int64 `bson:"buffalo_count" json:"buffalo_count"`
	SheepCount   int64 `bson:"sheep_count" json:"sheep_count"`
	GoatCount    int64 `bson:"goat_count" json:"goat_count"`
	PoultryCount int64 `bson:"poultry_count" json:"poultry_count"`

	// Milk parameters
	AvgMilkYieldPerDay float64 `bson:"avg_milk_yield_per_day" json:"avg_milk_yield_per_day"` // litres per animal per day
	MilkPricePerLitre  float64 `bson:"milk_price_per_litre" json:"milk_price_per_litre"`

	// Meat parameters
	AvgLiveWeightKg float64 `bson:"avg_live_weight_kg" json:"avg_live_weight_kg"`
	MeatPricePerKg  float64 `bson:"meat_price_per_kg" json:"meat_price_per_kg"`

	// Poultry and egg parameters
	EggsPerBirdPerYear    float64 `bson:"eggs_per_bird_per_year" json:"eggs_per_bird_per_year"`
	EggPrice              float64 `bson:"egg_price" json:"egg_price"` // per egg
	PoultryMeatPricePerKg float64 `bson:"poultry_meat_price_per_kg" json:"poultry_meat_price_per_kg"`

	// Location labels, never used in calculations.
	VillageName string `bson:"village_name,omitempty" json:"village_name,omitempty"`
	Mandal      string `bson:"mandal,omitempty" json:"mandal,omitempty"`
	District    string `bson:"district,omitempty" json:"district,omitempty"`
}

// TotalAnimals returns the sum of all species counts.
func (c CensusInput) TotalAnimals() int64 {
	return c.CattleCount + c.BuffaloCount + c.SheepCount + c.GoatCount + c.PoultryCount
}
