package models

// Category identifies a commodity the GVA engine values.
type Category string

const (
	CategoryMilk          Category = "milk"
	CategorySheepGoatMeat Category = "sheep_goat_meat"
	CategoryBuffaloMeat   Category = "buffalo_meat"
	CategoryPoultryMeat   Category = "poultry_meat"
	CategoryEgg           Category = "egg"
)

// Categories lists every commodity in report order.
var Categories = []Category{
	CategoryMilk,
	CategorySheepGoatMeat,
	CategoryBuffaloMeat,
	CategoryPoultryMeat,
	CategoryEgg,
}

// Label returns the human readable commodity name.
func (c Category) Label() string {
	switch c {
	case CategoryMilk:
		return "Milk"
	case CategorySheepGoatMeat:
		return "Sheep & Goat Meat"
	case CategoryBuffaloMeat:
		return "Buffalo Meat"
	case CategoryPoultryMeat:
		return "Poultry Meat"
	case CategoryEgg:
		return "Eggs"
	default:
		return string(c)
	}
}

// Value is the monetary outcome shared by every commodity breakdown.
type Value struct {
	GSDP      float64
	InputCost float64
	NetGVA    float64
}

// Breakdown is implemented by each commodity's derived figures.
type Breakdown interface {
	Category() Category
	Value() Value
}

// MilkBreakdown holds the dairy chain: breedable stock, animals in milk and
// annual litres.
type MilkBreakdown struct {
	BreedableAnimals int64   `bson:"milk_breedable_animals" json:"milk_breedable_animals"`
	InMilkAnimals    int64   `bson:"milk_in_milk_animals" json:"milk_in_milk_animals"`
	DailyProduction  float64 `bson:"milk_daily_production" json:"milk_daily_production"`
	AnnualProduction float64 `bson:"milk_annual_production" json:"milk_annual_production"`
	GSDP             float64 `bson:"milk_gsdp" json:"milk_gsdp"`
	InputCost        float64 `bson:"milk_input_cost" json:"milk_input_cost"`
	GVA              float64 `bson:"milk_gva" json:"milk_gva"`
}

func (b MilkBreakdown) Category() Category { return CategoryMilk }
func (b MilkBreakdown) Value() Value       { return Value{b.GSDP, b.InputCost, b.GVA} }

// SheepGoatBreakdown holds small ruminant meat production across seasons.
type SheepGoatBreakdown struct {
	SlaughterCount int64   `bson:"sheep_goat_slaughter_count" json:"sheep_goat_slaughter_count"`
	MeatProduction float64 `bson:"sheep_goat_meat_production" json:"sheep_goat_meat_production"` // per season
	AnnualMeat     float64 `bson:"sheep_goat_annual_meat" json:"sheep_goat_annual_meat"`
	GSDP           float64 `bson:"sheep_goat_gsdp" json:"sheep_goat_gsdp"`
	InputCost      float64 `bson:"sheep_goat_input_cost" json:"sheep_goat_input_cost"`
	GVA            float64 `bson:"sheep_goat_gva" json:"sheep_goat_gva"`
}

func (b SheepGoatBreakdown) Category() Category { return CategorySheepGoatMeat }
func (b SheepGoatBreakdown) Value() Value       { return Value{b.GSDP, b.InputCost, b.GVA} }

// BuffaloMeatBreakdown holds buffalo meat production.
type BuffaloMeatBreakdown struct {
	SlaughterCount int64   `bson:"buffalo_slaughter_count" json:"buffalo_slaughter_count"`
	MeatProduction float64 `bson:"buffalo_meat_production" json:"buffalo_meat_production"`
	GSDP           float64 `bson:"buffalo_gsdp" json:"buffalo_gsdp"`
	InputCost      float64 `bson:"buffalo_input_cost" json:"buffalo_input_cost"`
	GVA            float64 `bson:"buffalo_meat_gva" json:"buffalo_meat_gva"`
}

func (b BuffaloMeatBreakdown) Category() Category { return CategoryBuffaloMeat }
func (b BuffaloMeatBreakdown) Value() Value       { return Value{b.GSDP, b.InputCost, b.GVA} }

// PoultryMeatBreakdown holds broiler batches, slaughter and dressed meat.
type PoultryMeatBreakdown struct {
	AnnualBirds    int64   `bson:"poultry_annual_birds" json:"poultry_annual_birds"`
	SlaughterCount int64   `bson:"poultry_slaughter_count" json:"poultry_slaughter_count"`
	DressedMeat    float64 `bson:"poultry_dressed_meat" json:"poultry_dressed_meat"`
	GSDP           float64 `bson:"poultry_gsdp" json:"poultry_gsdp"`
	InputCost      float64 `bson:"poultry_input_cost" json:"poultry_input_cost"`
	GVA            float64 `bson:"poultry_meat_gva" json:"poultry_meat_gva"`
}

func (b PoultryMeatBreakdown) Category() Category { return CategoryPoultryMeat }
func (b PoultryMeatBreakdown) Value() Value       { return Value{b.GSDP, b.InputCost, b.GVA} }

// EggBreakdown holds annual egg production.
type EggBreakdown struct {
	AnnualProduction float64 `bson:"egg_annual_production" json:"egg_annual_production"`
	GSDP             float64 `bson:"egg_gsdp" json:"egg_gsdp"`
	InputCost        float64 `bson:"egg_input_cost" json:"egg_input_cost"`
	GVA              float64 `bson:"egg_gva" json:"egg_gva"`
}

func (b EggBreakdown) Category() Category { return CategoryEgg }
func (b EggBreakdown) Value() Value       { return Value{b.GSDP, b.InputCost, b.GVA} }

// Results is the full calculation payload. The embedded breakdowns flatten
// into a single object on the wire.
type Results struct {
	MilkBreakdown        `bson:",inline"`
	SheepGoatBreakdown   `bson:",inline"`
	BuffaloMeatBreakdown `bson:",inline"`
	PoultryMeatBreakdown `bson:",inline"`
	EggBreakdown         `bson:",inline"`

	TotalVillageGVA float64 `bson:"total_village_gva" json:"total_village_gva"`
}

// Breakdowns returns the five commodity breakdowns in report order.
func (r Results) Breakdowns() []Breakdown {
	return []Breakdown{
		r.MilkBreakdown,
		r.SheepGoatBreakdown,
		r.BuffaloMeatBreakdown,
		r.PoultryMeatBreakdown,
		r.EggBreakdown,
	}
}
