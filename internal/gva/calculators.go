package gva

import (
	"math"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

const daysPerYear = 365

// CalculateMilk values the dairy herd: cattle and buffalo share the breedable
// and in-milk fractions.
func CalculateMilk(in models.CensusInput, c models.Coefficients) models.MilkBreakdown {
	var b models.MilkBreakdown

	herd := in.CattleCount + in.BuffaloCount
	b.BreedableAnimals = headcount(float64(herd), c.Milk.BreedablePercentage)
	b.InMilkAnimals = headcount(float64(b.BreedableAnimals), c.Milk.InMilkPercentage)
	b.DailyProduction = float64(b.InMilkAnimals) * in.AvgMilkYieldPerDay
	b.AnnualProduction = b.DailyProduction * daysPerYear
	b.GSDP = b.AnnualProduction * in.MilkPricePerLitre
	b.InputCost, b.GVA = deduct(b.GSDP, c.Milk.InputCostPercentage)

	return b
}

// CalculateSheepGoatMeat values small ruminant meat over the configured
// number of seasons per year.
func CalculateSheepGoatMeat(in models.CensusInput, c models.Coefficients) models.SheepGoatBreakdown {
	var b models.SheepGoatBreakdown

	flock := in.SheepCount + in.GoatCount
	b.SlaughterCount = headcount(float64(flock), c.SheepGoat.SlaughterRate)
	b.MeatProduction = float64(b.SlaughterCount) * in.AvgLiveWeightKg
	b.AnnualMeat = b.MeatProduction * c.SheepGoat.SeasonsPerYear
	b.GSDP = b.AnnualMeat * in.MeatPricePerKg
	b.InputCost, b.GVA = deduct(b.GSDP, c.SheepGoat.InputCostPercentage)

	return b
}

// CalculateBuffaloMeat values buffalo slaughter. Buffalo also feed the milk
// chain; the two paths are independent.
func CalculateBuffaloMeat(in models.CensusInput, c models.Coefficients) models.BuffaloMeatBreakdown {
	var b models.BuffaloMeatBreakdown

	b.SlaughterCount = headcount(float64(in.BuffaloCount), c.BuffaloMeat.SlaughterRate)
	b.MeatProduction = float64(b.SlaughterCount) * in.AvgLiveWeightKg
	b.GSDP = b.MeatProduction * in.MeatPricePerKg
	b.InputCost, b.GVA = deduct(b.GSDP, c.BuffaloMeat.InputCostPercentage)

	return b
}

// CalculatePoultryMeat values broiler batches turned into dressed meat.
func CalculatePoultryMeat(in models.CensusInput, c models.Coefficients) models.PoultryMeatBreakdown {
	var b models.PoultryMeatBreakdown

	b.AnnualBirds = int64(math.Floor(float64(in.PoultryCount) * c.PoultryMeat.BatchesPerYear))
	b.SlaughterCount = headcount(float64(b.AnnualBirds), c.PoultryMeat.SlaughterRate)
	b.DressedMeat = float64(b.SlaughterCount) * c.PoultryMeat.DressingPercentage / 100 * c.PoultryMeat.BirdWeightKg
	b.GSDP = b.DressedMeat * in.PoultryMeatPricePerKg
	b.InputCost, b.GVA = deduct(b.GSDP, c.PoultryMeat.InputCostPercentage)

	return b
}

// CalculateEgg values annual egg production of the laying flock.
func CalculateEgg(in models.CensusInput, c models.Coefficients) models.EggBreakdown {
	var b models.EggBreakdown

	b.AnnualProduction = float64(in.PoultryCount) * in.EggsPerBirdPerYear
	b.GSDP = b.AnnualProduction * in.EggPrice
	b.InputCost, b.GVA = deduct(b.GSDP, c.Egg.InputCostPercentage)

	return b
}

// headcount applies a percentage to a population and keeps whole animals.
func headcount(population, pct float64) int64 {
	return int64(math.Floor(population * pct / 100))
}

// deduct splits gross output into input cost and net value added. Net value
// never drops below zero.
func deduct(gsdp, inputCostPct float64) (inputCost, net float64) {
	inputCost = gsdp * inputCostPct / 100
	net = gsdp - inputCost
	if net < 0 {
		net = 0
	}
	return inputCost, net
}
