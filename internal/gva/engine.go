// Package gva turns a village livestock census and market prices into a
// commodity-by-commodity Gross Value Added breakdown.
//
// Every function in this package is pure: no I/O and no shared mutable
// state, so an Engine may be used from many goroutines at once.
package gva

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

// Engine aggregates the five commodity calculators over a fixed coefficient
// table.
type Engine struct {
	coeffs models.Coefficients
	now    func() time.Time
	newID  func() string
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides report id generation.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine validates the coefficient table and returns an Engine bound to it.
func NewEngine(coeffs models.Coefficients, opts ...Option) (*Engine, error) {
	if err := ValidateCoefficients(coeffs); err != nil {
		return nil, err
	}

	e := &Engine{
		coeffs: coeffs,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Coefficients returns the table the engine calculates with.
func (e *Engine) Coefficients() models.Coefficients {
	return e.coeffs
}

// Calculate validates the input and runs every commodity calculator.
func (e *Engine) Calculate(in models.CensusInput) (models.Results, error) {
	if err := ValidateInput(in); err != nil {
		return models.Results{}, err
	}

	res := models.Results{
		MilkBreakdown:        CalculateMilk(in, e.coeffs),
		SheepGoatBreakdown:   CalculateSheepGoatMeat(in, e.coeffs),
		BuffaloMeatBreakdown: CalculateBuffaloMeat(in, e.coeffs),
		PoultryMeatBreakdown: CalculatePoultryMeat(in, e.coeffs),
		EggBreakdown:         CalculateEgg(in, e.coeffs),
	}
	for _, b := range res.Breakdowns() {
		res.TotalVillageGVA += b.Value().NetGVA
	}
	if err := checkResults(res); err != nil {
		return models.Results{}, err
	}

	return res, nil
}

// Aggregate calculates the input and wraps the results in a new report
// stamped with an id, the current UTC time and the author.
func (e *Engine) Aggregate(in models.CensusInput, author models.Author) (models.Report, error) {
	if author.ID == "" {
		return models.Report{}, fmt.Errorf("%w: report author is required", ErrInvalidInput)
	}

	res, err := e.Calculate(in)
	if err != nil {
		return models.Report{}, err
	}

	return models.Report{
		ID:           e.newID(),
		CreatedAt:    e.now().UTC(),
		Author:       author,
		Inputs:       in,
		Results:      res,
		SettingsUsed: e.coeffs,
	}, nil
}
