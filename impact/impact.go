/*
Package impact provides utilities for calculating the energy, water and carbon footprint of a single generative AI
model query.
*/
package impact

import (
	"errors"
	"fmt"

	"github.com/omegabytes/ecoprompt/aimodel"
	"github.com/omegabytes/ecoprompt/infra"
	"github.com/omegabytes/ecoprompt/refdata"
)

var (
	// ErrNegativeTokens is returned when a token count is below zero.
	ErrNegativeTokens = errors.New("token counts must be non-negative")
	// ErrInvalidBenchmark is returned when a benchmark cannot drive the energy formula.
	ErrInvalidBenchmark = errors.New("invalid benchmark")
	// ErrNegativeEnergy is returned when a caller supplied energy value is below zero.
	ErrNegativeEnergy = errors.New("energy must be non-negative")
)

// Method is how an energy figure was obtained.
type Method string

const (
	MethodBenchmark Method = "benchmark"
	MethodFormula   Method = "formula"
)

const whPerKWh = 1000

// ModelLookup resolves a model id to its benchmark record and hosting provider.
type ModelLookup interface {
	ProviderForModel(modelID string) (*aimodel.AIModel, *infra.Provider, error)
}

var _ ModelLookup = &refdata.Store{}

func checkTokens(inputTokens, outputTokens int) error {
	if inputTokens < 0 || outputTokens < 0 {
		return fmt.Errorf("%w: input=%d output=%d", ErrNegativeTokens, inputTokens, outputTokens)
	}
	return nil
}

// energyUsed returns the energy in Wh to attribute to a query: the supplied value when set,
// otherwise the benchmark estimate.
func energyUsed(
	estimator EnergyEstimator,
	modelID string,
	inputTokens, outputTokens int,
	energyWh *float64,
) (float64, error) {
	if energyWh != nil {
		if *energyWh < 0 {
			return 0, fmt.Errorf("%w: %g Wh", ErrNegativeEnergy, *energyWh)
		}
		return *energyWh, nil
	}
	energy, err := estimator.CalculateEnergy(modelID, inputTokens, outputTokens, true)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate energy: %w", err)
	}
	return energy.EnergyWh, nil
}
