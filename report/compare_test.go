package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareModels(t *testing.T) {
	ids := []string{"gpt-4o", "bogus", "llama-3.2-1b", "deepseek-r1"}

	tests := []struct {
		name          string
		normalization Normalization
		wantBestScore float64
	}{
		{
			name:          "should rank by max-normalized score",
			normalization: NormalizeMax,
			wantBestScore: -1,
		},
		{
			name:          "should score the cheapest model 0 under range normalization",
			normalization: NormalizeRange,
			wantBestScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t, WithNormalization(tt.normalization))
			got := calc.CompareModels(ids, 100, 300)

			require.Len(t, got.Comparison, 4)
			assert.Equal(t, tt.normalization, got.Normalization)
			assert.Equal(t, "bogus", got.Comparison[1].ModelID)
			assert.Contains(t, got.Comparison[1].Error, "model not found")
			assert.Zero(t, got.Comparison[1].EcoScore)

			assert.Equal(t, []string{"llama-3.2-1b", "gpt-4o", "deepseek-r1"}, got.Ranking)
			assert.Equal(t, "llama-3.2-1b", got.Recommendation)
			require.NotNil(t, got.Best)
			require.NotNil(t, got.Worst)
			assert.Equal(t, "llama-3.2-1b", got.Best.ModelID)
			assert.Equal(t, "deepseek-r1", got.Worst.ModelID)
			assert.InDelta(t, 1.0, got.Worst.EcoScore, delta)
			if tt.wantBestScore >= 0 {
				assert.InDelta(t, tt.wantBestScore, got.Best.EcoScore, delta)
			} else {
				assert.Greater(t, got.Best.EcoScore, 0.0)
			}

			require.NotNil(t, got.PotentialSavings)
			assert.InDelta(t, 23.815-0.07, got.PotentialSavings.EnergyWh, delta)
			assert.Greater(t, got.PotentialSavings.WaterML, 0.0)
			assert.Greater(t, got.PotentialSavings.CarbonG, 0.0)
			assert.InDelta(t, (got.Worst.EcoScore-got.Best.EcoScore)/got.Worst.EcoScore*100, got.PotentialSavings.Percentage, delta)

			for _, entry := range got.Comparison {
				if entry.Error == "" {
					assert.GreaterOrEqual(t, entry.EcoScore, 0.0)
					assert.LessOrEqual(t, entry.EcoScore, 1.0+delta)
					assert.NotEmpty(t, entry.Conversions.Energy)
				}
			}
		})
	}
}

func TestCompareModels_NoValidModels(t *testing.T) {
	calc := newTestCalculator(t)

	got := calc.CompareModels([]string{"a", "b"}, 100, 300)
	require.Len(t, got.Comparison, 2)
	assert.Empty(t, got.Recommendation)
	assert.Empty(t, got.Ranking)
	assert.Nil(t, got.Best)
	assert.Nil(t, got.Worst)
	assert.Nil(t, got.PotentialSavings)
}

func TestCompareModels_SingleModelScoresZeroUnderRange(t *testing.T) {
	calc := newTestCalculator(t, WithNormalization(NormalizeRange))

	got := calc.CompareModels([]string{"gpt-4o"}, 100, 300)
	assert.Equal(t, "gpt-4o", got.Recommendation)
	assert.Zero(t, got.Best.EcoScore)
	assert.Zero(t, got.PotentialSavings.Percentage)
}

func TestCompareMetrics(t *testing.T) {
	calc := newTestCalculator(t)
	ids := []string{"gpt-4o", "nope", "llama-3.2-1b"}

	tests := []struct {
		name      string
		compare   func([]string, int, int) MetricComparison
		metric    Metric
		unit      string
		wantBest  float64
		wantWorst float64
	}{
		{
			name:      "should compare energy",
			compare:   calc.CompareEnergy,
			metric:    MetricEnergy,
			unit:      "Wh",
			wantBest:  0.07,
			wantWorst: 0.421,
		},
		{
			name:      "should compare water",
			compare:   calc.CompareWater,
			metric:    MetricWater,
			unit:      "mL",
			wantBest:  (0.00007/1.14*0.18 + 0.00007*5.11) * 1000,
			wantWorst: (0.000421/1.12*0.30 + 0.000421*4.35) * 1000,
		},
		{
			name:      "should compare carbon",
			compare:   calc.CompareCarbon,
			metric:    MetricCarbon,
			unit:      "gCO2e",
			wantBest:  0.00007 * 0.287 * 1000,
			wantWorst: 0.000421 * 0.35 * 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.compare(ids, 100, 300)

			assert.Equal(t, tt.metric, got.Metric)
			assert.Equal(t, tt.unit, got.Unit)
			require.Len(t, got.Comparison, 3)
			assert.NotEmpty(t, got.Comparison[1].Error)
			assert.Equal(t, "GPT-4o", got.Comparison[0].ModelName)
			assert.Equal(t, "Microsoft Azure", got.Comparison[0].Provider)

			assert.Equal(t, "llama-3.2-1b", got.Recommendation)
			require.NotNil(t, got.Best)
			require.NotNil(t, got.Worst)
			assert.InDelta(t, tt.wantBest, *got.Best, delta)
			assert.InDelta(t, tt.wantWorst, *got.Worst, delta)
		})
	}

	t.Run("should leave recommendation empty when every model fails", func(t *testing.T) {
		got := calc.CompareCarbon([]string{"x"}, 100, 300)
		assert.Empty(t, got.Recommendation)
		assert.Nil(t, got.Best)
		assert.Nil(t, got.Worst)
	})
}
