package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegabytes/ecoprompt/refdata"
)

func suggestionTypes(s Suggestions) []SuggestionType {
	types := make([]SuggestionType, 0, len(s.Suggestions))
	for _, suggestion := range s.Suggestions {
		types = append(types, suggestion.Type)
	}
	return types
}

func TestOptimizationSuggestions(t *testing.T) {
	tests := []struct {
		name         string
		modelID      string
		inputTokens  int
		outputTokens int
		prompt       string
		wantTypes    []SuggestionType
		wantEnergy   []float64
	}{
		{
			name:         "should suggest switching to the most efficient model",
			modelID:      "gpt-4o",
			inputTokens:  100,
			outputTokens: 300,
			wantTypes:    []SuggestionType{SuggestModelSelection},
			wantEnergy:   []float64{0.421 - 0.07},
		},
		{
			name:         "should suggest nothing for the most efficient model",
			modelID:      "llama-3.2-1b",
			inputTokens:  100,
			outputTokens: 300,
			wantTypes:    []SuggestionType{},
			wantEnergy:   []float64{},
		},
		{
			name:         "should suggest shorter responses for long outputs",
			modelID:      "gpt-4o",
			inputTokens:  100,
			outputTokens: 2000,
			wantTypes:    []SuggestionType{SuggestModelSelection, SuggestOutputLength},
			wantEnergy:   []float64{1.214 - 0.218, 1.214 - 0.421},
		},
		{
			name:       "should suggest simplifying long prompts",
			modelID:    "llama-3.2-1b",
			prompt:     strings.Repeat("word ", 200),
			wantTypes:  []SuggestionType{SuggestPromptEfficiency},
			wantEnergy: []float64{0.218 * 0.15},
		},
		{
			name:         "should compare a model outside the candidate list",
			modelID:      "deepseek-r1",
			inputTokens:  100,
			outputTokens: 300,
			wantTypes:    []SuggestionType{SuggestModelSelection},
			wantEnergy:   []float64{23.815 - 0.07},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t)
			got, err := calc.OptimizationSuggestions(tt.modelID, tt.inputTokens, tt.outputTokens, tt.prompt)
			require.NoError(t, err)

			assert.Equal(t, tt.modelID, got.CurrentImpact.Model.ID)
			assert.Equal(t, tt.wantTypes, suggestionTypes(got))

			var totalEnergy, totalPct float64
			for i, s := range got.Suggestions {
				assert.InDelta(t, tt.wantEnergy[i], s.Savings.EnergyWh, delta)
				totalEnergy += s.Savings.EnergyWh
				totalPct += s.Savings.Percentage
			}
			assert.InDelta(t, totalEnergy, got.TotalPotentialSavings.EnergyWh, delta)
			assert.InDelta(t, totalPct, got.TotalPotentialSavings.Percentage, delta)
		})
	}
}

func TestOptimizationSuggestions_Details(t *testing.T) {
	calc := newTestCalculator(t)

	got, err := calc.OptimizationSuggestions("gpt-4o", 100, 2000, "")
	require.NoError(t, err)
	require.Len(t, got.Suggestions, 2)

	switchModel := got.Suggestions[0]
	assert.Equal(t, "Switch to llama-3.2-1b", switchModel.Title)
	assert.Equal(t, "Use llama-3.2-1b instead of gpt-4o", switchModel.Action)
	assert.Greater(t, switchModel.Savings.Percentage, 0.0)
	assert.Less(t, switchModel.Savings.Percentage, 100.0)

	shorter := got.Suggestions[1]
	assert.Equal(t, "Limit output tokens to 300", shorter.Action)
	assert.InDelta(t, (1.214-0.421)/1.214*100, shorter.Savings.Percentage, delta)
	assert.Greater(t, shorter.Savings.WaterML, 0.0)
	assert.Greater(t, shorter.Savings.CarbonG, 0.0)
}

func TestOptimizationSuggestions_SwitchSavingsFromCurrentModel(t *testing.T) {
	calc := newTestCalculator(t)

	got, err := calc.OptimizationSuggestions("gpt-4o", 100, 300, "")
	require.NoError(t, err)
	require.Len(t, got.Suggestions, 1)
	switchModel := got.Suggestions[0]
	assert.InDelta(t, 0.421-0.07, switchModel.Savings.EnergyWh, delta)

	batch := calc.CompareModels(DefaultCandidates, 100, 300)
	require.NotNil(t, batch.PotentialSavings)
	assert.Equal(t, "claude-3.7-sonnet", batch.Worst.ModelID)
	assert.InDelta(t, 0.836-0.07, batch.PotentialSavings.EnergyWh, delta)
	assert.NotEqual(t, batch.PotentialSavings.EnergyWh, switchModel.Savings.EnergyWh)
}

func TestOptimizationSuggestions_CustomCandidates(t *testing.T) {
	calc := newTestCalculator(t, WithCandidates([]string{"claude-3.7-sonnet"}))

	got, err := calc.OptimizationSuggestions("gpt-4o", 100, 300, "")
	require.NoError(t, err)
	for _, s := range got.Suggestions {
		assert.NotEqual(t, SuggestModelSelection, s.Type)
	}
}

func TestOptimizationSuggestions_UnknownModel(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.OptimizationSuggestions("gpt-5", 100, 300, "")
	assert.ErrorIs(t, err, refdata.ErrModelNotFound)
}
