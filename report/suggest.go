package report

import (
	"fmt"
	"slices"

	"github.com/omegabytes/ecoprompt/request"
)

const (
	// shortOutputTokens is the response length suggested for long outputs.
	shortOutputTokens = 300
	// longPromptTokens is the input size above which prompt simplification is suggested.
	longPromptTokens = 200
	// promptSimplificationSavings is the assumed energy saving of a simplified prompt, in percent.
	promptSimplificationSavings = 15
)

type SuggestionType string

const (
	SuggestModelSelection   SuggestionType = "model_selection"
	SuggestOutputLength     SuggestionType = "output_length"
	SuggestPromptEfficiency SuggestionType = "prompt_efficiency"
)

// Suggestion is one action that lowers the footprint of a query.
type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Savings     Savings        `json:"savings"`
	Action      string         `json:"action"`
}

type TotalSavings struct {
	EnergyWh   float64 `json:"energy_wh"`
	Percentage float64 `json:"percentage"`
}

// Suggestions lists the applicable optimizations of a query.
type Suggestions struct {
	CurrentImpact         CompleteImpact `json:"current_impact"`
	Suggestions           []Suggestion   `json:"suggestions"`
	TotalPotentialSavings TotalSavings   `json:"total_potential_savings"`
}

// OptimizationSuggestions proposes ways to lower the footprint of a query: switching to the
// most eco-efficient candidate model, capping the response length, and simplifying a long prompt.
//
// Savings of a model switch are measured from the current model to the best candidate, which
// is compared alongside the candidates. They differ from the worst-to-best PotentialSavings
// of a plain CompareModels over the candidates, and adding the current model to the batch can
// shift the max-normalized scores of the others.
func (c *Calculator) OptimizationSuggestions(
	modelID string,
	inputTokens, outputTokens int,
	promptText string,
) (Suggestions, error) {
	current, err := c.CompleteImpact(modelID, inputTokens, outputTokens, promptText)
	if err != nil {
		return Suggestions{}, err
	}
	in, out := current.Tokens.Input, current.Tokens.Output
	currentEnergy := current.EnvironmentalImpact.Energy.Wh

	suggestions := []Suggestion{}

	candidates := slices.Clone(c.candidates)
	if !slices.Contains(candidates, modelID) {
		candidates = append(candidates, modelID)
	}
	comparison := c.CompareModels(candidates, in, out)
	if comparison.Recommendation != "" && comparison.Recommendation != modelID {
		var self, best ModelComparison
		for _, entry := range comparison.Comparison {
			switch entry.ModelID {
			case modelID:
				self = entry
			case comparison.Recommendation:
				best = entry
			}
		}
		suggestions = append(suggestions, Suggestion{
			Type:        SuggestModelSelection,
			Title:       fmt.Sprintf("Switch to %s", best.ModelID),
			Description: "This model is more eco-efficient for similar tasks",
			Savings:     savingsBetween(self, best),
			Action:      fmt.Sprintf("Use %s instead of %s", best.ModelID, modelID),
		})
	}

	if out > shortOutputTokens {
		reduced, err := c.CompleteImpact(modelID, in, shortOutputTokens, "")
		if err != nil {
			return Suggestions{}, fmt.Errorf("failed to evaluate shorter response: %w", err)
		}
		saved := Savings{
			EnergyWh: currentEnergy - reduced.EnvironmentalImpact.Energy.Wh,
			WaterML:  current.EnvironmentalImpact.Water.ML - reduced.EnvironmentalImpact.Water.ML,
			CarbonG:  current.EnvironmentalImpact.Carbon.GCO2e - reduced.EnvironmentalImpact.Carbon.GCO2e,
		}
		if currentEnergy > 0 {
			saved.Percentage = saved.EnergyWh / currentEnergy * 100
		}
		suggestions = append(suggestions, Suggestion{
			Type:        SuggestOutputLength,
			Title:       "Request shorter responses",
			Description: fmt.Sprintf("Add 'Answer in %d words or less' to your prompt", shortOutputTokens),
			Savings:     saved,
			Action:      fmt.Sprintf("Limit output tokens to %d", shortOutputTokens),
		})
	}

	if promptText != "" && in > longPromptTokens {
		suggestions = append(suggestions, Suggestion{
			Type:        SuggestPromptEfficiency,
			Title:       "Simplify your prompt",
			Description: "Remove unnecessary words and context",
			Savings: Savings{
				EnergyWh:   currentEnergy * promptSimplificationSavings / 100,
				Percentage: promptSimplificationSavings,
			},
			Action: "Review and shorten your prompt",
		})
	}

	var total TotalSavings
	for _, s := range suggestions {
		total.EnergyWh += s.Savings.EnergyWh
		total.Percentage += s.Savings.Percentage
	}

	return Suggestions{
		CurrentImpact:         current,
		Suggestions:           suggestions,
		TotalPotentialSavings: total,
	}, nil
}

// EstimatedRequest returns the request CompleteImpact evaluates for the given arguments.
func (c *Calculator) EstimatedRequest(modelID string, inputTokens, outputTokens int, promptText string) request.Request {
	return request.Request{
		ModelID:      modelID,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		PromptText:   promptText,
	}.WithEstimatedTokens(c.defaultOutput)
}
