package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegabytes/ecoprompt/impact"
	"github.com/omegabytes/ecoprompt/refdata"
	"github.com/omegabytes/ecoprompt/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImpactCmd(t *testing.T) {
	t.Run("should print the complete impact as json", func(t *testing.T) {
		out, err := execute(t, "impact", "--model", "gpt-4o", "--input", "100", "--output", "300", "--json")
		require.NoError(t, err)

		var got report.CompleteImpact
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "gpt-4o", got.Model.ID)
		assert.Equal(t, 400, got.Tokens.Total)
		assert.Equal(t, 0.421, got.EnvironmentalImpact.Energy.Wh)
	})

	t.Run("should include the formula estimate", func(t *testing.T) {
		out, err := execute(t, "impact", "--model", "gpt-4o", "--input", "100", "--output", "300", "--formula", "--json")
		require.NoError(t, err)

		var got struct {
			FormulaEnergy *impact.Energy `json:"formula_energy"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.NotNil(t, got.FormulaEnergy)
		assert.Equal(t, impact.MethodFormula, got.FormulaEnergy.Method)
		assert.NotNil(t, got.FormulaEnergy.Details)
	})

	t.Run("should render text", func(t *testing.T) {
		out, err := execute(t, "impact", "--model", "gpt-4o", "--input", "100", "--output", "300")
		require.NoError(t, err)
		assert.Contains(t, out, "GPT-4o")
		assert.Contains(t, out, "0.421 Wh")
		assert.Contains(t, out, "ENVIRONMENTAL IMPACT")
	})

	t.Run("should fail for unknown model", func(t *testing.T) {
		_, err := execute(t, "impact", "--model", "gpt-5", "--input", "100", "--output", "300")
		assert.ErrorIs(t, err, refdata.ErrModelNotFound)
	})

	t.Run("should require a model", func(t *testing.T) {
		_, err := execute(t, "impact", "--input", "100")
		assert.Error(t, err)
	})
}

func TestCompareCmd(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantNorm      report.Normalization
		wantRecommend string
	}{
		{
			name:          "should rank with max normalization by default",
			args:          []string{"compare", "--models", "gpt-4o,llama-3.2-1b,bogus", "--json"},
			wantNorm:      report.NormalizeMax,
			wantRecommend: "llama-3.2-1b",
		},
		{
			name:          "should honor the normalize flag",
			args:          []string{"compare", "--models", "gpt-4o,llama-3.2-1b", "--normalize", "range", "--json"},
			wantNorm:      report.NormalizeRange,
			wantRecommend: "llama-3.2-1b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)

			var got report.Comparison
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.wantNorm, got.Normalization)
			assert.Equal(t, tt.wantRecommend, got.Recommendation)
		})
	}

	t.Run("should compare a single metric", func(t *testing.T) {
		out, err := execute(t, "compare", "--models", "gpt-4o,llama-3.2-1b", "--metric", "carbon", "--json")
		require.NoError(t, err)

		var got report.MetricComparison
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, report.MetricCarbon, got.Metric)
		assert.Equal(t, "llama-3.2-1b", got.Recommendation)
	})

	t.Run("should reject unknown metric", func(t *testing.T) {
		_, err := execute(t, "compare", "--metric", "noise")
		assert.EqualError(t, err, `unknown metric "noise": must be energy, water or carbon`)
	})

	t.Run("should reject unknown normalization", func(t *testing.T) {
		_, err := execute(t, "compare", "--normalize", "zscore")
		assert.ErrorIs(t, err, report.ErrUnknownNormalization)
	})

	t.Run("should render every model by default", func(t *testing.T) {
		out, err := execute(t, "compare")
		require.NoError(t, err)
		assert.Contains(t, out, "Recommended: llama-3.2-1b")
		assert.Contains(t, out, "deepseek-r1")
	})
}

func TestSuggestCmd(t *testing.T) {
	out, err := execute(t, "suggest", "--model", "gpt-4o", "--input", "100", "--output", "2000", "--json")
	require.NoError(t, err)

	var got report.Suggestions
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Suggestions, 2)
	assert.Equal(t, report.SuggestModelSelection, got.Suggestions[0].Type)
	assert.Equal(t, report.SuggestOutputLength, got.Suggestions[1].Type)

	text, err := execute(t, "suggest", "--model", "llama-3.2-1b", "--input", "100", "--output", "300")
	require.NoError(t, err)
	assert.Contains(t, text, "already efficient")
}

func TestAnnualCmd(t *testing.T) {
	out, err := execute(t, "annual", "--daily", "1000", "--carbon-per-query", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "360,000")
	assert.Contains(t, out, "180.00 kgCO2e")

	_, err = execute(t, "annual", "--daily", "-5", "--carbon-per-query", "0.5")
	assert.Error(t, err)
}

func TestModelsCmd(t *testing.T) {
	out, err := execute(t, "models", "--json")
	require.NoError(t, err)

	var got []modelInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 7)
	assert.Equal(t, "claude-3.7-sonnet", got[0].ID)
	assert.Equal(t, "AWS", got[0].Host)
}

func TestDataDirFlag(t *testing.T) {
	t.Run("should fail when the data dir has no reference documents", func(t *testing.T) {
		_, err := execute(t, "models", "--data-dir", t.TempDir())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should read documents from the data dir", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{refdata.ModelsFile, refdata.InfrastructureFile, refdata.ConversionsFile} {
			data, err := os.ReadFile(filepath.Join("..", "..", "refdata", "data", name))
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
		}

		out, err := execute(t, "models", "--data-dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "reference data: "+dir)
	})
}
