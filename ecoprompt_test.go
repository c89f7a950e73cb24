package ecoprompt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegabytes/ecoprompt/report"
)

func TestNew(t *testing.T) {
	calc, err := New(report.WithNormalization(report.NormalizeRange))
	require.NoError(t, err)

	got, err := calc.CompleteImpact("gpt-4o", 100, 300, "")
	require.NoError(t, err)
	assert.Equal(t, 0.421, got.EnvironmentalImpact.Energy.Wh)

	cmp := calc.CompareModels([]string{"gpt-4o", "llama-3.2-1b"}, 100, 300)
	assert.Equal(t, report.NormalizeRange, cmp.Normalization)
}

func TestNewFromDir(t *testing.T) {
	t.Run("should read the reference data", func(t *testing.T) {
		calc, err := NewFromDir("refdata/data")
		require.NoError(t, err)
		assert.Equal(t, "refdata/data", calc.Store().Source())
	})

	t.Run("should fail on a directory without documents", func(t *testing.T) {
		_, err := NewFromDir(t.TempDir())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
