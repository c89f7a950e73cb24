package conversion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegabytes/ecoprompt/common"
)

func TestParseFactors(t *testing.T) {
	tests := []struct {
		name          string
		jsonContent   string
		want          func() Factors
		expectError   bool
		expectErrorIs error
	}{
		{
			name:        "should return defaults for an empty document",
			jsonContent: `{}`,
			want:        DefaultFactors,
		},
		{
			name: "should override only the factors present",
			jsonContent: `{
				"energy_conversions": {"laptop_watts": 65},
				"carbon_conversions": {"car_gco2e_per_km": 120}
			}`,
			want: func() Factors {
				f := DefaultFactors()
				f.Energy.LaptopWatts = 65
				f.Carbon.CarGCO2ePerKm = 120
				return f
			},
		},
		{
			name:          "should reject a zero divisor",
			jsonContent:   `{"water_conversions": {"bottle_ml": 0}}`,
			expectError:   true,
			expectErrorIs: common.ErrInvalidDocument,
		},
		{
			name:          "should reject a non numeric factor",
			jsonContent:   `{"water_conversions": {"bottle_ml": "half a litre"}}`,
			expectError:   true,
			expectErrorIs: common.ErrInvalidDocument,
		},
		{
			name:          "should reject a section that is not an object",
			jsonContent:   `{"energy_conversions": 5}`,
			expectError:   true,
			expectErrorIs: common.ErrInvalidDocument,
		},
		{
			name:        "should reject malformed JSON",
			jsonContent: `{"water_conversions": `,
			expectError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conversion_factors.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.jsonContent), 0o600))

			got, err := FetchFactors(path)
			if tt.expectError {
				assert.Error(t, err)
				if tt.expectErrorIs != nil {
					assert.ErrorIs(t, err, tt.expectErrorIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}

	t.Run("should return error for missing file", func(t *testing.T) {
		_, err := FetchFactors(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
