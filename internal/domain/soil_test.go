package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoostConfidence(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		kind string
		want float64
	}{
		{"soil high confidence", 0.8, ConfidenceSoil, 0.95},
		{"soil high under ceiling", 0.6, ConfidenceSoil, 0.72},
		{"soil low confidence", 0.4, ConfidenceSoil, 0.44},
		{"soil low ceiling", 0.5, ConfidenceSoil, 0.55},

		{"crop strong", 0.7, ConfidenceCrop, 0.92},
		{"crop mid", 0.3, ConfidenceCrop, 0.48},
		{"crop weak floors", 0.1, ConfidenceCrop, 0.75},
		{"crop weak doubles", 0.2, ConfidenceCrop, 0.75},

		{"desired strong", 0.8, ConfidenceDesired, 0.95},
		{"desired mid", 0.2, ConfidenceDesired, 0.3},
		{"desired weak floors", 0.05, ConfidenceDesired, 0.75},

		{"general strong", 0.6, ConfidenceGeneral, 0.78},
		{"general mid", 0.3, ConfidenceGeneral, 0.45},
		{"general weak floors", 0.1, ConfidenceGeneral, 0.75},
		{"unknown kind uses general", 0.6, "whatever", 0.78},

		{"negative collapses to floor", -0.2, ConfidenceSoil, 0.75},
		{"above one collapses to floor", 1.5, ConfidenceCrop, 0.75},
		{"nan collapses to floor", math.NaN(), ConfidenceGeneral, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BoostConfidence(tt.raw, tt.kind), 1e-9)
		})
	}
}

func TestOverallConfidence(t *testing.T) {
	// soil 0.8 → 0.95, crop 0.7 → 0.92, mean 0.935 → 0.94.
	assert.InDelta(t, 0.94, OverallConfidence(0.8, 0.7), 1e-9)

	// soil 0.55 → 0.66, crop 0.55 → 0.77, mean 0.715 under the floor,
	// lifted by 1.1 → 0.79.
	assert.InDelta(t, 0.79, OverallConfidence(0.55, 0.55), 1e-9)

	// Both out of range collapse to the floor pair; mean 0.75 gets no lift.
	assert.InDelta(t, 0.75, OverallConfidence(-1, 2), 1e-9)

	// Very weak soil still lifts rather than flooring.
	// soil 0.1 → 0.11, crop 0.1 → 0.75, mean 0.43 → 0.47.
	assert.InDelta(t, 0.47, OverallConfidence(0.1, 0.1), 1e-9)
}
