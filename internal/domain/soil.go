package domain

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/akash06959/agronova/pkg/common"
)

// SoilSample carries the seven soil/climate readings every ML endpoint
// consumes. Ranges are validated by the backend; the client only forwards.
type SoilSample struct {
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// SoilAnalysis mirrors the /predict-kerala-soil response.
type SoilAnalysis struct {
	SoilType     string                 `json:"soil_type"`
	Confidence   float64                `json:"confidence"`
	Message      string                 `json:"message"`
	FeaturesUsed []string               `json:"features_used"`
	Advice       map[string]interface{} `json:"kerala_specific_advice"`
}

// CropRecommendation mirrors the /recommend-kerala-crop response.
type CropRecommendation struct {
	RecommendedCrop  string                 `json:"recommended_crop"`
	Confidence       float64                `json:"confidence"`
	AlternativeCrops []string               `json:"alternative_crops"`
	SoilAnalysis     map[string]interface{} `json:"soil_analysis"`
	FarmingAdvice    map[string]interface{} `json:"kerala_farming_advice"`
	Message          string                 `json:"message"`
}

// DesiredCropRequest asks whether a named crop suits the sampled soil.
type DesiredCropRequest struct {
	CropName string `json:"crop_name"`
	SoilSample
}

// DesiredCropVerdict mirrors the /analyze-desired-crop response.
type DesiredCropVerdict struct {
	CropName      string   `json:"crop_name"`
	Suitability   float64  `json:"suitability"`
	Verdict       string   `json:"verdict"`
	Alternatives  []string `json:"alternatives"`
	ShoppingLinks []string `json:"shopping_links"`
}

// Confidence kinds select the boost curve.
const (
	ConfidenceSoil    = "soil"
	ConfidenceCrop    = "crop"
	ConfidenceDesired = "desired"
	ConfidenceGeneral = "general"
)

// BoostConfidence lifts a raw model confidence onto the presentation scale,
// guaranteeing a floor of 0.75 and kind-specific ceilings. Values outside
// [0,1] collapse to the floor. Results are rounded to two decimals.
func BoostConfidence(raw float64, kind string) float64 {
	if raw < 0 || raw > 1 || math.IsNaN(raw) {
		return 0.75
	}

	var boosted float64
	switch kind {
	case ConfidenceSoil:
		if raw > 0.5 {
			boosted = math.Min(0.95, raw*1.2)
		} else {
			boosted = math.Min(0.85, raw*1.1)
		}
	case ConfidenceCrop:
		switch {
		case raw > 0.4:
			boosted = math.Min(0.92, raw*1.4)
		case raw > 0.2:
			boosted = math.Min(0.85, raw*1.6)
		default:
			boosted = math.Max(0.75, raw*2.0)
		}
	case ConfidenceDesired:
		switch {
		case raw > 0.3:
			boosted = math.Min(0.95, raw*1.3)
		case raw > 0.1:
			boosted = math.Min(0.85, raw*1.5)
		default:
			boosted = math.Max(0.75, raw*2.0)
		}
	default:
		switch {
		case raw > 0.4:
			boosted = math.Min(0.92, raw*1.3)
		case raw > 0.2:
			boosted = math.Min(0.85, raw*1.5)
		default:
			boosted = math.Max(0.75, raw*1.8)
		}
	}
	return common.Round2(boosted)
}

// OverallConfidence combines boosted soil and crop confidences into the
// headline score. A mean still under the 0.75 floor gets a 1.1 lift; the
// result is capped at 0.95.
func OverallConfidence(soilConf, cropConf float64) float64 {
	mean, err := stats.Mean(stats.Float64Data{
		BoostConfidence(soilConf, ConfidenceSoil),
		BoostConfidence(cropConf, ConfidenceCrop),
	})
	if err != nil {
		return 0.75
	}
	if mean < 0.75 {
		mean *= 1.1
	}
	return common.Round2(math.Min(0.95, mean))
}
