package backend

import (
	"context"

	"github.com/guonaihong/gout"

	"github.com/akash06959/agronova/internal/domain"
)

// PredictSoil classifies the soil type for a sample.
func (c *Client) PredictSoil(ctx context.Context, sample domain.SoilSample) (domain.SoilAnalysis, error) {
	var out domain.SoilAnalysis
	err := c.do(ctx, gout.POST(c.url("/predict-kerala-soil")).SetJSON(sample), &out, "predict soil")
	return out, err
}

// RecommendCrop returns the best crop for a sample.
func (c *Client) RecommendCrop(ctx context.Context, sample domain.SoilSample) (domain.CropRecommendation, error) {
	var out domain.CropRecommendation
	err := c.do(ctx, gout.POST(c.url("/recommend-kerala-crop")).SetJSON(sample), &out, "recommend crop")
	return out, err
}

// AnalyzeDesiredCrop scores a named crop against a sample.
func (c *Client) AnalyzeDesiredCrop(ctx context.Context, req domain.DesiredCropRequest) (domain.DesiredCropVerdict, error) {
	var out domain.DesiredCropVerdict
	err := c.do(ctx, gout.POST(c.url("/analyze-desired-crop")).SetJSON(req), &out, "analyze desired crop")
	return out, err
}

// ModelInfo reports the deployed soil/crop model metadata.
func (c *Client) ModelInfo(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, gout.GET(c.url("/kerala-model-info")), &out, "model info")
	return out, err
}
