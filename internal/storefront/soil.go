package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/domain"
	"github.com/akash06959/agronova/internal/webserver"
)

// analyzeSoil proxies the soil classifier and lifts its confidence onto
// the presentation scale before returning.
func (h *handler) analyzeSoil(c echo.Context) error {
	var sample domain.SoilSample
	if err := c.Bind(&sample); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse soil sample")
	}
	analysis, err := h.env.Backend.PredictSoil(c.Request().Context(), sample)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "ANALYSIS_FAILED", err.Error())
	}
	analysis.Confidence = domain.BoostConfidence(analysis.Confidence, domain.ConfidenceSoil)
	return webserver.OK(c, analysis)
}

func (h *handler) recommendCrop(c echo.Context) error {
	var sample domain.SoilSample
	if err := c.Bind(&sample); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse soil sample")
	}
	rec, err := h.env.Backend.RecommendCrop(c.Request().Context(), sample)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "RECOMMENDATION_FAILED", err.Error())
	}
	rec.Confidence = domain.BoostConfidence(rec.Confidence, domain.ConfidenceCrop)
	return webserver.OK(c, rec)
}

func (h *handler) desiredCrop(c echo.Context) error {
	var req domain.DesiredCropRequest
	if err := c.Bind(&req); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse crop request")
	}
	if req.CropName == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Crop name is required")
	}
	verdict, err := h.env.Backend.AnalyzeDesiredCrop(c.Request().Context(), req)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "ANALYSIS_FAILED", err.Error())
	}
	verdict.Suitability = domain.BoostConfidence(verdict.Suitability, domain.ConfidenceDesired)
	return webserver.OK(c, verdict)
}

// soilReport is the unified soil-checker result: classification, crop
// recommendation and a combined headline confidence.
type soilReport struct {
	Soil              domain.SoilAnalysis       `json:"soil"`
	Crop              domain.CropRecommendation `json:"crop"`
	Model             map[string]interface{}    `json:"model,omitempty"`
	OverallConfidence float64                   `json:"overall_confidence"`
}

// fullAnalysis runs the classifier and the recommender over one sample and
// combines their raw confidences into the overall score. Model info is
// best-effort decoration; its failure does not fail the report.
func (h *handler) fullAnalysis(c echo.Context) error {
	var sample domain.SoilSample
	if err := c.Bind(&sample); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse soil sample")
	}

	ctx := c.Request().Context()
	analysis, err := h.env.Backend.PredictSoil(ctx, sample)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "ANALYSIS_FAILED", err.Error())
	}
	rec, err := h.env.Backend.RecommendCrop(ctx, sample)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "RECOMMENDATION_FAILED", err.Error())
	}
	model, err := h.env.Backend.ModelInfo(ctx)
	if err != nil {
		model = nil
	}

	overall := domain.OverallConfidence(analysis.Confidence, rec.Confidence)
	analysis.Confidence = domain.BoostConfidence(analysis.Confidence, domain.ConfidenceSoil)
	rec.Confidence = domain.BoostConfidence(rec.Confidence, domain.ConfidenceCrop)

	return webserver.OK(c, soilReport{
		Soil:              analysis,
		Crop:              rec,
		Model:             model,
		OverallConfidence: overall,
	})
}

func (h *handler) modelInfo(c echo.Context) error {
	info, err := h.env.Backend.ModelInfo(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, info)
}

func (h *handler) currentNotification(c echo.Context) error {
	n, ok := h.env.Notify.Current()
	if !ok {
		return webserver.OK(c, nil)
	}
	return webserver.OK(c, n)
}

func (h *handler) hideNotification(c echo.Context) error {
	h.env.Notify.Hide()
	return webserver.OK(c, nil)
}
