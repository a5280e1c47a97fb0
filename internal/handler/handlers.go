package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/insightflow/internal/insights"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/segmentation"
	"github.com/spacesedan/insightflow/internal/validation"
)

// InsightsProcessor is the slice of the pipeline the transport layer needs.
type InsightsProcessor interface {
	Process(ctx context.Context, req models.FeedbackRequest) (models.InsightResponse, error)
}

// SegmentPredictor is the slice of the segmentation service the transport
// layer needs.
type SegmentPredictor interface {
	Predict(ctx context.Context, req models.SegmentRequest) (models.SegmentResponse, error)
}

// Sample payloads echoed back on 400s so callers can fix their request
// without reading docs.
var (
	feedbackExample = models.FeedbackRequest{
		Text:     "The product stopped working after a week and support never replied.",
		Source:   "app_review",
		Category: "electronics",
	}

	segmentExample = models.SegmentRequest{
		Features: [][]float64{{-1.14, -1.13, 0.68}, {-1.67, -0.81, -0.22}},
	}
)

// InsightsErrorBody maps a pipeline error to a status code and response
// body. Upstream detail never leaks into the body; 5xx causes are logged by
// the caller instead.
func InsightsErrorBody(err error) (int, gin.H) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, gin.H{
			"status":  models.StatusError,
			"error":   vErr.Reason,
			"example": feedbackExample,
		}
	}

	var cpErr *validation.ContentPolicyError
	if errors.As(err, &cpErr) {
		return http.StatusBadRequest, gin.H{
			"status":  models.StatusError,
			"error":   "Text contains content that cannot be processed",
			"example": feedbackExample,
		}
	}

	return http.StatusInternalServerError, gin.H{
		"status": models.StatusError,
		"error":  "Analysis failed, please try again later",
	}
}

// InsightsBindErrorBody is the response for a request body that could not
// be decoded at all.
func InsightsBindErrorBody() (int, gin.H) {
	return http.StatusBadRequest, gin.H{
		"status":  models.StatusError,
		"error":   "Request body must be valid JSON",
		"example": feedbackExample,
	}
}

// SegmentsErrorBody maps a segmentation error to a status code and response
// body.
func SegmentsErrorBody(err error) (int, gin.H) {
	switch {
	case errors.Is(err, segmentation.ErrNoFeatures):
		return http.StatusBadRequest, gin.H{
			"status":  models.StatusError,
			"error":   "Missing features array",
			"example": segmentExample,
		}
	case errors.Is(err, segmentation.ErrNoEndpoint):
		return http.StatusNotFound, gin.H{
			"status": models.StatusError,
			"error":  "No K-means endpoint found",
		}
	default:
		return http.StatusInternalServerError, gin.H{
			"status": models.StatusError,
			"error":  "Prediction failed, please try again later",
		}
	}
}

// SegmentsBindErrorBody is the response for a segment request body that
// could not be decoded.
func SegmentsBindErrorBody() (int, gin.H) {
	return http.StatusBadRequest, gin.H{
		"status":  models.StatusError,
		"error":   "Missing features array",
		"example": segmentExample,
	}
}

type InsightsHandler struct {
	processor InsightsProcessor
}

func NewInsightsHandler(processor InsightsProcessor) *InsightsHandler {
	return &InsightsHandler{processor: processor}
}

func (h *InsightsHandler) HandleInsights(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(InsightsBindErrorBody())
		return
	}

	resp, err := h.processor.Process(c.Request.Context(), req)
	if err != nil {
		status, body := InsightsErrorBody(err)
		if status >= http.StatusInternalServerError {
			var xErr *insights.ExtractionError
			if errors.As(err, &xErr) {
				slog.Error("[Handler] Insight extraction failed",
					slog.String("kind", string(xErr.Kind)),
					slog.String("error", err.Error()))
			} else {
				slog.Error("[Handler] Insights request failed",
					slog.String("error", err.Error()))
			}
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type SegmentsHandler struct {
	predictor SegmentPredictor
}

func NewSegmentsHandler(predictor SegmentPredictor) *SegmentsHandler {
	return &SegmentsHandler{predictor: predictor}
}

func (h *SegmentsHandler) HandleSegments(c *gin.Context) {
	var req models.SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(SegmentsBindErrorBody())
		return
	}

	resp, err := h.predictor.Predict(c.Request.Context(), req)
	if err != nil {
		status, body := SegmentsErrorBody(err)
		if status >= http.StatusInternalServerError {
			slog.Error("[Handler] Segment prediction failed",
				slog.String("error", err.Error()))
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func HandleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
