package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infomate/veracity/internal/model"
	"github.com/infomate/veracity/internal/pipeline"
)

// Analyzer is the pipeline contract the transport depends on.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*model.Analysis, error)
}

// envelope is the uniform response shape.
type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

// Handler holds the API endpoints.
type Handler struct {
	analyzer Analyzer
}

// NewHandler creates a Handler.
func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

type analyzeRequest struct {
	URL string `json:"url"`
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Error:   &apiError{Message: "malformed JSON body"},
		})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Error:   &apiError{Message: "url is required"},
		})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.URL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Data: analysis})
}

// writeError maps pipeline failures onto the error taxonomy: input and
// extraction problems are client errors, fetch problems are server errors.
func (h *Handler) writeError(c *gin.Context, err error) {
	var inputErr *pipeline.InputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Error:   &apiError{Message: inputErr.Message},
		})
		return
	}

	var extractionErr *pipeline.ExtractionError
	if errors.As(err, &extractionErr) {
		// Shortfall reflects the page's content, not a system fault:
		// client error carrying the partial facts for diagnostics.
		c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Data:    extractionErr.Partial,
			Error:   &apiError{Message: extractionErr.Message},
		})
		return
	}

	var fetchErr *pipeline.FetchError
	if errors.As(err, &fetchErr) {
		c.JSON(http.StatusBadGateway, envelope{
			Success: false,
			Error:   &apiError{Message: fetchErr.Error()},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, envelope{
		Success: false,
		Error:   &apiError{Message: "internal error"},
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
