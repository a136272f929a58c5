package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/gva"
	"github.com/mamadbah2/livestock-gva/internal/repository"
	"github.com/mamadbah2/livestock-gva/internal/server/middleware"
	"github.com/mamadbah2/livestock-gva/internal/service/reporting"
)

// ReportService is what the HTTP layer needs from the reporting service.
type ReportService interface {
	Calculate(ctx context.Context, in models.CensusInput, author models.Author) (models.Report, error)
	Get(ctx context.Context, id string) (models.Report, error)
	List(ctx context.Context, caller models.Author, limit int) ([]models.Report, error)
	Export(ctx context.Context, id string) (reporting.Document, error)
	Coefficients() models.Coefficients
}

// GVAHandler exposes GVA calculation and report retrieval over HTTP.
type GVAHandler struct {
	svc    ReportService
	logger *zap.Logger
}

// NewGVAHandler constructs the HTTP handler adapter.
func NewGVAHandler(svc ReportService, logger *zap.Logger) *GVAHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GVAHandler{svc: svc, logger: logger}
}

// Calculate runs the engine on the posted census and stores the report.
func (h *GVAHandler) Calculate(c *gin.Context) {
	var input models.CensusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid gva payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	caller, _ := middleware.Caller(c)
	report, err := h.svc.Calculate(c.Request.Context(), input, caller)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// List returns the caller's visible reports, newest first.
func (h *GVAHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	caller, _ := middleware.Caller(c)
	reports, err := h.svc.List(c.Request.Context(), caller, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Get returns a single report.
func (h *GVAHandler) Get(c *gin.Context) {
	report, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// PDF streams the rendered report as an attachment.
func (h *GVAHandler) PDF(c *gin.Context) {
	doc, err := h.svc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// Settings returns the coefficient table in force. There is no update
// endpoint: coefficients are deployment configuration.
func (h *GVAHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Coefficients())
}

func (h *GVAHandler) writeError(c *gin.Context, err error) {
	var verr *gva.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, gva.ErrEmptyCensus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one livestock count is required"})
	case errors.Is(err, gva.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, reporting.ErrStorage):
		h.logger.Error("report storage failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageMessage(c)})
	default:
		h.logger.Error("gva request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func storageMessage(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return "report could not be saved"
	}
	return "report could not be loaded"
}
