package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/http/middleware"
	"github.com/storepulse/backend/internal/models"
)

type GenerateReportRequest struct {
	PeriodDays int `json:"period_days" validate:"omitempty,min=1"`
}

type GenerateReportResponse struct {
	Message string        `json:"message"`
	Report  models.Report `json:"report"`
}

type ReportListResponse struct {
	Reports []models.ReportSummary `json:"reports"`
}

type ReportResponse struct {
	Report models.Report `json:"report"`
}

// GenerateReport godoc
// @Summary Generate an AI report for the trailing period
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param body body GenerateReportRequest false "period (default 7 days)"
// @Success 201 {object} GenerateReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/reports/generate [post]
func (h *Handler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeAppError(c, h.Logger, apperr.Validation("Validation failed", err.Error()))
		return
	}

	r, err := h.Reports.Generate(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"), req.PeriodDays, h.now())
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, GenerateReportResponse{Message: "Report generated successfully", Report: r})
}

// ReportsList godoc
// @Summary List the 20 most recent reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Success 200 {object} ReportListResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/reports [get]
func (h *Handler) ReportsList(c *gin.Context) {
	out, err := h.Reports.List(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"))
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, ReportListResponse{Reports: out})
}

// ReportDetails godoc
// @Summary Fetch one report with content
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param reportId path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/reports/{reportId} [get]
func (h *Handler) ReportDetails(c *gin.Context) {
	r, err := h.Reports.Get(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"), c.Param("reportId"))
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, ReportResponse{Report: r})
}

// ReportPDF godoc
// @Summary Download a report as PDF
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param reportId path string true "Report ID"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/reports/{reportId}/pdf [get]
func (h *Handler) ReportPDF(c *gin.Context) {
	pdf, err := h.Reports.RenderPDF(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"), c.Param("reportId"))
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdf.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}
