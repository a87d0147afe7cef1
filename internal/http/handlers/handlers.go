package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/http/middleware"
	"github.com/storepulse/backend/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB        Pinger
	Sales     *service.SalesService
	Dashboard *service.DashboardService
	Reports   *service.ReportService
	Validator *validator.Validate
	Logger    zerolog.Logger

	MaxUploadBytes int64
	// Now is the clock used for dashboard and report periods.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:          http.StatusBadRequest,
	apperr.KindNotFound:            http.StatusNotFound,
	apperr.KindNoData:              http.StatusBadRequest,
	apperr.KindEmptyContent:        http.StatusBadRequest,
	apperr.KindProviderUnavailable: http.StatusServiceUnavailable,
	apperr.KindInternal:            http.StatusInternalServerError,
}

// writeAppError maps a classified error onto the response envelope.
// Internal failures are logged and answered with a generic message.
func writeAppError(c *gin.Context, logger zerolog.Logger, err error) {
	kind := apperr.KindOf(err)
	status := kindStatus[kind]
	_ = c.Error(err)

	if kind == apperr.KindInternal {
		logger.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDHeader)).
			Str("path", c.FullPath()).
			Msg("internal error")
		writeError(c, status, kind.String(), "Internal server error", nil)
		return
	}

	message, details := err.Error(), any(nil)
	var ae *apperr.Error
	if errors.As(err, &ae) {
		message, details = ae.Message, ae.Details
	}
	writeError(c, status, kind.String(), message, details)
}
