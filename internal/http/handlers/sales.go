package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/http/middleware"
	"github.com/storepulse/backend/internal/models"
	"github.com/storepulse/backend/internal/service"
)

// multipartSlack covers boundaries and part headers around the file itself.
const multipartSlack = 64 << 10

type UploadResponse struct {
	Message         string `json:"message"`
	RecordsImported int    `json:"records_imported"`
	RowsRead        int    `json:"rows_read"`
}

type SalesListResponse struct {
	Sales []models.SaleRecord `json:"sales"`
}

// UploadSales godoc
// @Summary Import daily sales from a CSV file
// @Description Rows are matched by date; an existing day is overwritten. Any row without a usable date rejects the whole file.
// @Tags sales
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param file formData file true "sales.csv"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/sales/upload [post]
func (h *Handler) UploadSales(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartSlack)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(c, h.Logger, apperr.Validation("File too large", gin.H{"max_bytes": h.MaxUploadBytes}))
			return
		}
		writeAppError(c, h.Logger, apperr.Validation("No file uploaded", nil))
		return
	}
	if !validateExt(fh.Filename) {
		writeAppError(c, h.Logger, apperr.Validation("File must be .csv, .tsv or .txt", nil))
		return
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		writeAppError(c, h.Logger, apperr.Validation("File too large", gin.H{"max_bytes": h.MaxUploadBytes}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeAppError(c, h.Logger, apperr.Internal("open upload", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeAppError(c, h.Logger, apperr.Internal("read upload", err))
		return
	}

	res, err := h.Sales.Import(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"), data)
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, UploadResponse{
		Message:         "CSV uploaded successfully",
		RecordsImported: res.RecordsImported,
		RowsRead:        res.RowsRead,
	})
}

// SalesList godoc
// @Summary List daily sales, newest first
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param limit query int false "max rows (default 100)"
// @Success 200 {object} SalesListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stores/{storeId}/sales [get]
func (h *Handler) SalesList(c *gin.Context) {
	var f service.SalesFilter
	var err error
	if f.From, err = dateQuery(c, "start_date"); err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	if f.To, err = dateQuery(c, "end_date"); err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	if v := c.Query("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 {
			writeAppError(c, h.Logger, apperr.Validation("limit must be a positive integer", nil))
			return
		}
		f.Limit = n
	}

	sales, err := h.Sales.List(c.Request.Context(), middleware.CallerID(c), c.Param("storeId"), f)
	if err != nil {
		writeAppError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, SalesListResponse{Sales: sales})
}

func dateQuery(c *gin.Context, name string) (*models.Date, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, apperr.Validation(name+" must be YYYY-MM-DD", nil)
	}
	return &d, nil
}

func validateExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return true
	}
	return false
}
