package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/db"
	"github.com/storepulse/backend/internal/ingest"
	"github.com/storepulse/backend/internal/models"
	"github.com/storepulse/backend/internal/telemetry"
)

const (
	MaxReportedRowErrors = 10
	DefaultSalesLimit    = 100
	MaxSalesLimit        = 1000
)

type SalesService struct {
	Stores StoreResolver
	Sales  SalesRepository
	Logger zerolog.Logger
}

type ImportResult struct {
	RecordsImported int `json:"records_imported"`
	RowsRead        int `json:"rows_read"`
}

// Import checks ownership and then runs ImportForStore.
func (s *SalesService) Import(ctx context.Context, ownerID, storeID string, data []byte) (ImportResult, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return ImportResult{}, err
	}
	return s.ImportForStore(ctx, st, data)
}

// ImportForStore normalizes an uploaded table and commits it. A single
// structural rejection aborts the whole batch.
func (s *SalesService) ImportForStore(ctx context.Context, st models.StoreDescriptor, data []byte) (ImportResult, error) {
	res, err := ingest.Normalize(data, st.ID)
	if err != nil {
		telemetry.ImportsTotal.WithLabelValues("rejected").Inc()
		switch {
		case errors.Is(err, ingest.ErrEmpty):
			return ImportResult{}, apperr.Validation("CSV file is empty", nil)
		case errors.Is(err, ingest.ErrMalformed):
			return ImportResult{}, apperr.Validation("Invalid CSV format", err.Error())
		default:
			return ImportResult{}, apperr.Internal("parse upload", err)
		}
	}

	telemetry.ImportRowsTotal.WithLabelValues("accepted").Add(float64(len(res.Accepted)))
	telemetry.ImportRowsTotal.WithLabelValues("rejected").Add(float64(len(res.Rejected)))

	if len(res.Rejected) > 0 {
		telemetry.ImportsTotal.WithLabelValues("rejected").Inc()
		msgs := make([]string, 0, MaxReportedRowErrors)
		for i, r := range res.Rejected {
			if i == MaxReportedRowErrors {
				break
			}
			msgs = append(msgs, r.String())
		}
		s.Logger.Info().
			Str("store_id", st.ID).
			Int("rows_read", res.RowsRead).
			Int("rejected", len(res.Rejected)).
			Msg("sales import rejected")
		return ImportResult{}, apperr.Validation("Validation errors", map[string]any{
			"errors":       msgs,
			"total_errors": len(res.Rejected),
		})
	}

	records := ingest.Collapse(res.Accepted)
	if _, err := s.Sales.UpsertSales(ctx, records); err != nil {
		telemetry.ImportsTotal.WithLabelValues("failed").Inc()
		return ImportResult{}, apperr.Internal("upsert sales", err)
	}
	telemetry.ImportsTotal.WithLabelValues("committed").Inc()
	s.Logger.Info().
		Str("store_id", st.ID).
		Int("rows_read", res.RowsRead).
		Int("records", len(records)).
		Msg("sales imported")
	return ImportResult{RecordsImported: len(records), RowsRead: res.RowsRead}, nil
}

type SalesFilter struct {
	From  *models.Date
	To    *models.Date
	Limit int
}

// List returns a store's records newest first.
func (s *SalesService) List(ctx context.Context, ownerID, storeID string, f SalesFilter) ([]models.SaleRecord, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return nil, err
	}
	if f.From != nil && f.To != nil && f.To.Before(f.From.Time) {
		return nil, apperr.Validation("end_date must not be before start_date", nil)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultSalesLimit
	}
	if limit > MaxSalesLimit {
		limit = MaxSalesLimit
	}
	out, err := s.Sales.ListSales(ctx, st.ID, db.SalesQuery{From: f.From, To: f.To, Limit: limit})
	if err != nil {
		return nil, apperr.Internal("list sales", err)
	}
	if out == nil {
		out = []models.SaleRecord{}
	}
	return out, nil
}
