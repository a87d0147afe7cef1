package service

import (
	"context"
	"errors"

	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/db"
	"github.com/storepulse/backend/internal/models"
)

// The repository interfaces are satisfied by *db.Store.

type StoreResolver interface {
	GetStoreForOwner(ctx context.Context, storeID, ownerID string) (models.StoreDescriptor, error)
}

type SalesRepository interface {
	UpsertSales(ctx context.Context, records []models.SaleRecord) (int64, error)
	ListSales(ctx context.Context, storeID string, q db.SalesQuery) ([]models.SaleRecord, error)
}

type FeedbackRepository interface {
	ListRecentFeedback(ctx context.Context, storeID string, limit int) ([]models.FeedbackSnippet, error)
}

type ReportRepository interface {
	CreateReport(ctx context.Context, r models.Report) (models.Report, error)
	ListReports(ctx context.Context, storeID string, limit int) ([]models.ReportSummary, error)
	GetReport(ctx context.Context, storeID, reportID string) (models.Report, error)
	SetReportPDFPath(ctx context.Context, storeID, reportID, path string) error
}

func resolveStore(ctx context.Context, stores StoreResolver, ownerID, storeID string) (models.StoreDescriptor, error) {
	st, err := stores.GetStoreForOwner(ctx, storeID, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.StoreDescriptor{}, apperr.NotFound("Store not found")
		}
		return models.StoreDescriptor{}, apperr.Internal("load store", err)
	}
	return st, nil
}
