package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/db"
	"github.com/storepulse/backend/internal/kpi"
	"github.com/storepulse/backend/internal/models"
)

type DashboardService struct {
	Stores StoreResolver
	Sales  SalesRepository
	Logger zerolog.Logger
}

// Get compares the week containing ref with the previous week. Both
// windows are loaded in one query.
func (s *DashboardService) Get(ctx context.Context, ownerID, storeID string, ref time.Time) (models.Dashboard, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return models.Dashboard{}, err
	}
	w := kpi.WeekWindows(ref)
	records, err := s.Sales.ListSales(ctx, st.ID, db.SalesQuery{
		From:      &w.LastWeekStart,
		To:        &w.ThisWeekEnd,
		Ascending: true,
	})
	if err != nil {
		return models.Dashboard{}, apperr.Internal("load sales", err)
	}
	return kpi.BuildDashboard(st, records, ref), nil
}
