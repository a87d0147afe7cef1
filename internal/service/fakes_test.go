package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/storepulse/backend/internal/db"
	"github.com/storepulse/backend/internal/models"
	"github.com/storepulse/backend/internal/prompt"
)

// memStore is an in-memory stand-in for *db.Store.
type memStore struct {
	mu       sync.Mutex
	stores   map[string]models.StoreDescriptor
	sales    map[string]models.SaleRecord
	feedback []models.FeedbackSnippet
	reports  []models.Report

	failUpsert error
	failCreate error
}

func newMemStore() *memStore {
	return &memStore{
		stores: map[string]models.StoreDescriptor{
			"store-1": {ID: "store-1", OwnerID: "owner-1", Name: "Blue Door", Industry: "restaurant"},
		},
		sales: map[string]models.SaleRecord{},
	}
}

func (m *memStore) GetStoreForOwner(_ context.Context, storeID, ownerID string) (models.StoreDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stores[storeID]
	if !ok || st.OwnerID != ownerID {
		return models.StoreDescriptor{}, db.ErrNotFound
	}
	return st, nil
}

func (m *memStore) UpsertSales(_ context.Context, records []models.SaleRecord) (int64, error) {
	if m.failUpsert != nil {
		return 0, m.failUpsert
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.sales[r.StoreID+"|"+r.Date.String()] = r
	}
	return int64(len(records)), nil
}

func (m *memStore) ListSales(_ context.Context, storeID string, q db.SalesQuery) ([]models.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SaleRecord
	for _, r := range m.sales {
		if r.StoreID != storeID {
			continue
		}
		if q.From != nil && r.Date.Before(q.From.Time) {
			continue
		}
		if q.To != nil && r.Date.After(q.To.Time) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.Ascending {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].Date.After(out[j].Date.Time)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) ListRecentFeedback(_ context.Context, storeID string, limit int) ([]models.FeedbackSnippet, error) {
	var out []models.FeedbackSnippet
	for _, f := range m.feedback {
		if f.StoreID == storeID && len(out) < limit {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) CreateReport(_ context.Context, r models.Report) (models.Report, error) {
	if m.failCreate != nil {
		return models.Report{}, m.failCreate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	return r, nil
}

func (m *memStore) ListReports(_ context.Context, storeID string, limit int) ([]models.ReportSummary, error) {
	var out []models.ReportSummary
	for i := len(m.reports) - 1; i >= 0 && len(out) < limit; i-- {
		r := m.reports[i]
		if r.StoreID == storeID {
			out = append(out, models.ReportSummary{ID: r.ID, PeriodStart: r.PeriodStart, PeriodEnd: r.PeriodEnd, CreatedAt: r.CreatedAt})
		}
	}
	return out, nil
}

func (m *memStore) GetReport(_ context.Context, storeID, reportID string) (models.Report, error) {
	for _, r := range m.reports {
		if r.ID == reportID && r.StoreID == storeID {
			return r, nil
		}
	}
	return models.Report{}, db.ErrNotFound
}

func (m *memStore) SetReportPDFPath(_ context.Context, storeID, reportID, path string) error {
	for i, r := range m.reports {
		if r.ID == reportID && r.StoreID == storeID {
			m.reports[i].PDFPath = &path
			return nil
		}
	}
	return db.ErrNotFound
}

// stubProvider records calls and replays a fixed answer.
type stubProvider struct {
	out   string
	err   error
	calls int
	last  prompt.Prompt
	wait  bool
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, pr prompt.Prompt) (string, error) {
	p.calls++
	p.last = pr
	if p.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return p.out, p.err
}

var errBoom = errors.New("boom")
