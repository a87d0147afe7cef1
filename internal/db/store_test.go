package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/storepulse/backend/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestStoreIntegration(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	st := models.StoreDescriptor{ID: uuid.NewString(), OwnerID: "owner-" + uuid.NewString(), Name: "Blue Door", Industry: "restaurant"}
	if err := store.CreateStore(ctx, st); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := store.GetStoreForOwner(ctx, st.ID, "someone-else"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}

	sales := []models.SaleRecord{
		{StoreID: st.ID, Date: day(t, "2024-01-01"), Revenue: 1000, Visitors: 10},
		{StoreID: st.ID, Date: day(t, "2024-01-02"), Revenue: 2000, Visitors: 20},
	}
	if _, err := store.UpsertSales(ctx, sales); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	sales[0].Revenue = 1200
	if _, err := store.UpsertSales(ctx, sales[:1]); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	got, err := store.ListSales(ctx, st.ID, SalesQuery{})
	if err != nil {
		t.Fatalf("list sales: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Date.String() != "2024-01-02" || got[1].Revenue != 1200 {
		t.Fatalf("unexpected rows: %+v", got)
	}

	from := day(t, "2024-01-02")
	got, err = store.ListSales(ctx, st.ID, SalesQuery{From: &from, Ascending: true})
	if err != nil || len(got) != 1 {
		t.Fatalf("ranged list: %v %+v", err, got)
	}

	rev, vis := 9000.0, 95.0
	r := models.Report{
		ID:          uuid.NewString(),
		StoreID:     st.ID,
		PeriodStart: day(t, "2023-12-26"),
		PeriodEnd:   day(t, "2024-01-02"),
		Content: &models.ReportContent{
			Summary:     "Solid week",
			KPIAnalysis: []string{"k1", "k2", "k3"},
			Issues:      []string{"i1", "i2", "i3"},
			Actions:     []string{"a1", "a2", "a3", "a4", "a5"},
			Forecast:    &models.Forecast{Revenue: &rev, Visitors: &vis, Reasoning: "Trend holds"},
		},
	}
	saved, err := store.CreateReport(ctx, r)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	list, err := store.ListReports(ctx, st.ID, 20)
	if err != nil || len(list) != 1 || list[0].ID != r.ID {
		t.Fatalf("list reports: %v %+v", err, list)
	}

	loaded, err := store.GetReport(ctx, st.ID, r.ID)
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if loaded.Content == nil || loaded.Content.Forecast.Reasoning != "Trend holds" {
		t.Fatalf("content not round-tripped: %+v", loaded.Content)
	}
	if _, err := store.GetReport(ctx, "other-store", r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign store, got %v", err)
	}

	if err := store.SetReportPDFPath(ctx, st.ID, r.ID, "/tmp/r.pdf"); err != nil {
		t.Fatalf("set pdf path: %v", err)
	}
	if err := store.SetReportPDFPath(ctx, st.ID, uuid.NewString(), "/tmp/x.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
