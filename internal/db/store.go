package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storepulse/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

//go:embed schema.sql
var schemaSQL string

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schemaSQL)
	return err
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// GetStoreForOwner resolves a store only when ownerID owns it.
func (s *Store) GetStoreForOwner(ctx context.Context, storeID, ownerID string) (models.StoreDescriptor, error) {
	var st models.StoreDescriptor
	err := s.Pool.QueryRow(ctx, `
		SELECT id, owner_id, name, industry, created_at
		FROM stores WHERE id = $1 AND owner_id = $2
	`, storeID, ownerID).Scan(&st.ID, &st.OwnerID, &st.Name, &st.Industry, &st.CreatedAt)
	if err != nil {
		return models.StoreDescriptor{}, notFound(err)
	}
	return st, nil
}

func (s *Store) GetStore(ctx context.Context, storeID string) (models.StoreDescriptor, error) {
	var st models.StoreDescriptor
	err := s.Pool.QueryRow(ctx, `
		SELECT id, owner_id, name, industry, created_at FROM stores WHERE id = $1
	`, storeID).Scan(&st.ID, &st.OwnerID, &st.Name, &st.Industry, &st.CreatedAt)
	if err != nil {
		return models.StoreDescriptor{}, notFound(err)
	}
	return st, nil
}

func (s *Store) CreateStore(ctx context.Context, st models.StoreDescriptor) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO stores (id, owner_id, name, industry) VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO NOTHING
	`, st.ID, st.OwnerID, st.Name, st.Industry)
	return err
}

const upsertSaleSQL = `
	INSERT INTO sales (store_id, date, revenue, visitors, new_customers, notes, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6, now())
	ON CONFLICT (store_id, date) DO UPDATE SET
		revenue = EXCLUDED.revenue,
		visitors = EXCLUDED.visitors,
		new_customers = EXCLUDED.new_customers,
		notes = EXCLUDED.notes,
		updated_at = now()`

// UpsertSales writes every record in one transaction. Either all rows land
// or none do.
func (s *Store) UpsertSales(ctx context.Context, records []models.SaleRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	var affected int64
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, r := range records {
			batch.Queue(upsertSaleSQL, r.StoreID, r.Date.Time, r.Revenue, r.Visitors, r.NewCustomers, r.Notes)
		}
		br := tx.SendBatch(ctx, batch)
		for range records {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("upsert sale: %w", err)
			}
			affected += tag.RowsAffected()
		}
		return br.Close()
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

type SalesQuery struct {
	From  *models.Date
	To    *models.Date
	Limit int
	// Ascending orders by date oldest first; the default is newest first.
	Ascending bool
}

func (s *Store) ListSales(ctx context.Context, storeID string, q SalesQuery) ([]models.SaleRecord, error) {
	query := `SELECT store_id, date, revenue, visitors, new_customers, notes, updated_at FROM sales`
	args := []any{storeID}
	wheres := []string{"store_id = $1"}
	if q.From != nil {
		args = append(args, q.From.Time)
		wheres = append(wheres, fmt.Sprintf("date >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, q.To.Time)
		wheres = append(wheres, fmt.Sprintf("date <= $%d", len(args)))
	}
	query += " WHERE " + strings.Join(wheres, " AND ")
	if q.Ascending {
		query += " ORDER BY date ASC"
	} else {
		query += " ORDER BY date DESC"
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SaleRecord
	for rows.Next() {
		var r models.SaleRecord
		var day time.Time
		if err := rows.Scan(&r.StoreID, &day, &r.Revenue, &r.Visitors, &r.NewCustomers, &r.Notes, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Date = models.NewDate(day)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListRecentFeedback(ctx context.Context, storeID string, limit int) ([]models.FeedbackSnippet, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT store_id, rating, text, collected_at
		FROM feedback WHERE store_id = $1
		ORDER BY collected_at DESC LIMIT $2
	`, storeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FeedbackSnippet
	for rows.Next() {
		var f models.FeedbackSnippet
		if err := rows.Scan(&f.StoreID, &f.Rating, &f.Text, &f.CollectedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateReport inserts a finished report. Content is written here and
// nowhere else.
func (s *Store) CreateReport(ctx context.Context, r models.Report) (models.Report, error) {
	if r.Content == nil {
		return models.Report{}, errors.New("report content is required")
	}
	content, err := json.Marshal(r.Content)
	if err != nil {
		return models.Report{}, err
	}
	err = s.Pool.QueryRow(ctx, `
		INSERT INTO reports (id, store_id, period_start, period_end, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, r.ID, r.StoreID, r.PeriodStart.Time, r.PeriodEnd.Time, content).Scan(&r.CreatedAt)
	if err != nil {
		return models.Report{}, err
	}
	return r, nil
}

func (s *Store) ListReports(ctx context.Context, storeID string, limit int) ([]models.ReportSummary, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, period_start, period_end, created_at
		FROM reports WHERE store_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, storeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ReportSummary
	for rows.Next() {
		var r models.ReportSummary
		var start, end time.Time
		if err := rows.Scan(&r.ID, &start, &end, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.PeriodStart = models.NewDate(start)
		r.PeriodEnd = models.NewDate(end)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetReport(ctx context.Context, storeID, reportID string) (models.Report, error) {
	var (
		r          models.Report
		start, end time.Time
		content    []byte
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id::text, store_id, period_start, period_end, content, pdf_path, created_at
		FROM reports WHERE id = $1 AND store_id = $2
	`, reportID, storeID).Scan(&r.ID, &r.StoreID, &start, &end, &content, &r.PDFPath, &r.CreatedAt)
	if err != nil {
		return models.Report{}, notFound(err)
	}
	r.PeriodStart = models.NewDate(start)
	r.PeriodEnd = models.NewDate(end)
	if len(content) > 0 && string(content) != "null" {
		var c models.ReportContent
		if err := json.Unmarshal(content, &c); err != nil {
			return models.Report{}, fmt.Errorf("decode report content: %w", err)
		}
		r.Content = &c
	}
	return r, nil
}

func (s *Store) SetReportPDFPath(ctx context.Context, storeID, reportID, path string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE reports SET pdf_path = $3 WHERE id = $1 AND store_id = $2
	`, reportID, storeID, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
