package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storepulse/backend/internal/ai"
	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/db"
	"github.com/storepulse/backend/internal/kpi"
	"github.com/storepulse/backend/internal/models"
	"github.com/storepulse/backend/internal/prompt"
	"github.com/storepulse/backend/internal/report"
	"github.com/storepulse/backend/internal/telemetry"
)

const ReportListLimit = 20

type ReportConfig struct {
	DefaultPeriodDays int
	MaxPeriodDays     int
	ProviderTimeout   time.Duration
	Language          string
	FontPath          string
	// ArtifactDir, when set, keeps a copy of every rendered PDF on disk.
	ArtifactDir string
}

type ReportService struct {
	Stores   StoreResolver
	Sales    SalesRepository
	Feedback FeedbackRepository
	Reports  ReportRepository
	Provider ai.Provider
	Config   ReportConfig
	Logger   zerolog.Logger
	NewID    func() string
}

type RenderedPDF struct {
	Filename string
	Data     []byte
}

func (s *ReportService) periodDays(requested int) (int, error) {
	def := s.Config.DefaultPeriodDays
	if def <= 0 {
		def = 7
	}
	maxDays := s.Config.MaxPeriodDays
	if maxDays <= 0 {
		maxDays = 90
	}
	if requested == 0 {
		return def, nil
	}
	if requested < 1 || requested > maxDays {
		return 0, apperr.Validation("period_days out of range", map[string]any{"min": 1, "max": maxDays})
	}
	return requested, nil
}

// Compose gathers the period data for st and builds the provider prompt.
// It fails with NoData when the period has no sales.
func (s *ReportService) Compose(ctx context.Context, st models.StoreDescriptor, periodDays int, now time.Time) (prompt.Prompt, models.Date, models.Date, error) {
	days, err := s.periodDays(periodDays)
	if err != nil {
		return prompt.Prompt{}, models.Date{}, models.Date{}, err
	}
	end := models.NewDate(now)
	start := end.AddDays(-days)

	sales, err := s.Sales.ListSales(ctx, st.ID, db.SalesQuery{From: &start, To: &end, Ascending: true})
	if err != nil {
		return prompt.Prompt{}, start, end, apperr.Internal("load sales", err)
	}
	if len(sales) == 0 {
		return prompt.Prompt{}, start, end, apperr.NoData("No sales data available for the specified period")
	}
	feedback, err := s.Feedback.ListRecentFeedback(ctx, st.ID, prompt.MaxFeedback)
	if err != nil {
		return prompt.Prompt{}, start, end, apperr.Internal("load feedback", err)
	}

	p := prompt.Compose(prompt.Input{
		Store:       st,
		Period:      kpi.Aggregate(sales),
		PeriodStart: start,
		PeriodEnd:   end,
		Daily:       sales,
		Feedback:    feedback,
		Language:    s.Config.Language,
	})
	return p, start, end, nil
}

// Generate runs one synthesis. A report row is written only after the
// provider output passes the schema gate.
func (s *ReportService) Generate(ctx context.Context, ownerID, storeID string, periodDays int, now time.Time) (models.Report, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return models.Report{}, err
	}
	p, start, end, err := s.Compose(ctx, st, periodDays, now)
	if err != nil {
		return models.Report{}, err
	}

	provider := s.Provider.Name()
	timeout := s.Config.ProviderTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	began := time.Now()
	raw, err := s.Provider.Generate(pctx, p)
	if err == nil && pctx.Err() != nil {
		err = pctx.Err()
	}
	cancel()
	telemetry.ProviderLatencySeconds.WithLabelValues(provider).Observe(time.Since(began).Seconds())
	if err != nil {
		telemetry.SynthesisTotal.WithLabelValues(provider, "provider_error").Inc()
		s.Logger.Error().Err(err).Str("store_id", st.ID).Str("provider", provider).Msg("report generation failed")
		return models.Report{}, apperr.ProviderUnavailable(err)
	}

	content, err := report.ParseContent(raw)
	if err != nil {
		telemetry.SynthesisTotal.WithLabelValues(provider, "invalid_content").Inc()
		s.Logger.Error().Err(err).Str("store_id", st.ID).Str("provider", provider).Msg("provider returned invalid report content")
		return models.Report{}, apperr.ProviderUnavailable(err)
	}

	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	saved, err := s.Reports.CreateReport(ctx, models.Report{
		ID:          newID(),
		StoreID:     st.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Content:     content,
	})
	if err != nil {
		telemetry.SynthesisTotal.WithLabelValues(provider, "store_error").Inc()
		return models.Report{}, apperr.Internal("save report", err)
	}
	telemetry.SynthesisTotal.WithLabelValues(provider, "success").Inc()
	s.Logger.Info().Str("store_id", st.ID).Str("report_id", saved.ID).Str("provider", provider).Msg("report generated")
	return saved, nil
}

func (s *ReportService) List(ctx context.Context, ownerID, storeID string) ([]models.ReportSummary, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return nil, err
	}
	out, err := s.Reports.ListReports(ctx, st.ID, ReportListLimit)
	if err != nil {
		return nil, apperr.Internal("list reports", err)
	}
	if out == nil {
		out = []models.ReportSummary{}
	}
	return out, nil
}

func (s *ReportService) Get(ctx context.Context, ownerID, storeID, reportID string) (models.Report, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return models.Report{}, err
	}
	return s.GetForStore(ctx, st, reportID)
}

func (s *ReportService) GetForStore(ctx context.Context, st models.StoreDescriptor, reportID string) (models.Report, error) {
	if _, err := uuid.Parse(reportID); err != nil {
		return models.Report{}, apperr.NotFound("Report not found")
	}
	r, err := s.Reports.GetReport(ctx, st.ID, reportID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.Report{}, apperr.NotFound("Report not found")
		}
		return models.Report{}, apperr.Internal("load report", err)
	}
	return r, nil
}

func (s *ReportService) RenderPDF(ctx context.Context, ownerID, storeID, reportID string) (RenderedPDF, error) {
	st, err := resolveStore(ctx, s.Stores, ownerID, storeID)
	if err != nil {
		return RenderedPDF{}, err
	}
	r, err := s.GetForStore(ctx, st, reportID)
	if err != nil {
		return RenderedPDF{}, err
	}
	return s.Render(ctx, st, r)
}

// Render lays out and draws r. Reports without content cannot be rendered.
func (s *ReportService) Render(ctx context.Context, st models.StoreDescriptor, r models.Report) (RenderedPDF, error) {
	doc, err := report.Layout(r.Content, st, report.PeriodLabel(r.PeriodStart, r.PeriodEnd))
	if err != nil {
		if errors.Is(err, report.ErrEmptyContent) {
			return RenderedPDF{}, apperr.EmptyContent()
		}
		return RenderedPDF{}, apperr.Internal("layout report", err)
	}
	data, err := report.RenderPDF(doc, report.RenderOptions{FontPath: s.Config.FontPath, Timestamp: r.CreatedAt})
	if err != nil {
		if errors.Is(err, report.ErrUnsupportedText) {
			s.Logger.Error().Err(err).Str("report_id", r.ID).Msg("report needs a UTF-8 font; set PDF_FONT_PATH")
		}
		return RenderedPDF{}, apperr.Internal("render pdf", err)
	}
	telemetry.PDFRendersTotal.Inc()

	if s.Config.ArtifactDir != "" && r.PDFPath == nil {
		s.storeArtifact(ctx, r, data)
	}
	return RenderedPDF{Filename: "report-" + r.PeriodEnd.String() + ".pdf", Data: data}, nil
}

func (s *ReportService) storeArtifact(ctx context.Context, r models.Report, data []byte) {
	dir := filepath.Join(s.Config.ArtifactDir, r.StoreID)
	path := filepath.Join(dir, r.ID+".pdf")
	log := s.Logger.With().Str("report_id", r.ID).Str("path", path).Logger()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Msg("create artifact dir")
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn().Err(err).Msg("write pdf artifact")
		return
	}
	if err := s.Reports.SetReportPDFPath(ctx, r.StoreID, r.ID, path); err != nil {
		log.Warn().Err(err).Msg("record pdf path")
	}
}
