// Package cli implements reportctl, the operator tool that runs imports,
// prompt previews and PDF renders directly against the database.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/storepulse/backend/internal/ai"
	"github.com/storepulse/backend/internal/apperr"
	"github.com/storepulse/backend/internal/config"
	"github.com/storepulse/backend/internal/db"
	"github.com/storepulse/backend/internal/logging"
	"github.com/storepulse/backend/internal/models"
	"github.com/storepulse/backend/internal/prompt"
	"github.com/storepulse/backend/internal/service"
)

// env is what every subcommand needs once configuration is loaded.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
	store  *db.Store
}

func open(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return &env{cfg: cfg, logger: logging.New(cfg, "reportctl"), store: store}, nil
}

func (e *env) reports(provider ai.Provider) *service.ReportService {
	return &service.ReportService{
		Stores:   e.store,
		Sales:    e.store,
		Feedback: e.store,
		Reports:  e.store,
		Provider: provider,
		Config: service.ReportConfig{
			DefaultPeriodDays: e.cfg.DefaultPeriodDays,
			MaxPeriodDays:     e.cfg.MaxPeriodDays,
			ProviderTimeout:   e.cfg.ProviderTimeout,
			Language:          e.cfg.ReportLanguage,
			FontPath:          e.cfg.PDFFontPath,
			ArtifactDir:       e.cfg.PDFArtifactDir,
		},
		Logger: e.logger,
	}
}

func (e *env) storeByID(ctx context.Context, id string) (models.StoreDescriptor, error) {
	st, err := e.store.GetStore(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return st, fmt.Errorf("store %s not found", id)
	}
	return st, err
}

func ok(format string, args ...any) {
	fmt.Printf("%s %s\n", color.New(color.FgGreen).Sprint("✓"), fmt.Sprintf(format, args...))
}

// describe renders an application error with its details for the terminal.
func describe(err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind == apperr.KindInternal {
		return err
	}
	msg := color.New(color.FgRed).Sprint(ae.Message)
	if d, isMap := ae.Details.(map[string]any); isMap {
		if list, hasList := d["errors"].([]string); hasList {
			for _, line := range list {
				msg += "\n  " + line
			}
		}
	}
	return errors.New(msg)
}

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:          "reportctl",
		Short:        "Store Pulse operator tool",
		SilenceUsage: true,
	}
	root.AddCommand(MigrateCmd())
	root.AddCommand(StoreCmd())
	root.AddCommand(ImportCmd())
	root.AddCommand(ComposeCmd())
	root.AddCommand(GenerateCmd())
	root.AddCommand(RenderCmd())
	return root
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := open(ctx)
			if err != nil {
				return err
			}
			defer e.store.Close()
			if err := e.store.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			ok("schema applied")
			return nil
		},
	}
}

func StoreCmd() *cobra.Command {
	var industry string
	cmd := &cobra.Command{
		Use:   "store-create <owner-id> <name>",
		Short: "Register a store for an owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := open(ctx)
			if err != nil {
				return err
			}
			defer e.store.Close()

			st := newStore(args[0], args[1], industry)
			if err := e.store.CreateStore(ctx, st); err != nil {
				return fmt.Errorf("create store: %w", err)
			}
			ok("store %s created (%s)", st.ID, prompt.Label(st.Industry))
			return nil
		},
	}
	cmd.Flags().StringVar(&industry, "industry", "other", "restaurant, clinic, salon, real_estate, other or any custom tag")
	return cmd
}

// newStore keeps the industry tag as typed so unknown industries are shown
// verbatim.
func newStore(ownerID, name, industry string) models.StoreDescriptor {
	tag := strings.TrimSpace(industry)
	if tag == "" {
		tag = "other"
	}
	return models.StoreDescriptor{ID: uuid.NewString(), OwnerID: ownerID, Name: strings.TrimSpace(name), Industry: tag}
}

func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <store-id> <file>",
		Short: "Import a daily sales table into a store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			e, err := open(ctx)
			if err != nil {
				return err
			}
			defer e.store.Close()

			st, err := e.storeByID(ctx, args[0])
			if err != nil {
				return err
			}
			sales := &service.SalesService{Stores: e.store, Sales: e.store, Logger: e.logger}
			res, err := sales.ImportForStore(ctx, st, data)
			if err != nil {
				return describe(err)
			}
			ok("imported %d records from %d rows into %s", res.RecordsImported, res.RowsRead, st.Name)
			return nil
		},
	}
}

func ComposeCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "compose <store-id>",
		Short: "Print the prompt that report generation would send",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := open(ctx)
			if err != nil {
				return err
			}
			defer e.store.Close()

			st, err := e.storeByID(ctx, args[0])
			if err != nil {
				return err
			}
			p, start, end, err := e.reports(nil).Compose(ctx, st, days, time.Now().UTC())
			if err != nil {
				return describe(err)
			}
			heading := color.New(color.FgCyan, color.Bold)
			heading.Printf("# %s  %s - %s\n", st.Name, start, end)
			heading.Println("## system")
			fmt.Println(p.System)
			heading.Println("## user")
			fmt.Println(p.User)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "period length in days (default from config)")
	return cmd
}

func GenerateCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "generate <store-id>",
		Short: "Generate and store a report for a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := open(ctx)
			if err != nil {
				return err
			}
			defer e.store.Close()

			st, err := e.storeByID(ctx, args[0])
			if err != nil {
				return err
			}
			provider, closeProvider, err := ai.FromConfig(ctx, e.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeProvider() }()

			r, err := e.reports(provider).Generate(ctx, st.OwnerID, st.ID, days, time.Now().UTC())
			if err != nil {
				return describe(err)
			}
			ok("report %s for %s - %s", r.ID, r.PeriodStart, r.PeriodEnd)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "period length in days (default from config)")
	return cmd
}

func RenderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render <store-id> <report-id>",
		Short: "Write a stored report as PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := open(ctx)
			if err != nil {
				return err
			}
			defer e.store.Close()

			st, err := e.storeByID(ctx, args[0])
			if err != nil {
				return err
			}
			svc := e.reports(nil)
			r, err := svc.GetForStore(ctx, st, args[1])
			if err != nil {
				return describe(err)
			}
			pdf, err := svc.Render(ctx, st, r)
			if err != nil {
				return describe(err)
			}
			if out == "" {
				out = pdf.Filename
			}
			if err := os.WriteFile(out, pdf.Data, 0o644); err != nil {
				return err
			}
			ok("wrote %s (%d bytes)", out, len(pdf.Data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default report-<period_end>.pdf)")
	return cmd
}
