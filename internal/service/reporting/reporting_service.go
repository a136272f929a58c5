package reporting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/repository"
)

// ErrStorage marks failures of the report store. Callers see it as
// "report could not be saved" (or loaded); it is never retried here.
var ErrStorage = errors.New("report storage failure")

// Store is the append-only persistence contract for GVA reports.
type Store interface {
	Save(ctx context.Context, report models.Report) (string, error)
	Get(ctx context.Context, id string) (models.Report, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
}

// Calculator produces a stamped report from a census.
type Calculator interface {
	Aggregate(in models.CensusInput, author models.Author) (models.Report, error)
	Coefficients() models.Coefficients
}

// Ledger mirrors saved reports to a secondary, best-effort destination.
type Ledger interface {
	AppendReport(ctx context.Context, report models.Report) error
}

// Renderer turns a report into a downloadable document.
type Renderer interface {
	Render(w io.Writer, report models.Report) error
	ContentType() string
	Filename(report models.Report) string
}

// Service orchestrates GVA calculation, persistence and export.
type Service struct {
	engine   Calculator
	store    Store
	ledger   Ledger
	renderer Renderer
	logger   *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithLedger mirrors every saved report into l.
func WithLedger(l Ledger) Option {
	return func(s *Service) { s.ledger = l }
}

// WithRenderer enables document export.
func WithRenderer(r Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// NewService wires a new reporting service instance.
func NewService(engine Calculator, store Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{engine: engine, store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate computes a new report for the author and persists it. Invalid
// input is rejected before anything is stored.
func (s *Service) Calculate(ctx context.Context, in models.CensusInput, author models.Author) (models.Report, error) {
	report, err := s.engine.Aggregate(in, author)
	if err != nil {
		return models.Report{}, err
	}

	id, err := s.store.Save(ctx, report)
	if err != nil {
		s.logger.Error("failed to save gva report", zap.String("report_id", report.ID), zap.Error(err))
		return models.Report{}, fmt.Errorf("%w: report could not be saved: %v", ErrStorage, err)
	}
	report.ID = id

	s.logger.Info("gva report saved",
		zap.String("report_id", report.ID),
		zap.String("author_id", author.ID),
		zap.String("village", in.VillageName),
		zap.Float64("total_village_gva", report.Results.TotalVillageGVA))

	if s.ledger != nil {
		if err := s.ledger.AppendReport(ctx, report); err != nil {
			s.logger.Warn("failed to mirror gva report to ledger", zap.String("report_id", report.ID), zap.Error(err))
		}
	}

	return report, nil
}

// Get loads a report by id. Missing reports surface repository.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (models.Report, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Report{}, wrapLookup(err, "load report "+id)
	}
	return report, nil
}

// List returns reports visible to the caller, newest first. Veterinarians
// only see their own reports.
func (s *Service) List(ctx context.Context, caller models.Author, limit int) ([]models.Report, error) {
	filter := models.ReportFilter{Limit: limit}
	if caller.Role == models.RoleVeterinarian {
		filter.AuthorID = caller.ID
	}

	reports, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list reports: %v", ErrStorage, err)
	}
	return reports, nil
}

// Document is a rendered report ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export renders the stored report. Rendering happens fully in memory so a
// failure never yields a partial document.
func (s *Service) Export(ctx context.Context, id string) (Document, error) {
	if s.renderer == nil {
		return Document{}, errors.New("report export is not configured")
	}
	report, err := s.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, report); err != nil {
		s.logger.Error("failed to render gva report", zap.String("report_id", id), zap.Error(err))
		return Document{}, err
	}

	return Document{
		Filename:    s.renderer.Filename(report),
		ContentType: s.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Coefficients returns the table reports are currently calculated with.
func (s *Service) Coefficients() models.Coefficients {
	return s.engine.Coefficients()
}

func wrapLookup(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
