package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/livestock-gva/internal/config"
	"github.com/mamadbah2/livestock-gva/internal/service/reporting"
)

// DigestSource produces the weekly GVA digest.
type DigestSource interface {
	WeeklyDigest(ctx context.Context, now time.Time) (reporting.Digest, error)
}

// Notifier delivers a text message to one recipient.
type Notifier interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	location   *time.Location
	digests    DigestSource
	notifier   Notifier
	recipients []string
	now        func() time.Time
	logger     *zap.Logger
}

// NewScheduler creates a scheduler that sends the weekly digest on the
// configured cron expression, evaluated in the configured timezone.
func NewScheduler(cfg config.Config, digests DigestSource, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:       c,
		spec:       cfg.Reporting.CronSchedule,
		location:   loc,
		digests:    digests,
		notifier:   notifier,
		recipients: cfg.WhatsApp.DigestRecipients,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.spec, s.sendWeeklyDigest); err != nil {
		return fmt.Errorf("schedule weekly digest %q: %w", s.spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunDigest(ctx); err != nil {
		s.logger.Error("weekly digest failed", zap.Error(err))
		return
	}
	s.logger.Info("weekly digest sent successfully", zap.Int("recipients", len(s.recipients)))
}

// RunDigest builds the digest for the current time and sends it to every
// recipient concurrently. Any delivery failure is reported.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	s.logger.Info("generating weekly digest")

	digest, err := s.digests.WeeklyDigest(ctx, s.now().In(s.location))
	if err != nil {
		return fmt.Errorf("generate weekly digest: %w", err)
	}
	body := digest.Text()

	g, gctx := errgroup.WithContext(ctx)
	for _, to := range s.recipients {
		to := to
		g.Go(func() error {
			if _, err := s.notifier.SendText(gctx, to, body); err != nil {
				return fmt.Errorf("send digest to %s: %w", to, err)
			}
			return nil
		})
	}
	return g.Wait()
}
