package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/pkg/currency"
)

const dateLayout = "2006-01-02"

// Digest summarises the reports computed over a period.
type Digest struct {
	Start      time.Time
	End        time.Time
	Reports    int
	Villages   []string
	ByCategory map[models.Category]float64
	Total      float64
	// Capped is set when the week held more reports than one listing returns.
	Capped bool
}

// WeeklyDigest aggregates the reports created in the seven days up to now.
// It reads a single store listing, so at most the newest
// models.DefaultReportLimit reports of the week are counted and Capped is
// set when that limit is reached.
func (s *Service) WeeklyDigest(ctx context.Context, now time.Time) (Digest, error) {
	start := now.AddDate(0, 0, -7)

	reports, err := s.store.List(ctx, models.ReportFilter{Since: start})
	if err != nil {
		return Digest{}, fmt.Errorf("%w: list reports for digest: %v", ErrStorage, err)
	}

	d := Digest{
		Start:      start,
		End:        now,
		ByCategory: make(map[models.Category]float64, len(models.Categories)),
		Capped:     len(reports) >= models.DefaultReportLimit,
	}
	villages := make(map[string]struct{})
	for _, report := range reports {
		if report.CreatedAt.After(now) {
			continue
		}
		d.Reports++
		for _, b := range report.Results.Breakdowns() {
			d.ByCategory[b.Category()] += b.Value().NetGVA
		}
		d.Total += report.Results.TotalVillageGVA

		if name := strings.TrimSpace(report.Inputs.VillageName); name != "" {
			villages[name] = struct{}{}
		}
	}
	for name := range villages {
		d.Villages = append(d.Villages, name)
	}
	sort.Strings(d.Villages)

	s.logger.Debug("weekly digest computed", zap.Int("reports", d.Reports), zap.Float64("total", d.Total))
	return d, nil
}

// Text formats the digest as a chat message.
func (d Digest) Text() string {
	period := fmt.Sprintf("%s - %s", d.Start.Format(dateLayout), d.End.Format(dateLayout))
	if d.Reports == 0 {
		return fmt.Sprintf("GVA digest (%s): no reports computed.", period)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GVA digest (%s): %d report(s)", period, d.Reports)
	if d.Capped {
		b.WriteString(" (newest only)")
	}
	if len(d.Villages) > 0 {
		fmt.Fprintf(&b, " covering %s", strings.Join(d.Villages, ", "))
	}
	b.WriteString(".\n")
	for _, c := range models.Categories {
		fmt.Fprintf(&b, "%s: %s\n", c.Label(), currency.Format(d.ByCategory[c]))
	}
	fmt.Fprintf(&b, "Total village GVA: %s", currency.Format(d.Total))
	return b.String()
}
