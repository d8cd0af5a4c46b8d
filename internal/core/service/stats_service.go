package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
	"github.com/promarket/marketplace-api/internal/metrics"
)

const trailingSeriesMonths = 6

// StatsCache abstracts the read-through dashboard cache (Redis).
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// StatsService computes dashboard KPIs for pros and platform-wide KPIs for
// admins. It is read-only and performs no retries: a single failed sub-query
// aborts the whole response.
type StatsService struct {
	invoices       ports.InvoiceRepository
	projects       ports.ProjectRepository
	users          ports.UserRepository
	cache          StatsCache
	commissionRate float64
	marginRate     float64
	now            func() time.Time
	logger         zerolog.Logger
}

func NewStatsService(
	invoices ports.InvoiceRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	cache StatsCache,
	commissionRate, marginRate float64,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		invoices:       invoices,
		projects:       projects,
		users:          users,
		cache:          cache,
		commissionRate: commissionRate,
		marginRate:     marginRate,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// ProDashboard computes the pro KPI set for the selected window and the
// size-matched prior window. Results are served from the cache when fresh.
func (s *StatsService) ProDashboard(ctx context.Context, proID string, period ports.Period) (*ports.ProStats, error) {
	cacheKey := fmt.Sprintf("stats:pro:%s:%s", proID, period)
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
			s.logger.Warn().Err(err).Str("pro_id", proID).Msg("stats cache read failed, computing")
		} else if ok {
			var cached ports.ProStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
				return &cached, nil
			}
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
	}

	now := s.now()
	months := period.Months()
	windowStart := now.AddDate(0, -months, 0)
	priorStart := windowStart.AddDate(0, -months, 0)

	stats, err := s.computeProStats(ctx, proID, priorStart, windowStart, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw); err != nil {
				s.logger.Warn().Err(err).Str("pro_id", proID).Msg("stats cache write failed")
			}
		}
	}

	return stats, nil
}

func (s *StatsService) computeProStats(ctx context.Context, proID string, priorStart, windowStart, now time.Time) (*ports.ProStats, error) {
	revenue, err := s.invoices.SumPaidBetween(ctx, proID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("revenue window: %w", err)
	}
	prevRevenue, err := s.invoices.SumPaidBetween(ctx, proID, priorStart, windowStart)
	if err != nil {
		return nil, fmt.Errorf("revenue prior window: %w", err)
	}

	openClients, err := s.projects.OpenClientIDs(ctx, proID)
	if err != nil {
		return nil, fmt.Errorf("open clients: %w", err)
	}
	invoicedClients, err := s.invoices.ClientIDsInvoicedBetween(ctx, proID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("invoiced clients: %w", err)
	}
	prevInvoicedClients, err := s.invoices.ClientIDsInvoicedBetween(ctx, proID, priorStart, windowStart)
	if err != nil {
		return nil, fmt.Errorf("invoiced clients prior window: %w", err)
	}

	activeProjects, err := s.projects.CountOpen(ctx, proID)
	if err != nil {
		return nil, fmt.Errorf("active projects: %w", err)
	}
	newProjects, err := s.projects.CountOpenCreatedBetween(ctx, proID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("new projects: %w", err)
	}
	prevNewProjects, err := s.projects.CountOpenCreatedBetween(ctx, proID, priorStart, windowStart)
	if err != nil {
		return nil, fmt.Errorf("new projects prior window: %w", err)
	}

	series, err := s.monthlySeries(ctx, proID, now)
	if err != nil {
		return nil, fmt.Errorf("monthly series: %w", err)
	}

	distribution, err := s.statusDistribution(ctx, proID)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}

	// Project records carry no status history, so the open-client set is the
	// current one in both windows; only the invoiced set is window-scoped.
	activeClients := unionSize(openClients, invoicedClients)
	prevActiveClients := unionSize(openClients, prevInvoicedClients)

	profit := roundMoney(revenue * s.marginRate)
	prevProfit := prevRevenue * s.marginRate

	return &ports.ProStats{
		TotalRevenue:       roundMoney(revenue),
		Profit:             profit,
		ActiveClients:      activeClients,
		ActiveProjects:     activeProjects,
		RevenueChange:      pctChange(revenue, prevRevenue),
		ProfitChange:       pctChange(revenue*s.marginRate, prevProfit),
		ClientsChange:      pctChange(float64(activeClients), float64(prevActiveClients)),
		ProjectsChange:     pctChange(float64(newProjects), float64(prevNewProjects)),
		MonthlySeries:      series,
		StatusDistribution: distribution,
	}, nil
}

// monthlySeries returns the 6 trailing calendar months of revenue and assumed
// profit, oldest first, with zero-filled gaps.
func (s *StatsService) monthlySeries(ctx context.Context, proID string, now time.Time) ([]ports.MonthPoint, error) {
	points, err := s.invoices.MonthlyRevenue(ctx, proID, trailingSeriesMonths, now)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]float64, len(points))
	for _, p := range points {
		byMonth[p.Month] = p.Revenue
	}

	series := make([]ports.MonthPoint, 0, trailingSeriesMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingSeriesMonths - 1), 0)
	for i := 0; i < trailingSeriesMonths; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		revenue := roundMoney(byMonth[key])
		series = append(series, ports.MonthPoint{
			Month:   key,
			Revenue: revenue,
			Profit:  roundMoney(revenue * s.marginRate),
		})
	}
	return series, nil
}

func (s *StatsService) statusDistribution(ctx context.Context, proID string) ([]ports.StatusSlice, error) {
	counts, err := s.projects.CountByStatus(ctx, proID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	slices := make([]ports.StatusSlice, 0, len(counts))
	for status, n := range counts {
		share := 0.0
		if total > 0 {
			share = round1(float64(n) / float64(total) * 100)
		}
		slices = append(slices, ports.StatusSlice{
			Status: string(status),
			Label:  status.Label(),
			Color:  status.Color(),
			Count:  n,
			Share:  share,
		})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].Status < slices[j].Status })
	return slices, nil
}

// AdminOverview computes the platform-wide KPI set.
func (s *StatsService) AdminOverview(ctx context.Context) (*ports.AdminStats, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("users by role: %w", err)
	}

	projectCounts, err := s.projects.CountByStatus(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("project counts: %w", err)
	}

	// All paid invoices ever: an unbounded window.
	revenue, err := s.invoices.SumPaidBetween(ctx, "", time.Time{}, s.now())
	if err != nil {
		return nil, fmt.Errorf("platform revenue: %w", err)
	}

	usersByRole := make(map[string]int64, len(byRole))
	var totalUsers int64
	for role, n := range byRole {
		usersByRole[string(role)] = n
		totalUsers += n
	}

	return &ports.AdminStats{
		TotalUsers:        totalUsers,
		UsersByRole:       usersByRole,
		ActiveProjects:    projectCounts[domain.ProjectPlanning] + projectCounts[domain.ProjectActive],
		CompletedProjects: projectCounts[domain.ProjectCompleted],
		TotalRevenue:      roundMoney(revenue),
		TotalCommission:   roundMoney(revenue * s.commissionRate),
		CommissionRate:    s.commissionRate,
	}, nil
}

// pctChange returns the percentage change from prev to cur, rounded to one
// decimal. Defined as 0 when prev is 0 so a brand-new metric reads as "0%
// change" rather than NaN or Inf.
func pctChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return round1((cur - prev) / prev * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// unionSize counts the distinct ids across both slices.
func unionSize(a, b []string) int {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		seen[id] = struct{}{}
	}
	return len(seen)
}
