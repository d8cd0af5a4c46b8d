package ports

import "context"

// Period selects the KPI aggregation window.
type Period string

const (
	PeriodOneMonth    Period = "1month"
	PeriodThreeMonths Period = "3months"
	PeriodSixMonths   Period = "6months"
	PeriodOneYear     Period = "1year"
)

// Months returns the window length in calendar months, defaulting to one.
func (p Period) Months() int {
	switch p {
	case PeriodThreeMonths:
		return 3
	case PeriodSixMonths:
		return 6
	case PeriodOneYear:
		return 12
	default:
		return 1
	}
}

// Valid reports whether p is a recognized period selector.
func (p Period) Valid() bool {
	switch p {
	case PeriodOneMonth, PeriodThreeMonths, PeriodSixMonths, PeriodOneYear:
		return true
	}
	return false
}

// MonthPoint is one month of the trailing revenue/profit series.
type MonthPoint struct {
	Month   string  `json:"month"` // "YYYY-MM"
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// StatusSlice is one slice of the project status distribution chart.
type StatusSlice struct {
	Status string  `json:"status"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Count  int64   `json:"count"`
	Share  float64 `json:"share"` // 0..100, one decimal
}

// ProStats is the full KPI set for a professional's dashboard.
type ProStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	Profit         float64 `json:"profit"` // revenue × assumed margin rate
	ActiveClients  int     `json:"active_clients"`
	ActiveProjects int64   `json:"active_projects"`

	// Change percentages vs the size-matched prior window, one decimal.
	// Exactly 0 when the prior-window value is 0.
	RevenueChange  float64 `json:"revenue_change"`
	ProfitChange   float64 `json:"profit_change"`
	ClientsChange  float64 `json:"clients_change"`
	ProjectsChange float64 `json:"projects_change"`

	MonthlySeries      []MonthPoint  `json:"monthly_series"`
	StatusDistribution []StatusSlice `json:"status_distribution"`
}

// AdminStats is the platform-wide KPI set.
type AdminStats struct {
	TotalUsers        int64            `json:"total_users"`
	UsersByRole       map[string]int64 `json:"users_by_role"`
	ActiveProjects    int64            `json:"active_projects"`
	CompletedProjects int64            `json:"completed_projects"`
	TotalRevenue      float64          `json:"total_revenue"`
	TotalCommission   float64          `json:"total_commission"`
	CommissionRate    float64          `json:"commission_rate"`
}

// StatsService computes dashboard KPIs. All operations are read-only; a single
// failed sub-query aborts the whole response.
type StatsService interface {
	ProDashboard(ctx context.Context, proID string, period Period) (*ProStats, error)
	AdminOverview(ctx context.Context) (*AdminStats, error)
}
