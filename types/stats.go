package types

// Trend is a coarse directional indicator attached to a metric card.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendWarning Trend = "warning"
)

// MetricCard is one dashboard statistic with its display metadata.
type MetricCard struct {
	Title  string `json:"title"`
	Value  int    `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}

// DashboardStats holds the four metric cards shown on the dashboard.
type DashboardStats struct {
	ActiveRouters   MetricCard `json:"active_routers"`
	TotalAPs        MetricCard `json:"total_aps"`
	IssuesThisMonth MetricCard `json:"issues_this_month"`
	SecurityScore   MetricCard `json:"security_score"`
}

// OwnerCounts are the resource counts returned with a successful login.
type OwnerCounts struct {
	Devices      int `json:"devices"`
	AccessPoints int `json:"access_points"`
	OpenIssues   int `json:"open_issues"`
}

// DashboardCounts are the raw aggregates the stat cards are built from.
// All five counts come from a single statement so they describe one
// snapshot of the owner's records.
type DashboardCounts struct {
	TotalDevices    int
	OnlineDevices   int
	TotalAPs        int
	IssuesThisMonth int
	IssuesLastMonth int
}
