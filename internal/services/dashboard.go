package services

import (
	"context"
	"fmt"
	"time"

	"github.com/netdash/apiserver/types"
)

const dashboardDeviceLimit = 10

// DashboardCountsRepository provides the aggregates behind the stat cards.
type DashboardCountsRepository interface {
	DashboardCounts(ctx context.Context, ownerID int) (types.DashboardCounts, error)
}

// DashboardResult is the payload of the dashboard-stats endpoint: the four
// metric cards plus the owner's top devices for the router list.
type DashboardResult struct {
	Stats   types.DashboardStats `json:"stats"`
	Devices []types.DeviceView   `json:"devices"`
}

// DashboardService assembles the dashboard summary view.
type DashboardService struct {
	stats   DashboardCountsRepository
	devices DeviceRepository
	now     func() time.Time
}

func NewDashboardService(stats DashboardCountsRepository, devices DeviceRepository) *DashboardService {
	return &DashboardService{stats: stats, devices: devices, now: time.Now}
}

// Stats computes the four metric cards and fetches the owner's top devices.
// Each card is assembled independently from the same counts snapshot.
func (s *DashboardService) Stats(ctx context.Context, ownerID int) (DashboardResult, error) {
	counts, err := s.stats.DashboardCounts(ctx, ownerID)
	if err != nil {
		return DashboardResult{}, err
	}

	devices, err := s.devices.Top(ctx, ownerID, dashboardDeviceLimit)
	if err != nil {
		return DashboardResult{}, err
	}

	now := s.now()
	views := make([]types.DeviceView, 0, len(devices))
	for _, device := range devices {
		views = append(views, deviceView(device, now))
	}

	return DashboardResult{
		Stats:   buildStatCards(counts),
		Devices: views,
	}, nil
}

func buildStatCards(counts types.DashboardCounts) types.DashboardStats {
	score := securityScore(counts.OnlineDevices, counts.TotalDevices)
	issuesChange, issuesTrend := issuesDelta(counts.IssuesThisMonth, counts.IssuesLastMonth)

	scoreChange := "Medium"
	scoreTrend := types.TrendDown
	if score > 90 {
		scoreChange = "High"
		scoreTrend = types.TrendUp
	}

	return types.DashboardStats{
		ActiveRouters: types.MetricCard{
			Title:  "Active Routers",
			Value:  counts.OnlineDevices,
			Change: fmt.Sprintf("%d/%d", counts.OnlineDevices, counts.TotalDevices),
			Trend:  types.TrendUp,
		},
		TotalAPs: types.MetricCard{
			Title:  "Total APs",
			Value:  counts.TotalAPs,
			Change: fmt.Sprintf("+%d", counts.TotalAPs/10),
			Trend:  types.TrendUp,
		},
		IssuesThisMonth: types.MetricCard{
			Title:  "Issues This Month",
			Value:  counts.IssuesThisMonth,
			Change: issuesChange,
			Trend:  issuesTrend,
		},
		SecurityScore: types.MetricCard{
			Title:  "Security Score",
			Value:  score,
			Change: scoreChange,
			Trend:  scoreTrend,
		},
	}
}

// securityScore is a coarse three-tier heuristic over the online ratio.
// The thresholds are strict: 9 online out of 10 is exactly 90% and still
// lands in the lowest tier.
func securityScore(online, total int) int {
	if total < 1 {
		total = 1
	}
	ratio := float64(online) * 100 / float64(total)
	switch {
	case ratio > 90:
		return 98
	case ratio > 70:
		return 85
	default:
		return 65
	}
}

// issuesDelta renders the month-over-month issue movement. More issues than
// last month is a warning; fewer or equal trends down. With no issues last
// month, any new issues warn, and a fully quiet pair reports "0" with an
// upward trend.
func issuesDelta(thisMonth, lastMonth int) (string, types.Trend) {
	switch {
	case lastMonth > 0:
		change := thisMonth - lastMonth
		if change > 0 {
			return fmt.Sprintf("+%d", change), types.TrendWarning
		}
		return fmt.Sprintf("%d", change), types.TrendDown
	case thisMonth > 0:
		return fmt.Sprintf("+%d", thisMonth), types.TrendWarning
	default:
		return "0", types.TrendUp
	}
}
