package store

import (
	"context"
	"database/sql"

	"github.com/netdash/apiserver/types"
)

// StatsRepository computes owner-scoped aggregates.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// OwnerCounts returns the resource counts shown in the login response.
func (r *StatsRepository) OwnerCounts(ctx context.Context, ownerID int) (types.OwnerCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM mikrotik_devices WHERE owner_id = $1),
			(SELECT COUNT(*) FROM access_points WHERE owner_id = $1),
			(SELECT COUNT(*) FROM issues WHERE owner_id = $1 AND status = 'OPEN')`
	var counts types.OwnerCounts
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&counts.Devices,
		&counts.AccessPoints,
		&counts.OpenIssues,
	)
	if err != nil {
		return types.OwnerCounts{}, err
	}
	return counts, nil
}

// DashboardCounts returns the aggregates behind the four stat cards.
// All counts come from one statement so they describe a single snapshot.
func (r *StatsRepository) DashboardCounts(ctx context.Context, ownerID int) (types.DashboardCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM mikrotik_devices WHERE owner_id = $1),
			(SELECT COUNT(*) FROM mikrotik_devices WHERE owner_id = $1 AND is_online),
			(SELECT COUNT(*) FROM access_points WHERE owner_id = $1),
			(SELECT COUNT(*) FROM issues
				WHERE owner_id = $1
				AND date_trunc('month', created_at) = date_trunc('month', now())),
			(SELECT COUNT(*) FROM issues
				WHERE owner_id = $1
				AND date_trunc('month', created_at) = date_trunc('month', now() - interval '1 month'))`
	var counts types.DashboardCounts
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&counts.TotalDevices,
		&counts.OnlineDevices,
		&counts.TotalAPs,
		&counts.IssuesThisMonth,
		&counts.IssuesLastMonth,
	)
	if err != nil {
		return types.DashboardCounts{}, err
	}
	return counts, nil
}
