package services

import (
	"context"
	"testing"
	"time"

	"github.com/netdash/apiserver/internal/store"
	"github.com/netdash/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeviceRepo struct {
	devices []types.Device
	total   int
	err     error

	gotOwnerID  int
	gotSearch   string
	gotOffset   int
	gotLimit    int
	updated     types.Device
	gotName     string
	gotLocation string
}

func (f *fakeDeviceRepo) List(ctx context.Context, ownerID int, search string, offset, limit int) ([]types.Device, int, error) {
	f.gotOwnerID = ownerID
	f.gotSearch = search
	f.gotOffset = offset
	f.gotLimit = limit
	return f.devices, f.total, f.err
}

func (f *fakeDeviceRepo) Top(ctx context.Context, ownerID, limit int) ([]types.Device, error) {
	f.gotOwnerID = ownerID
	f.gotLimit = limit
	return f.devices, f.err
}

func (f *fakeDeviceRepo) UpdateMeta(ctx context.Context, ownerID, deviceID int, name, location string) (types.Device, error) {
	f.gotOwnerID = ownerID
	f.gotName = name
	f.gotLocation = location
	return f.updated, f.err
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newTestDeviceService(repo *fakeDeviceRepo) *DeviceService {
	svc := NewDeviceService(repo)
	svc.now = fixedNow
	return svc
}

func TestListClampsPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset int
		wantLimit  int
	}{
		{"zero page becomes one", 0, 10, 0, 10},
		{"negative page becomes one", -3, 10, 0, 10},
		{"zero limit uses default", 1, 0, 0, 5},
		{"limit capped at 100", 1, 500, 0, 100},
		{"offset from page", 3, 20, 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeDeviceRepo{}
			svc := newTestDeviceService(repo)

			_, err := svc.List(context.Background(), 1, "", tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, repo.gotOffset)
			assert.Equal(t, tt.wantLimit, repo.gotLimit)
		})
	}
}

func TestListPaginationDescriptor(t *testing.T) {
	repo := &fakeDeviceRepo{total: 23}
	svc := newTestDeviceService(repo)

	result, err := svc.List(context.Background(), 1, "office", 2, 5)
	require.NoError(t, err)

	assert.Equal(t, types.Pagination{
		CurrentPage:  2,
		ItemsPerPage: 5,
		TotalItems:   23,
		TotalPages:   5,
		HasNextPage:  true,
		HasPrevPage:  true,
	}, result.Pagination)
	assert.Equal(t, "office", result.Search)
	assert.Equal(t, "office", repo.gotSearch)
}

func TestListEmptyOwner(t *testing.T) {
	svc := newTestDeviceService(&fakeDeviceRepo{})

	result, err := svc.List(context.Background(), 1, "", 1, 5)
	require.NoError(t, err)

	assert.Empty(t, result.Devices)
	assert.Equal(t, 0, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNextPage)
	assert.False(t, result.Pagination.HasPrevPage)
}

func TestUpdatePassesThroughSentinels(t *testing.T) {
	for _, sentinel := range []error{store.ErrNotFound, store.ErrConflict} {
		repo := &fakeDeviceRepo{err: sentinel}
		svc := newTestDeviceService(repo)

		_, err := svc.Update(context.Background(), 1, 2, "Core Gateway", "HQ")
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestUpdateReturnsRefreshedProjection(t *testing.T) {
	seen := fixedNow().Add(-time.Hour)
	repo := &fakeDeviceRepo{updated: types.Device{
		MikrotikID: 300,
		OwnerID:    1,
		Name:       "Branch Gateway",
		Location:   "Rotterdam",
		IsOnline:   true,
		LastSeen:   &seen,
		CreatedAt:  fixedNow().Add(-30 * 24 * time.Hour),
	}}
	svc := newTestDeviceService(repo)

	view, err := svc.Update(context.Background(), 1, 300, "Branch Gateway", "Rotterdam")
	require.NoError(t, err)

	assert.Equal(t, 300, view.ID)
	assert.Equal(t, "Branch Gateway", view.Alias)
	assert.Equal(t, "192.168.2.44", view.IP)
	assert.Equal(t, 8291, view.Port, "online gateway advertises Winbox")
	assert.Equal(t, "CCR1009", view.Model)
	assert.Equal(t, types.DeviceStatusOnline, view.Status)
}

func TestSyntheticIP(t *testing.T) {
	assert.Equal(t, "192.168.1.1", syntheticIP(1))
	assert.Equal(t, "192.168.1.255", syntheticIP(255))
	assert.Equal(t, "192.168.2.0", syntheticIP(256))
	assert.Equal(t, "192.168.2.44", syntheticIP(300))
}

func TestManagementPort(t *testing.T) {
	online := types.Device{IsOnline: true, Name: "Core Router"}
	gateway := types.Device{IsOnline: true, Name: "Main Gateway"}
	offlineGateway := types.Device{IsOnline: false, Name: "Main Gateway"}

	assert.Equal(t, 8728, managementPort(online))
	assert.Equal(t, 8291, managementPort(gateway))
	assert.Equal(t, 22, managementPort(offlineGateway))
}

func TestModelForID(t *testing.T) {
	assert.Equal(t, "CCR1009", modelForID(5))
	assert.Equal(t, "RB4011", modelForID(6))
	assert.Equal(t, "hAP ax3", modelForID(7))
	assert.Equal(t, "LHG 5", modelForID(8))
	assert.Equal(t, "RB5009", modelForID(9))
}

func TestDeviceStatus(t *testing.T) {
	now := fixedNow()
	recent := now.Add(-2 * 24 * time.Hour)
	stale := now.Add(-8 * 24 * time.Hour)

	tests := []struct {
		name   string
		device types.Device
		want   types.DeviceStatus
	}{
		{"online flag wins", types.Device{IsOnline: true, LastSeen: &stale}, types.DeviceStatusOnline},
		{"recently seen warns", types.Device{LastSeen: &recent}, types.DeviceStatusWarning},
		{"silent past a week is offline", types.Device{LastSeen: &stale}, types.DeviceStatusOffline},
		{"never seen falls back to creation", types.Device{CreatedAt: stale}, types.DeviceStatusOffline},
		{"fresh never-seen device warns", types.Device{CreatedAt: recent}, types.DeviceStatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deviceStatus(tt.device, now))
		})
	}
}

func TestListViewsAreDeterministic(t *testing.T) {
	seen := fixedNow().Add(-time.Hour)
	repo := &fakeDeviceRepo{
		devices: []types.Device{
			{MikrotikID: 1, Name: "Office Gateway", Location: "HQ", IsOnline: true, LastSeen: &seen, CreatedAt: seen},
			{MikrotikID: 2, Name: "Warehouse AP", Location: "Depot", CreatedAt: seen},
		},
		total: 2,
	}
	svc := newTestDeviceService(repo)

	first, err := svc.List(context.Background(), 1, "", 1, 5)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), 1, "", 1, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
