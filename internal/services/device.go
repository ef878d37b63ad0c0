package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/netdash/apiserver/types"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100

	// A device that has been silent longer than this counts as offline
	// rather than merely degraded.
	offlineAfter = 7 * 24 * time.Hour

	portWinbox  = 8291
	portAPI     = 8728
	portSSH     = 22
	gatewayMark = "Gateway"
)

var deviceModels = [5]string{"CCR1009", "RB4011", "hAP ax3", "LHG 5", "RB5009"}

// DeviceRepository defines persistence operations for devices.
type DeviceRepository interface {
	List(ctx context.Context, ownerID int, search string, offset, limit int) ([]types.Device, int, error)
	Top(ctx context.Context, ownerID, limit int) ([]types.Device, error)
	UpdateMeta(ctx context.Context, ownerID, deviceID int, name, location string) (types.Device, error)
}

// DeviceListResult is one page of an owner's devices.
type DeviceListResult struct {
	Devices    []types.DeviceView `json:"devices"`
	Pagination types.Pagination   `json:"pagination"`
	Search     string             `json:"search"`
}

// DeviceService builds device views and applies metadata updates.
type DeviceService struct {
	repo DeviceRepository
	now  func() time.Time
}

func NewDeviceService(repo DeviceRepository) *DeviceService {
	return &DeviceService{repo: repo, now: time.Now}
}

// List returns a filtered, paginated page of the owner's devices. Page is
// clamped to at least 1 and the page size to [1,100]; results are ordered
// online-first, then by name, so a fixed dataset always pages identically.
func (s *DeviceService) List(ctx context.Context, ownerID int, search string, page, limit int) (DeviceListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := (page - 1) * limit

	devices, total, err := s.repo.List(ctx, ownerID, strings.TrimSpace(search), offset, limit)
	if err != nil {
		return DeviceListResult{}, err
	}

	totalPages := (total + limit - 1) / limit
	now := s.now()
	views := make([]types.DeviceView, 0, len(devices))
	for _, device := range devices {
		views = append(views, deviceView(device, now))
	}

	return DeviceListResult{
		Devices: views,
		Pagination: types.Pagination{
			CurrentPage:  page,
			ItemsPerPage: limit,
			TotalItems:   total,
			TotalPages:   totalPages,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
		Search: strings.TrimSpace(search),
	}, nil
}

// Update renames and relocates one of the owner's devices and returns the
// refreshed projection of the persisted row. The repository enforces
// ownership and per-owner name uniqueness; store.ErrNotFound and
// store.ErrConflict pass through unchanged.
func (s *DeviceService) Update(ctx context.Context, ownerID, deviceID int, name, location string) (types.DeviceView, error) {
	device, err := s.repo.UpdateMeta(ctx, ownerID, deviceID, name, location)
	if err != nil {
		return types.DeviceView{}, err
	}
	return deviceView(device, s.now()), nil
}

// deviceView projects a stored device into its display form. Everything
// derived here is a pure function of the stored fields, so a row always
// renders the same way.
func deviceView(device types.Device, now time.Time) types.DeviceView {
	return types.DeviceView{
		ID:        device.MikrotikID,
		Alias:     device.Name,
		Location:  device.Location,
		IsOnline:  device.IsOnline,
		LastSeen:  device.LastSeen,
		CreatedAt: device.CreatedAt,
		IP:        syntheticIP(device.MikrotikID),
		Port:      managementPort(device),
		Model:     modelForID(device.MikrotikID),
		Status:    deviceStatus(device, now),
	}
}

// syntheticIP maps a device ID into the 192.168.0.0/16 range.
func syntheticIP(id int) string {
	return fmt.Sprintf("192.168.%d.%d", id/256+1, id%256)
}

// managementPort picks the advertised management port: Winbox for online
// gateways, the RouterOS API for other online devices, SSH otherwise.
func managementPort(device types.Device) int {
	switch {
	case device.IsOnline && strings.Contains(device.Name, gatewayMark):
		return portWinbox
	case device.IsOnline:
		return portAPI
	default:
		return portSSH
	}
}

func modelForID(id int) string {
	return deviceModels[((id%5)+5)%5]
}

// deviceStatus classifies a device: online when it answered its last poll,
// offline when silent for more than a week (falling back to the creation
// time if it was never seen), warning in between.
func deviceStatus(device types.Device, now time.Time) types.DeviceStatus {
	if device.IsOnline {
		return types.DeviceStatusOnline
	}
	ref := device.CreatedAt
	if device.LastSeen != nil {
		ref = *device.LastSeen
	}
	if now.Sub(ref) > offlineAfter {
		return types.DeviceStatusOffline
	}
	return types.DeviceStatusWarning
}
