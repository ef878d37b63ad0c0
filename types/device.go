package types

import "time"

// DeviceStatus classifies a device for display purposes.
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusWarning DeviceStatus = "warning"
	DeviceStatusOffline DeviceStatus = "offline"
)

// Device is a monitored MikroTik device as stored.
type Device struct {
	// MikrotikID is the unique identifier of the device.
	MikrotikID int `json:"mikrotik_id" db:"mikrotik_id"`

	// OwnerID is the user that owns this device.
	OwnerID int `json:"owner_id" db:"owner_id"`

	// Name is the display name, unique per owner.
	Name string `json:"name" db:"name"`

	// Location is a free-form site label.
	Location string `json:"location" db:"location"`

	// IsOnline reports whether the device responded to its last poll.
	IsOnline bool `json:"is_online" db:"is_online"`

	// LastSeen is the time of the last successful contact, nil if the
	// device has never been seen.
	LastSeen *time.Time `json:"last_seen" db:"last_seen"`

	// CreatedAt is the timestamp when the device was registered.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DeviceView is the projection returned to the dashboard. IP, port, model,
// and status are derived from stored fields at read time and never persisted.
type DeviceView struct {
	ID        int          `json:"id"`
	Alias     string       `json:"alias"`
	Location  string       `json:"location"`
	IsOnline  bool         `json:"is_online"`
	LastSeen  *time.Time   `json:"last_seen"`
	CreatedAt time.Time    `json:"created_at"`
	IP        string       `json:"ip"`
	Port      int          `json:"port"`
	Model     string       `json:"model"`
	Status    DeviceStatus `json:"status"`
}

// Pagination describes one page of a device listing.
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	ItemsPerPage int  `json:"items_per_page"`
	TotalItems   int  `json:"total_items"`
	TotalPages   int  `json:"total_pages"`
	HasNextPage  bool `json:"has_next_page"`
	HasPrevPage  bool `json:"has_prev_page"`
}
