package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/netdash/apiserver/types"
)

// DeviceRepository handles persistence for MikroTik devices.
type DeviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

const deviceColumns = `mikrotik_id, owner_id, name, location, is_online, last_seen, created_at`

// List returns one page of an owner's devices plus the total match count.
// The search term, when non-empty, matches name or location as a
// case-insensitive substring. The count and the page are two separate
// queries over the same filter; they are not taken in one transaction.
func (r *DeviceRepository) List(ctx context.Context, ownerID int, search string, offset, limit int) ([]types.Device, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	}

	where := `WHERE owner_id = $1`
	args := []any{ownerID}
	if search != "" {
		where += ` AND (name ILIKE $2 OR location ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM mikrotik_devices ` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
		SELECT `+deviceColumns+`
		FROM mikrotik_devices
		%s
		ORDER BY is_online DESC, name ASC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	devices := make([]types.Device, 0, limit)
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, 0, err
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return devices, total, nil
}

// Top returns up to limit of an owner's devices in listing order,
// used for the dashboard overview.
func (r *DeviceRepository) Top(ctx context.Context, ownerID, limit int) ([]types.Device, error) {
	const query = `
		SELECT ` + deviceColumns + `
		FROM mikrotik_devices
		WHERE owner_id = $1
		ORDER BY is_online DESC, name ASC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := make([]types.Device, 0, limit)
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}

// UpdateMeta renames and relocates a device owned by ownerID and returns the
// persisted row. The ownership check, the per-owner name-uniqueness check,
// the update, and the re-read all run in one transaction with the device row
// locked, so the check cannot race a concurrent rename. The unique constraint
// on (owner_id, name) remains the authoritative backstop and also maps to
// ErrConflict.
func (r *DeviceRepository) UpdateMeta(ctx context.Context, ownerID, deviceID int, name, location string) (types.Device, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Device{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const ownCheck = `
		SELECT mikrotik_id FROM mikrotik_devices
		WHERE mikrotik_id = $1 AND owner_id = $2
		FOR UPDATE`
	var id int
	if err := tx.QueryRowContext(ctx, ownCheck, deviceID, ownerID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Device{}, ErrNotFound
		}
		return types.Device{}, err
	}

	const nameCheck = `
		SELECT EXISTS (
			SELECT 1 FROM mikrotik_devices
			WHERE owner_id = $1 AND name = $2 AND mikrotik_id <> $3
		)`
	var taken bool
	if err := tx.QueryRowContext(ctx, nameCheck, ownerID, name, deviceID).Scan(&taken); err != nil {
		return types.Device{}, err
	}
	if taken {
		return types.Device{}, ErrConflict
	}

	const update = `
		UPDATE mikrotik_devices
		SET name = $1,
			location = $2,
			last_seen = COALESCE(last_seen, now())
		WHERE mikrotik_id = $3 AND owner_id = $4`
	if _, err := tx.ExecContext(ctx, update, name, location, deviceID, ownerID); err != nil {
		if isUniqueViolation(err) {
			return types.Device{}, ErrConflict
		}
		return types.Device{}, err
	}

	const get = `
		SELECT ` + deviceColumns + `
		FROM mikrotik_devices
		WHERE mikrotik_id = $1`
	device, err := scanDevice(tx.QueryRowContext(ctx, get, deviceID))
	if err != nil {
		return types.Device{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Device{}, err
	}
	return device, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (types.Device, error) {
	var device types.Device
	var lastSeen sql.NullTime
	if err := row.Scan(
		&device.MikrotikID,
		&device.OwnerID,
		&device.Name,
		&device.Location,
		&device.IsOnline,
		&lastSeen,
		&device.CreatedAt,
	); err != nil {
		return types.Device{}, err
	}
	if lastSeen.Valid {
		t := lastSeen.Time
		device.LastSeen = &t
	}
	return device, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
