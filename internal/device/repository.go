package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Repository defines the persistence operations for devices.
type Repository interface {
	// Get retrieves a device by id.
	// Returns ErrDeviceNotFound if the device does not exist.
	Get(ctx context.Context, id vo.DeviceID) (*Device, error)

	// Exists reports whether a device is stored.
	Exists(ctx context.Context, id vo.DeviceID) (bool, error)

	// List retrieves all devices.
	List(ctx context.Context) ([]*Device, error)

	// ListByRoom retrieves the devices installed in one room.
	ListByRoom(ctx context.Context, roomID vo.RoomID) ([]*Device, error)

	// Create inserts a new device.
	// Returns ErrDeviceExists on a duplicate id and ErrRoomNotFound when
	// the room is unknown.
	Create(ctx context.Context, d *Device) error

	// Update stores the model and status of an existing device.
	// Returns ErrDeviceNotFound if the device does not exist.
	Update(ctx context.Context, d *Device) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed device repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectDevice = `SELECT id, model, room_id, status FROM devices`

// Get retrieves a device by id.
func (r *SQLiteRepository) Get(ctx context.Context, id vo.DeviceID) (*Device, error) {
	d, err := scanDevice(r.db.QueryRowContext(ctx, selectDevice+` WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}
	return d, err
}

// Exists reports whether a device is stored.
func (r *SQLiteRepository) Exists(ctx context.Context, id vo.DeviceID) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM devices WHERE id = ?", id.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("counting devices: %w", err)
	}
	return n > 0, nil
}

// List retrieves all devices ordered by room then id.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Device, error) {
	return r.query(ctx, selectDevice+` ORDER BY room_id, id`)
}

// ListByRoom retrieves the devices installed in one room.
func (r *SQLiteRepository) ListByRoom(ctx context.Context, roomID vo.RoomID) ([]*Device, error) {
	return r.query(ctx, selectDevice+` WHERE room_id = ? ORDER BY id`, roomID.String())
}

// Create inserts a new device.
func (r *SQLiteRepository) Create(ctx context.Context, d *Device) error {
	const query = `INSERT INTO devices (id, model, room_id, status) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, d.id.String(), d.model.String(), d.roomID.String(), string(d.status))
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrDeviceExists, d.id)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", ErrRoomNotFound, d.roomID)
	default:
		return fmt.Errorf("inserting device %s: %w", d.id, err)
	}
}

// Update stores the model and status of an existing device.
func (r *SQLiteRepository) Update(ctx context.Context, d *Device) error {
	const query = `UPDATE devices SET model = ?, status = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, d.model.String(), string(d.status), d.id.String())
	if err != nil {
		return fmt.Errorf("updating device %s: %w", d.id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating device rows: %w", err)
	}
	return devices, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDevice(s scanner) (*Device, error) {
	var rawID, rawModel, rawRoom, rawStatus string
	if err := s.Scan(&rawID, &rawModel, &rawRoom, &rawStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning device: %w", err)
	}

	id, err := vo.NewDeviceID(rawID)
	if err != nil {
		return nil, err
	}
	model, err := vo.NewDeviceModel(rawModel)
	if err != nil {
		return nil, fmt.Errorf("restoring device %s: %w", rawID, err)
	}
	roomID, err := vo.NewRoomID(rawRoom)
	if err != nil {
		return nil, err
	}
	status, err := vo.ParseDeviceStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("restoring device %s: %w", rawID, err)
	}
	return New(id, model, roomID, status)
}
