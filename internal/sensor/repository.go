package sensor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Repository persists sensors.
type Repository interface {
	Create(ctx context.Context, s *Sensor) error
	Get(ctx context.Context, id vo.SensorID) (*Sensor, error)
	List(ctx context.Context) ([]*Sensor, error)
	ListByDevice(ctx context.Context, deviceID vo.DeviceID) ([]*Sensor, error)
	ListByFunctionality(ctx context.Context, functionalityID vo.SensorFunctionalityID) ([]*Sensor, error)
	ListByDeviceAndFunctionality(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) ([]*Sensor, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed sensor repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectSensor = `SELECT id, device_id, functionality_id FROM sensors`

// Create inserts a new sensor.
func (r *SQLiteRepository) Create(ctx context.Context, s *Sensor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensors (id, device_id, functionality_id) VALUES (?, ?, ?)`,
		s.id.String(), s.deviceID.String(), s.functionalityID.String())
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrSensorExists, s.id)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: device %s, functionality %s", ErrDeviceNotFound, s.deviceID, s.functionalityID)
	default:
		return fmt.Errorf("inserting sensor %s: %w", s.id, err)
	}
}

// Get loads a sensor by id.
func (r *SQLiteRepository) Get(ctx context.Context, id vo.SensorID) (*Sensor, error) {
	s, err := scanSensor(r.db.QueryRowContext(ctx, selectSensor+` WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSensorNotFound
	}
	return s, err
}

// List returns every sensor.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Sensor, error) {
	return r.query(ctx, selectSensor+` ORDER BY device_id, id`)
}

// ListByDevice returns the sensors of one device.
func (r *SQLiteRepository) ListByDevice(ctx context.Context, deviceID vo.DeviceID) ([]*Sensor, error) {
	return r.query(ctx, selectSensor+` WHERE device_id = ? ORDER BY id`, deviceID.String())
}

// ListByFunctionality returns the sensors measuring one functionality.
func (r *SQLiteRepository) ListByFunctionality(ctx context.Context, functionalityID vo.SensorFunctionalityID) ([]*Sensor, error) {
	return r.query(ctx, selectSensor+` WHERE functionality_id = ? ORDER BY device_id, id`, functionalityID.String())
}

// ListByDeviceAndFunctionality returns the sensors of one functionality on
// one device.
func (r *SQLiteRepository) ListByDeviceAndFunctionality(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.SensorFunctionalityID) ([]*Sensor, error) {
	return r.query(ctx, selectSensor+` WHERE device_id = ? AND functionality_id = ? ORDER BY id`,
		deviceID.String(), functionalityID.String())
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*Sensor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sensors: %w", err)
	}
	defer rows.Close()

	var sensors []*Sensor
	for rows.Next() {
		s, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sensor rows: %w", err)
	}
	return sensors, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSensor(row scanner) (*Sensor, error) {
	var rawID, rawDevice, rawFunc string
	if err := row.Scan(&rawID, &rawDevice, &rawFunc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sensor: %w", err)
	}
	id, err := vo.NewSensorID(rawID)
	if err != nil {
		return nil, err
	}
	deviceID, err := vo.NewDeviceID(rawDevice)
	if err != nil {
		return nil, err
	}
	functionalityID, err := vo.NewSensorFunctionalityID(rawFunc)
	if err != nil {
		return nil, err
	}
	return New(id, deviceID, functionalityID)
}
