package value

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Repository persists sensor values.
type Repository interface {
	Create(ctx context.Context, v Value) error
	Get(ctx context.Context, id vo.ValueID) (Value, error)
	// ListBySensor returns every value of a sensor, oldest first.
	ListBySensor(ctx context.Context, sensorID vo.SensorID) ([]Value, error)
	// ListBySensorBetween returns the values whose span lies inside
	// [from, to], oldest first.
	ListBySensorBetween(ctx context.Context, sensorID vo.SensorID, from, to time.Time) ([]Value, error)
	// Last returns the most recent value of a sensor.
	Last(ctx context.Context, sensorID vo.SensorID) (Value, error)
}

// SQLiteRepository implements Repository using SQLite. Timestamps are
// stored as unix nanoseconds.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed value repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectValue = `SELECT id, sensor_id, kind, measurement, unit,
	started_at, observed_at, latitude, longitude
	FROM sensor_values`

// Create stores v.
func (r *SQLiteRepository) Create(ctx context.Context, v Value) error {
	const query = `INSERT INTO sensor_values
		(id, sensor_id, kind, measurement, unit, started_at, observed_at, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start, end := v.Span()
	var lat, lon any
	if loc, ok := v.(*InstantTimeLocation); ok {
		lat, lon = loc.gps.Latitude(), loc.gps.Longitude()
	}

	_, err := r.db.ExecContext(ctx, query,
		v.ID().String(), v.SensorID().String(), string(v.Kind()),
		v.Reading().Measurement(), v.Reading().Unit(),
		start.UnixNano(), end.UnixNano(), lat, lon)
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrValueExists, v.ID())
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", ErrSensorNotFound, v.SensorID())
	default:
		return fmt.Errorf("inserting value %s: %w", v.ID(), err)
	}
}

// Get loads a value by id.
func (r *SQLiteRepository) Get(ctx context.Context, id vo.ValueID) (Value, error) {
	v, err := scanValue(r.db.QueryRowContext(ctx, selectValue+` WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrValueNotFound
	}
	return v, err
}

// ListBySensor returns every value of a sensor, oldest first.
func (r *SQLiteRepository) ListBySensor(ctx context.Context, sensorID vo.SensorID) ([]Value, error) {
	return r.query(ctx, selectValue+` WHERE sensor_id = ? ORDER BY observed_at, id`, sensorID.String())
}

// ListBySensorBetween returns the values whose span lies inside [from, to].
func (r *SQLiteRepository) ListBySensorBetween(ctx context.Context, sensorID vo.SensorID, from, to time.Time) ([]Value, error) {
	return r.query(ctx, selectValue+` WHERE sensor_id = ? AND started_at >= ? AND observed_at <= ?
		ORDER BY observed_at, id`, sensorID.String(), from.UnixNano(), to.UnixNano())
}

// Last returns the most recent value of a sensor, or ErrValueNotFound.
func (r *SQLiteRepository) Last(ctx context.Context, sensorID vo.SensorID) (Value, error) {
	v, err := scanValue(r.db.QueryRowContext(ctx,
		selectValue+` WHERE sensor_id = ? ORDER BY observed_at DESC, id DESC LIMIT 1`, sensorID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrValueNotFound
	}
	return v, err
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]Value, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying values: %w", err)
	}
	defer rows.Close()

	var values []Value
	for rows.Next() {
		v, err := scanValue(rows)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating value rows: %w", err)
	}
	return values, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanValue(s scanner) (Value, error) {
	var (
		rawID, rawSensor, rawKind string
		measurement, unit         string
		startedAt, observedAt     int64
		lat, lon                  sql.NullFloat64
	)
	err := s.Scan(&rawID, &rawSensor, &rawKind, &measurement, &unit, &startedAt, &observedAt, &lat, &lon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning value: %w", err)
	}

	id, err := vo.NewValueID(rawID)
	if err != nil {
		return nil, err
	}
	sensorID, err := vo.NewSensorID(rawSensor)
	if err != nil {
		return nil, err
	}
	reading, err := vo.NewReading(measurement, unit)
	if err != nil {
		return nil, fmt.Errorf("restoring value %s: %w", rawID, err)
	}
	kind, err := ParseKind(rawKind)
	if err != nil {
		return nil, fmt.Errorf("restoring value %s: %w", rawID, err)
	}

	start, end := time.Unix(0, startedAt).UTC(), time.Unix(0, observedAt).UTC()

	var v Value
	switch kind {
	case KindPeriod:
		v, err = NewPeriodTimeWithID(id, sensorID, reading, start, end)
	case KindInstantLocation:
		if !lat.Valid || !lon.Valid {
			return nil, fmt.Errorf("restoring value %s: %w: missing coordinates", rawID, ErrInvalidValue)
		}
		gps, gpsErr := vo.NewGPSCode(lat.Float64, lon.Float64)
		if gpsErr != nil {
			return nil, fmt.Errorf("restoring value %s: %w", rawID, gpsErr)
		}
		v, err = NewInstantTimeLocationWithID(id, sensorID, reading, end, gps)
	default:
		v, err = NewInstantTimeWithID(id, sensorID, reading, end)
	}
	if err != nil {
		return nil, fmt.Errorf("restoring value %s: %w", rawID, err)
	}
	return v, nil
}
