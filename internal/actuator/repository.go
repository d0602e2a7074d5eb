package actuator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Repository persists actuators together with their current target.
type Repository interface {
	Create(ctx context.Context, a Actuator) error
	Get(ctx context.Context, id vo.ActuatorID) (Actuator, error)
	// UpdateTarget stores the current target of a.
	UpdateTarget(ctx context.Context, a Actuator) error
	List(ctx context.Context) ([]Actuator, error)
	ListByDevice(ctx context.Context, deviceID vo.DeviceID) ([]Actuator, error)
	ListByFunctionality(ctx context.Context, functionalityID vo.ActuatorFunctionalityID) ([]Actuator, error)
	ListByDeviceAndFunctionality(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.ActuatorFunctionalityID) ([]Actuator, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed actuator repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectActuator = `SELECT id, device_id, functionality_id, kind,
	int_lower, int_upper, dec_lower, dec_upper, dec_precision, target
	FROM actuators`

// Create inserts a new actuator.
func (r *SQLiteRepository) Create(ctx context.Context, a Actuator) error {
	const query = `INSERT INTO actuators (id, device_id, functionality_id, kind,
		int_lower, int_upper, dec_lower, dec_upper, dec_precision, target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []any{a.ID().String(), a.DeviceID().String(), a.FunctionalityID().String(), string(a.Kind())}
	args = append(args, propertyColumns(a.Properties())...)
	args = append(args, targetColumn(a))

	_, err := r.db.ExecContext(ctx, query, args...)
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrActuatorExists, a.ID())
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: device %s, functionality %s", ErrDeviceNotFound, a.DeviceID(), a.FunctionalityID())
	default:
		return fmt.Errorf("inserting actuator %s: %w", a.ID(), err)
	}
}

// Get loads an actuator by id.
func (r *SQLiteRepository) Get(ctx context.Context, id vo.ActuatorID) (Actuator, error) {
	a, err := scanActuator(r.db.QueryRowContext(ctx, selectActuator+` WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActuatorNotFound
	}
	return a, err
}

// UpdateTarget stores the current target of a.
func (r *SQLiteRepository) UpdateTarget(ctx context.Context, a Actuator) error {
	const query = `UPDATE actuators SET target = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, targetColumn(a), a.ID().String())
	if err != nil {
		return fmt.Errorf("updating actuator %s: %w", a.ID(), err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrActuatorNotFound
	}
	return nil
}

// List returns every actuator.
func (r *SQLiteRepository) List(ctx context.Context) ([]Actuator, error) {
	return r.query(ctx, selectActuator+` ORDER BY device_id, id`)
}

// ListByDevice returns the actuators of one device.
func (r *SQLiteRepository) ListByDevice(ctx context.Context, deviceID vo.DeviceID) ([]Actuator, error) {
	return r.query(ctx, selectActuator+` WHERE device_id = ? ORDER BY id`, deviceID.String())
}

// ListByFunctionality returns the actuators of one functionality.
func (r *SQLiteRepository) ListByFunctionality(ctx context.Context, functionalityID vo.ActuatorFunctionalityID) ([]Actuator, error) {
	return r.query(ctx, selectActuator+` WHERE functionality_id = ? ORDER BY device_id, id`, functionalityID.String())
}

// ListByDeviceAndFunctionality returns the actuators of one functionality
// on one device.
func (r *SQLiteRepository) ListByDeviceAndFunctionality(ctx context.Context, deviceID vo.DeviceID, functionalityID vo.ActuatorFunctionalityID) ([]Actuator, error) {
	return r.query(ctx, selectActuator+` WHERE device_id = ? AND functionality_id = ? ORDER BY id`,
		deviceID.String(), functionalityID.String())
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]Actuator, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying actuators: %w", err)
	}
	defer rows.Close()

	var actuators []Actuator
	for rows.Next() {
		a, err := scanActuator(rows)
		if err != nil {
			return nil, err
		}
		actuators = append(actuators, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actuator rows: %w", err)
	}
	return actuators, nil
}

// propertyColumns flattens properties into the five nullable range columns.
func propertyColumns(p *vo.ActuatorProperties) []any {
	cols := []any{nil, nil, nil, nil, nil}
	if r, ok := p.IntRange(); ok {
		cols[0], cols[1] = r.Lower(), r.Upper()
	}
	if r, ok := p.DecimalRange(); ok {
		cols[2], cols[3], cols[4] = r.Lower(), r.Upper(), r.Precision()
	}
	return cols
}

func targetColumn(a Actuator) any {
	if t, ok := a.Target(); ok {
		return t
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActuator(s scanner) (Actuator, error) {
	var (
		rawID, rawDevice, rawFunc, rawKind string
		intLower, intUpper, decPrecision   sql.NullInt64
		decLower, decUpper, target         sql.NullFloat64
	)
	err := s.Scan(&rawID, &rawDevice, &rawFunc, &rawKind,
		&intLower, &intUpper, &decLower, &decUpper, &decPrecision, &target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning actuator: %w", err)
	}

	id, err := vo.NewActuatorID(rawID)
	if err != nil {
		return nil, err
	}
	deviceID, err := vo.NewDeviceID(rawDevice)
	if err != nil {
		return nil, err
	}
	functionalityID, err := vo.NewActuatorFunctionalityID(rawFunc)
	if err != nil {
		return nil, err
	}
	kind, err := ParseKind(rawKind)
	if err != nil {
		return nil, fmt.Errorf("restoring actuator %s: %w", rawID, err)
	}

	props, err := restoreProperties(intLower, intUpper, decLower, decUpper, decPrecision)
	if err != nil {
		return nil, fmt.Errorf("restoring actuator %s: %w", rawID, err)
	}

	a, err := New(kind, id, functionalityID, props, deviceID)
	if err != nil {
		return nil, fmt.Errorf("restoring actuator %s: %w", rawID, err)
	}
	if target.Valid && !restoreTarget(a, target.Float64) {
		return nil, fmt.Errorf("restoring actuator %s: stored target %v is malformed", rawID, target.Float64)
	}
	return a, nil
}

func restoreProperties(intLower, intUpper sql.NullInt64, decLower, decUpper sql.NullFloat64, decPrecision sql.NullInt64) (*vo.ActuatorProperties, error) {
	var (
		intRange *vo.RangeInt
		decRange *vo.RangeDecimal
		err      error
	)
	if intLower.Valid && intUpper.Valid {
		if intRange, err = vo.NewRangeInt(int(intLower.Int64), int(intUpper.Int64)); err != nil {
			return nil, err
		}
	}
	if decLower.Valid && decUpper.Valid {
		if decRange, err = vo.NewRangeDecimal(decLower.Float64, decUpper.Float64, int(decPrecision.Int64)); err != nil {
			return nil, err
		}
	}
	if intRange == nil && decRange == nil {
		return nil, nil
	}
	return vo.NewActuatorProperties(intRange, decRange)
}
