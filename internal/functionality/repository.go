package functionality

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	"github.com/nerrad567/smarthome-core/internal/value"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Repository reads and extends the functionality catalogue.
type Repository interface {
	GetSensor(ctx context.Context, id vo.SensorFunctionalityID) (*SensorFunctionality, error)
	ListSensor(ctx context.Context) ([]*SensorFunctionality, error)
	CreateSensor(ctx context.Context, f *SensorFunctionality) error
	GetActuator(ctx context.Context, id vo.ActuatorFunctionalityID) (*ActuatorFunctionality, error)
	ListActuator(ctx context.Context) ([]*ActuatorFunctionality, error)
	CreateActuator(ctx context.Context, f *ActuatorFunctionality) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed catalogue.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetSensor loads one sensor functionality.
func (r *SQLiteRepository) GetSensor(ctx context.Context, id vo.SensorFunctionalityID) (*SensorFunctionality, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, value_kind, description FROM sensor_functionalities WHERE id = ?`, id.String())
	f, err := scanSensor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrFunctionalityNotFound, id)
	}
	return f, err
}

// ListSensor returns every sensor functionality ordered by id.
func (r *SQLiteRepository) ListSensor(ctx context.Context) ([]*SensorFunctionality, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, value_kind, description FROM sensor_functionalities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying sensor functionalities: %w", err)
	}
	defer rows.Close()

	var out []*SensorFunctionality
	for rows.Next() {
		f, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sensor functionalities: %w", err)
	}
	return out, nil
}

// CreateSensor adds a sensor functionality to the catalogue.
func (r *SQLiteRepository) CreateSensor(ctx context.Context, f *SensorFunctionality) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensor_functionalities (id, value_kind, description) VALUES (?, ?, ?)`,
		f.id.String(), string(f.valueKind), f.description)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrFunctionalityExists, f.id)
		}
		return fmt.Errorf("inserting sensor functionality %s: %w", f.id, err)
	}
	return nil
}

// GetActuator loads one actuator functionality.
func (r *SQLiteRepository) GetActuator(ctx context.Context, id vo.ActuatorFunctionalityID) (*ActuatorFunctionality, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, actuator_kind, description FROM actuator_functionalities WHERE id = ?`, id.String())
	f, err := scanActuator(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrFunctionalityNotFound, id)
	}
	return f, err
}

// ListActuator returns every actuator functionality ordered by id.
func (r *SQLiteRepository) ListActuator(ctx context.Context) ([]*ActuatorFunctionality, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, actuator_kind, description FROM actuator_functionalities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying actuator functionalities: %w", err)
	}
	defer rows.Close()

	var out []*ActuatorFunctionality
	for rows.Next() {
		f, err := scanActuator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actuator functionalities: %w", err)
	}
	return out, nil
}

// CreateActuator adds an actuator functionality to the catalogue.
func (r *SQLiteRepository) CreateActuator(ctx context.Context, f *ActuatorFunctionality) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO actuator_functionalities (id, actuator_kind, description) VALUES (?, ?, ?)`,
		f.id.String(), string(f.actuatorKind), f.description)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrFunctionalityExists, f.id)
		}
		return fmt.Errorf("inserting actuator functionality %s: %w", f.id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSensor(s scanner) (*SensorFunctionality, error) {
	var rawID, rawKind, description string
	if err := s.Scan(&rawID, &rawKind, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sensor functionality: %w", err)
	}
	id, err := vo.NewSensorFunctionalityID(rawID)
	if err != nil {
		return nil, err
	}
	kind, err := value.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	return NewSensorFunctionality(id, kind, description)
}

func scanActuator(s scanner) (*ActuatorFunctionality, error) {
	var rawID, rawKind, description string
	if err := s.Scan(&rawID, &rawKind, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning actuator functionality: %w", err)
	}
	id, err := vo.NewActuatorFunctionalityID(rawID)
	if err != nil {
		return nil, err
	}
	kind, err := actuator.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	return NewActuatorFunctionality(id, kind, description)
}
