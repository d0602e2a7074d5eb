package house

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

// Repository persists houses.
type Repository interface {
	Create(ctx context.Context, h *House) error
	Get(ctx context.Context, id vo.HouseID) (*House, error)
	Exists(ctx context.Context, id vo.HouseID) (bool, error)
	Update(ctx context.Context, h *House) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db   *sql.DB
	zips zipcode.Resolver
}

// NewSQLiteRepository creates a house repository. zips re-validates stored
// addresses when houses are loaded.
func NewSQLiteRepository(db *sql.DB, zips zipcode.Resolver) *SQLiteRepository {
	return &SQLiteRepository{db: db, zips: zips}
}

// Create inserts a new house.
func (r *SQLiteRepository) Create(ctx context.Context, h *House) error {
	cols := locationColumns(h.location)
	const query = `INSERT INTO houses (id, street, door_number, zip_code, city, country, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, append([]any{h.id.String()}, cols...)...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrHouseExists, h.id)
		}
		return fmt.Errorf("inserting house %s: %w", h.id, err)
	}
	return nil
}

// Get loads a house by id.
func (r *SQLiteRepository) Get(ctx context.Context, id vo.HouseID) (*House, error) {
	const query = `SELECT id, street, door_number, zip_code, city, country, latitude, longitude
		FROM houses WHERE id = ?`

	var (
		rawID                            string
		street, door, zip, city, country sql.NullString
		lat, lon                         sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, id.String()).
		Scan(&rawID, &street, &door, &zip, &city, &country, &lat, &lon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("scanning house: %w", err)
	}

	var loc *vo.Location
	if street.Valid && lat.Valid && lon.Valid {
		addr, err := vo.NewAddress(street.String, door.String, zip.String, city.String, country.String, r.zips)
		if err != nil {
			return nil, fmt.Errorf("restoring address of house %s: %w", rawID, err)
		}
		gps, err := vo.NewGPSCode(lat.Float64, lon.Float64)
		if err != nil {
			return nil, fmt.Errorf("restoring gps code of house %s: %w", rawID, err)
		}
		loc, _ = vo.NewLocation(addr, gps) //nolint:errcheck // both parts present
	}

	houseID, err := vo.NewHouseID(rawID)
	if err != nil {
		return nil, err
	}
	return New(houseID, loc)
}

// Exists reports whether a house with id is stored.
func (r *SQLiteRepository) Exists(ctx context.Context, id vo.HouseID) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM houses WHERE id = ?", id.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("counting houses: %w", err)
	}
	return n > 0, nil
}

// Update stores the current location of h.
func (r *SQLiteRepository) Update(ctx context.Context, h *House) error {
	cols := locationColumns(h.location)
	const query = `UPDATE houses SET street = ?, door_number = ?, zip_code = ?, city = ?, country = ?,
		latitude = ?, longitude = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, append(cols, h.id.String())...)
	if err != nil {
		return fmt.Errorf("updating house %s: %w", h.id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrHouseNotFound
	}
	return nil
}

// locationColumns flattens a location into the seven nullable columns.
func locationColumns(loc *vo.Location) []any {
	if loc == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil}
	}
	a, g := loc.Address(), loc.GPSCode()
	return []any{a.Street(), a.DoorNumber(), a.ZipCode(), a.City(), a.Country(), g.Latitude(), g.Longitude()}
}
