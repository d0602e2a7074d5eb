package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// Repository persists rooms.
type Repository interface {
	Create(ctx context.Context, r *Room) error
	Get(ctx context.Context, id vo.RoomID) (*Room, error)
	Exists(ctx context.Context, id vo.RoomID) (bool, error)
	Update(ctx context.Context, r *Room) error
	List(ctx context.Context) ([]*Room, error)
	ListByHouse(ctx context.Context, houseID vo.HouseID) ([]*Room, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed room repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectRoom = `SELECT id, house_id, floor, length, width, height FROM rooms`

// Create inserts a new room.
func (r *SQLiteRepository) Create(ctx context.Context, rm *Room) error {
	const query = `INSERT INTO rooms (id, house_id, floor, length, width, height)
		VALUES (?, ?, ?, ?, ?, ?)`
	d := rm.dimensions
	_, err := r.db.ExecContext(ctx, query,
		rm.id.String(), rm.houseID.String(), rm.floor.Floor(), d.Length(), d.Width(), d.Height())
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrRoomExists, rm.id)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", ErrHouseNotFound, rm.houseID)
	default:
		return fmt.Errorf("inserting room %s: %w", rm.id, err)
	}
}

// Get loads a room by id.
func (r *SQLiteRepository) Get(ctx context.Context, id vo.RoomID) (*Room, error) {
	row := r.db.QueryRowContext(ctx, selectRoom+` WHERE id = ?`, id.String())
	rm, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

// Exists reports whether a room with id is stored.
func (r *SQLiteRepository) Exists(ctx context.Context, id vo.RoomID) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms WHERE id = ?", id.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("counting rooms: %w", err)
	}
	return n > 0, nil
}

// Update stores the floor and dimensions of rm.
func (r *SQLiteRepository) Update(ctx context.Context, rm *Room) error {
	const query = `UPDATE rooms SET floor = ?, length = ?, width = ?, height = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	d := rm.dimensions
	result, err := r.db.ExecContext(ctx, query, rm.floor.Floor(), d.Length(), d.Width(), d.Height(), rm.id.String())
	if err != nil {
		return fmt.Errorf("updating room %s: %w", rm.id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// List returns every room ordered by floor then id.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Room, error) {
	return r.query(ctx, selectRoom+` ORDER BY floor, id`)
}

// ListByHouse returns the rooms of one house.
func (r *SQLiteRepository) ListByHouse(ctx context.Context, houseID vo.HouseID) ([]*Room, error) {
	return r.query(ctx, selectRoom+` WHERE house_id = ? ORDER BY floor, id`, houseID.String())
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}
	return rooms, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoom(s scanner) (*Room, error) {
	var (
		rawID, rawHouse       string
		floor                 int
		length, width, height float64
	)
	if err := s.Scan(&rawID, &rawHouse, &floor, &length, &width, &height); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning room: %w", err)
	}

	id, err := vo.NewRoomID(rawID)
	if err != nil {
		return nil, err
	}
	houseID, err := vo.NewHouseID(rawHouse)
	if err != nil {
		return nil, err
	}
	dims, err := vo.NewRoomDimensions(length, width, height)
	if err != nil {
		return nil, fmt.Errorf("restoring room %s: %w", rawID, err)
	}
	return New(id, vo.NewRoomFloor(floor), dims, houseID)
}
