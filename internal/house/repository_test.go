package house

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/database/dbtest"
	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
	"github.com/nerrad567/smarthome-core/internal/zipcode"
)

func TestSQLiteRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewSQLiteRepository(db.DB, zipcode.Default())
	ctx := context.Background()

	id, _ := vo.NewHouseID("house-1")
	h := CreateWithID(id, nil)

	if err := repo.Create(ctx, h); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, h); !errors.Is(err, ErrHouseExists) {
		t.Errorf("duplicate Create() error = %v, want ErrHouseExists", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.IsSameAs(h) || got.Location() != nil {
		t.Errorf("Get() = %v with location %v", got.ID(), got.Location())
	}

	h.EditLocation(testAddress(t), testGPS(t))
	if err := repo.Update(ctx, h); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err = repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() after update error = %v", err)
	}
	if !got.Location().Equal(h.Location()) {
		t.Errorf("stored location = %v, want %v", got.Location().Address(), h.Location().Address())
	}

	ok, err := repo.Exists(ctx, id)
	if err != nil || !ok {
		t.Errorf("Exists() = %v, %v", ok, err)
	}

	missing, _ := vo.NewHouseID("nope")
	if _, err := repo.Get(ctx, missing); !errors.Is(err, ErrHouseNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrHouseNotFound", err)
	}
	if err := repo.Update(ctx, CreateWithID(missing, nil)); !errors.Is(err, ErrHouseNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrHouseNotFound", err)
	}
}
