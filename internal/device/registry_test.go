package device

import (
	"context"
	"errors"
	"sync"
	"testing"

	vo "github.com/nerrad567/smarthome-core/internal/valueobject"
)

// MockRepository is a test implementation of Repository.
type MockRepository struct {
	mu        sync.Mutex
	devices   map[vo.DeviceID]*Device
	lists     int
	createErr error
	updateErr error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{devices: make(map[vo.DeviceID]*Device)}
}

func (m *MockRepository) Get(_ context.Context, id vo.DeviceID) (*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.devices[id]; ok {
		return d.clone(), nil
	}
	return nil, ErrDeviceNotFound
}

func (m *MockRepository) Exists(_ context.Context, id vo.DeviceID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.devices[id]
	return ok, nil
}

func (m *MockRepository) List(_ context.Context) ([]*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	devices := make([]*Device, 0, len(m.devices))
	for _, d := range m.devices {
		devices = append(devices, d.clone())
	}
	return devices, nil
}

func (m *MockRepository) ListByRoom(_ context.Context, roomID vo.RoomID) ([]*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var devices []*Device
	for _, d := range m.devices {
		if d.roomID == roomID {
			devices = append(devices, d.clone())
		}
	}
	return devices, nil
}

func (m *MockRepository) Create(_ context.Context, d *Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.devices[d.id]; ok {
		return ErrDeviceExists
	}
	m.devices[d.id] = d.clone()
	return nil
}

func (m *MockRepository) Update(_ context.Context, d *Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.devices[d.id]; !ok {
		return ErrDeviceNotFound
	}
	m.devices[d.id] = d.clone()
	return nil
}

func TestRegistry_CreateAndGet(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo)
	ctx := context.Background()

	d := Create(mustModel(t, "Sonoff"), mustRoom(t, "room-1"))
	if err := reg.CreateDevice(ctx, d); err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}
	if reg.GetDeviceCount() != 1 {
		t.Errorf("GetDeviceCount() = %d, want 1", reg.GetDeviceCount())
	}

	got, err := reg.GetDevice(ctx, d.ID())
	if err != nil {
		t.Fatalf("GetDevice() error = %v", err)
	}
	got.Deactivate()

	again, _ := reg.GetDevice(ctx, d.ID())
	if !again.IsActive() {
		t.Error("mutating a returned device changed the cache")
	}

	missing, _ := vo.NewDeviceID("missing")
	if _, err := reg.GetDevice(ctx, missing); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("GetDevice(missing) error = %v, want ErrDeviceNotFound", err)
	}
}

func TestRegistry_CreateError(t *testing.T) {
	repo := NewMockRepository()
	repo.createErr = ErrRoomNotFound
	reg := NewRegistry(repo)

	d := Create(mustModel(t, "Sonoff"), mustRoom(t, "room-1"))
	if err := reg.CreateDevice(context.Background(), d); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("CreateDevice() error = %v, want ErrRoomNotFound", err)
	}
	if reg.GetDeviceCount() != 0 {
		t.Error("failed create should not populate the cache")
	}
}

func TestRegistry_DeactivateDevice(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo)
	ctx := context.Background()

	d := Create(mustModel(t, "Sonoff"), mustRoom(t, "room-1"))
	if err := reg.CreateDevice(ctx, d); err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}

	changed, err := reg.DeactivateDevice(ctx, d.ID())
	if err != nil || !changed {
		t.Fatalf("DeactivateDevice() = %v, %v, want true", changed, err)
	}
	changed, err = reg.DeactivateDevice(ctx, d.ID())
	if err != nil || changed {
		t.Errorf("second DeactivateDevice() = %v, %v, want false", changed, err)
	}

	stored, _ := repo.Get(ctx, d.ID())
	if stored.IsActive() {
		t.Error("deactivation was not persisted")
	}
	if got := reg.GetStats().ByStatus[vo.StatusDeactivated]; got != 1 {
		t.Errorf("ByStatus[DEACTIVATED] = %d, want 1", got)
	}
}

func TestRegistry_DeactivateDeviceRace(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo)
	ctx := context.Background()

	d := Create(mustModel(t, "Sonoff"), mustRoom(t, "room-1"))
	if err := reg.CreateDevice(ctx, d); err != nil {
		t.Fatal(err)
	}

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := reg.DeactivateDevice(ctx, d.ID())
			if err != nil {
				t.Errorf("DeactivateDevice() error = %v", err)
				return
			}
			if ok {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	if changed != 1 {
		t.Errorf("%d of %d concurrent deactivations reported a change, want 1", changed, callers)
	}
}

func TestRegistry_RefreshCacheAndFilter(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()
	for _, room := range []string{"room-1", "room-1", "room-2"} {
		if err := repo.Create(ctx, Create(mustModel(t, "Sonoff"), mustRoom(t, room))); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	reg := NewRegistry(repo)

	// Before the cache is loaded lists go to the repository.
	all, err := reg.ListDevices(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListDevices() = %d, %v", len(all), err)
	}

	if err := reg.RefreshCache(ctx); err != nil {
		t.Fatalf("RefreshCache() error = %v", err)
	}
	listsAfterRefresh := repo.lists

	inRoom, err := reg.GetDevicesByRoom(ctx, mustRoom(t, "room-1"))
	if err != nil || len(inRoom) != 2 {
		t.Errorf("GetDevicesByRoom() = %d, %v, want 2", len(inRoom), err)
	}
	for i := 1; i < len(inRoom); i++ {
		if inRoom[i-1].ID().String() > inRoom[i].ID().String() {
			t.Error("devices should be sorted by id")
		}
	}
	if _, err := reg.ListDevices(ctx); err != nil {
		t.Fatal(err)
	}
	if repo.lists != listsAfterRefresh {
		t.Error("cached registry should not hit the repository")
	}

	stats := reg.GetStats()
	if stats.TotalDevices != 3 || stats.ByRoom[mustRoom(t, "room-2")] != 1 {
		t.Errorf("GetStats() = %+v", stats)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo)
	ctx := context.Background()

	model, room := mustModel(t, "Sonoff"), mustRoom(t, "room-1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := Create(model, room)
			if err := reg.CreateDevice(ctx, d); err != nil {
				t.Errorf("CreateDevice() error = %v", err)
				return
			}
			if _, err := reg.DeactivateDevice(ctx, d.ID()); err != nil {
				t.Errorf("DeactivateDevice() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if reg.GetDeviceCount() != 20 {
		t.Errorf("GetDeviceCount() = %d, want 20", reg.GetDeviceCount())
	}
}
