package influxdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/smarthome-core/internal/infrastructure/config"
)

// fakeInflux serves the health and write endpoints of InfluxDB v2 and
// collects the line protocol it receives.
type fakeInflux struct {
	healthy bool
	mu      sync.Mutex
	lines   strings.Builder
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ping", "/health":
		if !f.healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case "/api/v2/write":
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lines.Write(body)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeInflux) received() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lines.String()
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           url,
		Token:         "smarthome-test-token",
		Org:           "smarthome",
		Bucket:        "readings",
		BatchSize:     10,
		FlushInterval: 1,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false

	client, err := Connect(context.Background(), cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("Connect() error = %v, want ErrDisabled", err)
	}
	if client != nil {
		t.Error("expected nil client when disabled")
	}
}

func TestConnect_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(&fakeInflux{healthy: false})
	defer srv.Close()

	_, err := Connect(context.Background(), testConfig(srv.URL))
	if !errors.Is(err, ErrConnectionFailed) {
		t.Fatalf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestBatchSettings(t *testing.T) {
	tests := []struct {
		name      string
		batch     int
		flush     int
		wantBatch int
		wantFlush int
	}{
		{"configured", 50, 2, 50, 2},
		{"zero", 0, 0, 100, 10},
		{"negative", -1, -5, 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, f := batchSettings(config.InfluxDBConfig{BatchSize: tt.batch, FlushInterval: tt.flush})
			if b != tt.wantBatch || f != tt.wantFlush {
				t.Errorf("batchSettings() = (%d, %d), want (%d, %d)", b, f, tt.wantBatch, tt.wantFlush)
			}
		})
	}
}

func TestNewReadingPoint(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reading Reading
		want    []string
		absent  []string
	}{
		{
			name: "instant",
			reading: Reading{
				SensorID: "temp-1", DeviceID: "thermo-1", FunctionalityID: "Temperature",
				Kind: "instant", Unit: "C", Measurement: "21.5", At: at,
			},
			want:   []string{"sensor_reading,", "sensor_id=temp-1", "device_id=thermo-1", "functionality=Temperature", "unit=C", "value=21.5"},
			absent: []string{"duration_seconds", "latitude"},
		},
		{
			name: "period",
			reading: Reading{
				SensorID: "meter-1", Kind: "period", Unit: "W", Measurement: "1200",
				Start: at.Add(-15 * time.Minute), At: at,
			},
			want:   []string{"kind=period", "duration_seconds=900", "value=1200"},
			absent: []string{"device_id="},
		},
		{
			name: "located instant",
			reading: Reading{
				SensorID: "sun-1", Kind: "instant_location", Measurement: "06:58", At: at,
				Latitude: 44.4, Longitude: 26.1, HasLocation: true,
			},
			want:   []string{`raw="06:58"`, "latitude=44.4", "longitude=26.1"},
			absent: []string{"value="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := write.PointToLineProtocol(newReadingPoint(tt.reading), time.Second)
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("line %q missing %q", line, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(line, a) {
					t.Errorf("line %q should not contain %q", line, a)
				}
			}
		})
	}
}

func TestWriteReading_Disconnected(t *testing.T) {
	var c *Client
	c.WriteReading(Reading{SensorID: "temp-1", At: time.Now()})
	c.Flush()
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client = %v", err)
	}
	if c.IsConnected() {
		t.Error("nil client reports connected")
	}
}

func TestWriteReading_Flushes(t *testing.T) {
	fake := &fakeInflux{healthy: true}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client, err := Connect(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	at := time.Now().UTC()
	client.WriteReading(Reading{SensorID: "temp-1", Kind: "instant", Measurement: "19.5", At: at})
	client.WriteActuatorTarget("blind-1", "dev-1", "blind_setter", 40, at)
	client.Flush()

	deadline := time.Now().Add(3 * time.Second)
	var got string
	for time.Now().Before(deadline) {
		got = fake.received()
		if strings.Contains(got, "sensor_reading,") && strings.Contains(got, "actuator_target,") {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !strings.Contains(got, "sensor_reading,") || !strings.Contains(got, "actuator_target,") {
		t.Errorf("server received %q", got)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() after Close = %v, want ErrNotConnected", err)
	}
}
