package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/smarthome-core/internal/auth"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("SMARTHOME_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_UnsupportedCountry verifies zip code settings are checked at start-up.
func TestRun_UnsupportedCountry(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SMARTHOME_CONFIG", writeConfig(t, fmt.Sprintf(`
house:
  id: house-1
database:
  path: %q
security:
  jwt:
    secret: "test-secret-for-development-only-0123456789"
zipcode:
  countries: ["Atlantis"]
`, filepath.Join(dir, "test.db"))))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil || !strings.Contains(err.Error(), "zipcode.countries") {
		t.Fatalf("run() error = %v, want zipcode.countries error", err)
	}
}

// TestRun_StartupAndShutdown starts the service with MQTT and InfluxDB
// disabled, waits for the health endpoint and shuts it down.
func TestRun_StartupAndShutdown(t *testing.T) {
	dir := t.TempDir()
	port := freePort(t)
	t.Setenv("SMARTHOME_CONFIG", writeConfig(t, fmt.Sprintf(`
house:
  id: house-1
  name: Test House
database:
  path: %q
  wal_mode: true
  busy_timeout: 5
api:
  host: "127.0.0.1"
  port: %d
logging:
  level: error
  format: text
  output: stderr
security:
  jwt:
    secret: "test-secret-for-development-only-0123456789"
energy:
  grid_meter_device_id: grid-meter
  cadence_seconds: 900
`, filepath.Join(dir, "test.db"), port)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	deadline := time.Now().Add(5 * time.Second)
	healthy := false
	for time.Now().Before(deadline) && !healthy {
		select {
		case err := <-done:
			t.Fatalf("run() exited early: %v", err)
		default:
		}
		resp, err := http.Get(url) //nolint:gosec,noctx // test URL
		if err == nil {
			healthy = resp.StatusCode == http.StatusOK
			resp.Body.Close()
		}
		if !healthy {
			time.Sleep(50 * time.Millisecond)
		}
	}
	if !healthy {
		t.Fatal("service did not become healthy")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}

// TestGetConfigPath_Default verifies the default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("SMARTHOME_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies the environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("SMARTHOME_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

func TestHashPassword(t *testing.T) {
	var out bytes.Buffer
	if err := hashPassword([]string{"correct horse"}, &out); err != nil {
		t.Fatalf("hashPassword() error = %v", err)
	}
	ok, err := auth.VerifyPassword("correct horse", strings.TrimSpace(out.String()))
	if err != nil || !ok {
		t.Errorf("VerifyPassword() = %v, %v; want true", ok, err)
	}

	for _, args := range [][]string{nil, {""}, {"a", "b"}} {
		if err := hashPassword(args, &out); !errors.Is(err, errUsage) {
			t.Errorf("hashPassword(%q) error = %v, want errUsage", args, err)
		}
	}
}
