package startup

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version == "" {
		t.Error("Version is empty")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion is empty")
	}
	if info.OS == "" || info.Arch == "" {
		t.Errorf("OS/Arch = %q/%q", info.OS, info.Arch)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_DIR", dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want 9090", cfg.MetricsPort)
	}
	if cfg.DatabasePath != filepath.Join(dir, "catalog.db") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ScanWorkers < 1 {
		t.Errorf("ScanWorkers = %d, want >= 1", cfg.ScanWorkers)
	}
	if cfg.QueueBuffer != 1024 {
		t.Errorf("QueueBuffer = %d, want 1024", cfg.QueueBuffer)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_DIR", t.TempDir())
	t.Setenv("PORT", "9999")
	t.Setenv("SCAN_WORKERS", "3")
	t.Setenv("QUEUE_BUFFER", "16")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.ScanWorkers != 3 {
		t.Errorf("ScanWorkers = %d, want 3", cfg.ScanWorkers)
	}
	if cfg.QueueBuffer != 16 {
		t.Errorf("QueueBuffer = %d, want 16", cfg.QueueBuffer)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Setenv("DATABASE_DIR", t.TempDir())
	t.Setenv("SCAN_WORKERS", "banana")
	t.Setenv("QUEUE_BUFFER", "-5")
	t.Setenv("METRICS_ENABLED", "definitely")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ScanWorkers < 1 {
		t.Errorf("ScanWorkers = %d after invalid input, want >= 1", cfg.ScanWorkers)
	}
	if cfg.QueueBuffer != 1024 {
		t.Errorf("QueueBuffer = %d after invalid input, want 1024", cfg.QueueBuffer)
	}
	if !cfg.MetricsEnabled {
		t.Error("invalid METRICS_ENABLED should fall back to default true")
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/libraries", "api/libraries"},
		{"/api/libraries/{id}/refresh", "api/libraries"},
		{"/health", "health"},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := getRouteGroup(tt.path); got != tt.want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/libraries", func(http.ResponseWriter, *http.Request) {}).Methods("POST")
	router.HandleFunc("/health", func(http.ResponseWriter, *http.Request) {}).Methods("GET")

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(routes))
	}
	found := false
	for _, r := range routes {
		if r.Method == "POST" && r.Path == "/api/libraries" {
			found = true
		}
	}
	if !found {
		t.Errorf("POST /api/libraries not found in %v", routes)
	}
}
