package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultCustomerID == "" || cfg.AuditCron != "0 3 * * *" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
port: "9000"
database:
  driver: sqlite
  dsn: test.db
availability_cache_ttl: 2m
default_customer_id: "7"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("BOOKING_LOCK_TTL", "3s")
	t.Setenv("SEED_DB", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected env to win, got port %s", cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.ConnectionString() != "test.db" {
		t.Fatalf("unexpected database config %+v", cfg.Database)
	}
	if cfg.AvailabilityCacheTTL != 2*time.Minute || cfg.BookingLockTTL != 3*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.AvailabilityCacheTTL, cfg.BookingLockTTL)
	}
	if cfg.DefaultCustomerID != "7" || !cfg.SeedDB {
		t.Fatalf("unexpected values %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RATE_LIMIT_BURST", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-numeric burst")
	}
}

func TestLoadMaxStayDays(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MAX_STAY_DAYS", "30")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxStayDays != 30 {
		t.Fatalf("expected 30, got %d", cfg.MaxStayDays)
	}

	t.Setenv("MAX_STAY_DAYS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a zero max stay")
	}
}

func TestConnectionStringFromFields(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", User: "u", Password: "p", Name: "airmetr", Port: "5432", SSLMode: "disable"}
	want := "host=db user=u password=p dbname=airmetr port=5432 sslmode=disable TimeZone=UTC"
	if got := d.ConnectionString(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConnectDBSQLite(t *testing.T) {
	db, err := ConnectDB(DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Dialector.Name() != "sqlite" {
		t.Fatalf("unexpected dialect %s", db.Dialector.Name())
	}
	if _, err := ConnectDB(DatabaseConfig{Driver: "oracle"}, "test"); err == nil {
		t.Fatal("expected unknown driver error")
	}
}
