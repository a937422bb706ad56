package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRIPCOST_FX_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inputs != model.DefaultInputs() {
		t.Fatalf("Inputs = %+v, want defaults", cfg.Inputs)
	}
	if cfg.Cache.Backend != CacheSQLite {
		t.Fatalf("Cache.Backend = %q, want sqlite", cfg.Cache.Backend)
	}
	if Exists() {
		t.Fatal("Exists() = true with no file written")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Inputs.NumPeople = 2
	cfg.Inputs.EmergencyPercent = 15
	cfg.General.Countries = []string{"Japan", "Thailand"}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Inputs.NumPeople != 2 || got.Inputs.EmergencyPercent != 15 {
		t.Fatalf("Inputs = %+v", got.Inputs)
	}
	countries, err := got.StartCountries()
	if err != nil {
		t.Fatalf("StartCountries: %v", err)
	}
	if len(countries) != 2 || countries[0] != model.Japan || countries[1] != model.Thailand {
		t.Fatalf("StartCountries = %v", countries)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "tripcost"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[inputs]\nbaseline_per_person_usd = 1500.0\n"
	if err := os.WriteFile(filepath.Join(dir, "tripcost", "config.toml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inputs.BaselinePerPersonUSD != 1500 {
		t.Fatalf("baseline = %v, want 1500", cfg.Inputs.BaselinePerPersonUSD)
	}
	if cfg.Inputs.ExtrasPerPersonUSD != 700 {
		t.Fatalf("extras = %v, want default 700", cfg.Inputs.ExtrasPerPersonUSD)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRIPCOST_FX_URL", "http://fx.local")
	t.Setenv("TRIPCOST_REDIS_ADDR", "redis.local:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sources.FXURL != "http://fx.local" {
		t.Fatalf("FXURL = %q", cfg.Sources.FXURL)
	}
	if cfg.Cache.RedisAddr != "redis.local:6379" {
		t.Fatalf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
}

func TestStartCountries_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Countries = []string{"Italy", "Narnia"}
	if _, err := cfg.StartCountries(); err == nil {
		t.Fatal("StartCountries accepted an unknown country")
	}
}

func TestDurations(t *testing.T) {
	cfg := Config{}
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("Timeout() = %s, want 10s", cfg.Timeout())
	}
	if cfg.CacheTTL() != 12*time.Hour {
		t.Fatalf("CacheTTL() = %s, want 12h", cfg.CacheTTL())
	}
	cfg.Cache.TTLHours = 1
	if cfg.CacheTTL() != time.Hour {
		t.Fatalf("CacheTTL() = %s, want 1h", cfg.CacheTTL())
	}
}
