package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Web.Port != DefaultAppConfig.Web.Port {
		t.Fatalf("port = %d, want default %d", cfg.Web.Port, DefaultAppConfig.Web.Port)
	}
	if cfg.StorePath() != "data/inventory.db" {
		t.Fatalf("store path = %q", cfg.StorePath())
	}
}

func TestLoadConfigFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "inventario.yml")
	body := "system:\n  workdir: /tmp/inv\nweb:\n  port: 9001\nlogger:\n  mode: production\n"
	if err := os.WriteFile(cfile, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(cfile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.System.Workdir != "/tmp/inv" || cfg.Web.Port != 9001 || cfg.Logger.Mode != "production" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Unset sections keep defaults.
	if cfg.Web.Host != DefaultAppConfig.Web.Host {
		t.Fatalf("host = %q, want default", cfg.Web.Host)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("INVENTARIO_WEB_PORT", "9100")
	t.Setenv("INVENTARIO_DEBUG", "true")
	t.Setenv("INVENTARIO_DB_PATH", "/var/lib/inv/store.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Web.Port != 9100 {
		t.Fatalf("env port not applied: %d", cfg.Web.Port)
	}
	if !cfg.System.Debug {
		t.Fatal("env debug not applied")
	}
	if cfg.StorePath() != "/var/lib/inv/store.db" {
		t.Fatalf("absolute db path not honored: %q", cfg.StorePath())
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(cfile, []byte("system: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(cfile); err == nil {
		t.Fatal("expected parse error")
	}
}
