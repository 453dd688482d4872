package monitor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db: /var/lib/monitor/monitor.db
batch_file: /data/telemetry.json
turbines: 8
schedule: "*/5 * * * *"
thresholds:
  temperature: 25.5
smtp:
  addr: mail.internal:25
  from: monitor@example.com
  to:
    - ops@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.ApplyDefaults()

	if cfg.BatchFile != "/data/telemetry.json" || cfg.Turbines != 8 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Thresholds.Temperature != 25.5 {
		t.Fatalf("expected explicit threshold kept, got %v", cfg.Thresholds.Temperature)
	}
	if cfg.Thresholds.PressureFloor != 71.0 || cfg.Thresholds.PowerFactorFloor != 0.72 {
		t.Fatalf("expected threshold defaults applied, got %+v", cfg.Thresholds)
	}
	if cfg.SMTP.Addr != "mail.internal:25" || len(cfg.SMTP.To) != 1 {
		t.Fatalf("unexpected smtp config: %+v", cfg.SMTP)
	}
	if cfg.SMTP.TimeoutSeconds != 10 {
		t.Fatalf("expected smtp timeout default, got %d", cfg.SMTP.TimeoutSeconds)
	}
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &FileConfig{}
	cfg.ApplyDefaults()
	if cfg.Turbines != 10 || cfg.Schedule != "*/3 * * * *" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Thresholds.Temperature != 24.0 {
		t.Fatalf("expected default threshold 24.0, got %v", cfg.Thresholds.Temperature)
	}
}
