package monitor

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ThresholdsConfig struct {
	Temperature      float64 `yaml:"temperature"`
	PressureFloor    float64 `yaml:"pressure_floor"`
	PowerFactorFloor float64 `yaml:"power_factor_floor"`
}

type SMTPFileConfig struct {
	Addr           string   `yaml:"addr"`
	From           string   `yaml:"from"`
	To             []string `yaml:"to"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

type FileConfig struct {
	DB        string `yaml:"db"`
	BatchFile string `yaml:"batch_file"`
	Turbines  int    `yaml:"turbines"`

	// Schedule is a cron expression for pipeline cycles.
	Schedule string `yaml:"schedule"`
	Debug    bool   `yaml:"debug"`

	Thresholds ThresholdsConfig `yaml:"thresholds"`
	SMTP       SMTPFileConfig   `yaml:"smtp"`

	// MetricsAddr exposes /metrics on the pipeline binary when set.
	MetricsAddr string `yaml:"metrics_addr"`
	// ConsoleAddr is the operator console listen address.
	ConsoleAddr string `yaml:"console_addr"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields with the deployment defaults.
func (c *FileConfig) ApplyDefaults() {
	if c.DB == "" {
		c.DB = "monitor.db"
	}
	if c.Turbines == 0 {
		c.Turbines = 10
	}
	if c.Schedule == "" {
		c.Schedule = "*/3 * * * *"
	}
	if c.Thresholds.Temperature == 0 {
		c.Thresholds.Temperature = 24.0
	}
	if c.Thresholds.PressureFloor == 0 {
		c.Thresholds.PressureFloor = 71.0
	}
	if c.Thresholds.PowerFactorFloor == 0 {
		c.Thresholds.PowerFactorFloor = 0.72
	}
	if c.SMTP.TimeoutSeconds == 0 {
		c.SMTP.TimeoutSeconds = 10
	}
	if c.ConsoleAddr == "" {
		c.ConsoleAddr = ":8090"
	}
}
