package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"turbine-monitor/monitor"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string
	var dbPath string
	var batchFile string
	var turbines int
	var tempThreshold float64
	var schedule string
	var smtpAddr string
	var metricsAddr string
	var debug bool
	var once bool

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&dbPath, "db", "monitor.db", "SQLite database path.")
	flag.StringVar(&batchFile, "batch-file", "", "Telemetry batch file consumed each cycle.")
	flag.IntVar(&turbines, "turbines", 10, "Number of turbines (entity ids 1..N).")
	flag.Float64Var(&tempThreshold, "temp-threshold", 24.0, "Temperature alert threshold in °C.")
	flag.StringVar(&schedule, "schedule", "*/3 * * * *", "Cron schedule for pipeline cycles.")
	flag.StringVar(&smtpAddr, "smtp-addr", "", "SMTP relay address (host:port).")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Prometheus /metrics listen address (empty disables).")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.BoolVar(&once, "once", false, "Run a single cycle and exit.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	fileCfg := &monitor.FileConfig{}
	if configPath != "" {
		cfg, err := monitor.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		fileCfg = cfg
	}
	fileCfg.ApplyDefaults()

	if visited["db"] {
		fileCfg.DB = dbPath
	}
	if visited["batch-file"] {
		fileCfg.BatchFile = batchFile
	}
	if visited["turbines"] {
		fileCfg.Turbines = turbines
	}
	if visited["temp-threshold"] {
		fileCfg.Thresholds.Temperature = tempThreshold
	}
	if visited["schedule"] {
		fileCfg.Schedule = schedule
	}
	if visited["smtp-addr"] {
		fileCfg.SMTP.Addr = smtpAddr
	}
	if visited["metrics-addr"] {
		fileCfg.MetricsAddr = metricsAddr
	}
	if visited["debug"] {
		fileCfg.Debug = debug
	}

	if fileCfg.BatchFile == "" {
		log.Fatal("missing batch file (use --batch-file or config batch_file)")
	}
	if fileCfg.SMTP.Addr == "" {
		log.Fatal("missing SMTP relay (use --smtp-addr or config smtp.addr)")
	}

	logger, err := monitor.NewLogger(fileCfg.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := monitor.OpenDB(fileCfg.DB)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	generator := monitor.NewStoreAlertGenerator(db, monitor.AlertThresholds{
		HighTemperature:  fileCfg.Thresholds.Temperature,
		PressureFloor:    fileCfg.Thresholds.PressureFloor,
		PowerFactorFloor: fileCfg.Thresholds.PowerFactorFloor,
	})
	persister := monitor.NewPersister(db, generator, logger)
	notifier := monitor.NewNotifier(monitor.NewSMTPClient(monitor.SMTPConfig{
		Addr:    fileCfg.SMTP.Addr,
		From:    fileCfg.SMTP.From,
		To:      fileCfg.SMTP.To,
		Timeout: time.Duration(fileCfg.SMTP.TimeoutSeconds) * time.Second,
	}), logger)

	runner, err := monitor.NewRunner(monitor.RunnerConfig{
		BatchFile:     fileCfg.BatchFile,
		TurbineCount:  fileCfg.Turbines,
		TempThreshold: fileCfg.Thresholds.Temperature,
	}, persister, notifier, logger)
	if err != nil {
		log.Fatalf("init runner: %v", err)
	}

	if once {
		if err := runner.RunOnce(); err != nil {
			log.Fatalf("run once: %v", err)
		}
		return
	}

	if fileCfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(fileCfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	c := cron.New()
	_, err = c.AddFunc(fileCfg.Schedule, func() {
		if err := runner.RunOnce(); err != nil {
			logger.Error("pipeline cycle failed", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatalf("set up cron job: %v", err)
	}
	logger.Info("pipeline scheduled",
		zap.String("schedule", fileCfg.Schedule),
		zap.String("batch_file", fileCfg.BatchFile),
		zap.Int("turbines", fileCfg.Turbines))
	c.Run()
}
