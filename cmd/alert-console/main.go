package main

import (
	"flag"
	"log"
	"net/http"

	"turbine-monitor/monitor"

	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string
	var dbPath string
	var addr string
	var debug bool

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&dbPath, "db", "monitor.db", "SQLite database path.")
	flag.StringVar(&addr, "addr", ":8090", "Console listen address.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
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
	if visited["addr"] {
		fileCfg.ConsoleAddr = addr
	}
	if visited["debug"] {
		fileCfg.Debug = debug
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

	handler := monitor.NewConsoleHandler(monitor.NewAlertBook(db, logger), logger)
	logger.Info("alert console listening", zap.String("addr", fileCfg.ConsoleAddr))
	if err := http.ListenAndServe(fileCfg.ConsoleAddr, handler.Routes()); err != nil {
		log.Fatalf("console server: %v", err)
	}
}
