package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"turbine-monitor/monitor"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var batchFile string
	var turbines int
	var interval time.Duration
	var seed int64

	flag.StringVar(&batchFile, "batch-file", "", "Batch file to overwrite each interval.")
	flag.IntVar(&turbines, "turbines", 10, "Number of turbines.")
	flag.DurationVar(&interval, "interval", 5*time.Second, "Write interval.")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 means time-based).")
	flag.Parse()

	if batchFile == "" {
		log.Fatal("missing --batch-file")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	log.Printf("writing batches: file=%s turbines=%d interval=%s", batchFile, turbines, interval)

	// Two cool phases, then one that may breach the alert threshold.
	phase := 0
	for {
		records := monitor.GenerateBatch(turbines, phase, rng)
		if err := monitor.WriteBatch(batchFile, records); err != nil {
			log.Printf("write batch: %v", err)
		}
		phase = (phase + 1) % 3
		time.Sleep(interval)
	}
}
