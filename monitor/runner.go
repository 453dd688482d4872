package monitor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

type RunnerConfig struct {
	BatchFile     string
	TurbineCount  int
	TempThreshold float64
}

// Runner drives one pipeline cycle: consume the batch file, then persist
// and evaluate/notify concurrently over the staging area. Cycles serialize
// naturally because each one deletes the batch file it consumed.
type Runner struct {
	cfg       RunnerConfig
	persister *Persister
	notifier  *Notifier
	log       *zap.Logger
}

func NewRunner(cfg RunnerConfig, persister *Persister, notifier *Notifier, log *zap.Logger) (*Runner, error) {
	if cfg.BatchFile == "" {
		return nil, fmt.Errorf("BatchFile is required")
	}
	if cfg.TurbineCount <= 0 {
		return nil, fmt.Errorf("TurbineCount must be positive")
	}
	return &Runner{cfg: cfg, persister: persister, notifier: notifier, log: log}, nil
}

// RunOnce executes a single cycle. A missing batch file is a clean no-op:
// the producer has not written the next batch yet. Ingest and persist
// failures are returned to the scheduler; alert-generation and notification
// failures are reported but do not fail the cycle, since the readings are
// already durable by then.
func (r *Runner) RunOnce() error {
	start := time.Now()

	if _, err := os.Stat(r.cfg.BatchFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Debug("no batch file, skipping cycle", zap.String("path", r.cfg.BatchFile))
			return nil
		}
		return err
	}

	staging, err := Ingest(r.cfg.BatchFile)
	if err != nil {
		cyclesTotal.WithLabelValues("ingest_error").Inc()
		return fmt.Errorf("ingest: %w", err)
	}

	// Staging is immutable from here on; both branches only read it.
	var (
		wg         sync.WaitGroup
		persistRes PersistResult
		persistErr error
		decision   Decision
		notifyErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		persistRes, persistErr = r.persister.Persist(staging, r.cfg.TurbineCount)
	}()
	go func() {
		defer wg.Done()
		breaching := Evaluate(staging, r.cfg.TurbineCount, r.cfg.TempThreshold)
		decision = Decide(breaching)
		notifyErr = r.notifier.Notify(decision)
	}()
	wg.Wait()

	breachesDetected.Add(float64(len(decision.Breaching)))
	cycleDuration.Observe(time.Since(start).Seconds())

	if notifyErr != nil {
		// Best-effort: the committed readings stand regardless.
		r.log.Error("notification failed", zap.Error(notifyErr))
	}

	if persistErr != nil {
		if errors.Is(persistErr, ErrAlertGeneration) {
			// Readings committed; only the follow-on routine failed.
			cyclesTotal.WithLabelValues("alert_generation_error").Inc()
			r.log.Error("alert generation failed", zap.Error(persistErr), zap.Int("rows", persistRes.Inserted))
			return nil
		}
		cyclesTotal.WithLabelValues("persist_error").Inc()
		// The batch file is already gone: this cycle's readings are lost.
		r.log.Error("batch consumed but not persisted, cycle lost", zap.Error(persistErr))
		return fmt.Errorf("persist: %w", persistErr)
	}

	cyclesTotal.WithLabelValues("ok").Inc()
	r.log.Info("cycle complete",
		zap.Int("staged", staging.Len()),
		zap.Int("inserted", persistRes.Inserted),
		zap.Ints("skipped", persistRes.Skipped),
		zap.Int("alerts_generated", persistRes.Alerts),
		zap.String("path", decision.Path.String()),
		zap.Ints("breaching", decision.Breaching),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
