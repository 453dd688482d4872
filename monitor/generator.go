package monitor

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// BatchRecord is the wire form the producer writes; every value is
// stringified, matching what the ingestor expects.
type BatchRecord struct {
	TurbineID         string `json:"turbine_id"`
	PowerFactor       string `json:"powerfactor"`
	HydraulicPressure string `json:"hydraulicpressure"`
	Temperature       string `json:"temperature"`
	Timestamp         string `json:"timestamp"`
}

// GenerateBatch produces one cycle's readings, one record per turbine.
// phase selects the temperature band: the first two phases of each rotation
// stay below the 24° alert threshold, the third may cross it. The caller
// owns the rotation and passes the phase explicitly.
func GenerateBatch(turbineCount int, phase int, rng *rand.Rand) []BatchRecord {
	now := time.Now().Format("2006-01-02 15:04:05.999999")
	records := make([]BatchRecord, 0, turbineCount)
	for id := 1; id <= turbineCount; id++ {
		powerFactor := 0.7 + rng.Float64()*0.3
		pressure := 70 + rng.Float64()*10
		var temperature float64
		if phase%3 < 2 {
			temperature = 20 + rng.Float64()*3.9
		} else {
			temperature = 20 + rng.Float64()*5
		}
		records = append(records, BatchRecord{
			TurbineID:         strconv.Itoa(id),
			PowerFactor:       strconv.FormatFloat(powerFactor, 'f', -1, 64),
			HydraulicPressure: strconv.FormatFloat(pressure, 'f', -1, 64),
			Temperature:       strconv.FormatFloat(temperature, 'f', -1, 64),
			Timestamp:         now,
		})
	}
	return records
}

// WriteBatch overwrites the batch file in place. The write goes through a
// temp file and a rename so the consumer never observes a partial batch.
func WriteBatch(path string, records []BatchRecord) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".batch-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace batch %s: %w", path, err)
	}
	return nil
}
