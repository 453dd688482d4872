package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

// batchRecord mirrors the producer's wire format: every value arrives
// stringified, including the floats.
type batchRecord struct {
	TurbineID         string `json:"turbine_id"`
	PowerFactor       string `json:"powerfactor"`
	HydraulicPressure string `json:"hydraulicpressure"`
	Temperature       string `json:"temperature"`
	Timestamp         string `json:"timestamp"`
}

// Ingest consumes the batch file at path exactly once: it parses and stages
// every record, then deletes the file. A malformed batch leaves the file in
// place so the next attempt (or a human) can get at it. A record that merely
// lacks a field stages the fields it has; a field that is present but not
// parseable fails the whole batch.
func Ingest(path string) (*StagingArea, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, path)
		}
		return nil, err
	}

	var records []batchRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedBatch, path, err)
	}

	staging := NewStagingArea()
	for i, rec := range records {
		id, err := strconv.Atoi(strings.TrimSpace(rec.TurbineID))
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: turbine_id %q", ErrMalformedBatch, i, rec.TurbineID)
		}
		st := staging.reading(id)
		if rec.PowerFactor != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec.PowerFactor), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: powerfactor %q", ErrMalformedBatch, i, rec.PowerFactor)
			}
			st.PowerFactor = &v
		}
		if rec.HydraulicPressure != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec.HydraulicPressure), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: hydraulicpressure %q", ErrMalformedBatch, i, rec.HydraulicPressure)
			}
			st.HydraulicPressure = &v
		}
		if rec.Temperature != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec.Temperature), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: temperature %q", ErrMalformedBatch, i, rec.Temperature)
			}
			st.Temperature = &v
		}
		if rec.Timestamp != "" {
			ts, err := parseBatchTime(rec.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: timestamp %q", ErrMalformedBatch, i, rec.Timestamp)
			}
			st.CapturedAt = &ts
		}
	}

	// Deletion only after everything is staged. If the process dies before
	// this point the file survives and the next cycle retries the batch.
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("delete batch %s: %w", path, err)
	}
	return staging, nil
}

func parseBatchTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
	}
	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
