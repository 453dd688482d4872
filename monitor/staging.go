package monitor

import "time"

// StagedReading holds the field values staged for one turbine during a
// cycle. Every field is optional: a batch record may omit any of them, and
// downstream consumers decide what an absent field means.
type StagedReading struct {
	PowerFactor       *float64
	HydraulicPressure *float64
	Temperature       *float64
	CapturedAt        *time.Time
}

func (s StagedReading) Complete() bool {
	return s.PowerFactor != nil && s.HydraulicPressure != nil && s.Temperature != nil && s.CapturedAt != nil
}

// StagingArea bridges ingestion and the downstream consumers within one
// pipeline cycle. It is written only during Ingest; afterwards the persister
// and the evaluator read it concurrently, so it must not be mutated again.
type StagingArea struct {
	readings map[int]*StagedReading
}

func NewStagingArea() *StagingArea {
	return &StagingArea{readings: make(map[int]*StagedReading)}
}

// reading returns the staged record for a turbine, creating it on first use.
func (a *StagingArea) reading(turbineID int) *StagedReading {
	r, ok := a.readings[turbineID]
	if !ok {
		r = &StagedReading{}
		a.readings[turbineID] = r
	}
	return r
}

func (a *StagingArea) Get(turbineID int) (StagedReading, bool) {
	r, ok := a.readings[turbineID]
	if !ok {
		return StagedReading{}, false
	}
	return *r, true
}

func (a *StagingArea) Temperature(turbineID int) (float64, bool) {
	r, ok := a.readings[turbineID]
	if !ok || r.Temperature == nil {
		return 0, false
	}
	return *r.Temperature, true
}

func (a *StagingArea) Len() int {
	return len(a.readings)
}
