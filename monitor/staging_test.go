package monitor

import (
	"testing"
	"time"
)

func TestStagedReading_Complete(t *testing.T) {
	pf, hp, temp := 0.8, 75.0, 22.0
	at := time.Now()

	full := StagedReading{PowerFactor: &pf, HydraulicPressure: &hp, Temperature: &temp, CapturedAt: &at}
	if !full.Complete() {
		t.Fatalf("expected complete")
	}

	partial := StagedReading{PowerFactor: &pf, Temperature: &temp, CapturedAt: &at}
	if partial.Complete() {
		t.Fatalf("expected incomplete without hydraulic pressure")
	}
	if (StagedReading{}).Complete() {
		t.Fatalf("expected empty reading incomplete")
	}
}

func TestStagingArea_Lookups(t *testing.T) {
	staging := NewStagingArea()
	if _, ok := staging.Get(1); ok {
		t.Fatalf("expected no staged reading for unknown turbine")
	}
	if _, ok := staging.Temperature(1); ok {
		t.Fatalf("expected no temperature for unknown turbine")
	}

	temp := 23.5
	staging.reading(1).Temperature = &temp
	if got, ok := staging.Temperature(1); !ok || got != 23.5 {
		t.Fatalf("unexpected temperature: %v ok=%v", got, ok)
	}
	if staging.Len() != 1 {
		t.Fatalf("expected 1 staged turbine, got %d", staging.Len())
	}
}
