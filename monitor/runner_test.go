package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockMailSender struct {
	mu    sync.Mutex
	calls []mockMail
	failN int
}

type mockMail struct {
	subject string
	body    string
}

func (m *mockMailSender) Send(subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockMail{subject: subject, body: body})
	if m.failN > 0 {
		m.failN--
		return errors.New("mock mail send failure")
	}
	return nil
}

func (m *mockMailSender) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failN = n
}

func (m *mockMailSender) Calls() []mockMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mockMail, len(m.calls))
	copy(out, m.calls)
	return out
}

func newTestRunner(t *testing.T, batchFile string, turbines int) (*Runner, *gorm.DB, *mockMailSender) {
	t.Helper()
	db := openTestDB(t)
	gen := NewStoreAlertGenerator(db, AlertThresholds{HighTemperature: 24, PressureFloor: 60, PowerFactorFloor: 0.1})
	sender := &mockMailSender{}
	runner, err := NewRunner(RunnerConfig{
		BatchFile:     batchFile,
		TurbineCount:  turbines,
		TempThreshold: 24.0,
	}, NewPersister(db, gen, zap.NewNop()), NewNotifier(sender, zap.NewNop()), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return runner, db, sender
}

func testBatch(turbines int, temps map[int]string) []BatchRecord {
	records := make([]BatchRecord, 0, turbines)
	for id := 1; id <= turbines; id++ {
		temp := "21.5"
		if v, ok := temps[id]; ok {
			temp = v
		}
		records = append(records, BatchRecord{
			TurbineID:         strconv.Itoa(id),
			PowerFactor:       "0.85",
			HydraulicPressure: "75.0",
			Temperature:       temp,
			Timestamp:         "2026-03-01 12:00:00.500000",
		})
	}
	return records
}

func TestRunOnce_AlertPathEndToEnd(t *testing.T) {
	records := []BatchRecord{
		{TurbineID: "1", PowerFactor: "0.85", HydraulicPressure: "75.0", Temperature: "23.0", Timestamp: "2026-03-01 12:00:00"},
		{TurbineID: "2", PowerFactor: "0.85", HydraulicPressure: "75.0", Temperature: "24.0", Timestamp: "2026-03-01 12:00:00"},
		{TurbineID: "3", PowerFactor: "0.85", HydraulicPressure: "75.0", Temperature: "25.3", Timestamp: "2026-03-01 12:00:00"},
	}
	path := writeBatchFile(t, records)
	runner, db, sender := newTestRunner(t, path, 3)

	if err := runner.RunOnce(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected batch file consumed")
	}

	var readings int64
	if err := db.Model(&SensorReading{}).Count(&readings).Error; err != nil {
		t.Fatal(err)
	}
	if readings != 3 {
		t.Fatalf("expected 3 readings persisted, got %d", readings)
	}

	var alerts []Alert
	if err := db.Where("alert_type = ?", AlertHighTemperature).Find(&alerts).Error; err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 high-temperature alerts, got %d", len(alerts))
	}

	calls := sender.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(calls))
	}
	if calls[0].subject != "Turbine Alert" {
		t.Fatalf("expected alert subject, got %q", calls[0].subject)
	}
	if !strings.Contains(calls[0].body, "2, 3") {
		t.Fatalf("expected breaching ids in body, got %q", calls[0].body)
	}
}

func TestRunOnce_NormalPath(t *testing.T) {
	path := writeBatchFile(t, testBatch(3, nil))
	runner, db, sender := newTestRunner(t, path, 3)

	if err := runner.RunOnce(); err != nil {
		t.Fatal(err)
	}

	calls := sender.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(calls))
	}
	if calls[0].subject != "Turbine Advise" {
		t.Fatalf("expected normal subject, got %q", calls[0].subject)
	}

	var alerts int64
	if err := db.Model(&Alert{}).Count(&alerts).Error; err != nil {
		t.Fatal(err)
	}
	if alerts != 0 {
		t.Fatalf("expected no alerts generated, got %d", alerts)
	}
}

func TestRunOnce_MalformedBatchLeavesFileAndNoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`[{"turbine_id":"1","temperature":"warm"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	runner, db, sender := newTestRunner(t, path, 3)

	err := runner.RunOnce()
	if !errors.Is(err, ErrMalformedBatch) {
		t.Fatalf("expected ErrMalformedBatch, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected batch file kept: %v", err)
	}
	var readings int64
	if err := db.Model(&SensorReading{}).Count(&readings).Error; err != nil {
		t.Fatal(err)
	}
	if readings != 0 {
		t.Fatalf("expected no rows, got %d", readings)
	}
	if len(sender.Calls()) != 0 {
		t.Fatalf("expected no notification on failed cycle")
	}
}

func TestRunOnce_NoBatchFileIsCleanNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	runner, _, sender := newTestRunner(t, path, 3)

	if err := runner.RunOnce(); err != nil {
		t.Fatal(err)
	}
	if len(sender.Calls()) != 0 {
		t.Fatalf("expected no notification without a batch")
	}
}

func TestRunOnce_NotificationFailureDoesNotAffectPersistence(t *testing.T) {
	path := writeBatchFile(t, testBatch(3, map[int]string{2: "26.0"}))
	runner, db, sender := newTestRunner(t, path, 3)
	sender.FailNext(1)

	if err := runner.RunOnce(); err != nil {
		t.Fatalf("notification failure should not fail the cycle: %v", err)
	}

	var readings int64
	if err := db.Model(&SensorReading{}).Count(&readings).Error; err != nil {
		t.Fatal(err)
	}
	if readings != 3 {
		t.Fatalf("expected readings committed despite mail failure, got %d", readings)
	}
}

func TestRunOnce_PartialEntityStillEvaluated(t *testing.T) {
	// turbine 2 lacks hydraulic pressure: excluded from the insert, but its
	// temperature still drives the alert branch.
	records := []BatchRecord{
		{TurbineID: "1", PowerFactor: "0.85", HydraulicPressure: "75.0", Temperature: "21.0", Timestamp: "2026-03-01 12:00:00"},
		{TurbineID: "2", PowerFactor: "0.85", Temperature: "26.0", Timestamp: "2026-03-01 12:00:00"},
		{TurbineID: "3", PowerFactor: "0.85", HydraulicPressure: "75.0", Temperature: "21.0", Timestamp: "2026-03-01 12:00:00"},
	}
	path := writeBatchFile(t, records)
	runner, db, sender := newTestRunner(t, path, 3)

	if err := runner.RunOnce(); err != nil {
		t.Fatal(err)
	}

	var readings int64
	if err := db.Model(&SensorReading{}).Count(&readings).Error; err != nil {
		t.Fatal(err)
	}
	if readings != 2 {
		t.Fatalf("expected 2 readings (turbine 2 skipped), got %d", readings)
	}

	calls := sender.Calls()
	if len(calls) != 1 || calls[0].subject != "Turbine Alert" {
		t.Fatalf("expected alert notification, got %+v", calls)
	}
	if !strings.Contains(calls[0].body, "2") {
		t.Fatalf("expected turbine 2 in alert body, got %q", calls[0].body)
	}
}
