package monitor

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PersistResult struct {
	// Inserted is the number of reading rows committed this cycle.
	Inserted int
	// Skipped lists turbines excluded from the insert because at least one
	// field was missing from staging, ascending.
	Skipped []int
	// Alerts is the number of alert rows appended by the generation routine.
	Alerts int
}

// Persister writes one cycle's complete readings to the reading log in a
// single transaction and then triggers alert generation over the committed
// rows.
type Persister struct {
	db     *gorm.DB
	alerts AlertGenerator
	log    *zap.Logger
}

func NewPersister(db *gorm.DB, alerts AlertGenerator, log *zap.Logger) *Persister {
	return &Persister{db: db, alerts: alerts, log: log}
}

func (p *Persister) Persist(staging *StagingArea, turbineCount int) (PersistResult, error) {
	var res PersistResult
	rows := make([]SensorReading, 0, turbineCount)
	for id := 1; id <= turbineCount; id++ {
		st, ok := staging.Get(id)
		if !ok || !st.Complete() {
			res.Skipped = append(res.Skipped, id)
			continue
		}
		rows = append(rows, SensorReading{
			TurbineID:         id,
			PowerFactor:       *st.PowerFactor,
			HydraulicPressure: *st.HydraulicPressure,
			Temperature:       *st.Temperature,
			CapturedAt:        *st.CapturedAt,
		})
	}
	if len(res.Skipped) > 0 {
		// Legacy behavior: incomplete turbines drop out of the insert set
		// without failing the batch.
		p.log.Warn("turbines missing fields skipped from insert", zap.Ints("turbine_ids", res.Skipped))
		turbinesSkipped.Add(float64(len(res.Skipped)))
	}

	if len(rows) > 0 {
		err := p.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&rows).Error
		})
		if err != nil {
			return res, fmt.Errorf("persist batch: %w", err)
		}
	}
	res.Inserted = len(rows)
	readingsPersisted.Add(float64(len(rows)))

	// The generation routine runs after the commit; its failure is reported
	// but cannot undo the committed readings.
	n, err := p.alerts.Generate(rows)
	res.Alerts = n
	alertsGenerated.Add(float64(n))
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrAlertGeneration, err)
	}
	return res, nil
}
