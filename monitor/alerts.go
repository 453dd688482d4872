package monitor

import (
	"time"

	"gorm.io/gorm"
)

// AlertGenerator derives alert rows from a cycle's committed readings. It
// stands in for the warehouse-side generation routine the persister used to
// call, so it stays behind an interface.
type AlertGenerator interface {
	Generate(readings []SensorReading) (int, error)
}

type AlertThresholds struct {
	// HighTemperature flags readings at or above this value.
	HighTemperature float64
	// PressureFloor flags readings at or below this value.
	PressureFloor float64
	// PowerFactorFloor flags readings at or below this value.
	PowerFactorFloor float64
}

// StoreAlertGenerator appends typed, unresolved alert rows per threshold
// breach. A single reading can produce several alerts of different types.
type StoreAlertGenerator struct {
	db         *gorm.DB
	thresholds AlertThresholds
}

func NewStoreAlertGenerator(db *gorm.DB, thresholds AlertThresholds) *StoreAlertGenerator {
	return &StoreAlertGenerator{db: db, thresholds: thresholds}
}

func (g *StoreAlertGenerator) Generate(readings []SensorReading) (int, error) {
	now := time.Now().UTC()
	var alerts []Alert
	for _, r := range readings {
		if r.Temperature >= g.thresholds.HighTemperature {
			alerts = append(alerts, Alert{TurbineID: r.TurbineID, AlertDate: now, AlertType: AlertHighTemperature})
		}
		if r.HydraulicPressure <= g.thresholds.PressureFloor {
			alerts = append(alerts, Alert{TurbineID: r.TurbineID, AlertDate: now, AlertType: AlertLowHydraulicPressure})
		}
		if r.PowerFactor <= g.thresholds.PowerFactorFloor {
			alerts = append(alerts, Alert{TurbineID: r.TurbineID, AlertDate: now, AlertType: AlertLowEnergyEfficiency})
		}
	}
	if len(alerts) == 0 {
		return 0, nil
	}
	err := g.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&alerts).Error
	})
	if err != nil {
		return 0, err
	}
	return len(alerts), nil
}
