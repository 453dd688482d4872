package monitor

import "time"

// SensorReading is one persisted sample for one turbine. Rows are immutable
// once written. Numeric fields are stored typed even though the producer
// ships them stringified.
type SensorReading struct {
	ID                uint `gorm:"primaryKey"`
	TurbineID         int  `gorm:"index"`
	PowerFactor       float64
	HydraulicPressure float64
	Temperature       float64
	CapturedAt        time.Time `gorm:"index"`
}

type AlertType string

const (
	AlertHighTemperature      AlertType = "HighTemperature"
	AlertLowHydraulicPressure AlertType = "LowHydraulicPressure"
	AlertLowEnergyEfficiency  AlertType = "LowEnergyEfficiency"
)

// Alert rows are appended by alert generation with Resolved=false.
// Resolved transitions false->true exactly once and never reverts.
type Alert struct {
	AlertID   uint      `gorm:"primaryKey;column:alert_id" json:"alert_id"`
	TurbineID int       `gorm:"index" json:"turbine_id"`
	AlertDate time.Time `gorm:"index" json:"alert_date"`
	AlertType AlertType `gorm:"index;size:32" json:"alert_type"`
	Resolved  bool      `gorm:"index" json:"resolved"`
}

type MaintenanceType string

const (
	MaintenanceScheduled   MaintenanceType = "Scheduled"
	MaintenanceUnscheduled MaintenanceType = "Unscheduled"
)

func (t MaintenanceType) Valid() bool {
	return t == MaintenanceScheduled || t == MaintenanceUnscheduled
}

// MaintenanceRecord is append-only: exactly one per alert resolution,
// written in the same transaction that closes the alert.
type MaintenanceRecord struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	TurbineID       int             `gorm:"index" json:"turbine_id"`
	MaintenanceDate time.Time       `json:"maintenance_date"`
	MaintenanceType MaintenanceType `gorm:"size:16" json:"maintenance_type"`
	Notes           string          `gorm:"type:text" json:"notes"`
}
