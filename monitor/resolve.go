package monitor

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertBook manages the alert lifecycle. Open alerts are listed for
// operators; resolving one closes it and appends the maintenance performed
// as a single atomic unit. The resolved flag only ever goes false->true.
type AlertBook struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAlertBook(db *gorm.DB, log *zap.Logger) *AlertBook {
	return &AlertBook{db: db, log: log}
}

// ListOpen returns unresolved alerts ordered by alert_id ascending. Each
// call re-queries current state.
func (b *AlertBook) ListOpen() ([]Alert, error) {
	var alerts []Alert
	if err := b.db.Where("resolved = ?", false).Order("alert_id asc").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("list open alerts: %w", err)
	}
	return alerts, nil
}

// Resolve closes an alert and records the maintenance performed. The update
// is conditioned on resolved still being false, so of two racing operators
// exactly one wins; the loser gets ErrAlertAlreadyResolved and inserts
// nothing. The guarantee lives in the storage transaction, not in memory:
// it holds across processes.
func (b *AlertBook) Resolve(alertID uint, maintType MaintenanceType, notes string) error {
	if !maintType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMaintenanceType, maintType)
	}
	err := b.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Alert{}).
			Where("alert_id = ? AND resolved = ?", alertID, false).
			Update("resolved", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Alert{}).Where("alert_id = ?", alertID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %d", ErrAlertNotFound, alertID)
			}
			return fmt.Errorf("%w: %d", ErrAlertAlreadyResolved, alertID)
		}
		var alert Alert
		if err := tx.First(&alert, "alert_id = ?", alertID).Error; err != nil {
			return err
		}
		record := MaintenanceRecord{
			TurbineID:       alert.TurbineID,
			MaintenanceDate: time.Now().UTC(),
			MaintenanceType: maintType,
			Notes:           notes,
		}
		return tx.Create(&record).Error
	})
	switch {
	case err == nil:
		resolutionsTotal.WithLabelValues("resolved").Inc()
		b.log.Info("alert resolved",
			zap.Uint("alert_id", alertID),
			zap.String("maintenance_type", string(maintType)))
	case errors.Is(err, ErrAlertAlreadyResolved):
		resolutionsTotal.WithLabelValues("already_resolved").Inc()
	case errors.Is(err, ErrAlertNotFound):
		resolutionsTotal.WithLabelValues("not_found").Inc()
	default:
		resolutionsTotal.WithLabelValues("error").Inc()
	}
	return err
}
