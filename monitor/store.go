package monitor

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func OpenDB(path string) (*gorm.DB, error) {
	// busy_timeout makes a second writer wait for the first commit instead
	// of failing, which is what settles racing alert resolutions.
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one pooled connection keeps concurrent
	// transactions queued instead of hitting SQLITE_BUSY mid-transaction.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&SensorReading{}, &Alert{}, &MaintenanceRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}
