package db

import (
	"fmt"

	types "github.com/yungbote/ledger-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Profile{},
		&types.Contract{},
		&types.Job{},
		&types.LedgerEntry{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureLedgerIndexes(db)
}

// EnsureLedgerIndexes adds the composite indexes the deposit and report queries scan.
func EnsureLedgerIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_jobs_paid_payment_date ON jobs(paid, payment_date);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_contract_paid ON jobs(contract_id, paid);`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_profile_created ON ledger_entries(profile_id, created_at);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure ledger index: %w", err)
		}
	}
	return nil
}
