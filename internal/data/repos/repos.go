package repos

import (
	"github.com/yungbote/ledger-backend/internal/data/repos/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProfileRepo = ledger.ProfileRepo
type ContractRepo = ledger.ContractRepo
type JobRepo = ledger.JobRepo
type LedgerEntryRepo = ledger.LedgerEntryRepo

func NewProfileRepo(db *gorm.DB, log *logger.Logger) ProfileRepo {
	return ledger.NewProfileRepo(db, log)
}

func NewContractRepo(db *gorm.DB, log *logger.Logger) ContractRepo {
	return ledger.NewContractRepo(db, log)
}

func NewJobRepo(db *gorm.DB, log *logger.Logger) JobRepo {
	return ledger.NewJobRepo(db, log)
}

func NewLedgerEntryRepo(db *gorm.DB, log *logger.Logger) LedgerEntryRepo {
	return ledger.NewLedgerEntryRepo(db, log)
}
