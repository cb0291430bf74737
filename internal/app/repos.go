package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ledger-backend/internal/data/repos"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

type Repos struct {
	Profile  repos.ProfileRepo
	Contract repos.ContractRepo
	Job      repos.JobRepo
	Entry    repos.LedgerEntryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:  repos.NewProfileRepo(db, log),
		Contract: repos.NewContractRepo(db, log),
		Job:      repos.NewJobRepo(db, log),
		Entry:    repos.NewLedgerEntryRepo(db, log),
	}
}
