// Package seed loads the demo marketplace: four clients, four contractors, nine contracts and their jobs.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/ledger-backend/internal/data/repos"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

type Result struct {
	Profiles  int
	Contracts int
	Jobs      int
	Skipped   bool
}

type profileRow struct {
	first, last, profession string
	balance                 money.Amount
	typ                     ledger.ProfileType
}

type contractRow struct {
	client, contractor int // indexes into demoProfiles
	status             ledger.ContractStatus
}

type jobRow struct {
	contract int // index into demoContracts
	price    money.Amount
	paidAt   string
}

var demoProfiles = []profileRow{
	{"Harry", "Potter", "Wizard", money.Cents(115000), ledger.ProfileTypeClient},
	{"Mr", "Robot", "Hacker", money.Cents(23111), ledger.ProfileTypeClient},
	{"John", "Snow", "Knows nothing", money.Cents(45130), ledger.ProfileTypeClient},
	{"Ash", "Kethcum", "Pokemon master", money.Cents(130), ledger.ProfileTypeClient},
	{"John", "Lenon", "Musician", money.Cents(6400), ledger.ProfileTypeContractor},
	{"Linus", "Torvalds", "Programmer", money.Cents(121400), ledger.ProfileTypeContractor},
	{"Alan", "Turing", "Programmer", money.Cents(2200), ledger.ProfileTypeContractor},
	{"Aragorn", "II Elessar Telcontarar", "Fighter", money.Cents(31400), ledger.ProfileTypeContractor},
}

var demoContracts = []contractRow{
	{0, 4, ledger.ContractStatusTerminated},
	{0, 5, ledger.ContractStatusInProgress},
	{1, 5, ledger.ContractStatusInProgress},
	{1, 6, ledger.ContractStatusInProgress},
	{2, 7, ledger.ContractStatusNew},
	{2, 6, ledger.ContractStatusInProgress},
	{3, 6, ledger.ContractStatusInProgress},
	{3, 5, ledger.ContractStatusInProgress},
	{3, 7, ledger.ContractStatusInProgress},
}

var demoJobs = []jobRow{
	{0, money.Cents(20000), ""},
	{1, money.Cents(20100), ""},
	{2, money.Cents(20200), ""},
	{3, money.Cents(20000), ""},
	{6, money.Cents(20000), ""},
	{6, money.Cents(202000), "2020-08-15T19:11:26.737Z"},
	{1, money.Cents(20000), "2020-08-15T19:11:26.737Z"},
	{2, money.Cents(20000), "2020-08-16T19:11:26.737Z"},
	{0, money.Cents(20000), "2020-08-17T19:11:26.737Z"},
	{4, money.Cents(20000), "2020-08-17T19:11:26.737Z"},
	{0, money.Cents(2100), "2020-08-10T19:11:26.737Z"},
	{1, money.Cents(2100), "2020-08-15T19:11:26.737Z"},
	{2, money.Cents(12100), "2020-08-15T19:11:26.737Z"},
	{2, money.Cents(12100), "2020-08-14T23:11:26.737Z"},
}

type Seeder struct {
	db        *gorm.DB
	log       *logger.Logger
	profiles  repos.ProfileRepo
	contracts repos.ContractRepo
	jobs      repos.JobRepo
}

func NewSeeder(db *gorm.DB, log *logger.Logger) *Seeder {
	return &Seeder{
		db:        db,
		log:       log.With("component", "Seeder"),
		profiles:  repos.NewProfileRepo(db, log),
		contracts: repos.NewContractRepo(db, log),
		jobs:      repos.NewJobRepo(db, log),
	}
}

// Demo inserts the demo dataset in one transaction. It is skipped when profiles already exist unless force is set.
func (s *Seeder) Demo(ctx context.Context, force bool) (Result, error) {
	var out Result
	if !force {
		var n int64
		if err := s.db.WithContext(ctx).Model(&ledger.Profile{}).Count(&n).Error; err != nil {
			return out, fmt.Errorf("count profiles: %w", err)
		}
		if n > 0 {
			s.log.Info("store already has profiles; skipping seed", "profiles", n)
			return Result{Skipped: true}, nil
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		profiles := make([]*ledger.Profile, 0, len(demoProfiles))
		for _, p := range demoProfiles {
			profiles = append(profiles, &ledger.Profile{
				FirstName:  p.first,
				LastName:   p.last,
				Profession: p.profession,
				Balance:    p.balance,
				Type:       p.typ,
			})
		}
		if _, err := s.profiles.Create(dbc, profiles); err != nil {
			return fmt.Errorf("seed profiles: %w", err)
		}

		contracts := make([]*ledger.Contract, 0, len(demoContracts))
		for i, c := range demoContracts {
			contracts = append(contracts, &ledger.Contract{
				Terms:        fmt.Sprintf("demo contract %d", i+1),
				Status:       c.status,
				ClientID:     profiles[c.client].ID,
				ContractorID: profiles[c.contractor].ID,
			})
		}
		if _, err := s.contracts.Create(dbc, contracts); err != nil {
			return fmt.Errorf("seed contracts: %w", err)
		}

		jobs := make([]*ledger.Job, 0, len(demoJobs))
		for _, j := range demoJobs {
			job := &ledger.Job{
				Description: "work",
				Price:       j.price,
				ContractID:  contracts[j.contract].ID,
			}
			if j.paidAt != "" {
				at, err := time.Parse(time.RFC3339Nano, j.paidAt)
				if err != nil {
					return fmt.Errorf("seed job payment date: %w", err)
				}
				at = at.UTC()
				job.Paid = true
				job.PaymentDate = &at
			}
			jobs = append(jobs, job)
		}
		if _, err := s.jobs.Create(dbc, jobs); err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}

		out = Result{Profiles: len(profiles), Contracts: len(contracts), Jobs: len(jobs)}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.log.Info("demo data seeded", "profiles", out.Profiles, "contracts", out.Contracts, "jobs", out.Jobs)
	return out, nil
}
