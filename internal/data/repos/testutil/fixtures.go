package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, typ ledger.ProfileType, profession string, balance money.Amount) *ledger.Profile {
	tb.Helper()
	p := &ledger.Profile{
		FirstName:  "First",
		LastName:   profession,
		Profession: profession,
		Balance:    balance,
		Type:       typ,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, balance money.Amount) *ledger.Profile {
	tb.Helper()
	return SeedProfile(tb, ctx, tx, ledger.ProfileTypeClient, "Wizard", balance)
}

func SeedContractor(tb testing.TB, ctx context.Context, tx *gorm.DB, profession string, balance money.Amount) *ledger.Profile {
	tb.Helper()
	return SeedProfile(tb, ctx, tx, ledger.ProfileTypeContractor, profession, balance)
}

func SeedContract(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID, contractorID uint, status ledger.ContractStatus) *ledger.Contract {
	tb.Helper()
	c := &ledger.Contract{
		Terms:        "terms",
		Status:       status,
		ClientID:     clientID,
		ContractorID: contractorID,
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}
	return c
}

func SeedJob(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID uint, price money.Amount) *ledger.Job {
	tb.Helper()
	j := &ledger.Job{
		Description: "work",
		Price:       price,
		ContractID:  contractID,
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(j).Error; err != nil {
		tb.Fatalf("seed job: %v", err)
	}
	return j
}

func SeedPaidJob(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID uint, price money.Amount, paidAt time.Time) *ledger.Job {
	tb.Helper()
	at := paidAt.UTC()
	j := &ledger.Job{
		Description: "work",
		Price:       price,
		ContractID:  contractID,
		Paid:        true,
		PaymentDate: &at,
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(j).Error; err != nil {
		tb.Fatalf("seed paid job: %v", err)
	}
	return j
}
