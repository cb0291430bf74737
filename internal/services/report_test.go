package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/ledger-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
)

func TestRankProfessionsTieBreak(t *testing.T) {
	got := rankProfessions([]ledger.ProfessionTotal{
		{Profession: "Wizard", Total: money.Cents(500)},
		{Profession: "Fighter", Total: money.Cents(500)},
		{Profession: "Idle", Total: 0},
		{Profession: "Bard", Total: money.Cents(100)},
	})
	require.Len(t, got, 3)
	require.Equal(t, "Fighter", got[0].Profession)
	require.Equal(t, "Wizard", got[1].Profession)
	require.Equal(t, "Bard", got[2].Profession)
}

func TestRankClientsOrderAndLimit(t *testing.T) {
	in := []ledger.ClientTotal{
		{ID: 9, TotalPaid: money.Cents(5000)},
		{ID: 3, TotalPaid: money.Cents(3000)},
		{ID: 4, TotalPaid: money.Cents(5000)},
		{ID: 1, TotalPaid: 0},
	}
	got := rankClients(in, 2)
	require.Equal(t, []uint{4, 9}, []uint{got[0].ID, got[1].ID})

	all := rankClients(in, 10)
	require.Len(t, all, 3, "zero totals are not ranked")
}

type reportFixture struct {
	svc ReportService
	at  time.Time
}

func newReportFixture(t *testing.T) (*testEnv, *reportFixture) {
	env := newTestEnv(t)
	return env, &reportFixture{
		svc: NewReportService(env.log, env.jobs, nil),
		at:  time.Date(2020, 8, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBestProfession(t *testing.T) {
	env, f := newReportFixture(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, env.db, 0)
	a := testutil.SeedContractor(t, ctx, env.db, "A", 0)
	b := testutil.SeedContractor(t, ctx, env.db, "B", 0)
	ca := testutil.SeedContract(t, ctx, env.db, client.ID, a.ID, ledger.ContractStatusInProgress)
	cb := testutil.SeedContract(t, ctx, env.db, client.ID, b.ID, ledger.ContractStatusInProgress)

	for _, price := range []int64{1000, 2000, 3000} {
		testutil.SeedPaidJob(t, ctx, env.db, ca.ID, money.Cents(price), f.at)
	}
	testutil.SeedPaidJob(t, ctx, env.db, cb.ID, money.Cents(10000), f.at)
	// Outside the window or unpaid: must not count.
	testutil.SeedPaidJob(t, ctx, env.db, ca.ID, money.Cents(99900), f.at.AddDate(0, 1, 0))
	testutil.SeedJob(t, ctx, env.db, ca.ID, money.Cents(99900))

	best, err := f.svc.BestProfession(ctx, "2020-08-01", "2020-08-31")
	require.NoError(t, err)
	require.NotNil(t, best)
	require.Equal(t, "B", best.Profession)
	require.Equal(t, money.Cents(10000), best.Total)

	again, err := f.svc.BestProfession(ctx, "2020-08-01", "2020-08-31")
	require.NoError(t, err)
	require.Equal(t, best, again)
}

func TestBestProfessionEndDateCoversWholeDay(t *testing.T) {
	env, f := newReportFixture(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, env.db, 0)
	a := testutil.SeedContractor(t, ctx, env.db, "Programmer", 0)
	c := testutil.SeedContract(t, ctx, env.db, client.ID, a.ID, ledger.ContractStatusInProgress)
	testutil.SeedPaidJob(t, ctx, env.db, c.ID, money.Cents(1500), f.at)

	best, err := f.svc.BestProfession(ctx, "2020-08-15", "2020-08-15")
	require.NoError(t, err)
	require.NotNil(t, best)
	require.Equal(t, "Programmer", best.Profession)
}

func TestBestProfessionNoDataAndRange(t *testing.T) {
	_, f := newReportFixture(t)
	ctx := context.Background()

	best, err := f.svc.BestProfession(ctx, "2020-01-01", "2020-12-31")
	require.NoError(t, err)
	require.Nil(t, best)

	_, err = f.svc.BestProfession(ctx, "2020-12-31", "2020-01-01")
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvalidRange), "got %v", err)

	_, err = f.svc.BestProfession(ctx, "yesterday", "2020-01-01")
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "got %v", err)
}

func TestBestClients(t *testing.T) {
	env, f := newReportFixture(t)
	ctx := context.Background()
	contractor := testutil.SeedContractor(t, ctx, env.db, "Programmer", 0)

	var ids []uint
	for _, total := range []int64{5000, 5000, 3000} {
		c := testutil.SeedClient(t, ctx, env.db, 0)
		ids = append(ids, c.ID)
		k := testutil.SeedContract(t, ctx, env.db, c.ID, contractor.ID, ledger.ContractStatusInProgress)
		testutil.SeedPaidJob(t, ctx, env.db, k.ID, money.Cents(total), f.at)
	}
	// A client with no payments in range.
	testutil.SeedClient(t, ctx, env.db, 0)

	got, err := f.svc.BestClients(ctx, "2020-08-01", "2020-08-31", DefaultBestClientsLimit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, ids[0], got[0].ID)
	require.Equal(t, ids[1], got[1].ID)
	require.Equal(t, money.Cents(5000), got[0].TotalPaid)
	require.NotEmpty(t, got[0].FullName)

	all, err := f.svc.BestClients(ctx, "2020-08-01", "2020-08-31", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, ids[2], all[2].ID)

	_, err = f.svc.BestClients(ctx, "2020-08-01", "2020-08-31", 0)
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvalidLimit), "got %v", err)
	_, err = f.svc.BestClients(ctx, "2020-08-31", "2020-08-01", 2)
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvalidRange), "got %v", err)
}
