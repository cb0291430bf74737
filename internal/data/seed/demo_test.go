package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/ledger-backend/internal/data/repos"
	"github.com/yungbote/ledger-backend/internal/data/repos/testutil"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/services"
)

func TestDemoSeedsOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	s := NewSeeder(db, log)

	res, err := s.Demo(ctx, false)
	require.NoError(t, err)
	require.Equal(t, Result{Profiles: 8, Contracts: 9, Jobs: 14}, res)

	again, err := s.Demo(ctx, false)
	require.NoError(t, err)
	require.True(t, again.Skipped)

	var n int64
	require.NoError(t, db.Model(&ledger.Profile{}).Count(&n).Error)
	require.EqualValues(t, 8, n)
	require.NoError(t, db.Model(&ledger.Job{}).Where("paid = ?", true).Count(&n).Error)
	require.EqualValues(t, 9, n)
}

func TestDemoReports(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	_, err := NewSeeder(db, log).Demo(ctx, false)
	require.NoError(t, err)

	reports := services.NewReportService(log, repos.NewJobRepo(db, log), nil)

	best, err := reports.BestProfession(ctx, "2020-08-10", "2020-08-17")
	require.NoError(t, err)
	require.NotNil(t, best)
	require.Equal(t, "Programmer", best.Profession)
	require.Equal(t, money.Cents(268300), best.Total)

	clients, err := reports.BestClients(ctx, "2020-08-10", "2020-08-17", 3)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	require.Equal(t, "Ash Kethcum", clients[0].FullName)
	require.Equal(t, money.Cents(202000), clients[0].TotalPaid)
	// Harry Potter and Mr Robot both paid 442; the lower id wins.
	require.Equal(t, "Harry Potter", clients[1].FullName)
	require.Equal(t, "Mr Robot", clients[2].FullName)
	require.Equal(t, clients[1].TotalPaid, clients[2].TotalPaid)
}
