package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/ledger-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
)

func TestContractServiceVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, env.db, 0)
	contractor := testutil.SeedContractor(t, ctx, env.db, "Programmer", 0)
	stranger := testutil.SeedClient(t, ctx, env.db, 0)
	active := testutil.SeedContract(t, ctx, env.db, client.ID, contractor.ID, ledger.ContractStatusInProgress)
	ended := testutil.SeedContract(t, ctx, env.db, client.ID, contractor.ID, ledger.ContractStatusTerminated)
	testutil.SeedJob(t, ctx, env.db, active.ID, money.Cents(100))
	testutil.SeedJob(t, ctx, env.db, ended.ID, money.Cents(200))

	svc := NewContractService(env.log, env.contracts, env.jobs)

	got, err := svc.GetContract(asCaller(contractor.ID), active.ID)
	require.NoError(t, err)
	require.Equal(t, active.ID, got.ID)

	_, err = svc.GetContract(asCaller(stranger.ID), active.ID)
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)

	list, err := svc.ListContracts(asCaller(client.ID))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, active.ID, list[0].ID)

	jobs, err := svc.ListUnpaidJobs(asCaller(contractor.ID))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, active.ID, jobs[0].ContractID)

	_, err = svc.ListContracts(context.Background())
	require.True(t, domainagg.IsCode(err, domainagg.CodeForbidden), "got %v", err)
}
