package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/ledger-backend/internal/data/repos/testutil"
	"github.com/yungbote/ledger-backend/internal/platform/ctxutil"
)

func TestAuthenticateFromHeader(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, env.db, 0)
	svc := NewIdentityService(env.log, env.profiles, "")

	authCtx, p, err := svc.Authenticate(ctx, strconv.FormatUint(uint64(client.ID), 10), "")
	require.NoError(t, err)
	require.Equal(t, client.ID, p.ID)
	rd := ctxutil.GetRequestData(authCtx)
	require.NotNil(t, rd)
	require.Equal(t, client.ID, rd.ProfileID)
	require.Equal(t, "client", rd.ProfileType)

	for _, raw := range []string{"", "abc", "0", "999999"} {
		_, _, err := svc.Authenticate(ctx, raw, "")
		require.True(t, errors.Is(err, ErrUnauthenticated), "header %q: got %v", raw, err)
	}
}

func TestAuthenticateFromToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contractor := testutil.SeedContractor(t, ctx, env.db, "Programmer", 0)
	svc := NewIdentityService(env.log, env.profiles, "test-secret")
	require.True(t, svc.TokensEnabled())

	token, err := svc.IssueToken(contractor, time.Hour)
	require.NoError(t, err)

	_, p, err := svc.Authenticate(ctx, "", token)
	require.NoError(t, err)
	require.Equal(t, contractor.ID, p.ID)

	expired, err := svc.IssueToken(contractor, -time.Minute)
	require.NoError(t, err)
	_, _, err = svc.Authenticate(ctx, "", expired)
	require.True(t, errors.Is(err, ErrUnauthenticated), "got %v", err)

	other := NewIdentityService(env.log, env.profiles, "other-secret")
	_, _, err = other.Authenticate(ctx, "", token)
	require.True(t, errors.Is(err, ErrUnauthenticated), "got %v", err)
}

func TestAuthenticateRequiresTokenWhenSecretSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, env.db, 0)
	svc := NewIdentityService(env.log, env.profiles, "test-secret")

	header := strconv.FormatUint(uint64(client.ID), 10)
	authCtx, p, err := svc.Authenticate(ctx, header, "")
	require.True(t, errors.Is(err, ErrUnauthenticated), "got %v", err)
	require.Nil(t, p)
	require.Nil(t, ctxutil.GetRequestData(authCtx))

	token, err := svc.IssueToken(client, time.Hour)
	require.NoError(t, err)
	_, p, err = svc.Authenticate(ctx, "999999", token)
	require.NoError(t, err)
	require.Equal(t, client.ID, p.ID, "token subject wins over the header")
}

func TestIssueTokenDisabled(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIdentityService(env.log, env.profiles, "  ")
	require.False(t, svc.TokensEnabled())
	_, err := svc.IssueToken(nil, time.Hour)
	require.Error(t, err)
}
