package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

func TestNewLedgerBusWithoutAddrIsNoop(t *testing.T) {
	bus, err := NewLedgerBus(logger.Nop(), Config{})
	require.NoError(t, err)
	require.IsType(t, NoopBus{}, bus)
	require.NoError(t, bus.Publish(context.Background(), ledger.LedgerEvent{Type: ledger.EventJobPaid}))
	require.Nil(t, bus.Client())
	require.NoError(t, bus.Close())
}

func TestEventCodecRoundTrip(t *testing.T) {
	evt := ledger.LedgerEvent{
		ID:           uuid.New(),
		Type:         ledger.EventJobPaid,
		TransferID:   uuid.New(),
		JobID:        7,
		ClientID:     1,
		ContractorID: 5,
		Amount:       money.Cents(20000),
		OccurredAt:   time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC),
	}
	raw, err := EncodeEvent(evt)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"amount":200.00`)

	got, err := DecodeEvent(raw)
	require.NoError(t, err)
	require.Equal(t, evt, got)
}

func TestEventCodecRejectsUntyped(t *testing.T) {
	_, err := EncodeEvent(ledger.LedgerEvent{})
	require.Error(t, err)
	_, err = DecodeEvent([]byte(`{"amount":1}`))
	require.Error(t, err)
}
