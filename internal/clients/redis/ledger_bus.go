package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

const DefaultChannel = "ledger-events"

type LedgerBus interface {
	Publish(ctx context.Context, evt ledger.LedgerEvent) error
	Subscribe(ctx context.Context, onEvent func(evt ledger.LedgerEvent)) error
	// Client exposes the underlying connection for health collectors; nil when disabled.
	Client() goredis.UniversalClient
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type ledgerBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewLedgerBus connects to Redis. An empty Addr yields a bus that drops every event.
func NewLedgerBus(log *logger.Logger, cfg Config) (LedgerBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		log.Info("redis ledger bus disabled (no REDIS_ADDR)")
		return NoopBus{}, nil
	}
	ch := strings.TrimSpace(cfg.Channel)
	if ch == "" {
		ch = DefaultChannel
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &ledgerBus{
		log:     log.With("service", "RedisLedgerBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *ledgerBus) Publish(ctx context.Context, evt ledger.LedgerEvent) error {
	raw, err := EncodeEvent(evt)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *ledgerBus) Subscribe(ctx context.Context, onEvent func(evt ledger.LedgerEvent)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				evt, err := DecodeEvent([]byte(m.Payload))
				if err != nil {
					b.log.Warn("bad redis ledger payload", "error", err)
					continue
				}
				onEvent(evt)
			}
		}
	}()
	return nil
}

func (b *ledgerBus) Client() goredis.UniversalClient { return b.rdb }

func (b *ledgerBus) Close() error {
	return b.rdb.Close()
}

// NoopBus drops events; it stands in when Redis is not configured.
type NoopBus struct{}

func (NoopBus) Publish(context.Context, ledger.LedgerEvent) error         { return nil }
func (NoopBus) Subscribe(context.Context, func(ledger.LedgerEvent)) error { return nil }
func (NoopBus) Client() goredis.UniversalClient                           { return nil }
func (NoopBus) Close() error                                              { return nil }

func EncodeEvent(evt ledger.LedgerEvent) ([]byte, error) {
	if strings.TrimSpace(string(evt.Type)) == "" {
		return nil, fmt.Errorf("ledger event type required")
	}
	return json.Marshal(evt)
}

func DecodeEvent(raw []byte) (ledger.LedgerEvent, error) {
	var evt ledger.LedgerEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return ledger.LedgerEvent{}, err
	}
	if evt.Type == "" {
		return ledger.LedgerEvent{}, fmt.Errorf("ledger event type missing")
	}
	return evt, nil
}
