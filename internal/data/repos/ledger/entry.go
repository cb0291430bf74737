package ledger

import (
	"github.com/google/uuid"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type LedgerEntryRepo interface {
	Create(dbc dbctx.Context, rows []*ledger.LedgerEntry) ([]*ledger.LedgerEntry, error)
	ListByProfile(dbc dbctx.Context, profileID uint, limit int) ([]*ledger.LedgerEntry, error)
	ListByTransfer(dbc dbctx.Context, transferID uuid.UUID) ([]*ledger.LedgerEntry, error)
}

type ledgerEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLedgerEntryRepo(db *gorm.DB, baseLog *logger.Logger) LedgerEntryRepo {
	return &ledgerEntryRepo{db: db, log: baseLog.With("repo", "LedgerEntryRepo")}
}

func (r *ledgerEntryRepo) Create(dbc dbctx.Context, rows []*ledger.LedgerEntry) ([]*ledger.LedgerEntry, error) {
	if len(rows) == 0 {
		return []*ledger.LedgerEntry{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ledgerEntryRepo) ListByProfile(dbc dbctx.Context, profileID uint, limit int) ([]*ledger.LedgerEntry, error) {
	var out []*ledger.LedgerEntry
	if profileID == 0 {
		return out, nil
	}
	q := dbc.Conn(r.db).Where("profile_id = ?", profileID).Order("created_at DESC").Order("kind ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ledgerEntryRepo) ListByTransfer(dbc dbctx.Context, transferID uuid.UUID) ([]*ledger.LedgerEntry, error) {
	var out []*ledger.LedgerEntry
	if transferID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("transfer_id = ?", transferID).Order("kind ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
