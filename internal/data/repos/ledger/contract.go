package ledger

import (
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepo interface {
	Create(dbc dbctx.Context, rows []*ledger.Contract) ([]*ledger.Contract, error)
	GetByID(dbc dbctx.Context, id uint) (*ledger.Contract, error)
	// GetByIDForProfile returns the contract only when profileID is one of its parties.
	GetByIDForProfile(dbc dbctx.Context, id, profileID uint) (*ledger.Contract, error)
	// ListActiveForProfile lists non-terminated contracts where profileID is client or contractor.
	ListActiveForProfile(dbc dbctx.Context, profileID uint) ([]*ledger.Contract, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return &contractRepo{db: db, log: baseLog.With("repo", "ContractRepo")}
}

func (r *contractRepo) Create(dbc dbctx.Context, rows []*ledger.Contract) ([]*ledger.Contract, error) {
	if len(rows) == 0 {
		return []*ledger.Contract{}, nil
	}
	if err := dbc.Conn(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contractRepo) GetByID(dbc dbctx.Context, id uint) (*ledger.Contract, error) {
	if id == 0 {
		return nil, nil
	}
	var row ledger.Contract
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *contractRepo) GetByIDForProfile(dbc dbctx.Context, id, profileID uint) (*ledger.Contract, error) {
	if id == 0 || profileID == 0 {
		return nil, nil
	}
	var row ledger.Contract
	err := dbc.Conn(r.db).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", id, profileID, profileID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *contractRepo) ListActiveForProfile(dbc dbctx.Context, profileID uint) ([]*ledger.Contract, error) {
	var out []*ledger.Contract
	if profileID == 0 {
		return out, nil
	}
	err := dbc.Conn(r.db).
		Where("(client_id = ? OR contractor_id = ?) AND status <> ?", profileID, profileID, ledger.ContractStatusTerminated).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
