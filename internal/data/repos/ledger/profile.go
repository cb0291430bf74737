package ledger

import (
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo interface {
	Create(dbc dbctx.Context, rows []*ledger.Profile) ([]*ledger.Profile, error)
	GetByID(dbc dbctx.Context, id uint) (*ledger.Profile, error)
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*ledger.Profile, error)
	GetByIDAndType(dbc dbctx.Context, id uint, profileType ledger.ProfileType) (*ledger.Profile, error)

	// LockByIDs takes row locks in ascending id order so concurrent writers never deadlock.
	LockByIDs(dbc dbctx.Context, ids []uint) ([]*ledger.Profile, error)

	// SetBalance writes newBalance only while the row still holds expected.
	SetBalance(dbc dbctx.Context, id uint, expected, newBalance money.Amount) (bool, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) Create(dbc dbctx.Context, rows []*ledger.Profile) ([]*ledger.Profile, error) {
	if len(rows) == 0 {
		return []*ledger.Profile{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *profileRepo) GetByID(dbc dbctx.Context, id uint) (*ledger.Profile, error) {
	if id == 0 {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *profileRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*ledger.Profile, error) {
	var out []*ledger.Profile
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *profileRepo) GetByIDAndType(dbc dbctx.Context, id uint, profileType ledger.ProfileType) (*ledger.Profile, error) {
	if id == 0 {
		return nil, nil
	}
	var row ledger.Profile
	err := dbc.Conn(r.db).
		Where("id = ? AND type = ?", id, profileType).
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

func (r *profileRepo) LockByIDs(dbc dbctx.Context, ids []uint) ([]*ledger.Profile, error) {
	var out []*ledger.Profile
	if len(ids) == 0 {
		return out, nil
	}
	err := dbc.Conn(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *profileRepo) SetBalance(dbc dbctx.Context, id uint, expected, newBalance money.Amount) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&ledger.Profile{}).
		Where("id = ? AND balance = ?", id, expected).
		Update("balance", newBalance)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
