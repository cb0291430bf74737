package ledger

import (
	"time"

	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepo interface {
	Create(dbc dbctx.Context, rows []*ledger.Job) ([]*ledger.Job, error)
	GetByID(dbc dbctx.Context, id uint) (*ledger.Job, error)
	LockByID(dbc dbctx.Context, id uint) (*ledger.Job, error)

	// MarkPaid flips paid false -> true; it reports false when the job was already paid.
	MarkPaid(dbc dbctx.Context, id uint, paidAt time.Time) (bool, error)

	// SumUnpaidForClient totals unpaid job prices across every contract of clientID.
	SumUnpaidForClient(dbc dbctx.Context, clientID uint) (money.Amount, error)
	// ListUnpaidForProfile lists unpaid jobs of non-terminated contracts the profile is party to.
	ListUnpaidForProfile(dbc dbctx.Context, profileID uint) ([]*ledger.Job, error)

	SumPaidByProfession(dbc dbctx.Context, w ledger.Window) ([]ledger.ProfessionTotal, error)
	SumPaidByClient(dbc dbctx.Context, w ledger.Window) ([]ledger.ClientTotal, error)
}

type jobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRepo(db *gorm.DB, baseLog *logger.Logger) JobRepo {
	return &jobRepo{db: db, log: baseLog.With("repo", "JobRepo")}
}

func (r *jobRepo) Create(dbc dbctx.Context, rows []*ledger.Job) ([]*ledger.Job, error) {
	if len(rows) == 0 {
		return []*ledger.Job{}, nil
	}
	if err := dbc.Conn(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobRepo) GetByID(dbc dbctx.Context, id uint) (*ledger.Job, error) {
	if id == 0 {
		return nil, nil
	}
	var row ledger.Job
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *jobRepo) LockByID(dbc dbctx.Context, id uint) (*ledger.Job, error) {
	if id == 0 {
		return nil, nil
	}
	var row ledger.Job
	err := dbc.Conn(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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

func (r *jobRepo) MarkPaid(dbc dbctx.Context, id uint, paidAt time.Time) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&ledger.Job{}).
		Where("id = ? AND paid = ?", id, false).
		Updates(map[string]interface{}{
			"paid":         true,
			"payment_date": paidAt.UTC(),
			"updated_at":   paidAt.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *jobRepo) SumUnpaidForClient(dbc dbctx.Context, clientID uint) (money.Amount, error) {
	var total int64
	err := dbc.Conn(r.db).
		Table("jobs AS j").
		Joins("JOIN contracts AS c ON c.id = j.contract_id").
		Where("c.client_id = ? AND j.paid = ?", clientID, false).
		Select("CAST(COALESCE(SUM(j.price), 0) AS BIGINT)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return money.Amount(total), nil
}

func (r *jobRepo) ListUnpaidForProfile(dbc dbctx.Context, profileID uint) ([]*ledger.Job, error) {
	var out []*ledger.Job
	if profileID == 0 {
		return out, nil
	}
	err := dbc.Conn(r.db).
		Table("jobs").
		Select("jobs.*").
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("(contracts.client_id = ? OR contracts.contractor_id = ?) AND contracts.status <> ?",
			profileID, profileID, ledger.ContractStatusTerminated).
		Where("jobs.paid = ?", false).
		Order("jobs.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

type professionRow struct {
	Profession string
	Total      int64
}

func (r *jobRepo) SumPaidByProfession(dbc dbctx.Context, w ledger.Window) ([]ledger.ProfessionTotal, error) {
	var rows []professionRow
	err := dbc.Conn(r.db).
		Table("jobs AS j").
		Joins("JOIN contracts AS c ON c.id = j.contract_id").
		Joins("JOIN profiles AS p ON p.id = c.contractor_id").
		Where("p.type = ? AND j.paid = ?", ledger.ProfileTypeContractor, true).
		Where("j.payment_date BETWEEN ? AND ?", w.Start, w.End).
		Group("p.profession").
		Select("p.profession AS profession, CAST(SUM(j.price) AS BIGINT) AS total").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ledger.ProfessionTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledger.ProfessionTotal{Profession: row.Profession, Total: money.Amount(row.Total)})
	}
	return out, nil
}

type clientRow struct {
	ID        uint
	FirstName string
	LastName  string
	Total     int64
}

func (r *jobRepo) SumPaidByClient(dbc dbctx.Context, w ledger.Window) ([]ledger.ClientTotal, error) {
	var rows []clientRow
	err := dbc.Conn(r.db).
		Table("jobs AS j").
		Joins("JOIN contracts AS c ON c.id = j.contract_id").
		Joins("JOIN profiles AS p ON p.id = c.client_id").
		Where("p.type = ? AND j.paid = ?", ledger.ProfileTypeClient, true).
		Where("j.payment_date BETWEEN ? AND ?", w.Start, w.End).
		Group("p.id, p.first_name, p.last_name").
		Select("p.id AS id, p.first_name AS first_name, p.last_name AS last_name, CAST(SUM(j.price) AS BIGINT) AS total").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ledger.ClientTotal, 0, len(rows))
	for _, row := range rows {
		p := ledger.Profile{FirstName: row.FirstName, LastName: row.LastName}
		out = append(out, ledger.ClientTotal{ID: row.ID, FullName: p.FullName(), TotalPaid: money.Amount(row.Total)})
	}
	return out, nil
}
