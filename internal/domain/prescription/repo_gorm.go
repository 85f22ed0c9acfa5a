package prescription

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/db"
)

type repoGorm struct {
	gdb *gorm.DB
}

func NewRepo(gdb *gorm.DB) Repository {
	return &repoGorm{gdb: gdb}
}

func (r *repoGorm) Create(ctx context.Context, p *Prescription) error {
	p.ID = 0
	return apperr.Storage("prescription create", db.Conn(ctx, r.gdb).Create(p).Error)
}

func (r *repoGorm) GetByID(ctx context.Context, id uint) (*Prescription, error) {
	var p Prescription
	err := db.Conn(ctx, r.gdb).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("prescription get", "prescription", id)
	}
	if err != nil {
		return nil, apperr.Storage("prescription get", err)
	}
	return &p, nil
}

func (r *repoGorm) ListByPatient(ctx context.Context, regNo uint) ([]*Prescription, error) {
	var out []*Prescription
	err := db.Conn(ctx, r.gdb).
		Where("patient_reg_no = ?", regNo).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Storage("prescription list", err)
	}
	return out, nil
}

func (r *repoGorm) DeleteByPatient(ctx context.Context, regNo uint) (int64, error) {
	res := db.Conn(ctx, r.gdb).Where("patient_reg_no = ?", regNo).Delete(&Prescription{})
	if res.Error != nil {
		return 0, apperr.Storage("prescription delete", res.Error)
	}
	return res.RowsAffected, nil
}
