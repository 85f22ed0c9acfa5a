package image

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

func (r *repoGorm) Create(ctx context.Context, img *PatientImage) error {
	img.ID = 0
	return apperr.Storage("image create", db.Conn(ctx, r.gdb).Create(img).Error)
}

func (r *repoGorm) GetByID(ctx context.Context, id uint) (*PatientImage, error) {
	var img PatientImage
	err := db.Conn(ctx, r.gdb).Where("id = ?", id).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("image get", "image", id)
	}
	if err != nil {
		return nil, apperr.Storage("image get", err)
	}
	return &img, nil
}

func (r *repoGorm) ListByPatient(ctx context.Context, regNo uint) ([]*PatientImage, error) {
	var out []*PatientImage
	err := db.Conn(ctx, r.gdb).
		Where("patient_reg_no = ?", regNo).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Storage("image list", err)
	}
	return out, nil
}

func (r *repoGorm) UpdateDescription(ctx context.Context, id uint, description string) error {
	res := db.Conn(ctx, r.gdb).Model(&PatientImage{}).Where("id = ?", id).Update("description", description)
	if res.Error != nil {
		return apperr.Storage("image describe", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("image describe", "image", id)
	}
	return nil
}

func (r *repoGorm) Delete(ctx context.Context, id uint) error {
	res := db.Conn(ctx, r.gdb).Where("id = ?", id).Delete(&PatientImage{})
	if res.Error != nil {
		return apperr.Storage("image delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("image delete", "image", id)
	}
	return nil
}

func (r *repoGorm) DeleteByPatient(ctx context.Context, regNo uint) ([]*PatientImage, error) {
	var out []*PatientImage
	err := db.WithTx(ctx, r.gdb, func(ctx context.Context) error {
		conn := db.Conn(ctx, r.gdb)
		if err := conn.Where("patient_reg_no = ?", regNo).Find(&out).Error; err != nil {
			return err
		}
		return conn.Where("patient_reg_no = ?", regNo).Delete(&PatientImage{}).Error
	})
	if err != nil {
		return nil, apperr.Storage("image delete", err)
	}
	return out, nil
}
