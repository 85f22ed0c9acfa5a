package doctor

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

func (r *repoGorm) Get(ctx context.Context) (*Profile, error) {
	var p Profile
	err := db.Conn(ctx, r.gdb).Order("id").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("doctor get", "doctor profile", "singleton")
	}
	if err != nil {
		return nil, apperr.Storage("doctor get", err)
	}
	return &p, nil
}

func (r *repoGorm) Save(ctx context.Context, p *Profile) error {
	err := db.WithTx(ctx, r.gdb, func(ctx context.Context) error {
		conn := db.Conn(ctx, r.gdb)

		var existing Profile
		err := conn.Order("id").First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p.ID = 0
			return conn.Create(p).Error
		}
		if err != nil {
			return err
		}

		p.ID = existing.ID
		return conn.Model(&Profile{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
			"name":            p.Name,
			"degrees":         p.Degrees,
			"designation":     p.Designation,
			"institution":     p.Institution,
			"registration_no": p.RegistrationNo,
			"phone":           p.Phone,
			"email":           p.Email,
			"address":         p.Address,
		}).Error
	})
	return apperr.Storage("doctor save", err)
}
