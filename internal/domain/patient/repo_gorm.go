package patient

import (
	"context"
	"errors"
	"strconv"
	"strings"

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

func (r *repoGorm) Create(ctx context.Context, p *Patient) error {
	p.RegNo = 0
	return apperr.Storage("patient create", db.Conn(ctx, r.gdb).Create(p).Error)
}

func (r *repoGorm) GetByRegNo(ctx context.Context, regNo uint) (*Patient, error) {
	var p Patient
	err := db.Conn(ctx, r.gdb).Where("reg_no = ?", regNo).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("patient get", "patient", regNo)
	}
	if err != nil {
		return nil, apperr.Storage("patient get", err)
	}
	return &p, nil
}

func (r *repoGorm) Update(ctx context.Context, p *Patient) error {
	res := db.Conn(ctx, r.gdb).Model(&Patient{}).Where("reg_no = ?", p.RegNo).Updates(map[string]interface{}{
		"name":    p.Name,
		"age":     p.Age,
		"gender":  p.Gender,
		"weight":  p.Weight,
		"phone":   p.Phone,
		"address": p.Address,
	})
	if res.Error != nil {
		return apperr.Storage("patient update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("patient update", "patient", p.RegNo)
	}
	return nil
}

func (r *repoGorm) Delete(ctx context.Context, regNo uint) error {
	res := db.Conn(ctx, r.gdb).Where("reg_no = ?", regNo).Delete(&Patient{})
	if res.Error != nil {
		return apperr.Storage("patient delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("patient delete", "patient", regNo)
	}
	return nil
}

func (r *repoGorm) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return r.page(db.Conn(ctx, r.gdb).Model(&Patient{}), "patient list", limit, offset)
}

func (r *repoGorm) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx, limit, offset)
	}

	// A registration number hit wins over phone fragments that happen to
	// contain the same digits.
	if n, err := strconv.ParseUint(query, 10, 64); err == nil {
		byRegNo := db.Conn(ctx, r.gdb).Model(&Patient{}).Where("reg_no = ?", n)
		var hits int64
		if err := byRegNo.Session(&gorm.Session{}).Count(&hits).Error; err != nil {
			return nil, 0, apperr.Storage("patient search", err)
		}
		if hits > 0 {
			return r.page(byRegNo, "patient search", limit, offset)
		}
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	q := db.Conn(ctx, r.gdb).Model(&Patient{}).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Or(`LOWER(phone) LIKE ? ESCAPE '\'`, pattern)
	return r.page(q, "patient search", limit, offset)
}

func (r *repoGorm) page(q *gorm.DB, op string, limit, offset int) ([]*Patient, int, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage(op, err)
	}

	var out []*Patient
	q = q.Order("reg_no DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, apperr.Storage(op, err)
	}
	return out, int(total), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
