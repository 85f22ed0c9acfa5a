package patient

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/db"
	"github.com/rxpad/rxpad/internal/platform/form"
)

// Dependent owns records that belong to a patient. PurgePatient runs inside
// the patient delete transaction; the returned func, if any, runs only after
// the transaction committed.
type Dependent interface {
	PurgePatient(ctx context.Context, regNo uint) (after func(), err error)
}

type Service struct {
	repo       Repository
	tx         db.Runner
	dependents []Dependent
	logger     zerolog.Logger
}

func NewService(repo Repository, tx db.Runner, logger zerolog.Logger, dependents ...Dependent) *Service {
	return &Service{repo: repo, tx: tx, dependents: dependents, logger: logger}
}

func (s *Service) Register(ctx context.Context, p *Patient) error {
	if err := form.ValidateStruct("patient register", p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.logger.Info().Uint("reg_no", p.RegNo).Msg("patient registered")
	return nil
}

func (s *Service) Get(ctx context.Context, regNo uint) (*Patient, error) {
	return s.repo.GetByRegNo(ctx, regNo)
}

// Update replaces the mutable fields of the patient identified by p.RegNo.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.RegNo == 0 {
		return apperr.Validation("patient update", "registration number is required")
	}
	if err := form.ValidateStruct("patient update", p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes the patient together with every record it owns. Work
// deferred by dependents (file removal) happens after the commit.
func (s *Service) Delete(ctx context.Context, regNo uint) error {
	var afters []func()
	err := s.tx(ctx, func(ctx context.Context) error {
		for _, d := range s.dependents {
			after, err := d.PurgePatient(ctx, regNo)
			if err != nil {
				return err
			}
			if after != nil {
				afters = append(afters, after)
			}
		}
		return s.repo.Delete(ctx, regNo)
	})
	if err != nil {
		return err
	}
	for _, after := range afters {
		after()
	}
	s.logger.Info().Uint("reg_no", regNo).Msg("patient deleted")
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Search with a blank query lists every patient.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, query, limit, offset)
}
