package prescription

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/patient"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Finalize stores the draft with doc frozen into the row and marks the draft
// as saved. A draft without a patient is rejected.
func (s *Service) Finalize(ctx context.Context, d *Draft, doc doctor.Profile) (*Prescription, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p := d.Prescription(doc)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	d.MarkSaved(p.ID)
	s.logger.Info().Uint("id", p.ID).Uint("reg_no", p.PatientRegNo).Int("drugs", len(p.Drugs)).Msg("prescription saved")
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, regNo uint) ([]*Prescription, error) {
	return s.repo.ListByPatient(ctx, regNo)
}

// History renders the prescription history of p as plain text.
func (s *Service) History(ctx context.Context, p *patient.Patient) (string, error) {
	list, err := s.repo.ListByPatient(ctx, p.RegNo)
	if err != nil {
		return "", err
	}
	return FormatHistory(p.Name, p.RegNo, list), nil
}

// PurgePatient deletes every prescription owned by regNo.
func (s *Service) PurgePatient(ctx context.Context, regNo uint) (func(), error) {
	n, err := s.repo.DeleteByPatient(ctx, regNo)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Uint("reg_no", regNo).Int64("prescriptions", n).Msg("prescriptions purged")
	return nil, nil
}
