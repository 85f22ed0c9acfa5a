package image

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/imagestore"
)

// PatientLookup resolves the owner of an image.
type PatientLookup interface {
	Get(ctx context.Context, regNo uint) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	files    *imagestore.Store
	patients PatientLookup
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, files *imagestore.Store, patients PatientLookup, logger zerolog.Logger) *Service {
	return &Service{repo: repo, files: files, patients: patients, logger: logger, now: time.Now}
}

// Upload stores content as a new image of regNo. When the record cannot be
// written the copied file is removed again.
func (s *Service) Upload(ctx context.Context, regNo uint, fileName string, content io.Reader, description string) (*PatientImage, error) {
	if _, err := s.patients.Get(ctx, regNo); err != nil {
		return nil, err
	}
	stored, err := s.files.Save(regNo, fileName, content, s.now())
	if err != nil {
		return nil, fileError("image upload", err)
	}
	return s.record(ctx, regNo, stored, description)
}

// Import copies the file at srcPath as a new image of regNo.
func (s *Service) Import(ctx context.Context, regNo uint, srcPath, description string) (*PatientImage, error) {
	if _, err := s.patients.Get(ctx, regNo); err != nil {
		return nil, err
	}
	stored, err := s.files.Import(regNo, srcPath, s.now())
	if err != nil {
		return nil, fileError("image import", err)
	}
	return s.record(ctx, regNo, stored, description)
}

func (s *Service) record(ctx context.Context, regNo uint, stored *imagestore.Stored, description string) (*PatientImage, error) {
	img := &PatientImage{
		PatientRegNo: regNo,
		Path:         stored.Path,
		Description:  strings.TrimSpace(description),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		if rmErr := s.files.Remove(stored.Path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", stored.Path).Msg("could not remove image after failed insert")
		}
		return nil, err
	}
	s.logger.Info().Uint("id", img.ID).Uint("reg_no", regNo).Str("path", img.Path).Int64("bytes", stored.Size).Msg("image stored")
	return img, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*PatientImage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, regNo uint) ([]*PatientImage, error) {
	return s.repo.ListByPatient(ctx, regNo)
}

func (s *Service) UpdateDescription(ctx context.Context, id uint, description string) (*PatientImage, error) {
	if err := s.repo.UpdateDescription(ctx, id, strings.TrimSpace(description)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Open returns the image record and its file.
func (s *Service) Open(ctx context.Context, id uint) (*PatientImage, afero.File, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.files.Open(img.Path)
	if err != nil {
		return nil, nil, fileError("image open", err)
	}
	return img, f, nil
}

// Delete removes the record, then the file. A file that cannot be removed
// is logged and left behind.
func (s *Service) Delete(ctx context.Context, id uint) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(img)
	return nil
}

// PurgePatient deletes the image records of regNo. The files are removed by
// the returned func once the surrounding transaction has committed.
func (s *Service) PurgePatient(ctx context.Context, regNo uint) (func(), error) {
	removed, err := s.repo.DeleteByPatient(ctx, regNo)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}
	return func() {
		for _, img := range removed {
			s.removeFile(img)
		}
	}, nil
}

func (s *Service) removeFile(img *PatientImage) {
	if err := s.files.Remove(img.Path); err != nil {
		s.logger.Warn().Err(err).Uint("id", img.ID).Str("path", img.Path).Msg("could not delete image file")
	}
}

func fileError(op string, err error) error {
	switch {
	case errors.Is(err, imagestore.ErrNotImage),
		errors.Is(err, imagestore.ErrMissingFileName),
		errors.Is(err, imagestore.ErrFileTooLarge):
		return apperr.Validation(op, "%v", err)
	default:
		return apperr.FileSystem(op, err)
	}
}
