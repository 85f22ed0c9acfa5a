package doctor

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/form"
)

// Service owns the current doctor profile. The profile is read from the
// store by Load and re-read after every Save; in between, Profile serves the
// cached copy.
type Service struct {
	repo   Repository
	logger zerolog.Logger

	mu      sync.RWMutex
	current Profile
	stored  bool
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, current: DefaultProfile()}
}

// Load reads the stored profile. With no stored profile the defaults stay
// in place and Stored reports false.
func (s *Service) Load(ctx context.Context) error {
	p, err := s.repo.Get(ctx)
	if apperr.IsNotFound(err) {
		s.mu.Lock()
		s.current, s.stored = DefaultProfile(), false
		s.mu.Unlock()
		s.logger.Info().Msg("no doctor profile saved yet; using defaults")
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current, s.stored = *p, true
	s.mu.Unlock()
	return nil
}

// Profile returns a copy of the current profile.
func (s *Service) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Stored reports whether the current profile came from the store.
func (s *Service) Stored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stored
}

// Save validates and persists p, then reloads the cached profile.
func (s *Service) Save(ctx context.Context, p *Profile) (Profile, error) {
	if err := form.ValidateStruct("doctor save", p); err != nil {
		return Profile{}, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	if err := s.Load(ctx); err != nil {
		return Profile{}, err
	}
	return s.Profile(), nil
}
