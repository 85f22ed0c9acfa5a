package doctor

import "context"

type Repository interface {
	// Get returns the stored profile or a not-found storage error.
	Get(ctx context.Context) (*Profile, error)
	// Save inserts the profile when none exists, otherwise updates the
	// existing row in place.
	Save(ctx context.Context, p *Profile) error
}
