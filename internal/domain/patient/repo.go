package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByRegNo(ctx context.Context, regNo uint) (*Patient, error)
	// Update writes every mutable field in one statement.
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, regNo uint) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Search matches name or phone by substring, ignoring case. A numeric
	// query equal to an existing registration number returns only that
	// patient.
	Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)
}
