package prescription

import "context"

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uint) (*Prescription, error)
	// ListByPatient returns the patient's prescriptions, newest first.
	ListByPatient(ctx context.Context, regNo uint) ([]*Prescription, error)
	DeleteByPatient(ctx context.Context, regNo uint) (int64, error)
}
