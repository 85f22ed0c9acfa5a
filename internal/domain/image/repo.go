package image

import "context"

type Repository interface {
	Create(ctx context.Context, img *PatientImage) error
	GetByID(ctx context.Context, id uint) (*PatientImage, error)
	// ListByPatient returns the patient's images, newest first.
	ListByPatient(ctx context.Context, regNo uint) ([]*PatientImage, error)
	UpdateDescription(ctx context.Context, id uint, description string) error
	Delete(ctx context.Context, id uint) error
	// DeleteByPatient removes every image record of regNo and returns the
	// removed records.
	DeleteByPatient(ctx context.Context, regNo uint) ([]*PatientImage, error)
}
