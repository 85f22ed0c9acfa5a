package document

import (
	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/domain/prescription"
	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// Bundle is everything a prescription document shows.
type Bundle struct {
	Patient patient.Patient
	Doctor  doctor.Profile
	Content prescription.Sections
}

// FromDraft bundles an unsaved draft with the current doctor profile. The
// draft must have a patient selected.
func FromDraft(d *prescription.Draft, doc doctor.Profile) (Bundle, error) {
	p := d.Patient()
	if p == nil {
		return Bundle{}, apperr.Validation("document compose", "no patient selected")
	}
	return Bundle{Patient: *p, Doctor: doc, Content: d.Sections}, nil
}

// FromPrescription bundles a stored prescription with the doctor profile
// frozen into it.
func FromPrescription(rx *prescription.Prescription, p *patient.Patient) Bundle {
	return Bundle{Patient: *p, Doctor: rx.DoctorSnapshot(), Content: rx.Content()}
}
