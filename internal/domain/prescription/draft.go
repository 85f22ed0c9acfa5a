package prescription

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/form"
)

// Sections is the operator-editable content of a prescription.
type Sections struct {
	ChiefComplaints string     `json:"chief_complaints"`
	Diagnosis       string     `json:"diagnosis"`
	Vitals          Vitals     `json:"vitals"`
	SystemicExam    string     `json:"systemic_exam"`
	Investigations  []string   `json:"investigations"`
	Drugs           []DrugLine `json:"drugs"`
	Advice          []string   `json:"advice"`
	FollowUp        string     `json:"follow_up"`
}

// Draft accumulates the prescription being composed. It is never persisted
// on its own; Service.Finalize turns it into a stored Prescription.
//
// Every add appends and keeps duplicates. Sections are cleared only by Clear
// or by selecting a different patient after the draft was saved.
type Draft struct {
	Sections

	patient *patient.Patient
	savedID uint
}

func NewDraft() *Draft {
	return &Draft{}
}

// SelectPatient associates the draft with p.
func (d *Draft) SelectPatient(p *patient.Patient) {
	if d.savedID != 0 && (d.patient == nil || p == nil || d.patient.RegNo != p.RegNo) {
		d.Clear()
	}
	d.patient = p
}

// Patient returns the selected patient, or nil.
func (d *Draft) Patient() *patient.Patient {
	return d.patient
}

// SavedID is the id of the prescription the draft was last saved as, or 0.
func (d *Draft) SavedID() uint {
	return d.savedID
}

func (d *Draft) MarkSaved(id uint) {
	d.savedID = id
}

// Clear empties every section. The selected patient stays.
func (d *Draft) Clear() {
	d.Sections = Sections{}
	d.savedID = 0
}

func (d *Draft) SetVitals(v Vitals) {
	d.Vitals = v
}

func (d *Draft) AddInvestigation(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("draft add investigation", "investigation is required")
	}
	d.Investigations = append(d.Investigations, name)
	return nil
}

func (d *Draft) AddAdvice(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return apperr.Validation("draft add advice", "advice is required")
	}
	d.Advice = append(d.Advice, line)
	return nil
}

// SetAdviceText replaces the advice with free text, one line per entry.
func (d *Draft) SetAdviceText(text string) {
	d.Advice = ParseLines(text)
}

// AddDrug appends a medication line. Formulation and dosage are required.
func (d *Draft) AddDrug(line DrugLine) error {
	line.Formulation = strings.TrimSpace(line.Formulation)
	line.Dosage = strings.TrimSpace(line.Dosage)
	line.Duration = strings.TrimSpace(line.Duration)
	line.Instructions = strings.TrimSpace(line.Instructions)
	if err := form.ValidateStruct("draft add drug", &line); err != nil {
		return err
	}
	d.Drugs = append(d.Drugs, line)
	return nil
}

// Validate reports whether the draft can be saved.
func (d *Draft) Validate() error {
	if d.patient == nil || d.patient.RegNo == 0 {
		return apperr.Validation("prescription save", "no patient selected")
	}
	for i, line := range d.Drugs {
		if err := form.ValidateStruct(fmt.Sprintf("prescription save drug line %d", i+1), &line); err != nil {
			return err
		}
	}
	return nil
}

// Prescription builds the record the draft would be saved as.
func (d *Draft) Prescription(doc doctor.Profile) *Prescription {
	p := &Prescription{
		ChiefComplaints: d.ChiefComplaints,
		Diagnosis:       d.Diagnosis,
		Vitals:          d.Vitals,
		SystemicExam:    d.SystemicExam,
		Investigations:  append(LineList(nil), d.Investigations...),
		Drugs:           append([]DrugLine(nil), d.Drugs...),
		Advice:          append(LineList(nil), d.Advice...),
		FollowUp:        d.FollowUp,
		Doctor:          datatypes.NewJSONType(doc),
	}
	if d.patient != nil {
		p.PatientRegNo = d.patient.RegNo
	}
	return p
}
