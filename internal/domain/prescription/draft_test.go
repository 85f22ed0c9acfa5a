package prescription

import (
	"testing"

	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
)

func TestDraft_AddKeepsOrderAndDuplicates(t *testing.T) {
	d := NewDraft()
	for _, inv := range []string{"CBC", "RBS", "CBC"} {
		if err := d.AddInvestigation(inv); err != nil {
			t.Fatalf("add investigation: %v", err)
		}
	}
	if len(d.Investigations) != 3 || d.Investigations[2] != "CBC" {
		t.Errorf("unexpected investigations %q", d.Investigations)
	}

	d.AddDrug(DrugLine{Formulation: "Tab. Napa 500mg", Dosage: "1+1+1", Duration: "5 days"})
	d.AddDrug(DrugLine{Formulation: "Cap. Seclo 20mg", Dosage: "1+0+1"})
	d.AddDrug(DrugLine{Formulation: "Tab. Napa 500mg", Dosage: "1+1+1"})
	if len(d.Drugs) != 3 || d.Drugs[1].Formulation != "Cap. Seclo 20mg" {
		t.Errorf("unexpected drugs %+v", d.Drugs)
	}
}

func TestDraft_AddRejectsBlank(t *testing.T) {
	d := NewDraft()
	if err := d.AddInvestigation("  "); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := d.AddAdvice(""); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := d.AddDrug(DrugLine{Formulation: "Tab. Napa"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected dosage to be required, got %v", err)
	}
	if err := d.AddDrug(DrugLine{Dosage: "1+1+1"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected formulation to be required, got %v", err)
	}
	if len(d.Investigations)+len(d.Advice)+len(d.Drugs) != 0 {
		t.Error("rejected entries must not be added")
	}
}

func TestDraft_ValidateRequiresPatient(t *testing.T) {
	d := NewDraft()
	d.ChiefComplaints = "Fever"
	if err := d.Validate(); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	d.SelectPatient(&patient.Patient{RegNo: 3, Name: "Rahim"})
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDraft_SaveThenNewPatientClears(t *testing.T) {
	d := NewDraft()
	d.SelectPatient(&patient.Patient{RegNo: 1})
	d.ChiefComplaints = "Fever"

	// Switching patients before a save keeps the work.
	d.SelectPatient(&patient.Patient{RegNo: 2})
	if d.ChiefComplaints != "Fever" {
		t.Fatal("unsaved draft must not be cleared")
	}

	d.MarkSaved(10)
	d.SelectPatient(&patient.Patient{RegNo: 2})
	if d.ChiefComplaints != "Fever" {
		t.Fatal("reselecting the same patient must not clear")
	}

	d.SelectPatient(&patient.Patient{RegNo: 3})
	if d.ChiefComplaints != "" || d.SavedID() != 0 {
		t.Errorf("expected cleared draft, got %+v", d.Sections)
	}
	if d.Patient().RegNo != 3 {
		t.Errorf("expected patient 3, got %d", d.Patient().RegNo)
	}
}

func TestDraft_ClearKeepsPatient(t *testing.T) {
	d := NewDraft()
	d.SelectPatient(&patient.Patient{RegNo: 1})
	d.AddAdvice("Rest")
	d.Clear()
	if len(d.Advice) != 0 || d.Patient() == nil {
		t.Errorf("unexpected state after clear: %+v", d)
	}
}

func TestDraft_PrescriptionCopiesSections(t *testing.T) {
	d := NewDraft()
	d.SelectPatient(&patient.Patient{RegNo: 4})
	d.AddInvestigation("CBC")
	d.SetAdviceText("Drink water\n\nRest well")
	d.SetVitals(Vitals{BP: "120/80"})

	doc := doctor.DefaultProfile()
	p := d.Prescription(doc)
	if p.PatientRegNo != 4 || p.Vitals.BP != "120/80" {
		t.Errorf("unexpected prescription %+v", p)
	}
	if p.Advice.Text() != "Drink water\n\nRest well" {
		t.Errorf("unexpected advice %q", p.Advice.Text())
	}
	if p.DoctorSnapshot().Name != doc.Name {
		t.Errorf("doctor snapshot not set")
	}

	d.Investigations[0] = "changed"
	if p.Investigations[0] != "CBC" {
		t.Error("prescription must not share slices with the draft")
	}
}
