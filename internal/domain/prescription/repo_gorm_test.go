package prescription

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/db"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(context.Background(), db.DriverSQLite, filepath.Join(t.TempDir(), "rx.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := db.Migrate(context.Background(), gdb, zerolog.Nop(), &patient.Patient{}, &Prescription{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func sampleDraft(regNo uint) *Draft {
	d := NewDraft()
	d.SelectPatient(&patient.Patient{RegNo: regNo, Name: "Rahim"})
	d.ChiefComplaints = "Fever for 3 days\nHeadache"
	d.Diagnosis = "Viral fever"
	d.SystemicExam = "NAD"
	d.FollowUp = "7 days"
	d.SetVitals(Vitals{BP: "120/80", Pulse: "72"})
	d.AddInvestigation("CBC")
	d.AddInvestigation("CBC")
	d.AddDrug(DrugLine{Formulation: "Tab. Napa 500mg", Dosage: "1+1+1", Duration: "5 days", Instructions: "After meal"})
	d.AddDrug(DrugLine{Formulation: "Syr. Ace", Dosage: "১+১+১", Duration: "৩ দিন", Instructions: "খাবার পরে"})
	d.AddAdvice("বিশ্রাম নিন")
	d.AddAdvice("Drink plenty of water")
	return d
}

func TestRepo_RoundTrip(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	in := sampleDraft(5).Prescription(doctor.DefaultProfile())
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("expected id")
	}

	got, err := repo.GetByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PatientRegNo != 5 || got.ChiefComplaints != in.ChiefComplaints || got.FollowUp != "7 days" {
		t.Errorf("scalar fields differ: %+v", got)
	}
	if got.Vitals != in.Vitals {
		t.Errorf("vitals differ: %+v vs %+v", got.Vitals, in.Vitals)
	}
	if !reflect.DeepEqual(got.Drugs, in.Drugs) {
		t.Errorf("drugs differ: %+v", got.Drugs)
	}
	if !reflect.DeepEqual(got.Investigations, in.Investigations) || !reflect.DeepEqual(got.Advice, in.Advice) {
		t.Errorf("lists differ: %q %q", got.Investigations, got.Advice)
	}
	if got.DoctorSnapshot().Name != doctor.DefaultProfile().Name {
		t.Errorf("doctor snapshot lost: %+v", got.DoctorSnapshot())
	}
}

func TestRepo_SnapshotIsFrozen(t *testing.T) {
	gdb := openTestDB(t)
	if err := db.Migrate(context.Background(), gdb, zerolog.Nop(), &doctor.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	docs := doctor.NewRepo(gdb)
	repo := NewRepo(gdb)

	before := doctor.DefaultProfile()
	before.Name = "Karim"
	docs.Save(ctx, &before)

	rx := sampleDraft(1).Prescription(before)
	if err := repo.Create(ctx, rx); err != nil {
		t.Fatalf("create: %v", err)
	}

	after := before
	after.Name = "Karim Uddin"
	after.Designation = "Professor"
	docs.Save(ctx, &after)

	got, _ := repo.GetByID(ctx, rx.ID)
	snap := got.DoctorSnapshot()
	if snap.Name != "Karim" || snap.Designation != before.Designation {
		t.Errorf("historical prescription changed with the profile: %+v", snap)
	}
}

func TestRepo_GetMissing(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	if _, err := repo.GetByID(context.Background(), 3); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepo_ListByPatientNewestFirst(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 3; i++ {
		p := sampleDraft(7).Prescription(doctor.DefaultProfile())
		repo.Create(ctx, p)
		ids = append(ids, p.ID)
	}
	repo.Create(ctx, sampleDraft(8).Prescription(doctor.DefaultProfile()))

	got, err := repo.ListByPatient(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].ID != ids[2] || got[2].ID != ids[0] {
		t.Errorf("expected newest first, got %d..%d", got[0].ID, got[2].ID)
	}
}

func TestRepo_DeleteByPatient(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()
	repo.Create(ctx, sampleDraft(7).Prescription(doctor.DefaultProfile()))
	repo.Create(ctx, sampleDraft(7).Prescription(doctor.DefaultProfile()))
	keep := sampleDraft(8).Prescription(doctor.DefaultProfile())
	repo.Create(ctx, keep)

	n, err := repo.DeleteByPatient(ctx, 7)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 deleted, got %d (%v)", n, err)
	}
	left, _ := repo.ListByPatient(ctx, 7)
	if len(left) != 0 {
		t.Errorf("expected none left, got %d", len(left))
	}
	if _, err := repo.GetByID(ctx, keep.ID); err != nil {
		t.Errorf("other patient's prescription removed: %v", err)
	}
}

func TestService_CascadeThroughPatientDelete(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	rxSvc := NewService(NewRepo(gdb), zerolog.Nop())
	patients := patient.NewService(patient.NewRepo(gdb), db.NewRunner(gdb), zerolog.Nop(), rxSvc)

	p := &patient.Patient{Name: "Rahim", Gender: "Male"}
	if err := patients.Register(ctx, p); err != nil {
		t.Fatalf("register: %v", err)
	}
	d := sampleDraft(p.RegNo)
	d.SelectPatient(p)
	if _, err := rxSvc.Finalize(ctx, d, doctor.DefaultProfile()); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if err := patients.Delete(ctx, p.RegNo); err != nil {
		t.Fatalf("delete: %v", err)
	}
	left, _ := rxSvc.ListByPatient(ctx, p.RegNo)
	if len(left) != 0 {
		t.Errorf("expected prescriptions deleted with the patient, %d remain", len(left))
	}
	found, _, _ := patients.Search(ctx, "", 0, 0)
	if len(found) != 0 {
		t.Errorf("deleted patient still listed")
	}
}
