package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/rxpad/rxpad/internal/config"
	"github.com/rxpad/rxpad/internal/domain/catalog"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/domain/prescription"
	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/auth"
	"github.com/rxpad/rxpad/internal/platform/db"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:               "test",
		DatabaseDriver:    config.DriverSQLite,
		DataDir:           "/data",
		CatalogDir:        "/data",
		ImagesDir:         "/data/patient_images",
		PrintCommand:      "true",
		PrintCleanupDelay: time.Second,
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "rx.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := db.Migrate(ctx, gdb, zerolog.Nop(), Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	a, err := Build(ctx, testConfig(), gdb, afero.NewMemMapFs(), zerolog.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return a
}

func registerPatient(t *testing.T, a *App, name string) *patient.Patient {
	t.Helper()
	p := &patient.Patient{Name: name, Age: 30, Gender: "Male", Weight: 70}
	if err := a.Patients.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	return p
}

func TestApp_DraftToStoredBundle(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	p := registerPatient(t, a, "Abdul Karim")

	d, err := a.NewDraft(ctx, p.RegNo)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}
	d.ChiefComplaints = "Cough"
	drug, err := a.AddCustomDrug(d, "Paracetamol Syrup", prescription.DrugLine{Dosage: "2 tsp", Duration: "5 days"})
	if err != nil {
		t.Fatalf("add drug: %v", err)
	}
	if drug.Formulation != "Syr. Paracetamol Syrup" || d.Drugs[0].Formulation != drug.Formulation {
		t.Fatalf("unexpected drug %+v / %+v", drug, d.Drugs)
	}
	if _, err := a.AddCustomDrug(d, "paracetamol syrup", prescription.DrugLine{Dosage: "1 tsp"}); err != nil {
		t.Fatalf("second add should reuse the catalog entry: %v", err)
	}
	if len(d.Drugs) != 2 || len(a.Catalogs.Drugs.Filter("paracetamol syrup")) != 1 {
		t.Errorf("expected two draft lines and one catalog entry")
	}
	if err := a.AddCustomInvestigation(d, "Sputum AFB"); err != nil {
		t.Fatalf("add investigation: %v", err)
	}
	if err := a.AddCustomInvestigation(d, "Sputum AFB"); err != nil {
		t.Fatalf("repeat investigation: %v", err)
	}
	if !a.Catalogs.Investigations.Contains("Sputum AFB") || len(d.Investigations) != 2 {
		t.Errorf("expected the investigation in the catalog and twice in the draft")
	}
	if err := a.AddCustomAdvice(d, "Steam inhalation"); err != nil {
		t.Fatalf("add advice: %v", err)
	}

	rx, err := a.SavePrescription(ctx, d)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := a.StoredBundle(ctx, rx.ID)
	if err != nil {
		t.Fatalf("stored bundle: %v", err)
	}
	if b.Patient.Name != "Abdul Karim" || b.Doctor.Name != "Your Name" || len(b.Content.Drugs) != 2 {
		t.Errorf("unexpected bundle %+v", b)
	}
}

func TestApp_SaveWithoutPatient(t *testing.T) {
	a := newTestApp(t)
	_, err := a.SavePrescription(context.Background(), prescription.NewDraft())
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApp_AddCustomDrugStorageFailure(t *testing.T) {
	a := newTestApp(t)
	a.Catalogs = catalog.LoadAll(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data", zerolog.Nop())

	d := prescription.NewDraft()
	_, err := a.AddCustomDrug(d, "Zinc Syrup", prescription.DrugLine{Dosage: "1 tsp"})
	if !apperr.Is(err, apperr.KindStorage) || errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(d.Drugs) != 0 {
		t.Error("expected the draft unchanged")
	}
}

func TestApp_AddCustomLinesStorageFailure(t *testing.T) {
	a := newTestApp(t)
	a.Catalogs = catalog.LoadAll(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data", zerolog.Nop())

	d := prescription.NewDraft()
	if err := a.AddCustomInvestigation(d, "Serum Ferritin"); !apperr.Is(err, apperr.KindStorage) {
		t.Errorf("investigation: expected storage error, got %v", err)
	}
	if err := a.AddCustomAdvice(d, "Avoid cold drinks for a week"); !apperr.Is(err, apperr.KindStorage) {
		t.Errorf("advice: expected storage error, got %v", err)
	}
	if len(d.Investigations) != 0 || len(d.Advice) != 0 {
		t.Errorf("expected the draft unchanged, got %v and %v", d.Investigations, d.Advice)
	}
}

func TestApp_AddCustomLinesAcceptsKnownEntries(t *testing.T) {
	a := newTestApp(t)
	d := prescription.NewDraft()

	for i := 0; i < 2; i++ {
		if err := a.AddCustomAdvice(d, "  Drink plenty of water  "); err != nil {
			t.Fatalf("advice %d: %v", i, err)
		}
	}
	if len(d.Advice) != 2 || d.Advice[0] != "Drink plenty of water" {
		t.Errorf("expected the line twice in the draft, got %v", d.Advice)
	}
	if got := a.Catalogs.Advice.Filter("plenty of water"); len(got) != 1 {
		t.Errorf("expected one catalog entry, got %v", got)
	}
	if err := a.AddCustomInvestigation(d, "   "); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for a blank name, got %v", err)
	}
}

func do(t *testing.T, a *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.Server().ServeHTTP(rec, req)
	return rec
}

func TestServer_PrescriptionLifecycle(t *testing.T) {
	a := newTestApp(t)

	rec := do(t, a, http.MethodPost, "/api/v1/patients", `{"name":"Salma Khatun","age":35,"gender":"Female","weight":55}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create patient: %d %s", rec.Code, rec.Body.String())
	}
	var p patient.Patient
	json.Unmarshal(rec.Body.Bytes(), &p)

	rxBody := `{"chief_complaints":"Fever","vitals":{"bp":"110/70"},"drugs":[{"formulation":"Tab. Napa 500mg","dosage":"1+1+1"}],"advice":["Rest"]}`
	rec = do(t, a, http.MethodPost, fmt.Sprintf("/api/v1/patients/%d/prescriptions", p.RegNo), rxBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create prescription: %d %s", rec.Code, rec.Body.String())
	}
	var rx prescription.Prescription
	json.Unmarshal(rec.Body.Bytes(), &rx)

	rec = do(t, a, http.MethodGet, fmt.Sprintf("/api/v1/prescriptions/%d/document", rx.ID), "")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("document: %d", rec.Code)
	}

	rec = do(t, a, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/history", p.RegNo), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Salma Khatun") {
		t.Fatalf("history: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, a, http.MethodDelete, fmt.Sprintf("/api/v1/patients/%d", p.RegNo), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete patient: %d", rec.Code)
	}
	rec = do(t, a, http.MethodGet, fmt.Sprintf("/api/v1/prescriptions/%d", rx.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected prescription removed with its patient, got %d", rec.Code)
	}
}

func TestServer_PreviewRequiresKnownPatient(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodPost, "/api/v1/documents/preview", `{"reg_no":99}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestServer_HealthAndCatalog(t *testing.T) {
	a := newTestApp(t)

	if rec := do(t, a, http.MethodGet, "/health/db", ""); rec.Code != http.StatusOK {
		t.Errorf("health: %d", rec.Code)
	}
	rec := do(t, a, http.MethodGet, "/api/v1/catalog/drugs?q=napa", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Tab. Napa 500mg") {
		t.Errorf("catalog: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, a, http.MethodGet, "/api/v1/doctor", ""); rec.Code != http.StatusOK {
		t.Errorf("doctor: %d", rec.Code)
	}
}

func TestServer_RequiresTokenWhenSecretSet(t *testing.T) {
	a := newTestApp(t)
	a.Config.APISecret = "a-long-enough-shared-secret"

	if rec := do(t, a, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health should stay open: %d", rec.Code)
	}
	if rec := do(t, a, http.MethodGet, "/api/v1/patients", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	tok, err := auth.IssueToken([]byte(a.Config.APISecret), "test", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	a.Server().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d %s", rec.Code, rec.Body.String())
	}
}
