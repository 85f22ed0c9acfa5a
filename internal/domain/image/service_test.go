package image

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/internal/platform/db"
	"github.com/rxpad/rxpad/internal/platform/imagestore"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00")

type stubPatients map[uint]*patient.Patient

func (s stubPatients) Get(_ context.Context, regNo uint) (*patient.Patient, error) {
	p, ok := s[regNo]
	if !ok {
		return nil, apperr.NotFound("patient get", "patient", regNo)
	}
	return p, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(context.Background(), db.DriverSQLite, filepath.Join(t.TempDir(), "rx.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := db.Migrate(context.Background(), gdb, zerolog.Nop(), &PatientImage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

type fixture struct {
	svc  *Service
	repo Repository
	fs   afero.Fs
	gdb  *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := openTestDB(t)
	fs := afero.NewMemMapFs()
	repo := NewRepo(gdb)
	svc := NewService(repo, imagestore.New(fs, "patient_images"), stubPatients{
		1: {RegNo: 1, Name: "Rahim"},
		2: {RegNo: 2, Name: "Fatema"},
	}, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, repo: repo, fs: fs, gdb: gdb}
}

func TestService_Upload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	img, err := f.svc.Upload(ctx, 1, "xray.png", bytes.NewReader(pngBytes), "  Chest X-ray ")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if img.Description != "Chest X-ray" {
		t.Errorf("expected trimmed description, got %q", img.Description)
	}
	if filepath.Base(img.Path) != "1_20240305_090000_xray.png" {
		t.Errorf("unexpected path %s", img.Path)
	}
	if ok, _ := afero.Exists(f.fs, img.Path); !ok {
		t.Error("file not stored")
	}

	list, _ := f.svc.List(ctx, 1)
	if len(list) != 1 || list[0].ID != img.ID {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestService_UploadUnknownPatient(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upload(context.Background(), 9, "xray.png", bytes.NewReader(pngBytes), "")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_UploadNotAnImage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upload(context.Background(), 1, "notes.txt", bytes.NewReader([]byte("hi")), "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_ImportMissingFile(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Import(context.Background(), 1, "/nowhere/scan.jpg", "")
	if !apperr.Is(err, apperr.KindFileSystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

type failingRepo struct {
	Repository
}

func (failingRepo) Create(context.Context, *PatientImage) error {
	return apperr.Storage("image create", errors.New("disk full"))
}

func TestService_UploadRemovesFileWhenInsertFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(failingRepo{}, imagestore.New(fs, "patient_images"), stubPatients{1: {RegNo: 1}}, zerolog.Nop())

	_, err := svc.Upload(context.Background(), 1, "xray.png", bytes.NewReader(pngBytes), "")
	if !apperr.Is(err, apperr.KindStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	entries, _ := afero.ReadDir(fs, "patient_images")
	if len(entries) != 0 {
		t.Errorf("expected copied file removed, found %d entries", len(entries))
	}
}

func TestService_UpdateDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	img, _ := f.svc.Upload(ctx, 1, "xray.png", bytes.NewReader(pngBytes), "old")

	got, err := f.svc.UpdateDescription(ctx, img.ID, "Follow-up X-ray")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description != "Follow-up X-ray" {
		t.Errorf("unexpected description %q", got.Description)
	}
	if _, err := f.svc.UpdateDescription(ctx, 999, "x"); !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	img, _ := f.svc.Upload(ctx, 1, "xray.png", bytes.NewReader(pngBytes), "")

	if err := f.svc.Delete(ctx, img.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := afero.Exists(f.fs, img.Path); ok {
		t.Error("file still present")
	}
	if _, err := f.svc.Get(ctx, img.ID); !apperr.IsNotFound(err) {
		t.Errorf("record still present: %v", err)
	}
}

func TestService_DeleteMissingFileIsNotFatal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	img, _ := f.svc.Upload(ctx, 1, "xray.png", bytes.NewReader(pngBytes), "")
	f.fs.Remove(img.Path)

	if err := f.svc.Delete(ctx, img.ID); err != nil {
		t.Fatalf("expected best-effort file removal, got %v", err)
	}
	if _, err := f.svc.Get(ctx, img.ID); !apperr.IsNotFound(err) {
		t.Errorf("record still present: %v", err)
	}
}

func TestService_PurgePatient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Upload(ctx, 1, "a.png", bytes.NewReader(pngBytes), "")
	b, _ := f.svc.Upload(ctx, 1, "b.png", bytes.NewReader(pngBytes), "")
	other, _ := f.svc.Upload(ctx, 2, "c.png", bytes.NewReader(pngBytes), "")

	var after func()
	err := db.WithTx(ctx, f.gdb, func(ctx context.Context) error {
		var err error
		after, err = f.svc.PurgePatient(ctx, 1)
		return err
	})
	if err != nil {
		t.Fatalf("purge: %v", err)
	}

	// Files stay until the post-commit step runs.
	if ok, _ := afero.Exists(f.fs, a.Path); !ok {
		t.Fatal("file removed before commit")
	}
	after()
	for _, img := range []*PatientImage{a, b} {
		if ok, _ := afero.Exists(f.fs, img.Path); ok {
			t.Errorf("file %s not removed", img.Path)
		}
	}
	if ok, _ := afero.Exists(f.fs, other.Path); !ok {
		t.Error("other patient's file removed")
	}
	left, _ := f.svc.List(ctx, 1)
	if len(left) != 0 {
		t.Errorf("expected no records left, got %d", len(left))
	}
}

func TestService_PurgePatientNothingToDo(t *testing.T) {
	f := newFixture(t)
	after, err := f.svc.PurgePatient(context.Background(), 1)
	if err != nil || after != nil {
		t.Errorf("expected no-op, got %v / %v", after != nil, err)
	}
}
