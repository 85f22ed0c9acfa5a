// Package app wires the store, catalogs, services and document pipeline
// into one application context shared by the CLI and the local API.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/rxpad/rxpad/internal/config"
	"github.com/rxpad/rxpad/internal/document"
	"github.com/rxpad/rxpad/internal/domain/catalog"
	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/image"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/domain/prescription"
	"github.com/rxpad/rxpad/internal/platform/db"
	"github.com/rxpad/rxpad/internal/platform/imagestore"
)

type App struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     *gorm.DB
	FS     afero.Fs

	Doctor        *doctor.Service
	Patients      *patient.Service
	Prescriptions *prescription.Service
	Images        *image.Service
	Catalogs      *catalog.Set
	Documents     *document.Generator
	Printer       *document.PrintService
}

// Models lists every table the store holds.
func Models() []interface{} {
	return []interface{}{
		&doctor.Profile{},
		&patient.Patient{},
		&prescription.Prescription{},
		&image.PatientImage{},
	}
}

// NewLogger builds the process logger: JSON on w, or human-readable output
// in development.
func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// Open connects to the configured store, brings the schema up to date and
// builds the application on the host file system.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("driver", cfg.DatabaseDriver).Msg("connected to database")

	if err := db.Migrate(ctx, gdb, logger, Models()...); err != nil {
		db.Close(gdb)
		return nil, err
	}

	a, err := Build(ctx, cfg, gdb, afero.NewOsFs(), logger)
	if err != nil {
		db.Close(gdb)
		return nil, err
	}
	return a, nil
}

// Build assembles the application on an open store and file system. The
// schema must already exist.
func Build(ctx context.Context, cfg *config.Config, gdb *gorm.DB, fs afero.Fs, logger zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, DB: gdb, FS: fs}

	a.Doctor = doctor.NewService(doctor.NewRepo(gdb), logger)
	if err := a.Doctor.Load(ctx); err != nil {
		return nil, fmt.Errorf("load doctor profile: %w", err)
	}

	a.Prescriptions = prescription.NewService(prescription.NewRepo(gdb), logger)
	patientRepo := patient.NewRepo(gdb)
	a.Images = image.NewService(image.NewRepo(gdb), imagestore.New(fs, cfg.ImagesDir), patientLookup{patientRepo}, logger)
	a.Patients = patient.NewService(patientRepo, db.NewRunner(gdb), logger, a.Prescriptions, a.Images)

	a.Catalogs = catalog.LoadAll(fs, cfg.CatalogDir, logger)

	a.Documents = document.NewGenerator(fs, document.Options{
		FontFile: cfg.PDFFontFile,
		Compress: cfg.PDFCompress,
	})
	a.Printer = document.NewPrintService(a.Documents, document.NewCommandPrinter(cfg.PrintCommand), cfg.PrintCleanupDelay, logger)
	return a, nil
}

// patientLookup reads patients straight from the store. The image service
// is built before the patient service, which depends on it.
type patientLookup struct {
	repo patient.Repository
}

func (l patientLookup) Get(ctx context.Context, regNo uint) (*patient.Patient, error) {
	return l.repo.GetByRegNo(ctx, regNo)
}

// Close releases the store.
func (a *App) Close() error {
	return db.Close(a.DB)
}

// NewDraft starts a prescription draft for the patient with regNo.
func (a *App) NewDraft(ctx context.Context, regNo uint) (*prescription.Draft, error) {
	p, err := a.Patients.Get(ctx, regNo)
	if err != nil {
		return nil, err
	}
	d := prescription.NewDraft()
	d.SelectPatient(p)
	return d, nil
}

// SavePrescription finalizes d with the current doctor profile frozen in.
func (a *App) SavePrescription(ctx context.Context, d *prescription.Draft) (*prescription.Prescription, error) {
	return a.Prescriptions.Finalize(ctx, d, a.Doctor.Profile())
}

// AddCustomDrug adds a free-text drug to the catalog, unless it is already
// there, and appends it to d.
func (a *App) AddCustomDrug(d *prescription.Draft, name string, line prescription.DrugLine) (catalog.Drug, error) {
	drug, err := a.Catalogs.Drugs.AddCustom(name)
	if err != nil && !errors.Is(err, catalog.ErrDuplicate) {
		return catalog.Drug{}, err
	}
	line.Formulation = drug.Formulation
	if err := d.AddDrug(line); err != nil {
		return catalog.Drug{}, err
	}
	return drug, nil
}

// AddCustomInvestigation adds name to the investigation catalog, then to d.
// d is left unchanged when the catalog cannot be written.
func (a *App) AddCustomInvestigation(d *prescription.Draft, name string) error {
	if err := remember(a.Catalogs.Investigations, name); err != nil {
		return err
	}
	return d.AddInvestigation(name)
}

// AddCustomAdvice adds line to the advice catalog, then to d.
func (a *App) AddCustomAdvice(d *prescription.Draft, line string) error {
	if err := remember(a.Catalogs.Advice, line); err != nil {
		return err
	}
	return d.AddAdvice(line)
}

func remember(l *catalog.List, entry string) error {
	if err := l.Add(entry); err != nil && !errors.Is(err, catalog.ErrDuplicate) {
		return err
	}
	return nil
}

// DraftBundle bundles d with the current doctor profile for rendering.
func (a *App) DraftBundle(d *prescription.Draft) (document.Bundle, error) {
	return document.FromDraft(d, a.Doctor.Profile())
}

// StoredBundle bundles a saved prescription with its patient.
func (a *App) StoredBundle(ctx context.Context, id uint) (document.Bundle, error) {
	rx, err := a.Prescriptions.Get(ctx, id)
	if err != nil {
		return document.Bundle{}, err
	}
	p, err := a.Patients.Get(ctx, rx.PatientRegNo)
	if err != nil {
		return document.Bundle{}, err
	}
	return document.FromPrescription(rx, p), nil
}

// PreviewBundle bundles unsaved sections for the patient with regNo.
func (a *App) PreviewBundle(ctx context.Context, regNo uint, content prescription.Sections) (document.Bundle, error) {
	p, err := a.Patients.Get(ctx, regNo)
	if err != nil {
		return document.Bundle{}, err
	}
	d, err := prescription.DraftFromSections(p, content)
	if err != nil {
		return document.Bundle{}, err
	}
	return a.DraftBundle(d)
}
