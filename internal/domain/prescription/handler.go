package prescription

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// PatientLookup resolves the patient a prescription is written for.
type PatientLookup interface {
	Get(ctx context.Context, regNo uint) (*patient.Patient, error)
}

// DoctorSource supplies the current doctor profile.
type DoctorSource interface {
	Profile() doctor.Profile
}

type Handler struct {
	svc      *Service
	patients PatientLookup
	doctor   DoctorSource
}

func NewHandler(svc *Service, patients PatientLookup, doctor DoctorSource) *Handler {
	return &Handler{svc: svc, patients: patients, doctor: doctor}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:reg_no/prescriptions", h.ListPrescriptions)
	api.POST("/patients/:reg_no/prescriptions", h.CreatePrescription)
	api.GET("/patients/:reg_no/history", h.GetHistory)
	api.GET("/prescriptions/:id", h.GetPrescription)
	api.GET("/prescription-choices", h.GetChoices)
}

// IDParam parses the :id path parameter.
func IDParam(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(n), nil
}

func (h *Handler) lookupPatient(c echo.Context) (*patient.Patient, error) {
	regNo, err := patient.RegNoParam(c)
	if err != nil {
		return nil, err
	}
	p, err := h.patients.Get(c.Request().Context(), regNo)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return p, nil
}

// DraftFromSections builds a draft for p through the same add operations an
// operator uses. Blank investigation and advice entries are skipped.
func DraftFromSections(p *patient.Patient, in Sections) (*Draft, error) {
	d := NewDraft()
	d.SelectPatient(p)
	d.ChiefComplaints = in.ChiefComplaints
	d.Diagnosis = in.Diagnosis
	d.SystemicExam = in.SystemicExam
	d.FollowUp = in.FollowUp
	d.SetVitals(in.Vitals)
	for _, inv := range in.Investigations {
		if strings.TrimSpace(inv) == "" {
			continue
		}
		if err := d.AddInvestigation(inv); err != nil {
			return nil, err
		}
	}
	for _, line := range in.Drugs {
		if err := d.AddDrug(line); err != nil {
			return nil, err
		}
	}
	for _, a := range in.Advice {
		if strings.TrimSpace(a) == "" {
			continue
		}
		if err := d.AddAdvice(a); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	p, err := h.lookupPatient(c)
	if err != nil {
		return err
	}
	var in Sections
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := DraftFromSections(p, in)
	if err != nil {
		return apperr.HTTPError(err)
	}
	rx, err := h.svc.Finalize(c.Request().Context(), d, h.doctor.Profile())
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, rx)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	p, err := h.lookupPatient(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListByPatient(c.Request().Context(), p.RegNo)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if list == nil {
		list = []*Prescription{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetHistory(c echo.Context) error {
	p, err := h.lookupPatient(c)
	if err != nil {
		return err
	}
	text, err := h.svc.History(c.Request().Context(), p)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.String(http.StatusOK, text)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := IDParam(c)
	if err != nil {
		return err
	}
	rx, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, rx)
}

func (h *Handler) GetChoices(c echo.Context) error {
	return c.JSON(http.StatusOK, AllChoices())
}
