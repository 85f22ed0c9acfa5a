package document

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/rxpad/rxpad/internal/domain/prescription"
	"github.com/rxpad/rxpad/internal/platform/apperr"
)

type stubSource struct {
	bundle  Bundle
	preview prescription.Sections
}

func (s *stubSource) StoredBundle(_ context.Context, id uint) (Bundle, error) {
	if id != 1 {
		return Bundle{}, apperr.NotFound("prescription get", "prescription", id)
	}
	return s.bundle, nil
}

func (s *stubSource) PreviewBundle(_ context.Context, regNo uint, content prescription.Sections) (Bundle, error) {
	s.preview = content
	b := s.bundle
	b.Patient.RegNo = regNo
	b.Content = content
	return b, nil
}

func newTestHandler(fs afero.Fs) (*Handler, *stubSource) {
	gen := NewGenerator(fs, Options{})
	printer := NewPrintService(gen, &fakePrinter{fs: fs}, time.Second, zerolog.Nop())
	printer.schedule = func(time.Duration, func()) {}
	src := &stubSource{bundle: fullBundle()}
	h := NewHandler(gen, printer, src)
	h.now = func() time.Time { return testTime }
	return h, src
}

func TestHandler_GetDocument(t *testing.T) {
	h, _ := newTestHandler(afero.NewMemMapFs())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.GetDocument(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Header().Get(echo.HeaderContentType) != "application/pdf" {
		t.Errorf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "prescription_7_20260115_093000.pdf") {
		t.Errorf("unexpected disposition %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected PDF body")
	}
}

func TestHandler_GetDocumentNotFound(t *testing.T) {
	h, _ := newTestHandler(afero.NewMemMapFs())
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("2")

	err := h.GetDocument(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_SaveDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	h, _ := newTestHandler(fs)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"path":"/docs/rx.pdf"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.SaveDocument(c); err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ok, _ := afero.Exists(fs, "/docs/rx.pdf"); !ok {
		t.Error("expected document written")
	}
}

func TestHandler_Print(t *testing.T) {
	h, _ := newTestHandler(afero.NewMemMapFs())
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.PrintDocument(c); err != nil {
		t.Fatalf("print: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Errorf("expected 202, got %d", rec.Code)
	}
}

func TestHandler_Preview(t *testing.T) {
	h, src := newTestHandler(afero.NewMemMapFs())
	e := echo.New()

	body := `{"reg_no":9,"chief_complaints":"Cough","drugs":[{"formulation":"Syr. Tusca","dosage":"2 tsp"}]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Preview(e.NewContext(req, rec)); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if src.preview.ChiefComplaints != "Cough" || len(src.preview.Drugs) != 1 {
		t.Errorf("unexpected sections %+v", src.preview)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected PDF body")
	}
}

func TestHandler_PreviewRequiresPatient(t *testing.T) {
	h, _ := newTestHandler(afero.NewMemMapFs())
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"chief_complaints":"Cough"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := h.Preview(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
