package document

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rxpad/rxpad/internal/domain/prescription"
	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// Source resolves the bundles the document routes render.
type Source interface {
	// StoredBundle bundles a saved prescription with its patient.
	StoredBundle(ctx context.Context, id uint) (Bundle, error)
	// PreviewBundle bundles unsaved sections for a patient with the current
	// doctor profile.
	PreviewBundle(ctx context.Context, regNo uint, content prescription.Sections) (Bundle, error)
}

type Handler struct {
	gen     *Generator
	printer *PrintService
	src     Source
	now     func() time.Time
}

func NewHandler(gen *Generator, printer *PrintService, src Source) *Handler {
	return &Handler{gen: gen, printer: printer, src: src, now: time.Now}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/prescriptions/:id/document", h.GetDocument)
	api.POST("/prescriptions/:id/document", h.SaveDocument)
	api.POST("/prescriptions/:id/print", h.PrintDocument)
	api.POST("/documents/preview", h.Preview)
}

type saveRequest struct {
	Path string `json:"path"`
}

type fileResponse struct {
	Path string `json:"path"`
}

type previewRequest struct {
	RegNo uint `json:"reg_no"`
	prescription.Sections
	// Path saves the preview there instead of returning it.
	Path string `json:"path"`
}

func (h *Handler) stored(c echo.Context) (Bundle, error) {
	id, err := prescription.IDParam(c)
	if err != nil {
		return Bundle{}, err
	}
	b, err := h.src.StoredBundle(c.Request().Context(), id)
	if err != nil {
		return Bundle{}, apperr.HTTPError(err)
	}
	return b, nil
}

func (h *Handler) GetDocument(c echo.Context) error {
	b, err := h.stored(c)
	if err != nil {
		return err
	}
	return h.send(c, b, h.now())
}

func (h *Handler) SaveDocument(c echo.Context) error {
	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	b, err := h.stored(c)
	if err != nil {
		return err
	}
	if err := h.gen.WriteFile(b, h.now(), req.Path); err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, fileResponse{Path: req.Path})
}

func (h *Handler) PrintDocument(c echo.Context) error {
	b, err := h.stored(c)
	if err != nil {
		return err
	}
	path, err := h.printer.Print(c.Request().Context(), b, h.now())
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusAccepted, fileResponse{Path: path})
}

func (h *Handler) Preview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.RegNo == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "reg_no is required")
	}
	b, err := h.src.PreviewBundle(c.Request().Context(), req.RegNo, req.Sections)
	if err != nil {
		return apperr.HTTPError(err)
	}
	at := h.now()
	if req.Path != "" {
		if err := h.gen.WriteFile(b, at, req.Path); err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(http.StatusCreated, fileResponse{Path: req.Path})
	}
	return h.send(c, b, at)
}

func (h *Handler) send(c echo.Context, b Bundle, at time.Time) error {
	data, err := h.gen.Render(b, at)
	if err != nil {
		return apperr.HTTPError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=%q", DefaultFileName(b.Patient.RegNo, at)))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
