package patient

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rxpad/rxpad/internal/platform/apperr"
	"github.com/rxpad/rxpad/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:reg_no", h.GetPatient)
	api.PUT("/patients/:reg_no", h.UpdatePatient)
	api.DELETE("/patients/:reg_no", h.DeletePatient)
}

// RegNoParam parses the :reg_no path parameter.
func RegNoParam(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("reg_no"), 10, 64)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid registration number")
	}
	return uint(n), nil
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.Gender == "" {
		p.Gender = Genders[0]
	}
	if err := h.svc.Register(c.Request().Context(), &p); err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	regNo, err := RegNoParam(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), regNo)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	q := c.QueryParam("q")
	items, total, err := h.svc.Search(c.Request().Context(), q, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if items == nil {
		items = []*Patient{}
	}
	extra := url.Values{}
	if q != "" {
		extra.Set("q", q)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg).WithLinks(c.Path(), extra, pg))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	regNo, err := RegNoParam(c)
	if err != nil {
		return err
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.RegNo = regNo
	if p.Gender == "" {
		p.Gender = Genders[0]
	}
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return apperr.HTTPError(err)
	}
	updated, err := h.svc.Get(c.Request().Context(), regNo)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	regNo, err := RegNoParam(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), regNo); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
