package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

type Handler struct {
	set *Set
}

func NewHandler(set *Set) *Handler {
	return &Handler{set: set}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/catalog/drugs", h.ListDrugs)
	api.POST("/catalog/drugs", h.AddDrug)
	api.GET("/catalog/drug-forms", h.ListForms)
	api.GET("/catalog/investigations", h.listEntries(h.set.Investigations))
	api.POST("/catalog/investigations", h.addEntry(h.set.Investigations))
	api.GET("/catalog/advice", h.listEntries(h.set.Advice))
	api.POST("/catalog/advice", h.addEntry(h.set.Advice))
}

// drugRequest adds a custom drug when only Name is given, otherwise a fully
// described one.
type drugRequest struct {
	Name        string `json:"name"`
	Form        string `json:"form"`
	TradeName   string `json:"trade_name"`
	GenericName string `json:"generic_name"`
	Strength    string `json:"strength"`
}

type entryRequest struct {
	Entry string `json:"entry"`
}

func (h *Handler) ListDrugs(c echo.Context) error {
	list := h.set.Drugs.Filter(c.QueryParam("q"))
	if list == nil {
		list = []Drug{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListForms(c echo.Context) error {
	return c.JSON(http.StatusOK, FormChoices)
}

func (h *Handler) AddDrug(c echo.Context) error {
	var req drugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var (
		drug Drug
		err  error
	)
	if req.TradeName == "" && req.GenericName == "" {
		drug, err = h.set.Drugs.AddCustom(req.Name)
	} else {
		drug, err = h.set.Drugs.AddDrug(req.Form, req.TradeName, req.GenericName, req.Strength)
	}
	if errors.Is(err, ErrDuplicate) {
		return c.JSON(http.StatusConflict, drug)
	}
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, drug)
}

func (h *Handler) listEntries(l *List) echo.HandlerFunc {
	return func(c echo.Context) error {
		list := l.Filter(c.QueryParam("q"))
		if list == nil {
			list = []string{}
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *Handler) addEntry(l *List) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req entryRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		err := l.Add(req.Entry)
		if errors.Is(err, ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if err != nil {
			return apperr.HTTPError(err)
		}
		return c.JSON(http.StatusCreated, entryRequest{Entry: req.Entry})
	}
}
