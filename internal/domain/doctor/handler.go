package doctor

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctor", h.GetProfile)
	api.PUT("/doctor", h.SaveProfile)
}

type profileResponse struct {
	Profile
	Stored bool `json:"stored"`
}

func (h *Handler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, profileResponse{Profile: h.svc.Profile(), Stored: h.svc.Stored()})
}

func (h *Handler) SaveProfile(c echo.Context) error {
	var p Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	saved, err := h.svc.Save(c.Request().Context(), &p)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: saved, Stored: true})
}
