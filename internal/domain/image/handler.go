package image

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:reg_no/images", h.ListImages)
	api.POST("/patients/:reg_no/images", h.UploadImage)
	api.GET("/images/:id", h.GetImage)
	api.GET("/images/:id/file", h.DownloadImage)
	api.PUT("/images/:id", h.UpdateImage)
	api.DELETE("/images/:id", h.DeleteImage)
}

func idParam(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid image id")
	}
	return uint(n), nil
}

func (h *Handler) UploadImage(c echo.Context) error {
	regNo, err := patient.RegNoParam(c)
	if err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to open uploaded file")
	}
	defer src.Close()

	img, err := h.svc.Upload(c.Request().Context(), regNo, file.Filename, src, c.FormValue("description"))
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, img)
}

func (h *Handler) ListImages(c echo.Context) error {
	regNo, err := patient.RegNoParam(c)
	if err != nil {
		return err
	}
	list, err := h.svc.List(c.Request().Context(), regNo)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if list == nil {
		list = []*PatientImage{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetImage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	img, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *Handler) DownloadImage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	img, f, err := h.svc.Open(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTPError(err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(img.Path))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename=%q`, filepath.Base(img.Path)))
	return c.Stream(http.StatusOK, contentType, f)
}

type describeRequest struct {
	Description string `json:"description"`
}

func (h *Handler) UpdateImage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req describeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	img, err := h.svc.UpdateDescription(c.Request().Context(), id, req.Description)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *Handler) DeleteImage(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
