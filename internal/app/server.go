package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/rxpad/rxpad/internal/document"
	"github.com/rxpad/rxpad/internal/domain/catalog"
	"github.com/rxpad/rxpad/internal/domain/doctor"
	"github.com/rxpad/rxpad/internal/domain/image"
	"github.com/rxpad/rxpad/internal/domain/patient"
	"github.com/rxpad/rxpad/internal/domain/prescription"
	"github.com/rxpad/rxpad/internal/platform/auth"
	"github.com/rxpad/rxpad/internal/platform/db"
	"github.com/rxpad/rxpad/internal/platform/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server builds the local API.
func (a *App) Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.Logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.Logger))
	if len(a.Config.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: a.Config.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{"Content-Type", "X-Request-ID", "Authorization"},
		}))
	}
	e.Use(auth.Middleware([]byte(a.Config.APISecret), auth.Skipper))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(a.DB))

	api := e.Group("/api/v1")
	doctor.NewHandler(a.Doctor).RegisterRoutes(api)
	patient.NewHandler(a.Patients).RegisterRoutes(api)
	prescription.NewHandler(a.Prescriptions, a.Patients, a.Doctor).RegisterRoutes(api)
	image.NewHandler(a.Images).RegisterRoutes(api)
	catalog.NewHandler(a.Catalogs).RegisterRoutes(api)
	document.NewHandler(a.Documents, a.Printer, a).RegisterRoutes(api)

	return e
}

// Serve runs the local API on the configured address until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	e := a.Server()
	addr := a.Config.ListenAddr()

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", addr).Msg("starting local API")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down local API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Logger.Info().Msg("local API stopped")
	return nil
}
