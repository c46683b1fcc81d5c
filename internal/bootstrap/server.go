package bootstrap

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	app "github.com/lmartinez/contact-upload/internal/application/contact"
	"github.com/lmartinez/contact-upload/internal/application/progress"
	"github.com/lmartinez/contact-upload/internal/infrastructure/excel"
	"github.com/lmartinez/contact-upload/internal/infrastructure/repository"
	httpecho "github.com/lmartinez/contact-upload/internal/interfaces/http/echo"
	"gorm.io/gorm"
)

func NewHTTPServer(db *gorm.DB, pool *pgxpool.Pool, broadcaster *progress.Broadcaster, log *slog.Logger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))
	server.Use(middleware.CORS())

	codec := excel.NewCodec()
	contactRepo := repository.NewContactRepository(db)
	legacyRepo := repository.NewLegacyRowRepository(pool)

	validate := app.NewValidateWorkbook(codec, broadcaster, log)
	save := app.NewSaveContacts(contactRepo, broadcaster, log)
	stats := app.NewContactStats(contactRepo)
	export := app.NewExportContacts(contactRepo, codec)
	legacy := app.NewLegacyImport(legacyRepo, broadcaster)

	uploadHandler := httpecho.NewUploadHandler(validate)
	contactHandler := httpecho.NewContactHandler(save, stats, export, legacy)
	progressHandler := httpecho.NewProgressHandler(broadcaster, log)

	httpecho.RegisterRoutes(server, uploadHandler, contactHandler, progressHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
