package app

import (
	"context"
	"fmt"
	"net/http"

	"happywrap-deck/app/controller"
	"happywrap-deck/app/router"
	"happywrap-deck/config"
	"happywrap-deck/db"
	"happywrap-deck/render"
	"happywrap-deck/repository"
	"happywrap-deck/service"

	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Handler  http.Handler
	Exporter *service.ExportService
	Catalog  *service.CatalogService

	closers []func() error
	logger  *zap.Logger
}

// Initialize wires the catalog, renderer, export pipeline and HTTP routes.
// Optional backends (Sheets, Postgres, Redis, Drive) that fail to connect are
// logged and skipped.
func Initialize(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{logger: log}

	exporter, err := a.initExporter(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Exporter = exporter
	a.Catalog = a.initCatalog(ctx, cfg)

	deckService := service.NewDeckService(repository.NewDeckRepository(), a.Catalog, exporter, log)

	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(a.Catalog),
		Deck:    controller.NewDeckController(deckService),
		Export:  controller.NewExportController(exporter),
	}
	a.Handler = router.SetupRoutes(controllers, cfg.Assets.StaticDir, log)
	return a, nil
}

// InitializeExporter wires only the export pipeline, for offline use
func InitializeExporter(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{logger: log}
	exporter, err := a.initExporter(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Exporter = exporter
	return a, nil
}

func (a *App) initExporter(ctx context.Context, cfg *config.Config) (*service.ExportService, error) {
	var drive service.DriveServiceInterface
	if cfg.Catalog.CredentialsFile != "" && cfg.Catalog.DriveImages {
		ds, err := service.NewDriveService(ctx, cfg.Catalog.CredentialsFile)
		if err != nil {
			a.logger.Warn("⚠️ Drive API unavailable, using public thumbnails", zap.Error(err))
		} else {
			drive = ds
		}
	}

	loader := service.NewImageLoader(cfg.Assets.StaticDir, &http.Client{}, drive, cfg.Render.ImageFetchTimeout)
	for _, url := range loader.MissingStatic(render.StaticAssets()) {
		a.logger.Warn("⚠️ static asset missing, pages will use fallbacks",
			zap.String("url", url),
			zap.String("static_dir", cfg.Assets.StaticDir),
		)
	}

	fonts, err := render.LoadFonts(cfg.Assets.FontDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	renderer, err := render.NewRenderer(loader, fonts,
		render.WithLogger(a.logger.Named("render")),
		render.WithFooter(cfg.Render.FooterText),
		render.WithFooterQR(cfg.Render.FooterQRURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	var newWriter service.DocumentWriterFactory
	switch cfg.Render.PDFEngine {
	case "chrome":
		newWriter = service.NewChromePDFWriterFactory(cfg.Render.ChromePath)
	default:
		newWriter = service.NewGofpdfWriter
	}

	return service.NewExportService(renderer, newWriter, cfg.Render.PageImageFormat, cfg.Render.JPEGQuality, a.logger.Named("export")), nil
}

func (a *App) initCatalog(ctx context.Context, cfg *config.Config) *service.CatalogService {
	var sources []service.CatalogSource

	if cfg.Catalog.SpreadsheetID != "" && cfg.Catalog.CredentialsFile != "" {
		src, err := service.NewSheetsSource(ctx, cfg.Catalog.CredentialsFile, cfg.Catalog.SpreadsheetID, cfg.Catalog.SheetRange)
		if err != nil {
			a.logger.Warn("⚠️ Google Sheets catalog disabled", zap.Error(err))
		} else {
			sources = append(sources, src)
		}
	}

	if cfg.Catalog.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.Catalog.DatabaseURL, a.logger)
		if err != nil {
			a.logger.Warn("⚠️ Postgres catalog disabled", zap.Error(err))
		} else {
			a.closers = append(a.closers, conn.Close)
			repo := repository.NewCatalogRepository(conn, a.logger.Named("catalog_repository"))
			sources = append(sources, service.NewPostgresSource(repo))
		}
	}

	var cache repository.CatalogCacheInterface
	if cfg.Catalog.RedisURL != "" {
		c, err := repository.NewCatalogCacheFromURL(ctx, cfg.Catalog.RedisURL, cfg.Catalog.CacheTTL)
		if err != nil {
			a.logger.Warn("⚠️ catalog cache disabled", zap.Error(err))
		} else {
			a.closers = append(a.closers, c.Close)
			cache = c
		}
	}

	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name())
	}
	a.logger.Info("✓ catalog sources configured", zap.Strings("sources", names), zap.Bool("cache", cache != nil))

	return service.NewCatalogService(sources, cache, a.logger.Named("catalog"))
}

// Close releases database and cache connections
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("⚠️ close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
