// Package main Sportsmap API
// @title Sportsmap API
// @version 1.0
// @description Data-mapping wizard backend for a sports database: entity type detection, payload validation and batched imports
// @contact.name API Support
// @contact.email support@sportsmap.io
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/sportsmap/docs"
	"github.com/DjordjeVuckovic/sportsmap/internal/detect"
	"github.com/DjordjeVuckovic/sportsmap/internal/importer"
	"github.com/DjordjeVuckovic/sportsmap/internal/resolve"
	"github.com/DjordjeVuckovic/sportsmap/internal/router"
	"github.com/DjordjeVuckovic/sportsmap/internal/schema"
	"github.com/DjordjeVuckovic/sportsmap/internal/server"
	"github.com/DjordjeVuckovic/sportsmap/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/sportsmap/pkg/server"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	s := server.NewServer(e, sCfg)

	healthChecker := pkgserver.NewOkHealthChecker()
	s.Echo.GET("/health", func(c echo.Context) error {
		if !healthChecker.Healthy(c.Request().Context()) {
			return c.String(503, "unhealthy")
		}
		return c.String(200, "ok")
	})
	s.Echo.GET("/swagger/*", echoSwagger.WrapHandler)

	serviceCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load entity service configuration", "error", err)
		os.Exit(1)
	}

	svc, err := factory.NewEntityService(context.Background(), serviceCfg)
	if err != nil {
		slog.Error("Failed to create entity service", "error", err)
		os.Exit(1)
	}

	nameIndex, err := factory.NewNameIndex(serviceCfg)
	if err != nil {
		slog.Error("Failed to create name index", "error", err)
		os.Exit(1)
	}

	registry := schema.NewRegistry()
	detector := detect.NewDetector(registry)

	var resolverOpts []resolve.Option
	if nameIndex != nil {
		resolverOpts = append(resolverOpts, resolve.WithNameIndex(nameIndex))
		slog.Info("Name index enabled for reference resolution")
	} else {
		slog.Info("Name index disabled, resolver scans entity collections")
	}
	imp := importer.NewImporter(registry, svc, resolve.NewResolver(svc, resolverOpts...))

	importRouter := router.NewImportRouter(s.Echo, registry, detector, imp)
	importRouter.Bind()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
