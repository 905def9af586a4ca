package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikiCRO/SpaceX-Project/internal/config"
	"github.com/MikiCRO/SpaceX-Project/internal/db"
	"github.com/MikiCRO/SpaceX-Project/internal/httpapi"
	"github.com/MikiCRO/SpaceX-Project/internal/migrate"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/dataset"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/sitemap"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/views"
)

// Run seeds the launch dataset, builds the site map and serves HTTP until ctx
// is cancelled. Any failure before the server starts is returned as is.
func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"staticDir", cfg.StaticDir,
		"sqliteDriver", cfg.SQLiteDriver,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
		"sqliteConnMaxLifetime", cfg.SQLiteConnMaxLifetime,
		"sqliteLogSQL", cfg.SQLiteLogSQL,
		"dashCSVPath", cfg.DashCSVPath,
		"geoCSVURL", cfg.GeoCSVURL,
	)
	dbConn, err := db.Open(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := migrate.Run(dbConn); err != nil {
		return err
	}

	n, err := launches.ImportDashFile(dbConn, cfg.DashCSVPath)
	if err != nil {
		return err
	}
	slog.Info("launch dataset loaded", "path", cfg.DashCSVPath, "rows", n)

	geo, err := dataset.FetchGeo(ctx, http.DefaultClient, cfg.GeoCSVURL)
	if err != nil {
		return fmt.Errorf("load geo dataset: %w", err)
	}
	siteMap := sitemap.Build(geo)
	slog.Info("site map built", "source", cfg.GeoCSVURL, "sites", len(siteMap.Sites), "markers", len(siteMap.Cluster))

	if err := views.LoadTemplates(); err != nil {
		return err
	}
	mux := httpapi.NewMux(dbConn, cfg.StaticDir)
	launches.RegisterFeature(mux, dbConn, siteMap)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
