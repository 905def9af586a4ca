package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikiCRO/SpaceX-Project/internal/config"
	"github.com/MikiCRO/SpaceX-Project/internal/db"
	"github.com/MikiCRO/SpaceX-Project/internal/migrate"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/dataset"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/sitemap"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/views"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Offline tasks for the SpaceX launch dashboard",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(cfg),
		newImportCmd(cfg),
		newMapCmd(cfg),
	)
	return root
}

func newMigrateCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(conn *sql.DB) error {
				pending, err := migrate.Pending(conn)
				if err != nil {
					return err
				}
				if err := migrate.Run(conn); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d migrations applied\n", len(pending))
				return nil
			})
		},
	}
}

func newImportCmd(cfg config.Config) *cobra.Command {
	path := cfg.DashCSVPath
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored launches with the dashboard CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(conn *sql.DB) error {
				if err := migrate.Run(conn); err != nil {
					return err
				}
				n, err := launches.ImportDashFile(conn, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d launches from %s\n", n, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", path, "dashboard CSV to import (DASH_CSV_PATH)")
	return cmd
}

func newMapCmd(cfg config.Config) *cobra.Command {
	var (
		source  = cfg.GeoCSVURL
		out     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Export the launch-site map as GeoJSON or a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			geo, err := dataset.FetchGeo(ctx, http.DefaultClient, source)
			if err != nil {
				return err
			}
			m := sitemap.Build(geo)
			if err := writeMap(out, m); err != nil {
				return err
			}
			slog.Info("map exported", "out", out, "sites", len(m.Sites), "markers", len(m.Cluster))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sites, %d launches)\n", out, len(m.Sites), len(m.Cluster))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", source, "geo CSV URL or local path (GEO_CSV_URL)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, .geojson or .html")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the download after this long (0 waits indefinitely)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// writeMap picks the encoding from the file extension.
func writeMap(out string, m sitemap.Map) error {
	var body []byte
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".geojson", ".json":
		raw, err := m.GeoJSON()
		if err != nil {
			return fmt.Errorf("encode geojson: %w", err)
		}
		body = raw
	case ".html", ".htm":
		if err := views.LoadTemplates(); err != nil {
			return err
		}
		var sb strings.Builder
		if err := views.RenderMap(&sb, &views.MapData{Title: "SpaceX Launch Sites", Map: m, Standalone: true}); err != nil {
			return fmt.Errorf("render map: %w", err)
		}
		body = []byte(sb.String())
	default:
		return fmt.Errorf("unsupported map format %q (use .geojson or .html)", ext)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(out, body, 0o644)
}

func withDB(cfg config.Config, fn func(*sql.DB) error) error {
	conn, err := db.Open(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(conn); closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()
	return fn(conn)
}
