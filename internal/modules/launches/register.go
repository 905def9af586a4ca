package launches

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/charts"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/controller"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/dataset"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/repository"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/sitemap"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, siteMap sitemap.Map) {
	launchRepository := repository.NewRepository(db)
	launchController := controller.NewLaunchController(launchRepository, siteMap)
	launchController.RegisterRoutes(mux)
}

// ImportDashFile loads the dashboard CSV at path and replaces the stored
// launches with it. It returns the number of rows imported.
func ImportDashFile(db *sql.DB, path string) (int, error) {
	records, err := dataset.LoadDashFile(path)
	if err != nil {
		return 0, err
	}
	if err := repository.NewRepository(db).ReplaceLaunches(path, records); err != nil {
		return 0, fmt.Errorf("store launches from %s: %w", path, err)
	}
	if min, max, ok := charts.PayloadBounds(records); ok {
		slog.Debug("payload range", "minKg", min, "maxKg", max)
	}
	return len(records), nil
}
