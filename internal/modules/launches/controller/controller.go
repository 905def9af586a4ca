package controller

import (
	"net/http"
	"time"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/repository"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/sitemap"
)

type LaunchController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type launchControllerImpl struct {
	repository repository.LaunchRepository
	siteMap    sitemap.Map
	now        func() time.Time
}

// NewLaunchController serves the dashboard from repository and the launch-site
// map from siteMap, which is built once and never changes.
func NewLaunchController(repository repository.LaunchRepository, siteMap sitemap.Map) LaunchController {
	return &launchControllerImpl{repository: repository, siteMap: siteMap, now: time.Now}
}

func (c *launchControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleDashboard)
	mux.HandleFunc("GET /map", c.handleMap)

	mux.HandleFunc("GET /api/v1/sites", c.handleSites)
	mux.HandleFunc("GET /api/v1/payload-range", c.handlePayloadRange)
	mux.HandleFunc("GET /api/v1/launches", c.handleLaunches)
	mux.HandleFunc("GET /api/v1/charts/pie", c.handlePieChart)
	mux.HandleFunc("GET /api/v1/charts/scatter", c.handleScatterChart)
	mux.HandleFunc("GET /api/v1/map.geojson", c.handleMapGeoJSON)

	mux.HandleFunc("GET /charts/pie.png", c.handlePiePNG)
	mux.HandleFunc("GET /charts/scatter.png", c.handleScatterPNG)
	mux.HandleFunc("GET /reports/launches.pdf", c.handleReport)
}
