package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/chartimg"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/charts"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/report"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/repository"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/views"
	"github.com/MikiCRO/SpaceX-Project/internal/utils"
)

const mapTitle = "SpaceX Launch Sites"

// payloadBounds returns the dataset payload range, or 0..0 when it is empty.
func (c *launchControllerImpl) payloadBounds() (float64, float64, error) {
	min, max, err := c.repository.PayloadBounds()
	if errors.Is(err, repository.ErrEmptyDataset) {
		return 0, 0, nil
	}
	return min, max, err
}

// selection loads the dataset and parses the request's criteria against it.
// It writes the error response itself and returns ok=false on failure.
func (c *launchControllerImpl) selection(w http.ResponseWriter, r *http.Request) (records []types.LaunchRecord, criteria types.Criteria, ok bool) {
	min, max, err := c.payloadBounds()
	if err != nil {
		slog.Error("payload bounds failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load launches")
		return nil, types.Criteria{}, false
	}
	criteria, err = parseCriteria(r, min, max)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return nil, types.Criteria{}, false
	}
	records, err = c.repository.ListLaunches()
	if err != nil {
		slog.Error("list launches failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load launches")
		return nil, types.Criteria{}, false
	}
	return records, criteria, true
}

func (c *launchControllerImpl) pie(w http.ResponseWriter, r *http.Request) (charts.PieChart, bool) {
	records, err := c.repository.ListLaunches()
	if err != nil {
		slog.Error("list launches failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load launches")
		return charts.PieChart{}, false
	}
	pie := charts.Pie(records, parseSite(r))
	if pie.Slices == nil {
		pie.Slices = []charts.Slice{}
	}
	return pie, true
}

func scatter(records []types.LaunchRecord, criteria types.Criteria) charts.ScatterChart {
	sc := charts.Scatter(records, criteria)
	if sc.Series == nil {
		sc.Series = []charts.Series{}
	}
	return sc
}

func (c *launchControllerImpl) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	min, max, err := c.payloadBounds()
	if err != nil {
		slog.Error("dashboard: payload bounds failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load launches")
		return
	}
	count, err := c.repository.CountLaunches()
	if err != nil {
		slog.Error("dashboard: count launches failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load launches")
		return
	}
	imp, err := c.repository.GetLastImport()
	if err != nil {
		slog.Warn("dashboard: last import unavailable", "error", err)
	}

	data := &views.DashboardData{
		Layout:      views.NewDashboardLayout(min, max),
		LaunchCount: count,
		Import:      imp,
	}
	var buf bytes.Buffer
	if err := views.RenderDashboard(&buf, data); err != nil {
		slog.Error("dashboard template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("dashboard: write response failed", "error", err)
	}
}

func (c *launchControllerImpl) handleMap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderMap(&buf, &views.MapData{Title: mapTitle, Map: c.siteMap}); err != nil {
		slog.Error("map template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("map: write response failed", "error", err)
	}
}

func (c *launchControllerImpl) handleSites(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, views.SiteOptions)
}

func (c *launchControllerImpl) handlePayloadRange(w http.ResponseWriter, r *http.Request) {
	min, max, err := c.payloadBounds()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.NewDashboardLayout(min, max).PayloadSlider)
}

func (c *launchControllerImpl) handleLaunches(w http.ResponseWriter, r *http.Request) {
	records, criteria, ok := c.selection(w, r)
	if !ok {
		return
	}
	out := charts.Filter(records, criteria)
	if out == nil {
		out = []types.LaunchRecord{}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *launchControllerImpl) handlePieChart(w http.ResponseWriter, r *http.Request) {
	pie, ok := c.pie(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, pie)
}

func (c *launchControllerImpl) handleScatterChart(w http.ResponseWriter, r *http.Request) {
	records, criteria, ok := c.selection(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, scatter(records, criteria))
}

func (c *launchControllerImpl) handleMapGeoJSON(w http.ResponseWriter, r *http.Request) {
	raw, err := c.siteMap.GeoJSON()
	if err != nil {
		slog.Error("map: encode geojson failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to encode map")
		return
	}
	utils.WriteFile(w, "application/geo+json", "", raw)
}

func (c *launchControllerImpl) handlePiePNG(w http.ResponseWriter, r *http.Request) {
	pie, ok := c.pie(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chartimg.RenderPie(&buf, pie); err != nil {
		slog.Error("pie png render failed", "site", pie.Site, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	utils.WriteFile(w, "image/png", "", buf.Bytes())
}

func (c *launchControllerImpl) handleScatterPNG(w http.ResponseWriter, r *http.Request) {
	records, criteria, ok := c.selection(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chartimg.RenderScatter(&buf, charts.Scatter(records, criteria)); err != nil {
		slog.Error("scatter png render failed", "site", criteria.Site, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	utils.WriteFile(w, "image/png", "", buf.Bytes())
}

func (c *launchControllerImpl) handleReport(w http.ResponseWriter, r *http.Request) {
	records, criteria, ok := c.selection(w, r)
	if !ok {
		return
	}
	imp, err := c.repository.GetLastImport()
	if err != nil {
		slog.Warn("report: last import unavailable", "error", err)
	}
	var buf bytes.Buffer
	err = report.Write(&buf, report.Data{
		Pie:         charts.Pie(records, criteria.Site),
		Scatter:     charts.Scatter(records, criteria),
		Import:      imp,
		GeneratedAt: c.now(),
	})
	if err != nil {
		slog.Error("report render failed", "site", criteria.Site, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	utils.WriteFile(w, "application/pdf", "launches.pdf", buf.Bytes())
}
