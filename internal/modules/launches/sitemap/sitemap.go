// Package sitemap lays out the launch-site map: a circle and a text label per
// site, and one outcome-colored marker per launch inside a single cluster.
package sitemap

import (
	"math"
	"sort"

	geojson "github.com/paulmach/go.geojson"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

const (
	ColorSuccess = "green"
	ColorFailure = "red"
	ColorUnknown = "gray"

	SiteColor         = "#d35400"
	SiteCircleRadiusM = 1000
	DefaultZoom       = 5
)

// NASA Johnson Space Center, Houston.
var DefaultCenter = LatLng{Lat: 29.559684888503615, Lng: -95.0830971930759}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SiteMarker struct {
	Name    string  `json:"name"`
	At      LatLng  `json:"at"`
	RadiusM float64 `json:"radiusM"`
	Color   string  `json:"color"`
}

type LaunchMarker struct {
	Site           string        `json:"site"`
	At             LatLng        `json:"at"`
	Class          types.Outcome `json:"class"`
	Color          string        `json:"color"`
	BoosterVersion string        `json:"boosterVersion,omitempty"`
	FlightNumber   int           `json:"flightNumber,omitempty"`
}

type Map struct {
	Center  LatLng         `json:"center"`
	Zoom    int            `json:"zoom"`
	Sites   []SiteMarker   `json:"sites"`
	Cluster []LaunchMarker `json:"cluster"`
}

// MarkerColor maps an outcome to its marker color. Values other than 0 and 1
// get ColorUnknown.
func MarkerColor(class types.Outcome) string {
	switch class {
	case types.Success:
		return ColorSuccess
	case types.Failure:
		return ColorFailure
	default:
		return ColorUnknown
	}
}

// LaunchSites returns the first record of every site, sorted by name.
func LaunchSites(records []types.LaunchRecord) []types.LaunchSite {
	seen := make(map[string]bool)
	var out []types.LaunchSite
	for _, r := range records {
		if seen[r.LaunchSite] {
			continue
		}
		seen[r.LaunchSite] = true
		out = append(out, types.LaunchSite{Name: r.LaunchSite, Latitude: r.Latitude, Longitude: r.Longitude})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Build lays out the map for the geo dataset.
func Build(records []types.LaunchRecord) Map {
	m := Map{
		Center: DefaultCenter,
		Zoom:   DefaultZoom,
	}
	for _, s := range LaunchSites(records) {
		m.Sites = append(m.Sites, SiteMarker{
			Name:    s.Name,
			At:      LatLng{Lat: s.Latitude, Lng: s.Longitude},
			RadiusM: SiteCircleRadiusM,
			Color:   SiteColor,
		})
	}
	for _, r := range records {
		m.Cluster = append(m.Cluster, LaunchMarker{
			Site:           r.LaunchSite,
			At:             LatLng{Lat: r.Latitude, Lng: r.Longitude},
			Class:          r.Class,
			Color:          MarkerColor(r.Class),
			BoosterVersion: r.BoosterVersion,
			FlightNumber:   r.FlightNumber,
		})
	}
	return m
}

// Feature kinds used in the "kind" property.
const (
	KindSite   = "site"
	KindLaunch = "launch"
)

// FeatureCollection encodes the map as GeoJSON points with a bounding box
// over every marker. Center and zoom are page settings and are not encoded.
func (m Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.BoundingBox = m.bbox()
	for _, s := range m.Sites {
		f := geojson.NewPointFeature([]float64{s.At.Lng, s.At.Lat})
		f.SetProperty("kind", KindSite)
		f.SetProperty("name", s.Name)
		f.SetProperty("radius_m", s.RadiusM)
		f.SetProperty("color", s.Color)
		fc.AddFeature(f)
	}
	for _, l := range m.Cluster {
		f := geojson.NewPointFeature([]float64{l.At.Lng, l.At.Lat})
		f.SetProperty("kind", KindLaunch)
		f.SetProperty("site", l.Site)
		f.SetProperty("class", int(l.Class))
		f.SetProperty("marker_color", l.Color)
		if l.BoosterVersion != "" {
			f.SetProperty("booster_version", l.BoosterVersion)
		}
		if l.FlightNumber != 0 {
			f.SetProperty("flight_number", l.FlightNumber)
		}
		fc.AddFeature(f)
	}
	return fc
}

// bbox is [minLng, minLat, maxLng, maxLat], or nil for an empty map.
func (m Map) bbox() []float64 {
	var pts []LatLng
	for _, s := range m.Sites {
		pts = append(pts, s.At)
	}
	for _, l := range m.Cluster {
		pts = append(pts, l.At)
	}
	if len(pts) == 0 {
		return nil
	}
	box := []float64{pts[0].Lng, pts[0].Lat, pts[0].Lng, pts[0].Lat}
	for _, p := range pts[1:] {
		box[0] = math.Min(box[0], p.Lng)
		box[1] = math.Min(box[1], p.Lat)
		box[2] = math.Max(box[2], p.Lng)
		box[3] = math.Max(box[3], p.Lat)
	}
	return box
}

// GeoJSON marshals FeatureCollection.
func (m Map) GeoJSON() ([]byte, error) {
	return m.FeatureCollection().MarshalJSON()
}
