// Package charts turns a dashboard selection into chart data. Every function
// here is pure: the input slice is never modified and source order is kept.
package charts

import (
	"strconv"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

const (
	PayloadAxisLabel = "Payload Mass (kg)"
	OutcomeAxisLabel = "Launch Outcome"
)

// Slice is one pie wedge. Key is the grouping value (site name or class).
type Slice struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type PieChart struct {
	Title  string  `json:"title"`
	Site   string  `json:"site"`
	Slices []Slice `json:"slices"`
}

// Total is the sum of all slice values.
func (p PieChart) Total() float64 {
	var sum float64
	for _, s := range p.Slices {
		sum += s.Value
	}
	return sum
}

type Point struct {
	PayloadMassKg  float64       `json:"x"`
	Class          types.Outcome `json:"y"`
	LaunchSite     string        `json:"launchSite"`
	BoosterVersion string        `json:"boosterVersion,omitempty"`
	FlightNumber   int           `json:"flightNumber,omitempty"`
}

// Series holds the points of one booster version category.
type Series struct {
	Category string  `json:"category"`
	Points   []Point `json:"points"`
}

type ScatterChart struct {
	Title    string         `json:"title"`
	XLabel   string         `json:"xLabel"`
	YLabel   string         `json:"yLabel"`
	Criteria types.Criteria `json:"criteria"`
	Series   []Series       `json:"series"`
}

// PointCount is the number of plotted points across all series.
func (s ScatterChart) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// FilterBySite returns the rows launched from site. AllSites returns every row.
func FilterBySite(records []types.LaunchRecord, site string) []types.LaunchRecord {
	if site == types.AllSites {
		return append([]types.LaunchRecord(nil), records...)
	}
	var out []types.LaunchRecord
	for _, r := range records {
		if r.LaunchSite == site {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPayload keeps rows with min <= payload <= max.
func FilterByPayload(records []types.LaunchRecord, min, max float64) []types.LaunchRecord {
	var out []types.LaunchRecord
	for _, r := range records {
		if r.PayloadMassKg >= min && r.PayloadMassKg <= max {
			out = append(out, r)
		}
	}
	return out
}

// Filter applies both the payload bounds and the site selection.
func Filter(records []types.LaunchRecord, c types.Criteria) []types.LaunchRecord {
	return FilterBySite(FilterByPayload(records, c.PayloadMin, c.PayloadMax), c.Site)
}

// PayloadBounds returns the smallest and largest payload mass. ok is false
// for an empty dataset.
func PayloadBounds(records []types.LaunchRecord) (min, max float64, ok bool) {
	for i, r := range records {
		if i == 0 || r.PayloadMassKg < min {
			min = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > max {
			max = r.PayloadMassKg
		}
	}
	return min, max, len(records) > 0
}

// Pie builds the success pie. For AllSites there is one slice per site
// holding its number of successful launches; for a single site there is one
// slice per outcome value holding its launch count. An unknown site yields no
// slices.
func Pie(records []types.LaunchRecord, site string) PieChart {
	if site == types.AllSites {
		return PieChart{
			Title:  "Total Success Launches for ALL sites",
			Site:   site,
			Slices: group(records, func(r types.LaunchRecord) (string, string, float64) {
				return r.LaunchSite, r.LaunchSite, float64(r.Class)
			}),
		}
	}
	return PieChart{
		Title: "Total Success Launches for site " + site,
		Site:  site,
		Slices: group(FilterBySite(records, site), func(r types.LaunchRecord) (string, string, float64) {
			return strconv.Itoa(int(r.Class)), r.Class.Label(), 1
		}),
	}
}

func group(records []types.LaunchRecord, by func(types.LaunchRecord) (key, label string, value float64)) []Slice {
	index := make(map[string]int)
	var out []Slice
	for _, r := range records {
		key, label, value := by(r)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Slice{Key: key, Label: label})
		}
		out[i].Value += value
	}
	return out
}

// Scatter builds the payload/outcome scatter plot for c, one series per
// booster version category in order of first appearance.
func Scatter(records []types.LaunchRecord, c types.Criteria) ScatterChart {
	title := "Correlation between Payload and Success for all Sites"
	if c.Site != types.AllSites {
		title = "Correlation between Payload and Success for site " + c.Site
	}
	chart := ScatterChart{
		Title:    title,
		XLabel:   PayloadAxisLabel,
		YLabel:   OutcomeAxisLabel,
		Criteria: c,
	}
	index := make(map[string]int)
	for _, r := range Filter(records, c) {
		i, ok := index[r.BoosterVersionCategory]
		if !ok {
			i = len(chart.Series)
			index[r.BoosterVersionCategory] = i
			chart.Series = append(chart.Series, Series{Category: r.BoosterVersionCategory})
		}
		chart.Series[i].Points = append(chart.Series[i].Points, Point{
			PayloadMassKg:  r.PayloadMassKg,
			Class:          r.Class,
			LaunchSite:     r.LaunchSite,
			BoosterVersion: r.BoosterVersion,
			FlightNumber:   r.FlightNumber,
		})
	}
	return chart
}
