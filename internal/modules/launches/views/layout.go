package views

import (
	"strconv"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

const (
	DashboardTitle = "SpaceX Launch Records Dashboard"

	SiteDropdownID  = "site-dropdown"
	PayloadSliderID = "payload-slider"
	PieChartID      = "success-pie-chart"
	ScatterChartID  = "success-payload-scatter-chart"
	SitePlaceholder = "Select a Launch Site here"
	SliderMin       = 0
	SliderMax       = 10000
	SliderStep      = 1000
	allSitesLabel   = "All Sites"
)

// SiteOptions lists the dropdown entries, "All Sites" first.
var SiteOptions = []types.SiteOption{
	{Label: allSitesLabel, Value: types.AllSites},
	{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
	{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
	{Label: "KSC LC-39A", Value: "KSC LC-39A"},
	{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
}

type Dropdown struct {
	ID          string             `json:"id"`
	Options     []types.SiteOption `json:"options"`
	Value       string             `json:"value"`
	Placeholder string             `json:"placeholder"`
	Searchable  bool               `json:"searchable"`
}

type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type RangeSlider struct {
	ID    string     `json:"id"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

// DashboardLayout is the static structure of the dashboard page. It holds no
// data; the charts are filled by the page from the chart endpoints.
type DashboardLayout struct {
	Title          string      `json:"title"`
	SiteDropdown   Dropdown    `json:"siteDropdown"`
	PayloadSlider  RangeSlider `json:"payloadSlider"`
	PieChartID     string      `json:"pieChartId"`
	ScatterChartID string      `json:"scatterChartId"`
}

// NewDashboardLayout declares the page with the slider preset to the dataset's
// payload range.
func NewDashboardLayout(payloadMin, payloadMax float64) DashboardLayout {
	marks := make([]Mark, 0, 4)
	for _, v := range []float64{0, 2500, 5000, 7500} {
		marks = append(marks, Mark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return DashboardLayout{
		Title: DashboardTitle,
		SiteDropdown: Dropdown{
			ID:          SiteDropdownID,
			Options:     SiteOptions,
			Value:       types.AllSites,
			Placeholder: SitePlaceholder,
			Searchable:  true,
		},
		PayloadSlider: RangeSlider{
			ID:    PayloadSliderID,
			Min:   SliderMin,
			Max:   SliderMax,
			Step:  SliderStep,
			Marks: marks,
			Value: [2]float64{payloadMin, payloadMax},
		},
		PieChartID:     PieChartID,
		ScatterChartID: ScatterChartID,
	}
}
