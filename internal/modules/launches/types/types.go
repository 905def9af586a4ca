package types

import (
	"strconv"
	"time"
)

// AllSites selects every launch site.
const AllSites = "ALL"

// Outcome is the binary landing outcome of a launch.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// Label is the human name of the outcome used in legends.
func (o Outcome) Label() string {
	switch o {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Class " + strconv.Itoa(int(o))
	}
}

// LaunchRecord is one row of the launch dataset. Coordinates are only set for
// records loaded from the geo dataset.
type LaunchRecord struct {
	FlightNumber           int     `json:"flightNumber,omitempty"`
	LaunchSite             string  `json:"launchSite"`
	PayloadMassKg          float64 `json:"payloadMassKg"`
	BoosterVersion         string  `json:"boosterVersion,omitempty"`
	BoosterVersionCategory string  `json:"boosterVersionCategory,omitempty"`
	Class                  Outcome `json:"class"`
	Latitude               float64 `json:"lat,omitempty"`
	Longitude              float64 `json:"long,omitempty"`
}

// LaunchSite is the first occurrence of a site in the dataset.
type LaunchSite struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

// Criteria is the dashboard selection: a site (or AllSites) and an
// inclusive payload range in kilograms.
type Criteria struct {
	Site       string  `json:"site"`
	PayloadMin float64 `json:"payloadMin"`
	PayloadMax float64 `json:"payloadMax"`
}

// SiteOption is one entry in the launch site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DatasetImport records one load of the launch dataset into the database.
type DatasetImport struct {
	Source     string    `json:"source"`
	RowCount   int       `json:"rowCount"`
	ImportedAt time.Time `json:"importedAt"`
}
