// Package dataset reads the launch CSV files into LaunchRecord slices.
//
// Columns are located by header name, so extra or reordered columns are fine.
// A missing required column or an unparsable cell fails the whole load.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

const (
	ColLaunchSite     = "Launch Site"
	ColPayloadMass    = "Payload Mass (kg)"
	ColClass          = "class"
	ColBoosterCat     = "Booster Version Category"
	ColBoosterVersion = "Booster Version"
	ColFlightNumber   = "Flight Number"
	ColLat            = "Lat"
	ColLong           = "Long"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrEmptyFile     = errors.New("empty csv")
)

// CellError reports a cell that could not be parsed.
type CellError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("line %d, column %q: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// LoadDashFile reads spacex_launch_dash.csv from path.
func LoadDashFile(path string) ([]types.LaunchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dash csv: %w", err)
	}
	defer f.Close()
	records, err := ParseDash(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ParseDash decodes the dashboard dataset: launch site, payload mass, class and
// booster version category are required.
func ParseDash(r io.Reader) ([]types.LaunchRecord, error) {
	return parse(r,
		[]string{ColLaunchSite, ColPayloadMass, ColClass, ColBoosterCat},
		func(row rowReader, rec *types.LaunchRecord) error {
			var err error
			rec.LaunchSite = row.str(ColLaunchSite)
			rec.BoosterVersionCategory = row.str(ColBoosterCat)
			rec.BoosterVersion = row.str(ColBoosterVersion)
			if rec.PayloadMassKg, err = row.float(ColPayloadMass); err != nil {
				return err
			}
			if rec.Class, err = row.outcome(ColClass); err != nil {
				return err
			}
			if rec.FlightNumber, err = row.optionalInt(ColFlightNumber); err != nil {
				return err
			}
			return nil
		})
}

// ParseGeo decodes the geo dataset: launch site, Lat, Long and class are required.
func ParseGeo(r io.Reader) ([]types.LaunchRecord, error) {
	return parse(r,
		[]string{ColLaunchSite, ColLat, ColLong, ColClass},
		func(row rowReader, rec *types.LaunchRecord) error {
			var err error
			rec.LaunchSite = row.str(ColLaunchSite)
			rec.BoosterVersion = row.str(ColBoosterVersion)
			if rec.Latitude, err = row.float(ColLat); err != nil {
				return err
			}
			if rec.Longitude, err = row.float(ColLong); err != nil {
				return err
			}
			if rec.Class, err = row.outcome(ColClass); err != nil {
				return err
			}
			if rec.FlightNumber, err = row.optionalInt(ColFlightNumber); err != nil {
				return err
			}
			if row.has(ColPayloadMass) && row.str(ColPayloadMass) != "" {
				if rec.PayloadMassKg, err = row.float(ColPayloadMass); err != nil {
					return err
				}
			}
			return nil
		})
}

func parse(r io.Reader, required []string, fill func(rowReader, *types.LaunchRecord) error) ([]types.LaunchRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var out []types.LaunchRecord
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		var rec types.LaunchRecord
		if err := fill(rowReader{index: index, fields: fields, line: line}, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

type rowReader struct {
	index  map[string]int
	fields []string
	line   int
}

func (r rowReader) has(col string) bool {
	_, ok := r.index[col]
	return ok
}

func (r rowReader) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r rowReader) float(col string) (float64, error) {
	s := r.str(col)
	v, err := strconv.ParseFloat(s, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errors.New("not a finite number")
	}
	if err != nil {
		return 0, &CellError{Line: r.line, Column: col, Value: s, Err: err}
	}
	return v, nil
}

// outcome accepts integral values such as "1" or "1.0".
func (r rowReader) outcome(col string) (types.Outcome, error) {
	v, err := r.float(col)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, &CellError{Line: r.line, Column: col, Value: r.str(col), Err: errors.New("not an integer")}
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &CellError{Line: r.line, Column: col, Value: r.str(col), Err: errors.New("out of range")}
	}
	return types.Outcome(int(v)), nil
}

func (r rowReader) optionalInt(col string) (int, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &CellError{Line: r.line, Column: col, Value: s, Err: err}
	}
	return n, nil
}
