package controller

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

// parseSite returns the "site" query value, AllSites when absent.
func parseSite(r *http.Request) string {
	site := strings.TrimSpace(r.URL.Query().Get("site"))
	if site == "" {
		return types.AllSites
	}
	return site
}

// parseCriteria reads site, min and max from the query. Missing bounds fall
// back to defMin and defMax, clamped so that a single given bound never
// yields an inverted range.
func parseCriteria(r *http.Request, defMin, defMax float64) (types.Criteria, error) {
	q := r.URL.Query()
	c := types.Criteria{Site: parseSite(r), PayloadMin: defMin, PayloadMax: defMax}

	minStr, maxStr := q.Get("min"), q.Get("max")
	var err error
	if minStr != "" {
		if c.PayloadMin, err = parsePayload("min", minStr); err != nil {
			return types.Criteria{}, err
		}
	}
	if maxStr != "" {
		if c.PayloadMax, err = parsePayload("max", maxStr); err != nil {
			return types.Criteria{}, err
		}
	}
	switch {
	case maxStr == "" && c.PayloadMax < c.PayloadMin:
		c.PayloadMax = c.PayloadMin
	case minStr == "" && c.PayloadMin > c.PayloadMax:
		c.PayloadMin = c.PayloadMax
	}
	if c.PayloadMin > c.PayloadMax {
		return types.Criteria{}, errors.New("'min' must be <= 'max'")
	}
	return c, nil
}

func parsePayload(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid '%s' (expected payload mass in kg)", name)
	}
	return v, nil
}
