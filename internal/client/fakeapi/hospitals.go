package fakeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type place struct {
	Name    string
	Address string
	Phone   string
	Website string
	Rating  float64
	OpenNow bool
	// Offset from the search centre in degrees.
	DLat, DLng float64
}

var cities = map[string]map[string]any{
	"gurugram": {"latitude": 28.4595, "longitude": 77.0266, "formatted_address": "Gurugram, Haryana, India"},
	"panipat":  {"latitude": 29.3909, "longitude": 76.9635, "formatted_address": "Panipat, Haryana, India"},
	"rohtak":   {"latitude": 28.8955, "longitude": 76.6066, "formatted_address": "Rohtak, Haryana, India"},
}

var places = map[string]place{
	"place-civil": {
		Name: "Civil Hospital", Address: "Hospital Road", Phone: "+91 124 000 0001",
		Rating: 3.9, OpenNow: true, DLat: 0.004, DLng: 0.002,
	},
	"place-city-care": {
		Name: "City Care Clinic", Address: "Sector 14 Market", Phone: "+91 124 000 0002",
		Website: "https://citycare.example", Rating: 4.4, OpenNow: false, DLat: -0.01, DLng: 0.006,
	},
}

func (s *Server) geocodeCity(c echo.Context) error {
	var req struct {
		City string `json:"city"`
	}
	if err := c.Bind(&req); err != nil || req.City == "" {
		return jsonError(c, http.StatusBadRequest, "City name required")
	}
	loc, ok := cities[strings.ToLower(strings.TrimSpace(req.City))]
	if !ok {
		return jsonError(c, http.StatusNotFound, "City not found")
	}
	return c.JSON(http.StatusOK, loc)
}

func (s *Server) nearbyHospitals(c echo.Context) error {
	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Radius    int      `json:"radius"`
	}
	if err := c.Bind(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		return jsonError(c, http.StatusBadRequest, "Location coordinates required")
	}

	hospitals := []map[string]any{}
	for _, id := range []string{"place-civil", "place-city-care"} {
		p := places[id]
		// Roughly 111km per degree; skip what falls outside the radius.
		if req.Radius > 0 && (abs(p.DLat)*111000 > float64(req.Radius) || abs(p.DLng)*111000 > float64(req.Radius)) {
			continue
		}
		hospitals = append(hospitals, map[string]any{
			"name":      p.Name,
			"address":   p.Address,
			"latitude":  *req.Latitude + p.DLat,
			"longitude": *req.Longitude + p.DLng,
			"rating":    p.Rating,
			"open_now":  p.OpenNow,
			"place_id":  id,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

func (s *Server) hospitalDetails(c echo.Context) error {
	p, ok := places[c.Param("place_id")]
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"name":                   p.Name,
		"formatted_address":      p.Address,
		"formatted_phone_number": p.Phone,
		"rating":                 p.Rating,
		"website":                p.Website,
		"opening_hours": map[string]any{
			"open_now":     p.OpenNow,
			"weekday_text": []string{"Monday: Open 24 hours"},
		},
	})
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
