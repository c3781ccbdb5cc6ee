package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type nearbyRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
}

func (g *Gateway) GeocodeCity(ctx context.Context, city string) (*Coordinates, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidArgument)
	}
	var resp Coordinates
	if err := g.post(ctx, "/api/geocode-city", map[string]string{"city": city}, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindNearbyHospitals searches around lat,lng. radius is in meters; zero or
// less means DefaultSearchRadius.
func (g *Gateway) FindNearbyHospitals(ctx context.Context, lat, lng float64, radius int) (*HospitalList, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if radius <= 0 {
		radius = DefaultSearchRadius
	}
	var resp HospitalList
	req := nearbyRequest{Latitude: lat, Longitude: lng, Radius: radius}
	if err := g.post(ctx, "/api/nearby-hospitals", req, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) HospitalDetails(ctx context.Context, placeID string) (*HospitalDetails, error) {
	if placeID == "" {
		return nil, fmt.Errorf("%w: place id is required", ErrInvalidArgument)
	}
	var resp HospitalDetails
	if err := g.get(ctx, "/api/hospital-details/"+url.PathEscape(placeID), g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
