package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/medmate/internal/client/capability"
	"github.com/dmitrijs2005/medmate/internal/client/client"
)

// hospitals searches around the named city, or around the device position
// when no city is given.
func (a *App) hospitals(ctx context.Context, args []string) error {
	var lat, lng float64
	if city := strings.Join(args, " "); city != "" {
		coords, err := a.api.GeocodeCity(ctx, city)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Hospitals near %s:\n", coords.FormattedAddress)
		lat, lng = coords.Latitude, coords.Longitude
	} else {
		pos, err := a.locator.CurrentPosition(ctx)
		if errors.Is(err, capability.ErrNotSupported) {
			fmt.Fprintln(a.out, "Your location is not available. Try: hospitals <city>")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Hospitals near you:")
		lat, lng = pos.Latitude, pos.Longitude
	}

	list, err := a.api.FindNearbyHospitals(ctx, lat, lng, client.DefaultSearchRadius)
	if err != nil {
		return err
	}
	if len(list.Hospitals) == 0 {
		fmt.Fprintln(a.out, "No hospitals found nearby.")
		return nil
	}
	for i, h := range list.Hospitals {
		fmt.Fprintf(a.out, "%d. %s, %s", i+1, h.Name, h.Address)
		if h.Rating > 0 {
			fmt.Fprintf(a.out, ", rating %.1f", h.Rating)
		}
		if h.OpenNow != nil {
			fmt.Fprintf(a.out, ", %s", openText(*h.OpenNow))
		}
		fmt.Fprintln(a.out)
		if h.PlaceID != nil {
			fmt.Fprintf(a.out, "   details: hospital %s\n", *h.PlaceID)
		}
	}
	return nil
}

func (a *App) hospital(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: hospital <place-id>")
		return nil
	}
	d, err := a.api.HospitalDetails(ctx, args[0])
	if err != nil {
		return err
	}
	if d.Name == "" {
		fmt.Fprintln(a.out, "No details available for this place.")
		return nil
	}

	fmt.Fprintln(a.out, d.Name)
	if d.FormattedAddress != "" {
		fmt.Fprintf(a.out, "Address: %s\n", d.FormattedAddress)
	}
	if d.FormattedPhoneNumber != "" {
		fmt.Fprintf(a.out, "Phone: %s\n", d.FormattedPhoneNumber)
	}
	if d.Rating > 0 {
		fmt.Fprintf(a.out, "Rating: %.1f\n", d.Rating)
	}
	if d.Website != "" {
		fmt.Fprintf(a.out, "Website: %s\n", d.Website)
	}
	if h := d.OpeningHours; h != nil {
		if h.OpenNow != nil {
			fmt.Fprintf(a.out, "Now: %s\n", openText(*h.OpenNow))
		}
		for _, line := range h.WeekdayText {
			fmt.Fprintf(a.out, "  %s\n", line)
		}
	}
	return nil
}

func openText(open bool) string {
	if open {
		return "open now"
	}
	return "closed"
}
