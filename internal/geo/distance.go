package geo

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

const (
	earthRadiusMeters = 6371000.0

	// DefaultRadiusKm applies when a query carries no usable number.
	DefaultRadiusKm = 5.0
)

var radiusPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Distance returns the great-circle distance between two points in
// meters, using the haversine formula.
func Distance(a, b domain.UserLocation) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// DistanceKm returns the great-circle distance in kilometers.
func DistanceKm(a, b domain.UserLocation) float64 {
	return Distance(a, b) / 1000
}

// FindNearby returns the vendors within radiusKm of origin, sorted by
// ascending distance. The filter uses the exact distance; rounding to one
// decimal happens only for the reported value, so boundary vendors are
// not pushed in or out by presentation rounding. Vendors without
// coordinates are silently skipped. The sort is stable: ties keep the
// directory order. An empty result is a value, not an error.
func FindNearby(origin domain.UserLocation, radiusKm float64, vendors []domain.VendorRecord) []domain.NearbyVendor {
	type candidate struct {
		row domain.NearbyVendor
		km  float64
	}

	candidates := make([]candidate, 0, len(vendors))
	for _, v := range vendors {
		coord := v.Coordinates()
		if coord == nil {
			continue
		}
		km := DistanceKm(origin, *coord)
		if km > radiusKm {
			continue
		}
		candidates = append(candidates, candidate{
			row: domain.NearbyVendor{
				Name:       v.Name,
				Address:    v.Address,
				DistanceKm: math.Round(km*10) / 10,
			},
			km: km,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].km < candidates[j].km
	})

	out := make([]domain.NearbyVendor, len(candidates))
	for i, c := range candidates {
		out[i] = c.row
	}
	return out
}

// ParseRadiusKm extracts the search radius from query text: the first
// integer-or-decimal number found. Missing or unparsable numbers fall
// back to DefaultRadiusKm rather than failing.
func ParseRadiusKm(text string) float64 {
	m := radiusPattern.FindString(text)
	if m == "" {
		return DefaultRadiusKm
	}
	r, err := strconv.ParseFloat(m, 64)
	if err != nil || r <= 0 {
		return DefaultRadiusKm
	}
	return r
}
