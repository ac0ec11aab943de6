package domain

// UserLocation is a geolocation fix supplied by the UI layer. The engine
// receives it by value and never mutates it.
type UserLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VendorRecord is a read-only entry from the vendor directory. Coordinates
// are optional; vendors without a fix are skipped by proximity search.
type VendorRecord struct {
	ID        string   `json:"id" gorm:"primaryKey"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Coordinates returns the vendor's location, or nil when either component
// is missing.
func (v *VendorRecord) Coordinates() *UserLocation {
	if v.Latitude == nil || v.Longitude == nil {
		return nil
	}
	return &UserLocation{Lat: *v.Latitude, Lng: *v.Longitude}
}

// NearbyVendor is one row of a proximity search result. DistanceKm is
// rounded to one decimal place for presentation.
type NearbyVendor struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
}
