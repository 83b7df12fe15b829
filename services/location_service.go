package services

import (
	"context"
	"math"
	"strings"

	"github.com/Startup925/realestate/models"
)

// Cities the mock geocoder and places lookup know about.
var Cities = map[string]Location{
	"mumbai": {
		Name:     "Mumbai",
		State:    "Maharashtra",
		PlaceID:  "mock_place_mumbai",
		Lat:      19.0760,
		Lng:      72.8777,
		Priority: 1,
	},
	"delhi": {
		Name:     "Delhi",
		State:    "Delhi",
		PlaceID:  "mock_place_delhi",
		Lat:      28.7041,
		Lng:      77.1025,
		Priority: 2,
	},
	"bangalore": {
		Name:     "Bangalore",
		State:    "Karnataka",
		PlaceID:  "mock_place_bangalore",
		Lat:      12.9716,
		Lng:      77.5946,
		Priority: 3,
	},
	"hyderabad": {
		Name:     "Hyderabad",
		State:    "Telangana",
		PlaceID:  "mock_place_hyderabad",
		Lat:      17.3850,
		Lng:      78.4867,
		Priority: 4,
	},
	"pune": {
		Name:     "Pune",
		State:    "Maharashtra",
		PlaceID:  "mock_place_pune",
		Lat:      18.5204,
		Lng:      73.8567,
		Priority: 5,
	},
	"chennai": {
		Name:     "Chennai",
		State:    "Tamil Nadu",
		PlaceID:  "mock_place_chennai",
		Lat:      13.0827,
		Lng:      80.2707,
		Priority: 6,
	},
}

type Location struct {
	Name     string  `json:"name"`
	State    string  `json:"state"`
	PlaceID  string  `json:"place_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Priority int     `json:"priority"`
}

func (l Location) FormattedAddress() string {
	return l.Name + ", " + l.State + ", India"
}

// Geocoder resolves a free-form location to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.GeocodeResult, error)
}

// MockGeocoder matches known city names inside the address and falls back to
// a random point around Delhi.
type MockGeocoder struct {
	Random RandomSource
}

func (g MockGeocoder) Geocode(_ context.Context, address string) (models.GeocodeResult, error) {
	lower := strings.ToLower(address)
	for _, key := range GetCityKeysByPriority() {
		if strings.Contains(lower, key) {
			city := Cities[key]
			return models.GeocodeResult{Lat: city.Lat, Lng: city.Lng, FormattedAddress: city.FormattedAddress()}, nil
		}
	}

	delhi := Cities["delhi"]
	return models.GeocodeResult{
		Lat:              delhi.Lat + g.Random.Float64()*10 - 5,
		Lng:              delhi.Lng + g.Random.Float64()*10 - 5,
		FormattedAddress: address,
		Approximate:      true,
	}, nil
}

// Calculate distance between two points using Haversine formula
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// Check if a property is within radiusKm of a point
func IsPropertyNear(property *models.Property, lat, lng, radiusKm float64) bool {
	return CalculateDistance(property.Latitude, property.Longitude, lat, lng) <= radiusKm
}

// Get properties within radiusKm of a point, keeping their order
func FilterPropertiesNear(properties []models.Property, lat, lng, radiusKm float64) []models.Property {
	nearby := []models.Property{}
	for i := range properties {
		if IsPropertyNear(&properties[i], lat, lng, radiusKm) {
			nearby = append(nearby, properties[i])
		}
	}
	return nearby
}

// Get all city keys sorted by priority
func GetCityKeysByPriority() []string {
	var keys []string
	priorityMap := make(map[int]string)

	for key, city := range Cities {
		priorityMap[city.Priority] = key
	}

	for i := 1; i <= len(Cities); i++ {
		if key, exists := priorityMap[i]; exists {
			keys = append(keys, key)
		}
	}

	return keys
}

// Get city info by key
func GetCityInfo(key string) (Location, bool) {
	city, exists := Cities[strings.ToLower(key)]
	return city, exists
}
