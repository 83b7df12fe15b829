package services

import (
	"context"
	"strings"
)

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type Prediction struct {
	Description          string               `json:"description"`
	PlaceID              string               `json:"place_id"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting"`
	Types                []string             `json:"types"`
}

type AutocompleteResponse struct {
	Status      string       `json:"status"`
	Predictions []Prediction `json:"predictions"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type PlaceResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
}

type DetailsResponse struct {
	Status string       `json:"status"`
	Result *PlaceResult `json:"result,omitempty"`
}

// PlacesProvider answers place lookups in the Google Places response shape.
type PlacesProvider interface {
	Autocomplete(ctx context.Context, input string) (AutocompleteResponse, error)
	Details(ctx context.Context, placeID string) (DetailsResponse, error)
}

// MockPlaces serves lookups from the fixed city table.
type MockPlaces struct{}

func (MockPlaces) Autocomplete(_ context.Context, input string) (AutocompleteResponse, error) {
	query := strings.ToLower(strings.TrimSpace(input))
	resp := AutocompleteResponse{Status: "ZERO_RESULTS", Predictions: []Prediction{}}
	if query == "" {
		return resp, nil
	}

	for _, key := range GetCityKeysByPriority() {
		city := Cities[key]
		if !strings.Contains(key, query) && !strings.Contains(strings.ToLower(city.State), query) {
			continue
		}
		resp.Predictions = append(resp.Predictions, Prediction{
			Description: city.FormattedAddress(),
			PlaceID:     city.PlaceID,
			StructuredFormatting: StructuredFormatting{
				MainText:      city.Name,
				SecondaryText: city.State + ", India",
			},
			Types: []string{"locality", "political", "geocode"},
		})
	}
	if len(resp.Predictions) > 0 {
		resp.Status = "OK"
	}
	return resp, nil
}

func (MockPlaces) Details(_ context.Context, placeID string) (DetailsResponse, error) {
	for _, city := range Cities {
		if city.PlaceID == placeID {
			return DetailsResponse{Status: "OK", Result: &PlaceResult{
				PlaceID:          city.PlaceID,
				Name:             city.Name,
				FormattedAddress: city.FormattedAddress(),
				Geometry:         Geometry{Location: LatLng{Lat: city.Lat, Lng: city.Lng}},
			}}, nil
		}
	}
	return DetailsResponse{Status: "NOT_FOUND"}, nil
}
