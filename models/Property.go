package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCommercial PropertyType = "commercial"
)

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
)

type Property struct {
	ID            string         `json:"property_id" gorm:"primaryKey;column:property_id;type:varchar(36)"`
	OwnerID       string         `json:"owner_id" gorm:"type:varchar(36);not null;index"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	PropertyType  PropertyType   `json:"property_type" gorm:"type:varchar(20);index"`
	Size          string         `json:"size" gorm:"size:64"`
	Rent          float64        `json:"rent" gorm:"index"`
	Location      string         `json:"location"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	GeocodeResult datatypes.JSON `json:"geocode_result"`
	Amenities     datatypes.JSON `json:"amenities"` // JSON array of strings
	Images        datatypes.JSON `json:"images"`    // JSON array of URLs
	Status        PropertyStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// GeocodeResult is the payload the geocoding collaborator returns for a location.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	Approximate      bool    `json:"approximate"`
}

// StringList encodes a string slice as a JSON column, never null.
func StringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

func decodeStringList(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) > 0 {
		var values []string
		if err := json.Unmarshal(raw, &values); err == nil && values != nil {
			out = values
		}
	}
	return out
}

func (p Property) AmenityList() []string { return decodeStringList(p.Amenities) }

func (p Property) ImageList() []string { return decodeStringList(p.Images) }

// Custom JSON marshaling to convert Images and Amenities columns to arrays
func (p Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := struct {
		Images        []string        `json:"images"`
		Amenities     []string        `json:"amenities"`
		GeocodeResult json.RawMessage `json:"geocode_result,omitempty"`
		Alias
	}{
		Images:    p.ImageList(),
		Amenities: p.AmenityList(),
		Alias:     Alias(p),
	}
	if len(p.GeocodeResult) > 0 {
		aux.GeocodeResult = json.RawMessage(p.GeocodeResult)
	}
	return json.Marshal(aux)
}
