package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

// Matches every value of a list filter.
const filterAll = "all"

const defaultRadiusKm = 10.0

type PropertyInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type" validate:"required,oneof=apartment house commercial"`
	Size         string   `json:"size"`
	Rent         float64  `json:"rent" validate:"gte=0"`
	Location     string   `json:"location" validate:"required"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
}

// PropertyPatch holds the fields of a partial update; nil means unchanged.
type PropertyPatch struct {
	Title        *string   `json:"title" validate:"omitempty,min=1"`
	Description  *string   `json:"description"`
	PropertyType *string   `json:"property_type" validate:"omitempty,oneof=apartment house commercial"`
	Size         *string   `json:"size"`
	Rent         *float64  `json:"rent" validate:"omitempty,gte=0"`
	Location     *string   `json:"location" validate:"omitempty,min=1"`
	Amenities    *[]string `json:"amenities"`
	Images       *[]string `json:"images"`
	Status       *string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListQuery carries the raw list parameters. Empty strings and "all" mean
// no filter for rent bounds and property type.
type ListQuery struct {
	UserType     string
	Location     string
	MinRent      string
	MaxRent      string
	PropertyType string
	Lat          string
	Lng          string
	RadiusKm     string
}

type Catalog struct {
	properties PropertyStore
	geocoder   Geocoder
}

func NewCatalog(properties PropertyStore, geocoder Geocoder) *Catalog {
	return &Catalog{properties: properties, geocoder: geocoder}
}

func (c *Catalog) geocode(ctx context.Context, location string) (models.GeocodeResult, datatypes.JSON, error) {
	geo, err := c.geocoder.Geocode(ctx, location)
	if err != nil {
		return geo, nil, &utils.AppError{Kind: utils.KindVerificationUnavailable, Message: "Geocoding service unavailable, please retry", Err: err}
	}
	raw, err := json.Marshal(geo)
	if err != nil {
		return geo, nil, utils.Internal(err)
	}
	return geo, datatypes.JSON(raw), nil
}

func (c *Catalog) Create(ctx context.Context, actor *models.User, in PropertyInput) (*models.Property, error) {
	if !actor.Role.Lists() {
		return nil, utils.Forbidden("Only owners and dealers can create properties")
	}
	if in.Rent < 0 {
		return nil, utils.ValidationFailed("Rent must not be negative")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, utils.ValidationFailed("Location is required")
	}

	geo, raw, err := c.geocode(ctx, in.Location)
	if err != nil {
		return nil, err
	}

	p := &models.Property{
		OwnerID:       actor.ID,
		Title:         in.Title,
		Description:   in.Description,
		PropertyType:  models.PropertyType(in.PropertyType),
		Size:          in.Size,
		Rent:          in.Rent,
		Location:      in.Location,
		Latitude:      geo.Lat,
		Longitude:     geo.Lng,
		GeocodeResult: raw,
		Amenities:     models.StringList(in.Amenities),
		Images:        models.StringList(in.Images),
		Status:        models.PropertyActive,
	}
	if err := c.properties.CreateProperty(ctx, p); err != nil {
		return nil, utils.Internal(err)
	}
	return p, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.Property, error) {
	p, err := c.properties.PropertyByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Property not found")
	}
	return p, nil
}

// authorize loads the property and checks that actor owns it or is an admin.
func (c *Catalog) authorize(ctx context.Context, actor *models.User, id, action string) (*models.Property, error) {
	p, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, utils.Forbidden("Not authorized to " + action + " this property")
	}
	return p, nil
}

func (c *Catalog) Update(ctx context.Context, actor *models.User, id string, patch PropertyPatch) (*models.Property, error) {
	current, err := c.authorize(ctx, actor, id, "update")
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.PropertyType != nil {
		fields["property_type"] = models.PropertyType(*patch.PropertyType)
	}
	if patch.Size != nil {
		fields["size"] = *patch.Size
	}
	if patch.Rent != nil {
		if *patch.Rent < 0 {
			return nil, utils.ValidationFailed("Rent must not be negative")
		}
		fields["rent"] = *patch.Rent
	}
	if patch.Amenities != nil {
		fields["amenities"] = models.StringList(*patch.Amenities)
	}
	if patch.Images != nil {
		fields["images"] = models.StringList(*patch.Images)
	}
	if patch.Status != nil {
		fields["status"] = models.PropertyStatus(*patch.Status)
	}
	if patch.Location != nil && *patch.Location != current.Location {
		geo, raw, err := c.geocode(ctx, *patch.Location)
		if err != nil {
			return nil, err
		}
		fields["location"] = *patch.Location
		fields["latitude"] = geo.Lat
		fields["longitude"] = geo.Lng
		fields["geocode_result"] = raw
	}

	p, err := c.properties.UpdateProperty(ctx, id, fields)
	if err != nil {
		return nil, storeError(err, "Property not found")
	}
	return p, nil
}

// Delete removes a property with its interests.
func (c *Catalog) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := c.authorize(ctx, actor, id, "delete"); err != nil {
		return err
	}
	return storeError(c.properties.DeleteProperty(ctx, id), "Property not found")
}

// List returns active properties, newest first. Owners and dealers see only
// their own listings unless a user_type view is requested.
func (c *Catalog) List(ctx context.Context, actor *models.User, q ListQuery) ([]models.Property, error) {
	filter := storage.PropertyFilter{
		Status:   models.PropertyActive,
		Location: strings.TrimSpace(q.Location),
	}
	if actor.Role.Lists() && q.UserType == "" {
		filter.OwnerID = actor.ID
	}

	var err error
	if filter.MinRent, err = parseBound("min_rent", q.MinRent); err != nil {
		return nil, err
	}
	if filter.MaxRent, err = parseBound("max_rent", q.MaxRent); err != nil {
		return nil, err
	}
	if pt := strings.TrimSpace(q.PropertyType); pt != "" && !strings.EqualFold(pt, filterAll) {
		filter.PropertyType = models.PropertyType(pt)
	}

	properties, _, err := c.properties.ListProperties(ctx, filter)
	if err != nil {
		return nil, utils.Internal(err)
	}

	if q.Lat != "" || q.Lng != "" {
		lat, errLat := strconv.ParseFloat(q.Lat, 64)
		lng, errLng := strconv.ParseFloat(q.Lng, 64)
		if errLat != nil || errLng != nil {
			return nil, utils.ValidationFailed("lat and lng must both be numbers")
		}
		radius := defaultRadiusKm
		if q.RadiusKm != "" {
			if radius, err = strconv.ParseFloat(q.RadiusKm, 64); err != nil || radius <= 0 {
				return nil, utils.ValidationFailed("radius_km must be a positive number")
			}
		}
		properties = FilterPropertiesNear(properties, lat, lng, radius)
	}
	return properties, nil
}

func parseBound(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, filterAll) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.ValidationFailed(name + " must be a number or \"all\"")
	}
	return &v, nil
}
