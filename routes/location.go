package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/services"
	"github.com/Startup925/realestate/utils"
)

// PlacesAutocomplete - GET /api/google/places/autocomplete?input=
func (h *Handlers) PlacesAutocomplete(ctx iris.Context) {
	input := ctx.URLParam("input")
	if input == "" {
		utils.WriteError(ctx, utils.ValidationFailed("input is required"))
		return
	}

	res, err := h.Places.Autocomplete(ctx.Request().Context(), input)
	if err != nil {
		utils.WriteError(ctx, utils.VerificationUnavailable(err))
		return
	}
	ctx.JSON(res)
}

// PlaceDetails - GET /api/google/places/details?place_id=
func (h *Handlers) PlaceDetails(ctx iris.Context) {
	placeID := ctx.URLParam("place_id")
	if placeID == "" {
		utils.WriteError(ctx, utils.ValidationFailed("place_id is required"))
		return
	}

	res, err := h.Places.Details(ctx.Request().Context(), placeID)
	if err != nil {
		utils.WriteError(ctx, utils.VerificationUnavailable(err))
		return
	}
	ctx.JSON(res)
}

// PropertiesNearLocation - GET /api/locations/{key}/properties?radius_km=&limit=
func (h *Handlers) PropertiesNearLocation(ctx iris.Context) {
	city, ok := services.GetCityInfo(ctx.Params().Get("key"))
	if !ok {
		utils.WriteError(ctx, utils.NotFound("Location not found"))
		return
	}

	properties, err := h.Catalog.List(ctx.Request().Context(), utils.CurrentUser(ctx), services.ListQuery{
		UserType: "all",
		Lat:      strconv.FormatFloat(city.Lat, 'f', -1, 64),
		Lng:      strconv.FormatFloat(city.Lng, 'f', -1, 64),
		RadiusKm: ctx.URLParam("radius_km"),
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	if limit := ctx.URLParamIntDefault("limit", 8); limit > 0 && len(properties) > limit {
		properties = properties[:limit]
	}

	ctx.JSON(iris.Map{
		"location":   city,
		"properties": properties,
		"count":      len(properties),
	})
}

// Get all available locations
func (h *Handlers) ListLocations(ctx iris.Context) {
	keys := services.GetCityKeysByPriority()
	locations := make([]iris.Map, 0, len(keys))
	for _, key := range keys {
		city, _ := services.GetCityInfo(key)
		locations = append(locations, iris.Map{
			"key":               key,
			"name":              city.Name,
			"state":             city.State,
			"place_id":          city.PlaceID,
			"lat":               city.Lat,
			"lng":               city.Lng,
			"formatted_address": city.FormattedAddress(),
		})
	}

	ctx.JSON(iris.Map{
		"locations": locations,
		"count":     len(locations),
	})
}
