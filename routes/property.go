package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/services"
	"github.com/Startup925/realestate/utils"
)

func (h *Handlers) CreateProperty(ctx iris.Context) {
	var input services.PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property, err := h.Catalog.Create(ctx.Request().Context(), utils.CurrentUser(ctx), input)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":     "Property created successfully",
		"property_id": property.ID,
		"property":    property,
	})
}

// ListProperties - GET /api/properties?user_type=&location=&min_rent=&max_rent=&property_type=&lat=&lng=&radius_km=
func (h *Handlers) ListProperties(ctx iris.Context) {
	query := services.ListQuery{
		UserType:     ctx.URLParam("user_type"),
		Location:     ctx.URLParam("location"),
		MinRent:      ctx.URLParam("min_rent"),
		MaxRent:      ctx.URLParam("max_rent"),
		PropertyType: ctx.URLParam("property_type"),
		Lat:          ctx.URLParam("lat"),
		Lng:          ctx.URLParam("lng"),
		RadiusKm:     ctx.URLParam("radius_km"),
	}

	properties, err := h.Catalog.List(ctx.Request().Context(), utils.CurrentUser(ctx), query)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"properties": properties})
}

func (h *Handlers) GetProperty(ctx iris.Context) {
	property, err := h.Catalog.Get(ctx.Request().Context(), ctx.Params().Get("id"))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(property)
}

func (h *Handlers) UpdateProperty(ctx iris.Context) {
	var patch services.PropertyPatch
	if err := ctx.ReadJSON(&patch); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property, err := h.Catalog.Update(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().Get("id"), patch)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"message":  "Property updated successfully",
		"property": property,
	})
}

func (h *Handlers) DeleteProperty(ctx iris.Context) {
	if err := h.Catalog.Delete(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().Get("id")); err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"message": "Property deleted successfully"})
}
