package routes

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

// AdminListProperties - GET /admin/properties?status=&owner_id=&search=&location=&page=&per_page=
func (h *Handlers) AdminListProperties(ctx iris.Context) {
	page, perPage := pagination(ctx)
	filter := storage.PropertyFilter{
		OwnerID:  ctx.URLParam("owner_id"),
		Status:   models.PropertyStatus(ctx.URLParam("status")),
		Search:   strings.TrimSpace(ctx.URLParam("search")),
		Location: strings.TrimSpace(ctx.URLParam("location")),
		Page:     page,
		PerPage:  perPage,
	}
	if pt := ctx.URLParam("property_type"); pt != "" {
		filter.PropertyType = models.PropertyType(pt)
	}

	properties, total, err := h.Admin.ListProperties(ctx.Request().Context(), utils.CurrentUser(ctx), filter)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONPage(ctx, properties, page, perPage, total)
}

func (h *Handlers) AdminGetProperty(ctx iris.Context) {
	detail, err := h.Admin.GetProperty(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().Get("id"))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"data": detail})
}

func (h *Handlers) AdminDeleteProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")
	property, err := h.Admin.DeleteProperty(ctx.Request().Context(), utils.CurrentUser(ctx), id)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.Audit(ctx, h.Audit, "delete_property", "property", id, property, nil)
	ctx.JSON(iris.Map{"message": "Property deleted successfully"})
}
