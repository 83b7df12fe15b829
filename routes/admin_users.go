package routes

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

// AdminListUsers - GET /admin/users?role=&q=&page=&per_page=
func (h *Handlers) AdminListUsers(ctx iris.Context) {
	page, perPage := pagination(ctx)
	filter := storage.UserFilter{
		Role:    models.Role(strings.TrimSpace(ctx.URLParam("role"))),
		Query:   strings.TrimSpace(ctx.URLParam("q")),
		Page:    page,
		PerPage: perPage,
	}

	users, total, err := h.Admin.ListUsers(ctx.Request().Context(), utils.CurrentUser(ctx), filter)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONPage(ctx, users, page, perPage, total)
}

// GET /admin/users/{id} with listings, interests and admin actions
func (h *Handlers) AdminGetUser(ctx iris.Context) {
	detail, err := h.Admin.GetUser(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().Get("id"))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"data": detail})
}

func (h *Handlers) AdminDeleteUser(ctx iris.Context) {
	id := ctx.Params().Get("id")
	user, err := h.Admin.DeleteUser(ctx.Request().Context(), utils.CurrentUser(ctx), id)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.Audit(ctx, h.Audit, "delete_user", "user", id, user, nil)
	ctx.JSON(iris.Map{"message": "User deleted successfully"})
}
