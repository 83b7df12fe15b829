package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/utils"
)

func (h *Handlers) DashboardStats(ctx iris.Context) {
	stats, err := h.Dashboard.Stats(ctx.Request().Context(), utils.CurrentUser(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"stats": stats})
}
