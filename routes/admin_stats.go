package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/utils"
)

// GET /admin/system-stats
func (h *Handlers) AdminSystemStats(ctx iris.Context) {
	stats, err := h.Admin.SystemStats(ctx.Request().Context(), utils.CurrentUser(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"stats": stats})
}

// GET /admin/recent-activity
func (h *Handlers) AdminRecentActivity(ctx iris.Context) {
	activity, err := h.Admin.RecentActivity(ctx.Request().Context(), utils.CurrentUser(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(activity)
}
