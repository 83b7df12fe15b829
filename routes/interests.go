package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/services"
	"github.com/Startup925/realestate/utils"
)

// ExpressInterest - POST /api/properties/{id}/interest { property_id?, message }
func (h *Handlers) ExpressInterest(ctx iris.Context) {
	var input services.InterestInput
	if ctx.GetContentLength() > 0 {
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
	}

	propertyID := ctx.Params().Get("id")
	if input.PropertyID != "" && input.PropertyID != propertyID {
		utils.WriteError(ctx, utils.ValidationFailed("property_id does not match the path"))
		return
	}

	interest, err := h.Interests.Express(ctx.Request().Context(), utils.CurrentUser(ctx), propertyID, input.Message)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":     "Interest expressed successfully",
		"interest_id": interest.ID,
		"interest":    interest,
	})
}

func (h *Handlers) ListInterests(ctx iris.Context) {
	interests, err := h.Interests.List(ctx.Request().Context(), utils.CurrentUser(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"interests": interests})
}

// RespondInterest - PUT /api/interests/{id}/respond?response=approved|rejected
// The decision may also be sent as {"response": "..."}.
func (h *Handlers) RespondInterest(ctx iris.Context) {
	response := ctx.URLParam("response")
	if response == "" && ctx.GetContentLength() > 0 {
		var body struct {
			Response string `json:"response"`
		}
		if err := ctx.ReadJSON(&body); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
		response = body.Response
	}

	interest, err := h.Interests.Respond(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().Get("id"), response)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":  "Interest " + string(interest.Status) + " successfully",
		"interest": interest,
	})
}
