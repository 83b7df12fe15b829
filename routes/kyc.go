package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/utils"
)

// VerifyKYC - POST /api/kyc/verify { aadhaar_number, pan_number, selfie_image, employer_name? }
func (h *Handlers) VerifyKYC(ctx iris.Context) {
	var docs models.KYCDocuments
	if err := ctx.ReadJSON(&docs); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	outcome, err := h.KYC.Verify(ctx.Request().Context(), utils.CurrentUser(ctx), docs)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":              "KYC verification completed",
		"kyc_status":           outcome.Eligible,
		"verification_results": outcome.Results,
	})
}
