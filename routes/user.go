package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/services"
	"github.com/Startup925/realestate/utils"
)

func (h *Handlers) Register(ctx iris.Context) {
	var userInput services.RegisterInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, tokens, err := h.Accounts.Register(ctx.Request().Context(), userInput)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":       "User registered successfully",
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user": iris.Map{
			"user_id":   user.ID,
			"email":     user.Email,
			"user_type": user.Role,
			"full_name": user.FullName,
		},
	})
}

// Login accepts credentials as query parameters or as a JSON body.
func (h *Handlers) Login(ctx iris.Context) {
	input := services.LoginInput{
		Email:    ctx.URLParam("email"),
		Password: ctx.URLParam("password"),
	}
	if input.Email == "" && ctx.GetContentLength() > 0 {
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
	}

	user, tokens, err := h.Accounts.Login(ctx.Request().Context(), input)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":       "Login successful",
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user": iris.Map{
			"user_id":           user.ID,
			"email":             user.Email,
			"user_type":         user.Role,
			"full_name":         user.FullName,
			"profile_completed": user.ProfileCompleted,
			"kyc_completed":     user.KYCCompleted,
		},
	})
}

func (h *Handlers) Refresh(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	_, tokens, err := h.Accounts.Refresh(ctx.Request().Context(), input.RefreshToken)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(tokens)
}

// Logout revokes the bearer token. A refresh token in the body is discarded too.
func (h *Handlers) Logout(ctx iris.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if ctx.GetContentLength() > 0 {
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
	}

	if err := h.Accounts.Logout(ctx.Request().Context(), utils.CurrentToken(ctx), input.RefreshToken); err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"message": "Logged out successfully"})
}

func (h *Handlers) GetProfile(ctx iris.Context) {
	ctx.JSON(profileResponse(utils.CurrentUser(ctx)))
}

func (h *Handlers) UpdateProfile(ctx iris.Context) {
	var input services.ProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, err := h.Accounts.UpdateProfile(ctx.Request().Context(), utils.CurrentUser(ctx), input)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message": "Profile updated successfully",
		"user":    profileResponse(user),
	})
}

func profileResponse(user *models.User) iris.Map {
	return iris.Map{
		"user_id":           user.ID,
		"email":             user.Email,
		"user_type":         user.Role,
		"full_name":         user.FullName,
		"phone":             user.Phone,
		"phone_display":     utils.DisplayPhoneNumber(user.Phone),
		"profile":           user.ProfileData(),
		"profile_completed": user.ProfileCompleted,
		"kyc_completed":     user.KYCCompleted,
	}
}
