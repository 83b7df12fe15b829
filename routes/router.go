package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/obs"
	"github.com/Startup925/realestate/services"
	"github.com/Startup925/realestate/utils"
)

// Handlers groups the services the HTTP layer calls into.
type Handlers struct {
	Accounts  *services.Accounts
	Catalog   *services.Catalog
	KYC       *services.KYCService
	Interests *services.Interests
	Dashboard *services.Dashboard
	Admin     *services.Admin
	Places    services.PlacesProvider
	Tokens    *utils.TokenIssuer
	Audit     utils.AuditStore
	Metrics   *obs.Metrics

	// Ping reports storage health; nil skips the check.
	Ping func() error
}

func NewApp(h *Handlers) *iris.Application {
	app := iris.New()
	app.Validator = utils.NewValidator()

	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Add only essential middleware, skip request logging
	app.Use(iris.Compression)

	if h.Metrics != nil {
		app.UseGlobal(h.Metrics.Middleware)
		app.Get("/metrics", h.Metrics.Handler())
	}

	authed := utils.Authenticate(h.Tokens, h.Accounts)
	listers := utils.RequireRoles(models.RoleOwner, models.RoleDealer)
	tenants := utils.RequireRoles(models.RoleTenant)

	api := app.Party("/api")
	{
		api.Get("/health", h.Health)
	}

	auth := api.Party("/auth")
	{
		auth.Post("/register", h.Register)
		auth.Post("/login", h.Login)
		auth.Post("/refresh", h.Refresh)
		auth.Post("/logout", authed, h.Logout)
	}

	user := api.Party("/user", authed)
	{
		user.Get("/profile", h.GetProfile)
		user.Put("/profile", h.UpdateProfile)
	}

	property := api.Party("/properties", authed)
	{
		property.Post("/", listers, h.CreateProperty)
		property.Get("/", h.ListProperties)
		property.Get("/{id}", h.GetProperty)
		property.Put("/{id}", h.UpdateProperty)
		property.Delete("/{id}", h.DeleteProperty)
		property.Post("/{id}/interest", tenants, h.ExpressInterest)
	}

	kyc := api.Party("/kyc", authed)
	{
		kyc.Post("/verify", tenants, h.VerifyKYC)
	}

	interests := api.Party("/interests", authed)
	{
		interests.Get("/", h.ListInterests)
		interests.Put("/{id}/respond", listers, h.RespondInterest)
	}

	dashboard := api.Party("/dashboard", authed)
	{
		dashboard.Get("/stats", h.DashboardStats)
	}

	admin := api.Party("/admin", authed, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", h.AdminListUsers)
		admin.Get("/users/{id}", h.AdminGetUser)
		admin.Delete("/users/{id}", h.AdminDeleteUser)

		admin.Get("/properties", h.AdminListProperties)
		admin.Get("/properties/{id}", h.AdminGetProperty)
		admin.Delete("/properties/{id}", h.AdminDeleteProperty)

		admin.Get("/system-stats", h.AdminSystemStats)
		admin.Get("/recent-activity", h.AdminRecentActivity)
	}

	google := api.Party("/google/places", authed)
	{
		google.Get("/autocomplete", h.PlacesAutocomplete)
		google.Get("/details", h.PlaceDetails)
	}

	api.Get("/locations", h.ListLocations)
	api.Get("/locations/{key}/properties", authed, h.PropertiesNearLocation)

	return app
}

func (h *Handlers) Health(ctx iris.Context) {
	status := "healthy"
	code := iris.StatusOK
	if h.Ping != nil {
		if err := h.Ping(); err != nil {
			status, code = "unhealthy", iris.StatusServiceUnavailable
		}
	}
	ctx.StatusCode(code)
	ctx.JSON(iris.Map{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
