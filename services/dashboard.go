package services

import (
	"context"
	"time"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

const recentActivityLimit = 10

type Dashboard struct {
	stats StatsStore
}

func NewDashboard(stats StatsStore) *Dashboard {
	return &Dashboard{stats: stats}
}

type counter func() (int64, error)

// collect runs every counter, failing on the first store error.
func collect(counters map[string]counter) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(counters))
	for key, count := range counters {
		n, err := count()
		if err != nil {
			return nil, utils.Internal(err)
		}
		out[key] = n
	}
	return out, nil
}

// Stats returns the counters of the actor's role, scoped to the actor
// except for admins.
func (d *Dashboard) Stats(ctx context.Context, actor *models.User) (map[string]interface{}, error) {
	id := actor.ID
	properties := func(status models.PropertyStatus) counter {
		return func() (int64, error) { return d.stats.CountProperties(ctx, id, status) }
	}
	interests := func(f storage.InterestFilter) counter {
		return func() (int64, error) { return d.stats.CountInterests(ctx, f) }
	}

	switch actor.Role {
	case models.RoleOwner:
		return collect(map[string]counter{
			"total_properties":  properties(""),
			"active_properties": properties(models.PropertyActive),
			"total_interests":   interests(storage.InterestFilter{OwnerID: id}),
			"pending_interests": interests(storage.InterestFilter{OwnerID: id, Status: models.InterestPending}),
		})
	case models.RoleDealer:
		return collect(map[string]counter{
			"managed_properties": properties(""),
			"active_listings":    properties(models.PropertyActive),
			"total_interests":    interests(storage.InterestFilter{OwnerID: id}),
			"deals_closed":       interests(storage.InterestFilter{OwnerID: id, Status: models.InterestApproved}),
		})
	case models.RoleTenant:
		stats, err := collect(map[string]counter{
			"interests_expressed":   interests(storage.InterestFilter{TenantID: id}),
			"applications_pending":  interests(storage.InterestFilter{TenantID: id, Status: models.InterestPending}),
			"applications_approved": interests(storage.InterestFilter{TenantID: id, Status: models.InterestApproved}),
		})
		if err != nil {
			return nil, err
		}
		stats["kyc_status"] = actor.KYCCompleted
		return stats, nil
	case models.RoleAdmin:
		return collect(map[string]counter{
			"total_users":       func() (int64, error) { return d.stats.CountUsers(ctx, "", false) },
			"verified_tenants":  func() (int64, error) { return d.stats.CountUsers(ctx, models.RoleTenant, true) },
			"total_properties":  func() (int64, error) { return d.stats.CountProperties(ctx, "", "") },
			"active_properties": func() (int64, error) { return d.stats.CountProperties(ctx, "", models.PropertyActive) },
			"total_interests":   interests(storage.InterestFilter{}),
			"pending_interests": interests(storage.InterestFilter{Status: models.InterestPending}),
		})
	}
	return map[string]interface{}{}, nil
}

type SystemStats struct {
	TotalUsers         int64            `json:"total_users"`
	TotalProperties    int64            `json:"total_properties"`
	TotalInterests     int64            `json:"total_interests"`
	KYCVerifiedTenants int64            `json:"kyc_verified_tenants"`
	UsersByRole        map[string]int64 `json:"users_by_role"`
	PropertiesByStatus map[string]int64 `json:"properties_by_status"`
	PropertiesByType   map[string]int64 `json:"properties_by_type"`
	InterestsByStatus  map[string]int64 `json:"interests_by_status"`
	NewUsers7d         int64            `json:"new_users_7d"`
	NewProperties7d    int64            `json:"new_properties_7d"`
	NewInterests7d     int64            `json:"new_interests_7d"`
}

type RecentActivity struct {
	Users        []models.User     `json:"recent_users"`
	Properties   []models.Property `json:"recent_properties"`
	Interests    []models.Interest `json:"recent_interests"`
	AdminActions []models.AuditLog `json:"admin_actions"`
}

type UserDetail struct {
	User               *models.User      `json:"user"`
	Properties         []models.Property `json:"properties"`
	Interests          []models.Interest `json:"interests"`
	RecentAdminActions []models.AuditLog `json:"recent_admin_actions"`
}

type PropertyDetail struct {
	Property  *models.Property  `json:"property"`
	Owner     *models.User      `json:"owner"`
	Interests []models.Interest `json:"interests"`
}

// Admin holds the platform-wide operations reserved to the admin role.
type Admin struct {
	store AdminStore
	stats StatsStore
	now   func() time.Time
}

func NewAdmin(store AdminStore, stats StatsStore) *Admin {
	return &Admin{store: store, stats: stats, now: time.Now}
}

func requireAdmin(actor *models.User) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return utils.Forbidden("admin access required")
	}
	return nil
}

func (a *Admin) ListUsers(ctx context.Context, actor *models.User, f storage.UserFilter) ([]models.User, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	if f.Role != "" {
		if _, ok := models.ParseRole(string(f.Role)); !ok {
			return nil, 0, utils.ValidationFailed("unknown role " + string(f.Role))
		}
	}
	users, total, err := a.store.ListUsers(ctx, f)
	if err != nil {
		return nil, 0, utils.Internal(err)
	}
	return users, total, nil
}

func (a *Admin) GetUser(ctx context.Context, actor *models.User, id string) (*UserDetail, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := a.store.UserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}

	detail := &UserDetail{User: user, Properties: []models.Property{}, Interests: []models.Interest{}, RecentAdminActions: []models.AuditLog{}}
	switch user.Role {
	case models.RoleOwner, models.RoleDealer:
		if detail.Properties, _, err = a.store.ListProperties(ctx, storage.PropertyFilter{OwnerID: id}); err != nil {
			return nil, utils.Internal(err)
		}
		if detail.Interests, err = a.store.ListInterests(ctx, storage.InterestFilter{OwnerID: id}); err != nil {
			return nil, utils.Internal(err)
		}
	case models.RoleTenant:
		if detail.Interests, err = a.store.ListInterests(ctx, storage.InterestFilter{TenantID: id}); err != nil {
			return nil, utils.Internal(err)
		}
	case models.RoleAdmin:
		if detail.RecentAdminActions, err = a.store.AuditLogsByActor(ctx, id, 50); err != nil {
			return nil, utils.Internal(err)
		}
	}
	return detail, nil
}

// DeleteUser removes a user and everything that hangs off it. Admins cannot
// delete themselves. The deleted user is returned for auditing.
func (a *Admin) DeleteUser(ctx context.Context, actor *models.User, id string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if id == actor.ID {
		return nil, utils.ValidationFailed("Cannot delete your own account")
	}
	user, err := a.store.UserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	if err := a.store.DeleteUser(ctx, id); err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}

func (a *Admin) ListProperties(ctx context.Context, actor *models.User, f storage.PropertyFilter) ([]models.Property, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	properties, total, err := a.store.ListProperties(ctx, f)
	if err != nil {
		return nil, 0, utils.Internal(err)
	}
	return properties, total, nil
}

func (a *Admin) GetProperty(ctx context.Context, actor *models.User, id string) (*PropertyDetail, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	p, err := a.store.PropertyByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Property not found")
	}
	detail := &PropertyDetail{Property: p}
	if owner, err := a.store.UserByID(ctx, p.OwnerID); err == nil {
		detail.Owner = owner
	}
	if detail.Interests, err = a.store.ListInterests(ctx, storage.InterestFilter{PropertyID: id}); err != nil {
		return nil, utils.Internal(err)
	}
	return detail, nil
}

// DeleteProperty removes any property with its interests and returns it for auditing.
func (a *Admin) DeleteProperty(ctx context.Context, actor *models.User, id string) (*models.Property, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	p, err := a.store.PropertyByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Property not found")
	}
	if err := a.store.DeleteProperty(ctx, id); err != nil {
		return nil, storeError(err, "Property not found")
	}
	return p, nil
}

func (a *Admin) SystemStats(ctx context.Context, actor *models.User) (*SystemStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		s   SystemStats
		err error
	)
	since := a.now().AddDate(0, 0, -7)
	steps := []func() error{
		func() error { s.TotalUsers, err = a.stats.CountUsers(ctx, "", false); return err },
		func() error { s.KYCVerifiedTenants, err = a.stats.CountUsers(ctx, models.RoleTenant, true); return err },
		func() error { s.TotalProperties, err = a.stats.CountProperties(ctx, "", ""); return err },
		func() error { s.TotalInterests, err = a.stats.CountInterests(ctx, storage.InterestFilter{}); return err },
		func() error { s.UsersByRole, err = a.stats.CountBy(ctx, &models.User{}, "user_type"); return err },
		func() error { s.PropertiesByStatus, err = a.stats.CountBy(ctx, &models.Property{}, "status"); return err },
		func() error { s.PropertiesByType, err = a.stats.CountBy(ctx, &models.Property{}, "property_type"); return err },
		func() error { s.InterestsByStatus, err = a.stats.CountBy(ctx, &models.Interest{}, "status"); return err },
		func() error { s.NewUsers7d, err = a.stats.CountCreatedSince(ctx, &models.User{}, since); return err },
		func() error { s.NewProperties7d, err = a.stats.CountCreatedSince(ctx, &models.Property{}, since); return err },
		func() error { s.NewInterests7d, err = a.stats.CountCreatedSince(ctx, &models.Interest{}, since); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, utils.Internal(err)
		}
	}
	return &s, nil
}

func (a *Admin) RecentActivity(ctx context.Context, actor *models.User) (*RecentActivity, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		r   RecentActivity
		err error
	)
	if r.Users, err = a.stats.RecentUsers(ctx, recentActivityLimit); err != nil {
		return nil, utils.Internal(err)
	}
	if r.Properties, err = a.stats.RecentProperties(ctx, recentActivityLimit); err != nil {
		return nil, utils.Internal(err)
	}
	if r.Interests, err = a.store.ListInterests(ctx, storage.InterestFilter{Limit: recentActivityLimit}); err != nil {
		return nil, utils.Internal(err)
	}
	if r.AdminActions, err = a.stats.RecentAuditLogs(ctx, recentActivityLimit); err != nil {
		return nil, utils.Internal(err)
	}
	return &r, nil
}
