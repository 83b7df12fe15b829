package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

type dashboardWorld struct {
	f      *fixture
	owner  *models.User
	dealer *models.User
	tenant *models.User
	admin  *models.User
}

func newDashboardWorld(t *testing.T) dashboardWorld {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	w := dashboardWorld{
		f:      f,
		owner:  f.register(t, "owner@example.com", "9000000001", models.RoleOwner),
		dealer: f.register(t, "dealer@example.com", "9000000002", models.RoleDealer),
		tenant: f.verifiedTenant(t, "tenant@example.com", "9000000003"),
		admin:  f.createAdmin(t),
	}

	p1 := f.property(t, w.owner, 10000, "Mumbai")
	f.property(t, w.owner, 20000, "Mumbai")
	p3 := f.property(t, w.dealer, 30000, "Chennai")

	inactive := "inactive"
	_, err := f.catalog.Update(ctx, w.owner, p1.ID, PropertyPatch{Status: &inactive})
	require.NoError(t, err)

	i1, err := f.interests.Express(ctx, w.tenant, p1.ID, "")
	require.NoError(t, err)
	i2, err := f.interests.Express(ctx, w.tenant, p3.ID, "")
	require.NoError(t, err)
	_, err = f.interests.Express(ctx, w.tenant, p3.ID, "second look")
	require.NoError(t, err)

	_, err = f.interests.Respond(ctx, w.owner, i1.ID, "rejected")
	require.NoError(t, err)
	_, err = f.interests.Respond(ctx, w.dealer, i2.ID, "approved")
	require.NoError(t, err)
	return w
}

func TestDashboardStatsByRole(t *testing.T) {
	w := newDashboardWorld(t)
	ctx := context.Background()

	owner, err := w.f.dashboard.Stats(ctx, w.owner)
	require.NoError(t, err)
	assert.EqualValues(t, 2, owner["total_properties"])
	assert.EqualValues(t, 1, owner["active_properties"])
	assert.EqualValues(t, 1, owner["total_interests"])
	assert.EqualValues(t, 0, owner["pending_interests"])

	dealer, err := w.f.dashboard.Stats(ctx, w.dealer)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dealer["managed_properties"])
	assert.EqualValues(t, 1, dealer["active_listings"])
	assert.EqualValues(t, 2, dealer["total_interests"])
	assert.EqualValues(t, 1, dealer["deals_closed"])

	tenant, err := w.f.dashboard.Stats(ctx, w.tenant)
	require.NoError(t, err)
	assert.EqualValues(t, 3, tenant["interests_expressed"])
	assert.EqualValues(t, 1, tenant["applications_pending"])
	assert.EqualValues(t, 1, tenant["applications_approved"])
	assert.Equal(t, true, tenant["kyc_status"])

	admin, err := w.f.dashboard.Stats(ctx, w.admin)
	require.NoError(t, err)
	assert.EqualValues(t, 4, admin["total_users"])
	assert.EqualValues(t, 3, admin["total_properties"])
	assert.EqualValues(t, 1, admin["verified_tenants"])
}

func TestAdminRequiresAdminRole(t *testing.T) {
	w := newDashboardWorld(t)
	ctx := context.Background()

	_, _, err := w.f.admin.ListUsers(ctx, w.owner, storage.UserFilter{})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = w.f.admin.SystemStats(ctx, w.tenant)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	_, err = w.f.admin.RecentActivity(ctx, w.dealer)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestAdminListAndDetail(t *testing.T) {
	w := newDashboardWorld(t)
	ctx := context.Background()

	users, total, err := w.f.admin.ListUsers(ctx, w.admin, storage.UserFilter{Role: models.RoleTenant, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, w.tenant.ID, users[0].ID)

	_, _, err = w.f.admin.ListUsers(ctx, w.admin, storage.UserFilter{Role: "superuser"})
	assert.Equal(t, utils.KindValidationFailed, utils.KindOf(err))

	detail, err := w.f.admin.GetUser(ctx, w.admin, w.owner.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Properties, 2)
	assert.Len(t, detail.Interests, 1)

	props, total, err := w.f.admin.ListProperties(ctx, w.admin, storage.PropertyFilter{Search: "chennai"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	pd, err := w.f.admin.GetProperty(ctx, w.admin, props[0].ID)
	require.NoError(t, err)
	assert.Equal(t, w.dealer.ID, pd.Owner.ID)
	assert.Len(t, pd.Interests, 2)
}

func TestAdminDeleteUser(t *testing.T) {
	w := newDashboardWorld(t)
	ctx := context.Background()

	_, err := w.f.admin.DeleteUser(ctx, w.admin, w.admin.ID)
	assert.Equal(t, utils.KindValidationFailed, utils.KindOf(err))

	_, err = w.f.admin.DeleteUser(ctx, w.admin, "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	deleted, err := w.f.admin.DeleteUser(ctx, w.admin, w.dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, w.dealer.ID, deleted.ID)

	stats, err := w.f.admin.SystemStats(ctx, w.admin)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalProperties)
	assert.EqualValues(t, 1, stats.TotalInterests)
	assert.EqualValues(t, 1, stats.UsersByRole["tenant"])
	assert.EqualValues(t, 1, stats.PropertiesByStatus["inactive"])
	assert.EqualValues(t, 3, stats.NewUsers7d)
}

func TestAdminDeletePropertyAndActivity(t *testing.T) {
	w := newDashboardWorld(t)
	ctx := context.Background()

	props, _, err := w.f.admin.ListProperties(ctx, w.admin, storage.PropertyFilter{OwnerID: w.dealer.ID})
	require.NoError(t, err)
	require.Len(t, props, 1)

	_, err = w.f.admin.DeleteProperty(ctx, w.admin, props[0].ID)
	require.NoError(t, err)

	activity, err := w.f.admin.RecentActivity(ctx, w.admin)
	require.NoError(t, err)
	assert.Len(t, activity.Users, 4)
	assert.Len(t, activity.Properties, 2)
	assert.Len(t, activity.Interests, 1)
	assert.Empty(t, activity.AdminActions)
}
