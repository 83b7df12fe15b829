package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/utils"
)

func TestCreatePropertyGeocodes(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)

	p := f.property(t, owner, 25000, "Koregaon Park, Pune")
	assert.Equal(t, owner.ID, p.OwnerID)
	assert.Equal(t, models.PropertyActive, p.Status)
	assert.Equal(t, 18.5204, p.Latitude)
	assert.Equal(t, 73.8567, p.Longitude)
	assert.Equal(t, []string{"parking"}, p.AmenityList())
	assert.Equal(t, []string{}, p.ImageList())
}

func TestCreatePropertyRequiresLister(t *testing.T) {
	f := newFixture(t)
	tenant := f.register(t, "tenant@example.com", "9000000001", models.RoleTenant)

	_, err := f.catalog.Create(context.Background(), tenant, PropertyInput{Title: "x", PropertyType: "house", Rent: 1, Location: "Delhi"})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestUpdatePropertyOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	other := f.register(t, "other@example.com", "9000000002", models.RoleDealer)
	admin := f.createAdmin(t)
	p := f.property(t, owner, 20000, "Mumbai")

	title := "Hijacked"
	_, err := f.catalog.Update(ctx, other, p.ID, PropertyPatch{Title: &title})
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = f.catalog.Update(ctx, owner, "missing", PropertyPatch{Title: &title})
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	rent := 22000.0
	location := "Indiranagar, Bangalore"
	updated, err := f.catalog.Update(ctx, owner, p.ID, PropertyPatch{Rent: &rent, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, 22000.0, updated.Rent)
	assert.Equal(t, 12.9716, updated.Latitude)
	assert.Equal(t, "2 BHK near station", updated.Title)

	inactive := "inactive"
	updated, err = f.catalog.Update(ctx, admin, p.ID, PropertyPatch{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyInactive, updated.Status)

	err = f.catalog.Delete(ctx, other, p.ID)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestListPropertiesFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	tenant := f.register(t, "tenant@example.com", "9000000002", models.RoleTenant)
	for _, rent := range []float64{10000, 20000, 30000} {
		f.property(t, owner, rent, "Andheri, Mumbai")
	}

	got, err := f.catalog.List(ctx, tenant, ListQuery{MinRent: "15000", MaxRent: "25000"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 20000.0, got[0].Rent)

	got, err = f.catalog.List(ctx, tenant, ListQuery{MinRent: "all", MaxRent: "all", PropertyType: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = f.catalog.List(ctx, tenant, ListQuery{MinRent: "10000", MaxRent: "10000"})
	require.NoError(t, err)
	assert.Len(t, got, 1, "bounds are inclusive")

	got, err = f.catalog.List(ctx, tenant, ListQuery{Location: "MUMBAI", PropertyType: "house"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.catalog.List(ctx, tenant, ListQuery{MinRent: "cheap"})
	assert.Equal(t, utils.KindValidationFailed, utils.KindOf(err))
}

func TestListPropertiesScopesListers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	dealer := f.register(t, "dealer@example.com", "9000000002", models.RoleDealer)
	f.property(t, owner, 10000, "Delhi")
	f.property(t, dealer, 12000, "Delhi")

	own, err := f.catalog.List(ctx, owner, ListQuery{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, owner.ID, own[0].OwnerID)

	all, err := f.catalog.List(ctx, owner, ListQuery{UserType: "tenant"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPropertiesNearPoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	tenant := f.register(t, "tenant@example.com", "9000000002", models.RoleTenant)
	f.property(t, owner, 10000, "Mumbai")
	f.property(t, owner, 10000, "Chennai")

	mumbai := Cities["mumbai"]
	got, err := f.catalog.List(ctx, tenant, ListQuery{Lat: "19.07", Lng: "72.88", RadiusKm: "25"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mumbai.Lat, got[0].Latitude)

	_, err = f.catalog.List(ctx, tenant, ListQuery{Lat: "19.07"})
	assert.Equal(t, utils.KindValidationFailed, utils.KindOf(err))
}

func TestDeletePropertyCascadesInterests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	tenant := f.verifiedTenant(t, "tenant@example.com", "9000000002")
	p := f.property(t, owner, 10000, "Hyderabad")
	_, err := f.interests.Express(ctx, tenant, p.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, f.catalog.Delete(ctx, owner, p.ID))
	_, err = f.catalog.Get(ctx, p.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	left, err := f.interests.List(ctx, tenant)
	require.NoError(t, err)
	assert.Empty(t, left)
}
