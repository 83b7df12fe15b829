package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/utils"
)

func TestExpressInterestPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	unverified := f.register(t, "new@example.com", "9000000002", models.RoleTenant)
	tenant := f.verifiedTenant(t, "tenant@example.com", "9000000003")
	p := f.property(t, owner, 15000, "Pune")

	_, err := f.interests.Express(ctx, owner, p.ID, "")
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = f.interests.Express(ctx, unverified, p.ID, "")
	assert.Equal(t, utils.KindKYCRequired, utils.KindOf(err))

	_, err = f.interests.Express(ctx, tenant, "missing", "")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	in, err := f.interests.Express(ctx, tenant, p.ID, "Is it available from June?")
	require.NoError(t, err)
	assert.Equal(t, models.InterestPending, in.Status)
	assert.Equal(t, owner.ID, in.OwnerID)
	assert.Equal(t, tenant.ID, in.TenantID)
	assert.Contains(t, f.notifier.types(), EventInterestCreated)
}

func TestRespondStateMachine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	dealer := f.register(t, "dealer@example.com", "9000000002", models.RoleDealer)
	tenant := f.verifiedTenant(t, "tenant@example.com", "9000000003")
	p := f.property(t, owner, 15000, "Pune")
	in, err := f.interests.Express(ctx, tenant, p.ID, "")
	require.NoError(t, err)

	_, err = f.interests.Respond(ctx, owner, in.ID, "maybe")
	assert.Equal(t, utils.KindValidationFailed, utils.KindOf(err))

	_, err = f.interests.Respond(ctx, tenant, in.ID, "approved")
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = f.interests.Respond(ctx, dealer, in.ID, "approved")
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = f.interests.Respond(ctx, owner, "missing", "approved")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	approved, err := f.interests.Respond(ctx, owner, in.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.InterestApproved, approved.Status)
	require.NotNil(t, approved.RespondedBy)
	assert.Equal(t, owner.ID, *approved.RespondedBy)

	again, err := f.interests.Respond(ctx, owner, in.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.InterestApproved, again.Status, "decided interests do not change")

	responded := 0
	for _, typ := range f.notifier.types() {
		if typ == EventInterestResponded {
			responded++
		}
	}
	assert.Equal(t, 1, responded)
}

func TestListInterestsScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", "9000000001", models.RoleOwner)
	dealer := f.register(t, "dealer@example.com", "9000000002", models.RoleDealer)
	tenant := f.verifiedTenant(t, "tenant@example.com", "9000000003")
	other := f.verifiedTenant(t, "other@example.com", "9000000004")
	admin := f.createAdmin(t)

	p1 := f.property(t, owner, 15000, "Pune")
	p2 := f.property(t, dealer, 18000, "Delhi")
	for _, pair := range []struct {
		tenant *models.User
		prop   *models.Property
	}{{tenant, p1}, {tenant, p2}, {other, p1}} {
		_, err := f.interests.Express(ctx, pair.tenant, pair.prop.ID, "")
		require.NoError(t, err)
	}

	got, err := f.interests.List(ctx, tenant)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.interests.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.interests.List(ctx, dealer)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = f.interests.List(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, got)
}
