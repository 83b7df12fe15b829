package utils

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Startup925/realestate/models"
)

type mapRefreshStore struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (s *mapRefreshStore) Allow(_ context.Context, id string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = true
	return nil
}

func (s *mapRefreshStore) Consume(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.ids[id]
	delete(s.ids, id)
	return ok, nil
}

func newIssuer(accessTTL time.Duration) *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", accessTTL, time.Hour, &mapRefreshStore{ids: map[string]bool{}})
}

func TestIssueAndVerify(t *testing.T) {
	issuer := newIssuer(time.Hour)
	user := &models.User{ID: "u-1", Role: models.RoleTenant}

	pair, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)

	claims, err := issuer.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleTenant, claims.UserType)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer := newIssuer(time.Hour)
	pair, err := issuer.Issue(context.Background(), &models.User{ID: "u-1", Role: models.RoleOwner})
	require.NoError(t, err)

	other := NewTokenIssuer("other", "other", time.Hour, time.Hour, &mapRefreshStore{ids: map[string]bool{}})
	_, err = other.Verify(pair.AccessToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = issuer.Verify("not-a-token")
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := newIssuer(time.Second)
	pair, err := issuer.Issue(context.Background(), &models.User{ID: "u-1", Role: models.RoleOwner})
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)
	_, err = issuer.Verify(pair.AccessToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestRevokeBlocksToken(t *testing.T) {
	issuer := newIssuer(time.Hour)
	pair, err := issuer.Issue(context.Background(), &models.User{ID: "u-1", Role: models.RoleDealer})
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(pair.AccessToken))
	_, err = issuer.Verify(pair.AccessToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestRotateIsSingleUse(t *testing.T) {
	issuer := newIssuer(time.Hour)
	ctx := context.Background()
	pair, err := issuer.Issue(ctx, &models.User{ID: "u-9", Role: models.RoleTenant})
	require.NoError(t, err)

	userID, err := issuer.Rotate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u-9", userID)

	_, err = issuer.Rotate(ctx, pair.RefreshToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = issuer.Rotate(ctx, pair.AccessToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}
