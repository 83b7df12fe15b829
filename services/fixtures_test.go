package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/obs"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

type fixedRandom struct {
	f float64
	n int
}

func (r fixedRandom) Float64() float64 { return r.f }
func (r fixedRandom) Intn(n int) int   { return r.n % n }

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// flakyVerifier fails the first failures calls, then verifies.
type flakyVerifier struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakyVerifier) VerifyAadhaar(ctx context.Context, number string) (models.NationalIDResult, error) {
	if f.calls.Add(1) <= f.failures {
		return models.NationalIDResult{}, errors.New("karza: 502 bad gateway")
	}
	return MockKarza{}.VerifyAadhaar(ctx, number)
}

// slowLocker never answers before its context ends.
type slowLocker struct{}

func (slowLocker) FetchDocuments(ctx context.Context, _ string) (models.DocumentLockerResult, error) {
	<-ctx.Done()
	return models.DocumentLockerResult{}, ctx.Err()
}

func mockCollaborators(faceRoll float64) Collaborators {
	random := fixedRandom{f: faceRoll, n: 4242}
	karza := MockKarza{Random: random}
	return Collaborators{
		NationalID: karza,
		TaxID:      karza,
		Face:       karza,
		Locker:     MockDigiLocker{},
		Employer:   MockMCARegistry{Random: random},
	}
}

type fixture struct {
	store     *storage.Store
	tokens    *utils.TokenIssuer
	notifier  *recordingNotifier
	accounts  *Accounts
	catalog   *Catalog
	interests *Interests
	kyc       *KYCService
	dashboard *Dashboard
	admin     *Admin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.OpenInMemory()
	require.NoError(t, err)
	store := storage.New(db)

	tokens := utils.NewTokenIssuer("access", "refresh", time.Hour, time.Hour, storage.NewMemoryRefreshStore())
	notifier := &recordingNotifier{}
	metrics := obs.NewMetrics()

	return &fixture{
		store:     store,
		tokens:    tokens,
		notifier:  notifier,
		accounts:  NewAccounts(store, tokens),
		catalog:   NewCatalog(store, MockGeocoder{Random: fixedRandom{f: 0.5}}),
		interests: NewInterests(store, store, notifier, metrics),
		kyc:       NewKYCService(store, NewPipeline(mockCollaborators(0.5), time.Second, 0), notifier, metrics),
		dashboard: NewDashboard(store),
		admin:     NewAdmin(store, store),
	}
}

func (f *fixture) register(t *testing.T, email, phone string, role models.Role) *models.User {
	t.Helper()
	u, _, err := f.accounts.Register(context.Background(), RegisterInput{
		Email: email, Phone: phone, Password: "TestPass123!", UserType: string(role), FullName: "Test " + string(role),
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) createAdmin(t *testing.T) *models.User {
	t.Helper()
	u, err := f.accounts.CreateAdmin(context.Background(), "admin@example.com", "9000000099", "AdminPass1!", "Admin")
	require.NoError(t, err)
	return u
}

func (f *fixture) verifiedTenant(t *testing.T, email, phone string) *models.User {
	t.Helper()
	u := f.register(t, email, phone, models.RoleTenant)
	out, err := f.kyc.Verify(context.Background(), u, models.KYCDocuments{AadhaarNumber: "123412341234", PANNumber: "ABCDE1234F", SelfieImage: "data"})
	require.NoError(t, err)
	require.True(t, out.Eligible)
	return u
}

func (f *fixture) property(t *testing.T, owner *models.User, rent float64, location string) *models.Property {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), owner, PropertyInput{
		Title: "2 BHK near station", PropertyType: "apartment", Size: "2 BHK", Rent: rent, Location: location,
		Amenities: []string{"parking"},
	})
	require.NoError(t, err)
	return p
}
