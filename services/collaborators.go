package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Startup925/realestate/models"
)

// RandomSource supplies the randomness of the mock collaborators.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a goroutine-safe source seeded with seed.
func NewRandomSource(seed int64) RandomSource {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

type NationalIDVerifier interface {
	VerifyAadhaar(ctx context.Context, number string) (models.NationalIDResult, error)
}

type TaxIDVerifier interface {
	VerifyPAN(ctx context.Context, number string) (models.TaxIDResult, error)
}

type FaceMatcher interface {
	MatchFace(ctx context.Context, selfie, reference string) (models.FaceMatchResult, error)
}

type DocumentLocker interface {
	FetchDocuments(ctx context.Context, aadhaarNumber string) (models.DocumentLockerResult, error)
}

type EmployerRegistry interface {
	VerifyEmployer(ctx context.Context, employerName string) (models.EmployerResult, error)
}

// simulateLatency waits for d or until ctx is done.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil || d <= 0 {
		return err
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MockKarza stands in for the Karza identity APIs. Every call takes one
// Latency unit, face matching two.
type MockKarza struct {
	Random  RandomSource
	Latency time.Duration
}

func (k MockKarza) VerifyAadhaar(ctx context.Context, _ string) (models.NationalIDResult, error) {
	if err := simulateLatency(ctx, k.Latency); err != nil {
		return models.NationalIDResult{}, err
	}
	return models.NationalIDResult{
		Status:         models.CheckVerified,
		Name:           "Mock User Name",
		Gender:         "M",
		Address:        "Mock Address, City, State",
		VerificationID: uuid.NewString(),
	}, nil
}

func (k MockKarza) VerifyPAN(ctx context.Context, _ string) (models.TaxIDResult, error) {
	if err := simulateLatency(ctx, k.Latency); err != nil {
		return models.TaxIDResult{}, err
	}
	return models.TaxIDResult{
		Status:         models.CheckVerified,
		Name:           "Mock User Name",
		Category:       "Individual",
		VerificationID: uuid.NewString(),
	}, nil
}

// MatchFace succeeds with probability 0.9, scoring between 85 and 98.
func (k MockKarza) MatchFace(ctx context.Context, _, _ string) (models.FaceMatchResult, error) {
	if err := simulateLatency(ctx, 2*k.Latency); err != nil {
		return models.FaceMatchResult{}, err
	}
	status := models.FaceMatch
	if k.Random.Float64() <= 0.1 {
		status = models.FaceNoMatch
	}
	return models.FaceMatchResult{
		MatchScore:     85 + k.Random.Float64()*13,
		Status:         status,
		VerificationID: uuid.NewString(),
	}, nil
}

type MockDigiLocker struct {
	Latency time.Duration
}

func (d MockDigiLocker) FetchDocuments(ctx context.Context, _ string) (models.DocumentLockerResult, error) {
	if err := simulateLatency(ctx, d.Latency); err != nil {
		return models.DocumentLockerResult{}, err
	}
	return models.DocumentLockerResult{Documents: []models.LockerDocument{
		{Type: "aadhaar", ID: "AADHAAR123", Status: models.CheckAvailable},
		{Type: "driving_license", ID: "DL456", Status: models.CheckAvailable},
		{Type: "voter_id", ID: "VOTER789", Status: models.CheckAvailable},
	}}, nil
}

var registeredCompanies = []string{
	"Tata Consultancy Services", "Infosys Limited", "Wipro Limited",
	"Tech Mahindra", "HCL Technologies", "Cognizant Technology Solutions",
	"Accenture", "IBM India", "Microsoft India", "Google India",
}

// MockMCARegistry looks employers up in a fixed list of registered companies.
type MockMCARegistry struct {
	Random  RandomSource
	Latency time.Duration
}

func (m MockMCARegistry) VerifyEmployer(ctx context.Context, employerName string) (models.EmployerResult, error) {
	if err := simulateLatency(ctx, m.Latency); err != nil {
		return models.EmployerResult{}, err
	}

	lower := strings.ToLower(employerName)
	for _, company := range registeredCompanies {
		if strings.Contains(lower, strings.ToLower(company)) {
			name := employerName
			cin := fmt.Sprintf("U%dMH2010PTC%d", 10000+m.Random.Intn(90000), 100000+m.Random.Intn(900000))
			return models.EmployerResult{CompanyFound: true, CompanyName: &name, CIN: &cin, Status: "active"}, nil
		}
	}
	return models.EmployerResult{CompanyFound: false, Status: "not_found"}, nil
}
