package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kataras/golog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/obs"
	"github.com/Startup925/realestate/utils"
)

// Reference photo the face matcher compares selfies against.
const aadhaarReferencePhoto = "mock_aadhaar_photo"

type Collaborators struct {
	NationalID NationalIDVerifier
	TaxID      TaxIDVerifier
	Face       FaceMatcher
	Locker     DocumentLocker
	Employer   EmployerRegistry
}

// Pipeline runs the KYC checks concurrently under one deadline.
type Pipeline struct {
	c       Collaborators
	timeout time.Duration
	retries int
	backoff time.Duration
	tracer  trace.Tracer
}

func NewPipeline(c Collaborators, timeout time.Duration, retries int) *Pipeline {
	if retries < 0 {
		retries = 0
	}
	return &Pipeline{c: c, timeout: timeout, retries: retries, backoff: 100 * time.Millisecond, tracer: obs.Tracer()}
}

// Verify runs every check and returns their results. Document locker and
// employer results never affect eligibility. A collaborator error or the
// deadline yields an error, never a negative result.
func (p *Pipeline) Verify(ctx context.Context, docs models.KYCDocuments) (models.VerificationResults, error) {
	ctx, span := p.tracer.Start(ctx, "kyc.verify")
	defer span.End()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var results models.VerificationResults
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		results.AadhaarVerification, err = check(gctx, p, "aadhaar", func(ctx context.Context) (models.NationalIDResult, error) {
			return p.c.NationalID.VerifyAadhaar(ctx, docs.AadhaarNumber)
		})
		return err
	})
	g.Go(func() (err error) {
		results.PANVerification, err = check(gctx, p, "pan", func(ctx context.Context) (models.TaxIDResult, error) {
			return p.c.TaxID.VerifyPAN(ctx, docs.PANNumber)
		})
		return err
	})
	g.Go(func() (err error) {
		results.FaceMatch, err = check(gctx, p, "face_match", func(ctx context.Context) (models.FaceMatchResult, error) {
			return p.c.Face.MatchFace(ctx, docs.SelfieImage, aadhaarReferencePhoto)
		})
		return err
	})
	g.Go(func() (err error) {
		results.DigiLockerDocs, err = check(gctx, p, "digilocker", func(ctx context.Context) (models.DocumentLockerResult, error) {
			return p.c.Locker.FetchDocuments(ctx, docs.AadhaarNumber)
		})
		return err
	})
	if docs.EmployerName != "" {
		g.Go(func() error {
			employer, err := check(gctx, p, "employer", func(ctx context.Context) (models.EmployerResult, error) {
				return p.c.Employer.VerifyEmployer(ctx, docs.EmployerName)
			})
			if err != nil {
				return err
			}
			results.EmployerVerification = &employer
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verification unavailable")
		return models.VerificationResults{}, err
	}
	span.SetAttributes(attribute.Bool("kyc.eligible", results.Eligible()))
	return results, nil
}

// check calls fn in its own span, retrying errors up to p.retries times.
// Results are returned as soon as the collaborator answers, whatever they say.
func check[T any](ctx context.Context, p *Pipeline, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := p.tracer.Start(ctx, "kyc."+name)
	defer span.End()

	var (
		out T
		err error
	)
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			span.AddEvent("retry", trace.WithAttributes(attribute.Int("attempt", attempt)))
			if werr := simulateLatency(ctx, time.Duration(attempt)*p.backoff); werr != nil {
				break
			}
		}
		out, err = fn(ctx)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			break
		}
		golog.Warnf("kyc %s attempt %d failed: %v", name, attempt+1, err)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, name+" unavailable")
	return out, err
}

type KYCOutcome struct {
	Eligible bool                       `json:"kyc_status"`
	Results  models.VerificationResults `json:"verification_results"`
}

type KYCService struct {
	users    UserStore
	pipeline *Pipeline
	notifier Notifier
	metrics  *obs.Metrics
	now      func() time.Time
}

func NewKYCService(users UserStore, pipeline *Pipeline, notifier Notifier, metrics *obs.Metrics) *KYCService {
	return &KYCService{users: users, pipeline: pipeline, notifier: notifier, metrics: metrics, now: time.Now}
}

// Verify runs the pipeline for a tenant and stores the outcome with its
// audit record in one update.
func (s *KYCService) Verify(ctx context.Context, user *models.User, docs models.KYCDocuments) (*KYCOutcome, error) {
	if user.Role != models.RoleTenant {
		return nil, utils.Forbidden("Only tenants can complete KYC")
	}

	results, err := s.pipeline.Verify(ctx, docs)
	if err != nil {
		s.metrics.KYCOutcome("unavailable")
		return nil, utils.VerificationUnavailable(err)
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return nil, utils.Internal(err)
	}
	eligible := results.Eligible()
	now := s.now()
	if err := s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		"kyc_completed":  eligible,
		"kyc_results":    datatypes.JSON(raw),
		"kyc_updated_at": now,
	}); err != nil {
		return nil, storeError(err, "User not found")
	}
	user.KYCCompleted = eligible
	user.KYCResults = datatypes.JSON(raw)
	user.KYCUpdatedAt = &now

	if eligible {
		s.metrics.KYCOutcome("eligible")
	} else {
		s.metrics.KYCOutcome("ineligible")
	}
	s.notifier.Notify(ctx, Event{
		Type:     EventKYCCompleted,
		UserID:   user.ID,
		Eligible: &eligible,
	})

	return &KYCOutcome{Eligible: eligible, Results: results}, nil
}
