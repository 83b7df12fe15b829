package services

import (
	"context"
	"time"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/obs"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

type InterestInput struct {
	PropertyID string `json:"property_id"`
	Message    string `json:"message" validate:"max=2000"`
}

type Interests struct {
	interests  InterestStore
	properties PropertyStore
	notifier   Notifier
	metrics    *obs.Metrics
	now        func() time.Time
}

func NewInterests(interests InterestStore, properties PropertyStore, notifier Notifier, metrics *obs.Metrics) *Interests {
	return &Interests{interests: interests, properties: properties, notifier: notifier, metrics: metrics, now: time.Now}
}

// Express records a pending interest of a KYC-verified tenant in a property.
func (s *Interests) Express(ctx context.Context, actor *models.User, propertyID, message string) (*models.Interest, error) {
	if actor.Role != models.RoleTenant {
		return nil, utils.Forbidden("Only tenants can express interest")
	}
	if !actor.KYCCompleted {
		return nil, utils.KYCRequired("Complete KYC verification first")
	}

	property, err := s.properties.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, storeError(err, "Property not found")
	}

	interest := &models.Interest{
		PropertyID: property.ID,
		TenantID:   actor.ID,
		OwnerID:    property.OwnerID,
		Message:    message,
		Status:     models.InterestPending,
	}
	if err := s.interests.CreateInterest(ctx, interest); err != nil {
		return nil, utils.Internal(err)
	}

	s.metrics.InterestTransition(string(models.InterestPending))
	s.notifier.Notify(ctx, Event{
		Type:       EventInterestCreated,
		UserID:     interest.OwnerID,
		PropertyID: interest.PropertyID,
		InterestID: interest.ID,
		Status:     string(interest.Status),
	})
	return interest, nil
}

// Respond approves or rejects a pending interest. Responding to an interest
// that was already decided changes nothing and returns it as stored.
func (s *Interests) Respond(ctx context.Context, actor *models.User, interestID, decision string) (*models.Interest, error) {
	if !actor.Role.Lists() {
		return nil, utils.Forbidden("Only owners and dealers can respond to interests")
	}
	status := models.InterestStatus(decision)
	if !status.Decision() {
		return nil, utils.ValidationFailed("response must be approved or rejected")
	}

	interest, err := s.interests.InterestByID(ctx, interestID)
	if err != nil {
		return nil, storeError(err, "Interest not found")
	}
	if interest.OwnerID != actor.ID {
		return nil, utils.Forbidden("Not authorized to respond to this interest")
	}

	changed, err := s.interests.RespondInterest(ctx, interest.ID, status, actor.ID, s.now())
	if err != nil {
		return nil, utils.Internal(err)
	}
	current, err := s.interests.InterestByID(ctx, interest.ID)
	if err != nil {
		return nil, storeError(err, "Interest not found")
	}

	if changed {
		s.metrics.InterestTransition(string(current.Status))
		s.notifier.Notify(ctx, Event{
			Type:       EventInterestResponded,
			UserID:     current.TenantID,
			PropertyID: current.PropertyID,
			InterestID: current.ID,
			Status:     string(current.Status),
		})
	}
	return current, nil
}

// List returns the interests visible to actor: submitted ones for tenants,
// received ones for owners and dealers, none otherwise.
func (s *Interests) List(ctx context.Context, actor *models.User) ([]models.Interest, error) {
	var filter storage.InterestFilter
	switch actor.Role {
	case models.RoleTenant:
		filter.TenantID = actor.ID
	case models.RoleOwner, models.RoleDealer:
		filter.OwnerID = actor.ID
	case models.RoleAdmin:
		return []models.Interest{}, nil
	default:
		return []models.Interest{}, nil
	}

	interests, err := s.interests.ListInterests(ctx, filter)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return interests, nil
}
