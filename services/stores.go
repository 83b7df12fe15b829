package services

import (
	"context"
	"errors"
	"time"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

// UserStore is the user persistence the services need. *storage.Store implements it.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	PhoneTaken(ctx context.Context, phone, exceptID string) (bool, error)
	UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error
}

type PropertyStore interface {
	CreateProperty(ctx context.Context, p *models.Property) error
	PropertyByID(ctx context.Context, id string) (*models.Property, error)
	UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) (*models.Property, error)
	ListProperties(ctx context.Context, f storage.PropertyFilter) ([]models.Property, int64, error)
	DeleteProperty(ctx context.Context, id string) error
}

type InterestStore interface {
	CreateInterest(ctx context.Context, i *models.Interest) error
	InterestByID(ctx context.Context, id string) (*models.Interest, error)
	RespondInterest(ctx context.Context, id string, status models.InterestStatus, by string, at time.Time) (bool, error)
	ListInterests(ctx context.Context, f storage.InterestFilter) ([]models.Interest, error)
}

type StatsStore interface {
	CountProperties(ctx context.Context, ownerID string, status models.PropertyStatus) (int64, error)
	CountInterests(ctx context.Context, f storage.InterestFilter) (int64, error)
	CountUsers(ctx context.Context, role models.Role, kycOnly bool) (int64, error)
	CountBy(ctx context.Context, model interface{}, column string) (map[string]int64, error)
	CountCreatedSince(ctx context.Context, model interface{}, since time.Time) (int64, error)
	RecentUsers(ctx context.Context, limit int) ([]models.User, error)
	RecentProperties(ctx context.Context, limit int) ([]models.Property, error)
	RecentAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type AdminStore interface {
	UserStore
	PropertyStore
	ListUsers(ctx context.Context, f storage.UserFilter) ([]models.User, int64, error)
	DeleteUser(ctx context.Context, id string) error
	AuditLogsByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error)
	ListInterests(ctx context.Context, f storage.InterestFilter) ([]models.Interest, error)
}

// storeError maps storage errors onto the API error kinds.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return utils.NotFound(notFound)
	case errors.Is(err, storage.ErrDuplicate):
		return utils.ValidationFailed("Record already exists")
	}
	return utils.Internal(err)
}
