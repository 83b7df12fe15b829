package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Startup925/realestate/models"
)

type InterestFilter struct {
	TenantID   string
	OwnerID    string
	PropertyID string
	Status     models.InterestStatus
	Limit      int
}

func (s *Store) CreateInterest(ctx context.Context, i *models.Interest) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = models.InterestPending
	}
	return translate(s.db.WithContext(ctx).Create(i).Error)
}

func (s *Store) InterestByID(ctx context.Context, id string) (*models.Interest, error) {
	var i models.Interest
	if err := s.db.WithContext(ctx).First(&i, "interest_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

// RespondInterest moves a pending interest to status. It reports false when
// the interest was no longer pending, leaving the row untouched.
func (s *Store) RespondInterest(ctx context.Context, id string, status models.InterestStatus, by string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Interest{}).
		Where("interest_id = ? AND status = ?", id, models.InterestPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_by": by,
			"responded_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ListInterests(ctx context.Context, f InterestFilter) ([]models.Interest, error) {
	q := s.db.WithContext(ctx).Model(&models.Interest{})
	if f.TenantID != "" {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.PropertyID != "" {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	interests := []models.Interest{}
	if err := q.Order("created_at desc").Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}
