package storage

import (
	"context"
	"time"

	"github.com/Startup925/realestate/models"
)

// CountProperties counts properties by owner and status.
func (s *Store) CountProperties(ctx context.Context, ownerID string, status models.PropertyStatus) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Property{})
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

func (s *Store) CountInterests(ctx context.Context, f InterestFilter) (int64, error) {
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
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// CountUsers counts users, optionally of one role and with completed KYC.
func (s *Store) CountUsers(ctx context.Context, role models.Role, kycOnly bool) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("user_type = ?", role)
	}
	if kycOnly {
		q = q.Where("kyc_completed = ?", true)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

type groupCount struct {
	Grp   string
	Total int64
}

// CountBy groups the rows of model by column.
func (s *Store) CountBy(ctx context.Context, model interface{}, column string) (map[string]int64, error) {
	var rows []groupCount
	err := s.db.WithContext(ctx).Model(model).
		Select(column + " AS grp, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Grp] = r.Total
	}
	return out, nil
}

// CountCreatedSince counts rows of model created at or after since.
func (s *Store) CountCreatedSince(ctx context.Context, model interface{}, since time.Time) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(model).Where("created_at >= ?", since).Count(&total).Error
	return total, err
}

func (s *Store) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&users).Error
	return users, err
}

func (s *Store) RecentProperties(ctx context.Context, limit int) ([]models.Property, error) {
	properties := []models.Property{}
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&properties).Error
	return properties, err
}
