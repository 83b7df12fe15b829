package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Startup925/realestate/models"
)

// PropertyFilter narrows a property listing. Zero values mean no filter.
type PropertyFilter struct {
	OwnerID      string
	Status       models.PropertyStatus
	Location     string // case-insensitive substring
	Search       string // title, description or location
	PropertyType models.PropertyType
	MinRent      *float64
	MaxRent      *float64
	Page         int
	PerPage      int
}

func (s *Store) CreateProperty(ctx context.Context, p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) PropertyByID(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, "property_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// UpdateProperty applies fields in a single UPDATE and returns the stored row.
func (s *Store) UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) (*models.Property, error) {
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&models.Property{}).Where("property_id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.PropertyByID(ctx, id)
}

func (s *Store) ListProperties(ctx context.Context, f PropertyFilter) ([]models.Property, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Property{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?", like, like, like)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.MinRent != nil {
		q = q.Where("rent >= ?", *f.MinRent)
	}
	if f.MaxRent != nil {
		q = q.Where("rent <= ?", *f.MaxRent)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	properties := []models.Property{}
	if err := q.Scopes(paginate(f.Page, f.PerPage)).Order("created_at desc").Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// DeleteProperty removes a property and the interests expressed on it.
func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Interest{}).Error; err != nil {
			return err
		}
		res := tx.Where("property_id = ?", id).Delete(&models.Property{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
