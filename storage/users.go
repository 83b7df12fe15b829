package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Startup925/realestate/models"
)

type UserFilter struct {
	Role    models.Role
	Query   string // matches email or full name
	Page    int
	PerPage int
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "user_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// EmailTaken reports whether another user than exceptID already uses email.
func (s *Store) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	return s.taken(ctx, "email", strings.ToLower(email), exceptID)
}

// PhoneTaken reports whether another user than exceptID already uses phone.
func (s *Store) PhoneTaken(ctx context.Context, phone, exceptID string) (bool, error) {
	return s.taken(ctx, "phone", phone, exceptID)
}

func (s *Store) taken(ctx context.Context, column, value, exceptID string) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value)
	if exceptID != "" {
		q = q.Where("user_id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateUser applies fields to one user in a single UPDATE statement.
func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if f.Role != "" {
		q = q.Where("user_type = ?", f.Role)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	if err := q.Scopes(paginate(f.Page, f.PerPage)).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteUser removes a user with its properties, the interests on those
// properties and the interests the user submitted.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Property{}).Select("property_id").Where("owner_id = ?", id)
		if err := tx.Where("property_id IN (?) OR tenant_id = ? OR owner_id = ?", owned, id, id).
			Delete(&models.Interest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Property{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
