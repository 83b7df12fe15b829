package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleDealer Role = "dealer"
	RoleTenant Role = "tenant"
	RoleAdmin  Role = "admin"
)

// Roles lists every role variant.
var Roles = []Role{RoleOwner, RoleDealer, RoleTenant, RoleAdmin}

func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Lists reports whether the role can own property listings.
func (r Role) Lists() bool {
	switch r {
	case RoleOwner, RoleDealer:
		return true
	case RoleTenant, RoleAdmin:
		return false
	}
	return false
}

// SelfRegistrable reports whether the role may be chosen at public registration.
// Admin accounts are created from the command line.
func (r Role) SelfRegistrable() bool {
	switch r {
	case RoleOwner, RoleDealer, RoleTenant:
		return true
	case RoleAdmin:
		return false
	}
	return false
}

type User struct {
	ID               string         `json:"user_id" gorm:"primaryKey;column:user_id;type:varchar(36)"`
	Email            string         `json:"email" gorm:"uniqueIndex;not null;size:256"`
	Phone            string         `json:"phone" gorm:"uniqueIndex;not null;size:20"`
	Password         string         `json:"-" gorm:"not null"`
	Role             Role           `json:"user_type" gorm:"column:user_type;type:varchar(20);index;not null"`
	FullName         string         `json:"full_name" gorm:"size:40"`
	Profile          datatypes.JSON `json:"profile"`
	ProfileCompleted bool           `json:"profile_completed" gorm:"default:false"`
	KYCCompleted     bool           `json:"kyc_completed" gorm:"column:kyc_completed;default:false;index"`
	KYCResults       datatypes.JSON `json:"kyc_results,omitempty" gorm:"column:kyc_results"`
	KYCUpdatedAt     *time.Time     `json:"kyc_updated_at,omitempty" gorm:"column:kyc_updated_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Profile is the role-shaped profile object stored on a user.
type Profile struct {
	Address          string   `json:"address,omitempty"`
	OfficeAddress    string   `json:"office_address,omitempty"`
	AreasServed      []string `json:"areas_served,omitempty"`
	CurrentAddress   string   `json:"current_address,omitempty"`
	PermanentAddress string   `json:"permanent_address,omitempty"`
	EmployerName     string   `json:"employer_name,omitempty"`
	Designation      string   `json:"designation,omitempty"`
	MonthlyIncome    float64  `json:"monthly_income,omitempty"`
}

// ProfileData decodes the stored profile, returning the zero Profile when unset.
func (u User) ProfileData() Profile {
	var p Profile
	if len(u.Profile) > 0 {
		_ = json.Unmarshal(u.Profile, &p)
	}
	return p
}

// Custom JSON marshaling so profile is always an object
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := struct {
		Profile Profile `json:"profile"`
		Alias
	}{
		Profile: u.ProfileData(),
		Alias:   Alias(u),
	}
	return json.Marshal(aux)
}
