package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/Startup925/realestate/models"
	"github.com/Startup925/realestate/storage"
	"github.com/Startup925/realestate/utils"
)

const maxFullNameLength = 40

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileInput struct {
	FullName         string   `json:"full_name" validate:"required"`
	Phone            string   `json:"phone" validate:"required"`
	Address          string   `json:"address"`
	OfficeAddress    string   `json:"office_address"`
	AreasServed      []string `json:"areas_served"`
	CurrentAddress   string   `json:"current_address"`
	PermanentAddress string   `json:"permanent_address"`
	EmployerName     string   `json:"employer_name"`
	Designation      string   `json:"designation"`
	MonthlyIncome    float64  `json:"monthly_income" validate:"gte=0"`
}

// Accounts owns registration, login and profiles.
type Accounts struct {
	users  UserStore
	tokens *utils.TokenIssuer
}

func NewAccounts(users UserStore, tokens *utils.TokenIssuer) *Accounts {
	return &Accounts{users: users, tokens: tokens}
}

func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*models.User, *utils.TokenPair, error) {
	role, ok := models.ParseRole(in.UserType)
	if !ok || !role.SelfRegistrable() {
		return nil, nil, utils.ValidationFailed("user_type must be owner, dealer or tenant")
	}
	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
		Role:     role,
		FullName: strings.TrimSpace(in.FullName),
		Phone:    in.Phone,
	}
	if err := a.create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return nil, nil, utils.Internal(err)
	}
	return user, pair, nil
}

// CreateAdmin creates an admin account. Admins cannot self-register.
func (a *Accounts) CreateAdmin(ctx context.Context, email, phone, password, fullName string) (*models.User, error) {
	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
		Role:     models.RoleAdmin,
		FullName: strings.TrimSpace(fullName),
		Phone:    phone,
	}
	if err := a.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// create validates user, hashes its plaintext password and stores it.
func (a *Accounts) create(ctx context.Context, user *models.User) error {
	if user.Password == "" {
		return utils.ValidationFailed("Password is required")
	}
	if err := validateName(user.FullName); err != nil {
		return err
	}
	phone, err := normalizePhone(user.Phone)
	if err != nil {
		return err
	}
	user.Phone = phone

	if err := a.ensureUnique(ctx, user.Email, user.Phone, ""); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Internal(err)
	}
	user.Password = string(hash)
	user.Profile = datatypes.JSON("{}")

	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return utils.ValidationFailed("User already exists")
		}
		return utils.Internal(err)
	}
	return nil
}

func (a *Accounts) ensureUnique(ctx context.Context, email, phone, exceptID string) error {
	if email != "" {
		taken, err := a.users.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return utils.Internal(err)
		}
		if taken {
			return utils.ValidationFailed("User already exists")
		}
	}
	taken, err := a.users.PhoneTaken(ctx, phone, exceptID)
	if err != nil {
		return utils.Internal(err)
	}
	if taken {
		return utils.ValidationFailed("Phone number already registered")
	}
	return nil
}

func (a *Accounts) Login(ctx context.Context, in LoginInput) (*models.User, *utils.TokenPair, error) {
	invalid := utils.Unauthenticated("Invalid credentials")
	if in.Email == "" || in.Password == "" {
		return nil, nil, invalid
	}

	user, err := a.users.UserByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, invalid
		}
		return nil, nil, utils.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, nil, invalid
	}

	pair, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return nil, nil, utils.Internal(err)
	}
	return user, pair, nil
}

// UserByID resolves token subjects to live users.
func (a *Accounts) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := a.users.UserByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (a *Accounts) Refresh(ctx context.Context, refreshToken string) (*models.User, *utils.TokenPair, error) {
	userID, err := a.tokens.Rotate(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	user, err := a.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, utils.Unauthenticated("User not found")
		}
		return nil, nil, utils.Internal(err)
	}
	pair, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return nil, nil, utils.Internal(err)
	}
	return user, pair, nil
}

// Logout revokes the access token and, when given, the refresh token.
func (a *Accounts) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := a.tokens.Revoke(accessToken); err != nil {
		return err
	}
	if refreshToken != "" {
		if err := a.tokens.Discard(ctx, refreshToken); err != nil {
			return utils.Internal(err)
		}
	}
	return nil
}

// UpdateProfile stores the role-relevant profile fields and marks the
// profile completed in one update.
func (a *Accounts) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) (*models.User, error) {
	name := strings.TrimSpace(in.FullName)
	if err := validateName(name); err != nil {
		return nil, err
	}
	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if phone != user.Phone {
		if err := a.ensureUnique(ctx, "", phone, user.ID); err != nil {
			return nil, err
		}
	}

	raw, err := json.Marshal(shapeProfile(user.Role, in))
	if err != nil {
		return nil, utils.Internal(err)
	}
	if err := a.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		"full_name":         name,
		"phone":             phone,
		"profile":           datatypes.JSON(raw),
		"profile_completed": true,
	}); err != nil {
		return nil, storeError(err, "User not found")
	}
	return a.UserByID(ctx, user.ID)
}

// shapeProfile keeps only the profile fields that apply to role.
func shapeProfile(role models.Role, in ProfileInput) models.Profile {
	switch role {
	case models.RoleOwner, models.RoleAdmin:
		return models.Profile{Address: in.Address}
	case models.RoleDealer:
		return models.Profile{Address: in.Address, OfficeAddress: in.OfficeAddress, AreasServed: in.AreasServed}
	case models.RoleTenant:
		return models.Profile{
			CurrentAddress:   in.CurrentAddress,
			PermanentAddress: in.PermanentAddress,
			EmployerName:     in.EmployerName,
			Designation:      in.Designation,
			MonthlyIncome:    in.MonthlyIncome,
		}
	}
	return models.Profile{}
}

func validateName(name string) error {
	if name == "" {
		return utils.ValidationFailed("Full name is required")
	}
	if utf8.RuneCountInString(name) > maxFullNameLength {
		return utils.ValidationFailed("Full name must be at most 40 characters")
	}
	return nil
}

func normalizePhone(phone string) (string, error) {
	if !utils.ValidatePhoneNumber(phone) {
		return "", utils.ValidationFailed("Phone number must be 10 digits")
	}
	return utils.NormalizePhoneNumber(phone), nil
}
