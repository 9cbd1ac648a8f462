package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"github.com/ikkim/meesho-backend/pkg/util"
)

var (
	ErrPhoneAlreadyExists = errors.New("user with this phone already exists")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingUserFields  = errors.New("name and phone are required")
)

// ProfileUpdate carries the optional fields of a profile edit. Nil fields
// are left unchanged. The phone number cannot be changed.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Address  *model.Address
	Password *string
}

type AuthService interface {
	Register(ctx context.Context, name, phone, email, password string) (*model.User, string, error)
	Login(ctx context.Context, phone, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Register(ctx context.Context, name, phone, email, password string) (*model.User, string, error) {
	name, phone, email = strings.TrimSpace(name), strings.TrimSpace(phone), strings.TrimSpace(email)
	logger.Info("Attempting user registration", map[string]interface{}{
		"phone": phone,
		"name":  name,
	})

	if name == "" || phone == "" {
		return nil, "", ErrMissingUserFields
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	_, err := s.userRepo.FindByPhone(ctx, phone)
	if err == nil {
		logger.Warn("Registration failed: phone already exists", map[string]interface{}{
			"phone": phone,
		})
		return nil, "", ErrPhoneAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"phone": phone,
		})
		return nil, "", err
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrPhoneAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"phone":   phone,
	})
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	logger.Info("Login attempt", map[string]interface{}{
		"phone": phone,
	})

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"phone": phone,
			})
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if name := strings.TrimSpace(*update.Name); name != "" {
			user.Name = name
		}
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.Password != nil && *update.Password != "" {
		if err := util.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}
		hashed, err := util.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *authService) issueToken(user *model.User) (string, error) {
	token, err := util.GenerateToken(user.ID, user.Phone, user.IsAdmin, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}
	return token, nil
}
