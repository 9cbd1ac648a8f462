package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
	"github.com/ikkim/meesho-backend/pkg/util"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Address  *model.Address `json:"address"`
	Password *string        `json:"password"`
}

func userPayload(user *model.User, token string) gin.H {
	payload := gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"phone":    user.Phone,
		"email":    user.Email,
		"address":  user.Address,
		"is_admin": user.IsAdmin,
	}
	if token != "" {
		payload["token"] = token
	}
	return payload
}

// Register creates an account and returns it with a token
// POST /api/users
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Name, phone and password are required")
		return
	}

	user, token, err := ctrl.authService.Register(c.Request.Context(), req.Name, req.Phone, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhoneAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthPhoneExists, "User already exists")
		case errors.Is(err, service.ErrMissingUserFields):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Name, phone and password are required")
		case errors.Is(err, util.ErrPasswordTooShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Password must be at least 6 characters")
		default:
			log.Error("Failed to register user", err, map[string]interface{}{
				"phone": req.Phone,
			})
			apperrors.Respond(c, err, "user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    userPayload(user, token),
	})
}

// Login authenticates by phone and password
// POST /api/users/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Phone and password are required")
		return
	}

	user, token, err := ctrl.authService.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid phone or password")
			return
		}
		log.Error("Failed to log in", err, nil)
		apperrors.Respond(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user, token),
	})
}

// GetProfile returns the caller's profile
// GET /api/users/profile
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user, ""),
	})
}

// UpdateProfile edits name, email, address or password. Phone cannot change.
// PUT /api/users/profile
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	user, err := ctrl.authService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, util.ErrPasswordTooShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Password must be at least 6 characters")
		default:
			log.Error("Failed to update profile", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.Respond(c, err, "user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user, ""),
	})
}

// ListUsers returns every account (Admin only)
// GET /api/users
func (ctrl *AuthController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.authService.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.Respond(c, err, "user")
		return
	}
	if users == nil {
		users = []model.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}
