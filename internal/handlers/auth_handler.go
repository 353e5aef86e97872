package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/travelbook/booking-backend/internal/config"
	"github.com/travelbook/booking-backend/internal/database"
	"github.com/travelbook/booking-backend/internal/models"
	"github.com/travelbook/booking-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles registration, login and token refresh
type AuthHandler struct {
	jwtService *jwt.Service
	users      *database.UserRepository
	cfg        *config.Config
	logger     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *jwt.Service, users *database.UserRepository, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		users:      users,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register creates a new user account
// @Summary Register a new user
// @Description Register with name, email and password and receive a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{} "User registered"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, models.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.Security.BcryptCost)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	user, err := h.users.CreateUser(strings.TrimSpace(req.Name), email, string(hash))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(c, h.logger, models.NewConflictError("email is already registered"))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	h.respondWithTokens(c, http.StatusCreated, user)
}

// Login authenticates a user and issues a token pair
// @Summary Log in
// @Description Authenticate with email and password and receive a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Logged in"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, models.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(email)
	if err != nil {
		// Same response for unknown email and wrong password
		respondError(c, h.logger, models.ErrUnauthenticated)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, h.logger, models.ErrUnauthenticated)
		return
	}

	h.respondWithTokens(c, http.StatusOK, user)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Tokens refreshed"
// @Failure 401 {object} map[string]interface{} "Invalid refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, models.NewValidationError("refresh_token is required"))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, h.logger, models.ErrUnauthenticated)
		return
	}

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		respondError(c, h.logger, models.ErrUnauthenticated)
		return
	}

	h.respondWithTokens(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, status int, user *models.User) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Roles)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, status, models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, "")
}
