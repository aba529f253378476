package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "maspatas/internal/handler/dto/request"
	resdto "maspatas/internal/handler/dto/response"
	"maspatas/internal/pkg/config"
	"maspatas/internal/pkg/cookie"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	cookieCfg    config.CookieConfig
	jwtCfg       config.JWTConfig
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	cookieCfg config.CookieConfig,
	jwtCfg config.JWTConfig,
) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		cookieCfg:    cookieCfg,
		jwtCfg:       jwtCfg,
	}
}

// @Summary Login
// @Description Authenticate with username or email plus password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials),
			errors.Is(err, commands.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	h.setCookies(c, result.TokenPair)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		UserID:       result.UserID,
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
	})
}

// @Summary Register user
// @Description Create a user account. Admin only.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.RegisterResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, err := h.authCommands.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterResponse{UserID: userID})
}

// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshTokenRequest false "Refresh request; token may also come from cookie"
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token = cookie.GetRefreshToken(c)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
		return
	}

	pair, err := h.authCommands.RefreshToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	h.setCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// @Summary Logout
// @Description Clear the token cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary List users
// @Description List all user accounts. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.UserResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	views, err := h.userQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserViews(views))
}

func (h *AuthHandler) setCookies(c *gin.Context, pair *commands.TokenPair) {
	accessExpiry, err := time.ParseDuration(h.jwtCfg.AccessTokenDuration)
	if err != nil {
		accessExpiry = time.Hour
	}
	refreshExpiry, err := time.ParseDuration(h.jwtCfg.RefreshTokenDuration)
	if err != nil {
		refreshExpiry = 720 * time.Hour
	}
	cookie.SetTokenCookies(c, h.cookieCfg, pair.AccessToken, pair.RefreshToken, accessExpiry, refreshExpiry)
}
