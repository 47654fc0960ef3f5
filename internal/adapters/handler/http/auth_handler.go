package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type AuthHandler struct {
	service *services.AuthService
	tokens  *services.TokenService
}

func NewAuthHandler(service *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type accountResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	PlayerID  string `json:"player_id"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// authFailure maps account errors onto a status and a client-safe message.
// Anything unrecognised is an internal error.
func authFailure(c *gin.Context, err error) {
	failures := []struct {
		target error
		status int
		msg    string
	}{
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "email already exists"},
		{domain.ErrInvalidEmail, http.StatusBadRequest, "invalid email format"},
		{domain.ErrPasswordTooShort, http.StatusBadRequest, "password too short"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	}
	for _, f := range failures {
		if errors.Is(err, f.target) {
			c.JSON(f.status, errorResponse{Error: f.msg})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Register godoc
// @Summary      Create an account and its game profile id
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Credentials"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	account, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		authFailure(c, err)
		return
	}
	h.issue(c, http.StatusCreated, account)
}

// Login godoc
// @Summary      Exchange credentials for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  accountResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	account, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		authFailure(c, err)
		return
	}
	h.issue(c, http.StatusOK, account)
}

func (h *AuthHandler) issue(c *gin.Context, status int, account *domain.Account) {
	token, err := h.tokens.GenerateToken(account.ID)
	if err != nil {
		authFailure(c, err)
		return
	}

	c.JSON(status, accountResponse{
		ID:        account.ID,
		Email:     account.Email,
		PlayerID:  account.PlayerID,
		Token:     token,
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
	})
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
}
