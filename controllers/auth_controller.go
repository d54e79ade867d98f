package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/repository"
	"github.com/shopkart/shopkart-api/services"
)

const refreshCookie = "jwt"

type AuthController struct {
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func NewAuthController(authService *services.AuthService, userRepo repository.UserRepository) *AuthController {
	return &AuthController{authService: authService, userRepo: userRepo}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and logs it in, setting the refresh cookie.
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Username and password are required."))
		return
	}

	result, err := ac.authService.Register(c, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken, int(result.RefreshTTL.Seconds()))
	c.JSON(http.StatusCreated, gin.H{
		"accessToken": result.AccessToken,
		"roles":       result.Roles,
		"message":     "User created successfully.",
	})
}

// Login authenticates and sets the refresh cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Username and password are required."))
		return
	}

	result, err := ac.authService.Login(c, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken, int(result.RefreshTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"accessToken": result.AccessToken,
		"roles":       result.Roles,
		"message":     "Logged in successfully.",
	})
}

// Refresh exchanges the refresh cookie for a fresh access token.
func (ac *AuthController) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		respondError(c, apperrors.Unauthorized("Unauthorized"))
		return
	}

	accessToken, _, err := ac.authService.Refresh(c, refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout clears the refresh cookie. No cookie means nothing to do.
func (ac *AuthController) Logout(c *gin.Context) {
	if _, err := c.Cookie(refreshCookie); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Cookie cleared"})
}

// GetCustomers is the administrative customer listing; passwords never
// leave the model (json:"-").
func (ac *AuthController) GetCustomers(c *gin.Context) {
	customers, err := ac.userRepo.FindCustomers(c)
	if err != nil {
		respondError(c, apperrors.Internal("Failed to fetch customers", err))
		return
	}
	if customers == nil {
		customers = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": customers})
}

func setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookie, token, maxAge, "/", "", true, true)
}
