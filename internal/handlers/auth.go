package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/tawhidislam22/business-management/internal/auth"
	"github.com/tawhidislam22/business-management/internal/config"
	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/models"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhotoURL    string `json:"photoURL"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo"`
	Package     string `json:"package"`
}

// Register provisions a new identity (join-as-employee / join-as-HR).
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid registration payload"})
			return
		}

		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "password must be at least 6 characters"})
			return
		}

		role := models.UserRole(req.Role)
		if req.Role == "" {
			role = models.RoleEmployee
		}
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown role"})
			return
		}

		user := models.User{
			Email:    strings.ToLower(strings.TrimSpace(req.Email)),
			Name:     strings.TrimSpace(req.Name),
			PhotoURL: req.PhotoURL,
			Role:     role,
		}

		if role == models.RoleHR {
			pkg, ok := models.PackageByName(req.Package)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"message": "please select a package"})
				return
			}
			if strings.TrimSpace(req.CompanyName) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "company name is required"})
				return
			}
			user.CompanyName = strings.TrimSpace(req.CompanyName)
			user.CompanyLogo = req.CompanyLogo
			user.PackageName = pkg.Name
			user.MemberLimit = pkg.MemberLimit
		}

		var existing models.User
		if err := database.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "email already in use"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
			return
		}
		user.PasswordHash = string(hash)

		if err := database.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save user"})
			return
		}

		issueTokens(c, cfg, &user)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues access + refresh tokens.
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid login payload"})
			return
		}

		var user models.User
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}

		issueTokens(c, cfg, &user)
	}
}

type jwtRequest struct {
	Email string `json:"email" binding:"required"`
}

// IssueToken exchanges an already-established identity for a bearer
// credential (POST /jwt). The identity must exist as a user record.
func IssueToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req jwtRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
			return
		}

		var user models.User
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}

		issueTokens(c, cfg, &user)
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken trades a valid refresh credential for a new access token.
// The refresh credential rotates on every use.
func RefreshToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "refresh token is required"})
			return
		}

		var user models.User
		hash := auth.HashToken(req.RefreshToken)
		if err := database.DB.Where("refresh_token_hash = ?", hash).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid refresh token"})
			return
		}

		issueTokens(c, cfg, &user)
	}
}

// Logout invalidates the caller's refresh credential. Always succeeds from
// the client's point of view.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
			hash := auth.HashToken(req.RefreshToken)
			database.DB.Model(&models.User{}).
				Where("refresh_token_hash = ?", hash).
				Update("refresh_token_hash", "")
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// issueTokens mints an access token and rotates the user's refresh token.
func issueTokens(c *gin.Context, cfg *config.Config, user *models.User) {
	token, err := auth.NewAccessToken(cfg.JWTSecret, cfg.JWTIssuer, auth.AccessTokenTTL, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}

	refresh, err := auth.NewRefreshToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue refresh token"})
		return
	}
	if err := database.DB.Model(user).Update("refresh_token_hash", auth.HashToken(refresh)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to store refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": refresh,
		"user":         user,
	})
}
