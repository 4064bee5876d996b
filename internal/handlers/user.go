package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/middleware"
	"github.com/tawhidislam22/business-management/internal/models"
)

// GetUserRole reports the role for an email, defaulting to employee when
// the user record carries none. This backs the client's authorization gate.
func GetUserRole(c *gin.Context) {
	email := strings.ToLower(c.Param("email"))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"role": models.RoleEmployee})
		return
	}

	role := user.Role
	if !role.Valid() {
		role = models.RoleEmployee
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// GetUser returns a single user profile.
func GetUser(c *gin.Context) {
	email := strings.ToLower(c.Param("email"))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type upsertUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// UpsertUser stores a user profile coming from a federated sign-in, where
// no password ever passes through this backend. Existing rows are left
// untouched except for profile fields.
func UpsertUser(c *gin.Context) {
	var req upsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		user = models.User{
			Email: email,
			Name:  req.Name,
			// federated identities have no local password
			PasswordHash: "-",
			PhotoURL:     req.PhotoURL,
			Role:         models.RoleEmployee,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save user"})
			return
		}
		c.JSON(http.StatusCreated, user)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// UpdateProfile lets the authenticated user change their own display name
// and photo.
func UpdateProfile(c *gin.Context) {
	email, ok := middleware.CurrentEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid profile payload"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}
