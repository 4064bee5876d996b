package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/middleware"
	"github.com/tawhidislam22/business-management/internal/models"
)

// TEAM ROSTER

// ListEmployees returns the team of the calling HR manager, or the team an
// employee belongs to ("my team").
func ListEmployees(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)
	role, _ := middleware.CurrentRole(c)

	hrEmail := email
	if role == models.RoleEmployee {
		var me models.User
		if err := database.DB.Where("email = ?", email).First(&me).Error; err != nil || me.HREmail == "" {
			c.JSON(http.StatusOK, gin.H{"employees": []models.User{}})
			return
		}
		hrEmail = me.HREmail
	}

	var employees []models.User
	if err := database.DB.
		Where("hr_email = ? AND role = ?", hrEmail, models.RoleEmployee).
		Order("name asc").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

type addEmployeePayload struct {
	Email string `json:"email" binding:"required,email"`
}

// AddEmployee attaches an unaffiliated employee account to the calling
// HR manager's team, respecting the subscription member limit.
func AddEmployee(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	var payload addEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "employee email is required"})
		return
	}

	var hr models.User
	if err := database.DB.Where("email = ?", email).First(&hr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "HR account not found"})
		return
	}

	var teamSize int64
	database.DB.Model(&models.User{}).
		Where("hr_email = ? AND role = ?", hr.Email, models.RoleEmployee).
		Count(&teamSize)
	if hr.MemberLimit > 0 && teamSize >= int64(hr.MemberLimit) {
		c.JSON(http.StatusConflict, gin.H{"message": "member limit reached, please upgrade your package"})
		return
	}

	var employee models.User
	target := strings.ToLower(strings.TrimSpace(payload.Email))
	if err := database.DB.Where("email = ?", target).First(&employee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "employee account not found"})
		return
	}
	if employee.Role != models.RoleEmployee {
		c.JSON(http.StatusBadRequest, gin.H{"message": "account is not an employee"})
		return
	}
	if employee.HREmail != "" && employee.HREmail != hr.Email {
		c.JSON(http.StatusConflict, gin.H{"message": "employee already belongs to another team"})
		return
	}

	employee.HREmail = hr.Email
	if err := database.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add employee"})
		return
	}

	database.CreateAuditLog(email, "employee", employee.ID, "add", "added "+employee.Email+" to team")
	c.JSON(http.StatusOK, employee)
}

// RemoveEmployee detaches an employee from the calling HR manager's team.
func RemoveEmployee(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	var employee models.User
	if err := database.DB.First(&employee, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
		return
	}
	if employee.HREmail != email {
		c.JSON(http.StatusForbidden, gin.H{"message": "employee belongs to another team"})
		return
	}

	employee.HREmail = ""
	if err := database.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to remove employee"})
		return
	}

	database.CreateAuditLog(email, "employee", employee.ID, "remove", "removed "+employee.Email+" from team")
	c.JSON(http.StatusOK, gin.H{"message": "employee removed"})
}
