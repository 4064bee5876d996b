package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/middleware"
	"github.com/tawhidislam22/business-management/internal/models"
)

// PaymentGateway creates payment intents with an external processor.
type PaymentGateway interface {
	CreateIntent(amountCents int64) (clientSecret string, err error)
}

// LocalGateway mints intent secrets locally. Used when no external
// processor is configured; the publishable key in config selects the real
// gateway on the frontend side.
type LocalGateway struct{}

func (LocalGateway) CreateIntent(amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("invalid amount: %d", amountCents)
	}
	id := uuid.NewString()
	return fmt.Sprintf("pi_%s_secret_%s", id[:8], id), nil
}

type intentPayload struct {
	Price int64 `json:"price" binding:"required"`
}

// CreatePaymentIntent starts a package purchase for the calling HR manager.
func CreatePaymentIntent(gw PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload intentPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "price is required"})
			return
		}

		secret, err := gw.CreateIntent(payload.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
	}
}

type paymentPayload struct {
	TransactionID string `json:"transactionId" binding:"required"`
	Price         int64  `json:"price" binding:"required"`
	PackageName   string `json:"packageName" binding:"required"`
}

// RecordPayment persists a completed payment and upgrades the HR manager's
// package accordingly.
func RecordPayment(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	var payload paymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payment payload"})
		return
	}

	pkg, ok := models.PackageByName(payload.PackageName)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown package"})
		return
	}

	var hr models.User
	if err := database.DB.Where("email = ?", email).First(&hr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "HR account not found"})
		return
	}

	payment := models.Payment{
		Email:         hr.Email,
		TransactionID: payload.TransactionID,
		AmountCents:   payload.Price,
		PackageName:   pkg.Name,
		MemberLimit:   pkg.MemberLimit,
		PaidAt:        time.Now(),
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "payment already recorded"})
		return
	}

	hr.PackageName = pkg.Name
	hr.MemberLimit = pkg.MemberLimit
	if err := database.DB.Save(&hr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "payment recorded but failed to upgrade package"})
		return
	}

	database.CreateAuditLog(email, "payment", payment.ID, "create",
		fmt.Sprintf("purchased %s package (txn %s)", pkg.Name, payment.TransactionID))
	c.JSON(http.StatusCreated, payment)
}

// ListPayments returns the payment history for an email. Callers may only
// read their own history.
func ListPayments(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	target := strings.ToLower(c.Param("email"))
	if target != email {
		c.JSON(http.StatusForbidden, gin.H{"message": "access denied"})
		return
	}

	var payments []models.Payment
	if err := database.DB.Where("email = ?", target).
		Order("paid_at desc").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
