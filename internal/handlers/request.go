package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/middleware"
	"github.com/tawhidislam22/business-management/internal/models"
)

// REQUEST CREATE

type createRequestPayload struct {
	AssetID uint   `json:"assetId" binding:"required"`
	Note    string `json:"note"`
}

// CreateRequest opens a pending asset request. A pending request holds one
// unit of stock, so the quantity is decremented here and restored on
// reject, cancel or return.
func CreateRequest(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	var payload createRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request payload"})
		return
	}

	var requester models.User
	if err := database.DB.Where("email = ?", email).First(&requester).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "requester not found"})
		return
	}

	var request models.AssetRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&asset, payload.AssetID).Error; err != nil {
			return err
		}
		if !asset.Available() {
			return errors.New("asset is out of stock")
		}

		request = models.AssetRequest{
			AssetID:        asset.ID,
			AssetName:      asset.Name,
			AssetType:      asset.Type,
			RequesterEmail: requester.Email,
			RequesterName:  requester.Name,
			Note:           payload.Note,
			Status:         models.StatusPending,
			RequestDate:    time.Now(),
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		return tx.Model(&asset).
			Update("quantity", gorm.Expr("quantity - 1")).Error
	})
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	database.CreateAuditLog(email, "request", request.ID, "create", "requested "+request.AssetName)
	c.JSON(http.StatusCreated, request)
}

// REQUEST LIST

// ListRequests returns asset requests. HR managers see every request
// against their inventory; employees only ever see their own, regardless
// of query parameters.
func ListRequests(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)
	role, _ := middleware.CurrentRole(c)

	q := database.DB.Model(&models.AssetRequest{})

	if role == models.RoleHR {
		q = q.Joins("JOIN assets ON assets.id = asset_requests.asset_id").
			Where("assets.hr_email = ?", email)
	} else {
		q = q.Where("requester_email = ?", email)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("requester_name ILIKE ? OR requester_email ILIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		q = q.Where("asset_requests.status = ?", status)
	}
	if t := c.Query("type"); t != "" && t != "all" {
		q = q.Where("asset_requests.asset_type = ?", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to count requests"})
		return
	}

	page, limit := pagination(c)
	var requests []models.AssetRequest
	if err := q.Order("asset_requests.created_at desc").
		Offset((page - 1) * limit).Limit(limit).Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "totalRequests": total})
}

// TRANSITIONS

// ApproveRequest moves a pending request to approved. HR only; the request
// must target the manager's own inventory.
func ApproveRequest(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	transition(c, func(tx *gorm.DB, req *models.AssetRequest, asset *models.Asset) error {
		if asset.HREmail != email {
			return errForbidden
		}
		return req.Approve(email, time.Now())
	}, "approve")
}

type rejectPayload struct {
	Reason string `json:"rejectReason"`
}

// RejectRequest moves a pending request to rejected and restores the held
// unit of stock. A reject reason is mandatory.
func RejectRequest(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	var payload rejectPayload
	if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": models.ErrReasonRequired.Error()})
		return
	}
	reason := strings.TrimSpace(payload.Reason)

	transition(c, func(tx *gorm.DB, req *models.AssetRequest, asset *models.Asset) error {
		if asset.HREmail != email {
			return errForbidden
		}
		if err := req.Reject(email, reason); err != nil {
			return err
		}
		return tx.Model(asset).Update("quantity", gorm.Expr("quantity + 1")).Error
	}, "reject")
}

// CancelRequest withdraws the caller's own pending request and restores
// the held unit of stock.
func CancelRequest(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	transition(c, func(tx *gorm.DB, req *models.AssetRequest, asset *models.Asset) error {
		if err := req.Cancel(email); err != nil {
			return err
		}
		return tx.Model(asset).Update("quantity", gorm.Expr("quantity + 1")).Error
	}, "cancel")
}

// ReturnRequest hands an approved returnable asset back to stock.
func ReturnRequest(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	transition(c, func(tx *gorm.DB, req *models.AssetRequest, asset *models.Asset) error {
		if err := req.Return(email, time.Now()); err != nil {
			return err
		}
		return tx.Model(asset).Update("quantity", gorm.Expr("quantity + 1")).Error
	}, "return")
}

var errForbidden = errors.New("request targets another company's asset")

// transition loads the request and its asset under a row lock, applies the
// state change and persists the result atomically. Out-of-graph moves come
// back as 409 so a racing second approval loses cleanly.
func transition(c *gin.Context, apply func(tx *gorm.DB, req *models.AssetRequest, asset *models.Asset) error, action string) {
	email, _ := middleware.CurrentEmail(c)

	var request models.AssetRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, c.Param("id")).Error; err != nil {
			return err
		}
		var asset models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&asset, request.AssetID).Error; err != nil {
			return err
		}
		if err := apply(tx, &request, &asset); err != nil {
			return err
		}
		return tx.Save(&request).Error
	})
	if err != nil {
		c.JSON(transitionStatus(err), gin.H{"message": err.Error()})
		return
	}

	database.CreateAuditLog(email, "request", request.ID, action, action+" "+request.AssetName)
	c.JSON(http.StatusOK, request)
}

func transitionStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, errForbidden), errors.Is(err, models.ErrNotRequester):
		return http.StatusForbidden
	case errors.Is(err, models.ErrReasonRequired), errors.Is(err, models.ErrNotReturnable):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
