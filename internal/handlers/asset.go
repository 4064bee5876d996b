package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/middleware"
	"github.com/tawhidislam22/business-management/internal/models"
)

// ASSET LIST

// ListAssets returns assets filtered by search term, type and availability,
// paginated. HR managers see their own inventory; employees see the
// inventory of the company they belong to.
func ListAssets(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)
	role, _ := middleware.CurrentRole(c)

	q := database.DB.Model(&models.Asset{})

	if role == models.RoleHR {
		q = q.Where("hr_email = ?", email)
	} else {
		var user models.User
		if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil && user.HREmail != "" {
			q = q.Where("hr_email = ?", user.HREmail)
		}
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if t := c.Query("type"); t != "" && t != "all" {
		q = q.Where("type = ?", t)
	}
	switch c.Query("availability") {
	case "available":
		q = q.Where("quantity > 0")
	case "out-of-stock":
		q = q.Where("quantity = 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to count assets"})
		return
	}

	page, limit := pagination(c)
	var assets []models.Asset
	if err := q.Order("name asc").Offset((page - 1) * limit).Limit(limit).Find(&assets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load assets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets, "totalAssets": total})
}

// ASSET CREATE

type assetRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

func CreateAsset(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid asset payload"})
		return
	}

	if len(strings.TrimSpace(req.Name)) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "asset name must be at least 3 characters"})
		return
	}
	assetType := models.AssetType(req.Type)
	if !assetType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "asset type must be returnable or non-returnable"})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity cannot be negative"})
		return
	}

	var hr models.User
	if err := database.DB.Where("email = ?", email).First(&hr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "HR account not found"})
		return
	}

	asset := models.Asset{
		Name:        strings.TrimSpace(req.Name),
		Type:        assetType,
		Image:       req.Image,
		Quantity:    req.Quantity,
		CompanyName: hr.CompanyName,
		HREmail:     hr.Email,
	}
	if err := database.DB.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save asset"})
		return
	}

	database.CreateAuditLog(email, "asset", asset.ID, "create", "added asset "+asset.Name)
	c.JSON(http.StatusCreated, asset)
}

// ASSET UPDATE / DELETE

func UpdateAsset(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	asset, ok := ownedAsset(c, email)
	if !ok {
		return
	}

	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid asset payload"})
		return
	}
	if len(strings.TrimSpace(req.Name)) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "asset name must be at least 3 characters"})
		return
	}
	assetType := models.AssetType(req.Type)
	if !assetType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "asset type must be returnable or non-returnable"})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity cannot be negative"})
		return
	}

	asset.Name = strings.TrimSpace(req.Name)
	asset.Type = assetType
	asset.Quantity = req.Quantity
	if req.Image != "" {
		asset.Image = req.Image
	}
	if err := database.DB.Save(asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update asset"})
		return
	}

	database.CreateAuditLog(email, "asset", asset.ID, "update", "updated asset "+asset.Name)
	c.JSON(http.StatusOK, asset)
}

func DeleteAsset(c *gin.Context) {
	email, _ := middleware.CurrentEmail(c)

	asset, ok := ownedAsset(c, email)
	if !ok {
		return
	}

	// block deletion while requests are still open against the asset
	var open int64
	database.DB.Model(&models.AssetRequest{}).
		Where("asset_id = ? AND status IN ?", asset.ID,
			[]models.RequestStatus{models.StatusPending, models.StatusApproved}).
		Count(&open)
	if open > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "asset has open requests"})
		return
	}

	if err := database.DB.Delete(asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete asset"})
		return
	}

	database.CreateAuditLog(email, "asset", asset.ID, "delete", "removed asset "+asset.Name)
	c.JSON(http.StatusOK, gin.H{"message": "asset deleted"})
}

// ownedAsset loads the asset from the :id param and checks it belongs to
// the calling HR manager. Writes the error response itself on failure.
func ownedAsset(c *gin.Context, hrEmail string) (*models.Asset, bool) {
	var asset models.Asset
	if err := database.DB.First(&asset, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "asset not found"})
		return nil, false
	}
	if asset.HREmail != hrEmail {
		c.JSON(http.StatusForbidden, gin.H{"message": "asset belongs to another company"})
		return nil, false
	}
	return &asset, true
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
