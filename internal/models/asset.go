package models

import "gorm.io/gorm"

type AssetType string

const (
	AssetReturnable    AssetType = "returnable"
	AssetNonReturnable AssetType = "non-returnable"
)

func (t AssetType) Valid() bool {
	return t == AssetReturnable || t == AssetNonReturnable
}

type Asset struct {
	gorm.Model
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        AssetType `gorm:"type:varchar(20);not null" json:"type"`
	Image       string    `gorm:"size:512" json:"image"`
	Quantity    int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CompanyName string    `gorm:"size:255;index" json:"companyName"`
	HREmail     string    `gorm:"size:255;index" json:"hrEmail"`
}

// Available reports whether the asset can currently be requested.
func (a *Asset) Available() bool {
	return a.Quantity > 0
}
