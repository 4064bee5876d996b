package models

import (
	"time"

	"gorm.io/gorm"
)

// Package is a purchasable subscription tier for HR managers.
type Package struct {
	Name        string `json:"name"`
	MemberLimit int    `json:"memberLimit"`
	// PriceCents is the package price in the smallest currency unit,
	// matching what the payment gateway expects.
	PriceCents int64 `json:"price"`
}

// Packages are fixed tiers, not database rows.
var Packages = []Package{
	{Name: "basic", MemberLimit: 5, PriceCents: 500},
	{Name: "standard", MemberLimit: 10, PriceCents: 800},
	{Name: "premium", MemberLimit: 20, PriceCents: 1500},
}

// PackageByName returns the tier with the given name, if defined.
func PackageByName(name string) (Package, bool) {
	for _, p := range Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

type Payment struct {
	gorm.Model
	Email         string    `gorm:"size:255;index;not null" json:"email"`
	TransactionID string    `gorm:"size:64;uniqueIndex;not null" json:"transactionId"`
	AmountCents   int64     `gorm:"not null" json:"price"`
	PackageName   string    `gorm:"size:50;not null" json:"packageName"`
	MemberLimit   int       `json:"memberLimit"`
	PaidAt        time.Time `gorm:"not null" json:"date"`
}
