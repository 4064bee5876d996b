package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleHR       UserRole = "hr"
)

// Valid reports whether r is one of the defined roles.
func (r UserRole) Valid() bool {
	return r == RoleEmployee || r == RoleHR
}

type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	PhotoURL     string   `gorm:"size:512" json:"photoURL"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`

	// HR-only fields: company identity plus the subscription package
	// that caps the team roster.
	CompanyName string `gorm:"size:255" json:"companyName"`
	CompanyLogo string `gorm:"size:512" json:"companyLogo"`
	PackageName string `gorm:"size:50" json:"packageName"`
	MemberLimit int    `json:"memberLimit"`

	// set once an employee joins an HR manager's team
	HREmail string `gorm:"size:255;index" json:"hrEmail"`

	// sha256 of the currently valid refresh credential, empty when none
	RefreshTokenHash string `gorm:"size:64" json:"-"`
}
