package database

import "github.com/tawhidislam22/business-management/internal/models"

// CreateAuditLog records a mutating action. Failures are swallowed so the
// audit trail never breaks the main flow.
func CreateAuditLog(userEmail, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserEmail: userEmail,
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Details:   details,
	}
	_ = DB.Create(&record).Error
}
