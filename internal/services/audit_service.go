package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"budgetdash/internal/logger"
	"budgetdash/internal/models"
)

// Audit actions.
const (
	AuditActionCreate    = "create"
	AuditActionUpdate    = "update"
	AuditActionDelete    = "delete"
	AuditActionReplicate = "replicate"
)

// Audited resource types.
const (
	ResourceCategory    = "category"
	ResourceTransaction = "transaction"
	ResourceBudget      = "budget"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log writes one audit_logs row. Failures are logged and swallowed so that a
// successful mutation is never reported as failed.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("audit write failed",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

func encodeChanges(action string, changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("audit changes not encodable", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}
