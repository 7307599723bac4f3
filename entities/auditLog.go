package entities

import (
	"time"

	"lifex.health/application/utils"
)

// AuditLog records security-relevant events. Identification attempts are
// always logged regardless of outcome.
type AuditLog struct {
	UserID       *string        `bson:"userID" json:"userID"`
	Action       string         `bson:"action" json:"action"`
	ResourceType string         `bson:"resourceType" json:"resourceType"`
	ResourceID   string         `bson:"resourceID" json:"resourceID"`
	IPAddress    string         `bson:"ipAddress" json:"ipAddress"`
	Details      map[string]any `bson:"details,omitempty" json:"details,omitempty"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model AuditLog) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
