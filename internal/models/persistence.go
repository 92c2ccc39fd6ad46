// internal/models/persistence.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// KVEntry backs the Postgres key-value store. Each store's dataset is one
// row holding the serialized StoreData document.
type KVEntry struct {
	Key       string `json:"key" gorm:"primaryKey;size:255"`
	Value     string `json:"value" gorm:"type:text"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// AuditLog records mutating API requests when the Postgres backend is active.
type AuditLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID string    `json:"session_id" gorm:"size:64;index"`
	Role      string    `json:"role" gorm:"size:20"`
	Action    string    `json:"action" gorm:"size:255"`
	Status    int       `json:"status"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
