package domain

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotifNegotiationProposed  NotificationType = "negotiation_proposed"
	NotifNegotiationCountered NotificationType = "negotiation_countered"
	NotifNegotiationAccepted  NotificationType = "negotiation_accepted"
	NotifNegotiationRejected  NotificationType = "negotiation_rejected"
	NotifNegotiationCancelled NotificationType = "negotiation_cancelled"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"index:idx_notifications_user_read;not null"`
	Type      NotificationType `json:"type" gorm:"size:32;not null"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message,omitempty" gorm:"type:text"`
	Data      json.RawMessage  `json:"data,omitempty" gorm:"type:jsonb"`
	IsRead    bool             `json:"is_read" gorm:"index:idx_notifications_user_read;default:false"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
