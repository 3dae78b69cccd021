package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent событие воронки
type AnalyticsEvent struct {
	ID        int64          `json:"id"`
	EventName string         `json:"event_name"`
	Payload   map[string]any `json:"payload"`
	BotUserID *int64         `json:"bot_user_id,omitempty"`
	LeadID    *uuid.UUID     `json:"lead_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// EventRequest событие, которое бот отправляет на бэкенд
type EventRequest struct {
	EventName      string         `json:"event_name"`
	Payload        map[string]any `json:"payload"`
	TelegramUserID int64          `json:"telegram_user_id,omitempty"`
	LeadID         *uuid.UUID     `json:"lead_id,omitempty"`
}
