package models

import "time"

// RecipientRole - кому адресовано уведомление
type RecipientRole string

const (
	RoleSubject  RecipientRole = "SUBJECT"
	RoleGuardian RecipientRole = "GUARDIAN"
)

// NotificationPayload - эфемерное уведомление, создается только для WARNING и DANGER
type NotificationPayload struct {
	ID             string        `json:"id"`
	SubjectID      string        `json:"subject_id"`
	SubjectDisplay string        `json:"subject_display"`
	RecipientRole  RecipientRole `json:"recipient_role"`
	RiskState      RiskState     `json:"risk_state"`
	ZoneName       string        `json:"zone_name,omitempty"`
	SubjectLine    string        `json:"subject_line"`
	Body           string        `json:"body"`
	OccurredAt     time.Time     `json:"occurred_at"`
}
