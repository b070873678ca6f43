package models

import "time"

// RiskState - классификация субъекта относительно всех его зон
type RiskState string

const (
	RiskOK      RiskState = "OK"
	RiskWarning RiskState = "WARNING"
	RiskDanger  RiskState = "DANGER"
)

// Severity возвращает вес состояния: DANGER > WARNING > OK
func (s RiskState) Severity() int {
	switch s {
	case RiskDanger:
		return 2
	case RiskWarning:
		return 1
	default:
		return 0
	}
}

// LocationRecord - одно входящее сообщение о местоположении субъекта.
// AttachedZones заполняется на время классификации и очищается перед fan-out.
type LocationRecord struct {
	SubjectID      string
	SubjectDisplay string
	Latitude       float64
	Longitude      float64
	ObservedAt     time.Time
	// HasObservedAt - была ли метка времени в самом сообщении
	HasObservedAt bool

	WindowStart time.Time
	WindowEnd   time.Time

	AttachedZones []RestrictedZone
	RiskState     RiskState
	TriggerZone   *RestrictedZone
	OccurredAt    time.Time
}

// CheckResult - результат синхронной проверки точки без записи в синки
type CheckResult struct {
	SubjectID      string
	SubjectDisplay string
	RiskState      RiskState
	ZoneName       string
	DistanceMeters float64
	ZonesEvaluated int
}
