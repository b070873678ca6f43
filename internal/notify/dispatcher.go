// Package notify превращает состояние риска в уведомление и передает его отправителю.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// Routing - таблица маршрутизации: состояние риска -> роль получателя.
// Состояния без записи (OK) уведомлений не порождают.
type Routing map[models.RiskState]models.RecipientRole

// DefaultRouting: WARNING получает сам субъект, DANGER - опекун
func DefaultRouting() Routing {
	return Routing{
		models.RiskWarning: models.RoleSubject,
		models.RiskDanger:  models.RoleGuardian,
	}
}

// ParseRole разбирает значение опций WARNING_RECIPIENT/DANGER_RECIPIENT
func ParseRole(s string) (models.RecipientRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subject":
		return models.RoleSubject, nil
	case "guardian":
		return models.RoleGuardian, nil
	default:
		return "", fmt.Errorf("unknown recipient role %q", s)
	}
}

// Sender доставляет уведомление во внешний транспорт
type Sender interface {
	Send(ctx context.Context, payload *models.NotificationPayload) error
}

type templateKey struct {
	state models.RiskState
	role  models.RecipientRole
}

// templateData - поля, доступные в шаблонах
type templateData struct {
	Subject string
	Zone    string
	State   models.RiskState
	Time    time.Time
}

const genericBody = "Risk state changed to {{.State}} for {{.Subject}}."

var defaultTemplates = map[templateKey]string{
	{models.RiskDanger, models.RoleGuardian}:  "Attention: {{.Subject}} has entered the danger area of {{.Zone}}. Please verify their location.",
	{models.RiskDanger, models.RoleSubject}:   "You are inside the restricted zone {{.Zone}}. Leave the area now.",
	{models.RiskWarning, models.RoleSubject}:  "Be careful, you are approaching the restricted zone {{.Zone}}.",
	{models.RiskWarning, models.RoleGuardian}: "{{.Subject}} is approaching the restricted zone {{.Zone}}.",
}

// Dispatcher строит не более одного уведомления на классифицированную запись
type Dispatcher struct {
	routing   Routing
	templates map[templateKey]*template.Template
	generic   *template.Template
	sender    Sender
	newID     func() string
}

// NewDispatcher компилирует шаблоны. sender может быть nil, тогда Send ничего не делает.
func NewDispatcher(routing Routing, sender Sender) (*Dispatcher, error) {
	d := &Dispatcher{
		routing:   routing,
		templates: make(map[templateKey]*template.Template, len(defaultTemplates)),
		generic:   template.Must(template.New("generic").Parse(genericBody)),
		sender:    sender,
		newID:     func() string { return uuid.New().String() },
	}
	for key, text := range defaultTemplates {
		if err := d.SetTemplate(key.state, key.role, text); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// SetTemplate заменяет шаблон тела для пары (состояние, роль)
func (d *Dispatcher) SetTemplate(state models.RiskState, role models.RecipientRole, text string) error {
	name := fmt.Sprintf("%s/%s", state, role)
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	d.templates[templateKey{state, role}] = tmpl
	return nil
}

// Build возвращает уведомление для записи или nil, если оно не положено
func (d *Dispatcher) Build(rec *models.LocationRecord) *models.NotificationPayload {
	if rec.RiskState == models.RiskOK || rec.RiskState == "" {
		return nil
	}
	role, ok := d.routing[rec.RiskState]
	if !ok {
		return nil
	}

	data := templateData{
		Subject: rec.SubjectDisplay,
		State:   rec.RiskState,
		Time:    rec.OccurredAt,
	}
	if data.Subject == "" {
		data.Subject = rec.SubjectID
	}
	if rec.TriggerZone != nil {
		data.Zone = rec.TriggerZone.DisplayName
	}

	return &models.NotificationPayload{
		ID:             d.newID(),
		SubjectID:      rec.SubjectID,
		SubjectDisplay: rec.SubjectDisplay,
		RecipientRole:  role,
		RiskState:      rec.RiskState,
		ZoneName:       data.Zone,
		SubjectLine:    fmt.Sprintf("%s ALERT", rec.RiskState),
		Body:           d.render(templateKey{rec.RiskState, role}, data),
		OccurredAt:     rec.OccurredAt,
	}
}

// Send передает уведомление отправителю
func (d *Dispatcher) Send(ctx context.Context, payload *models.NotificationPayload) error {
	if payload == nil || d.sender == nil {
		return nil
	}
	return d.sender.Send(ctx, payload)
}

// Dispatch - Build и Send одним вызовом
func (d *Dispatcher) Dispatch(ctx context.Context, rec *models.LocationRecord) (*models.NotificationPayload, error) {
	payload := d.Build(rec)
	if payload == nil {
		return nil, nil
	}
	return payload, d.Send(ctx, payload)
}

// render не возвращает ошибку: при сбое шаблона используется общий текст
func (d *Dispatcher) render(key templateKey, data templateData) string {
	if tmpl, ok := d.templates[key]; ok {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	var buf bytes.Buffer
	if err := d.generic.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Risk state changed to %s.", key.state)
	}
	return buf.String()
}
