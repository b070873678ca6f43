package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

type fakeSender struct {
	SendFn func(ctx context.Context, payload *models.NotificationPayload) error
	sent   []*models.NotificationPayload
}

func (f *fakeSender) Send(ctx context.Context, payload *models.NotificationPayload) error {
	f.sent = append(f.sent, payload)
	if f.SendFn != nil {
		return f.SendFn(ctx, payload)
	}
	return nil
}

var _ Sender = (*fakeSender)(nil)

func classified(state models.RiskState) *models.LocationRecord {
	return &models.LocationRecord{
		SubjectID:      "X",
		SubjectDisplay: "Lucia",
		RiskState:      state,
		TriggerZone:    &models.RestrictedZone{ID: "1", DisplayName: "Centro"},
		OccurredAt:     time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuild_DefaultRouting(t *testing.T) {
	d, err := NewDispatcher(DefaultRouting(), nil)
	require.NoError(t, err)

	assert.Nil(t, d.Build(classified(models.RiskOK)))

	warning := d.Build(classified(models.RiskWarning))
	require.NotNil(t, warning)
	assert.Equal(t, models.RoleSubject, warning.RecipientRole)
	assert.Equal(t, "WARNING ALERT", warning.SubjectLine)
	assert.Equal(t, "Be careful, you are approaching the restricted zone Centro.", warning.Body)
	assert.Equal(t, "Centro", warning.ZoneName)
	assert.NotEmpty(t, warning.ID)

	danger := d.Build(classified(models.RiskDanger))
	require.NotNil(t, danger)
	assert.Equal(t, models.RoleGuardian, danger.RecipientRole)
	assert.Equal(t, "DANGER ALERT", danger.SubjectLine)
	assert.Equal(t, "Attention: Lucia has entered the danger area of Centro. Please verify their location.", danger.Body)
	assert.Equal(t, "Lucia", danger.SubjectDisplay)
	assert.Equal(t, classified(models.RiskDanger).OccurredAt, danger.OccurredAt)
}

func TestBuild_CustomRouting(t *testing.T) {
	d, err := NewDispatcher(Routing{models.RiskWarning: models.RoleGuardian}, nil)
	require.NoError(t, err)

	p := d.Build(classified(models.RiskWarning))
	require.NotNil(t, p)
	assert.Equal(t, models.RoleGuardian, p.RecipientRole)
	assert.Equal(t, "Lucia is approaching the restricted zone Centro.", p.Body)

	// DANGER не в таблице - уведомления нет
	assert.Nil(t, d.Build(classified(models.RiskDanger)))
}

func TestBuild_TemplateFailureFallsBack(t *testing.T) {
	d, err := NewDispatcher(DefaultRouting(), nil)
	require.NoError(t, err)
	require.NoError(t, d.SetTemplate(models.RiskDanger, models.RoleGuardian, "{{.Missing}}"))

	p := d.Build(classified(models.RiskDanger))
	require.NotNil(t, p)
	assert.Equal(t, "Risk state changed to DANGER for Lucia.", p.Body)
}

func TestBuild_SubjectFallsBackToID(t *testing.T) {
	d, err := NewDispatcher(DefaultRouting(), nil)
	require.NoError(t, err)

	rec := classified(models.RiskDanger)
	rec.SubjectDisplay = ""
	p := d.Build(rec)
	require.NotNil(t, p)
	assert.Contains(t, p.Body, "X has entered")
}

func TestSetTemplate_ParseError(t *testing.T) {
	d, err := NewDispatcher(DefaultRouting(), nil)
	require.NoError(t, err)
	assert.Error(t, d.SetTemplate(models.RiskWarning, models.RoleSubject, "{{.Zone"))
}

func TestDispatch(t *testing.T) {
	sender := &fakeSender{}
	d, err := NewDispatcher(DefaultRouting(), sender)
	require.NoError(t, err)

	p, err := d.Dispatch(context.Background(), classified(models.RiskOK))
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, sender.sent)

	p, err = d.Dispatch(context.Background(), classified(models.RiskDanger))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Same(t, p, sender.sent[0])
}

func TestDispatch_SenderError(t *testing.T) {
	sendErr := errors.New("redis down")
	sender := &fakeSender{SendFn: func(context.Context, *models.NotificationPayload) error { return sendErr }}
	d, err := NewDispatcher(DefaultRouting(), sender)
	require.NoError(t, err)

	p, err := d.Dispatch(context.Background(), classified(models.RiskWarning))
	assert.ErrorIs(t, err, sendErr)
	assert.NotNil(t, p)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Guardian")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuardian, role)

	role, err = ParseRole("subject")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSubject, role)

	_, err = ParseRole("parent")
	assert.Error(t, err)
}
