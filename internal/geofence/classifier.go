// Package geofence определяет состояние риска субъекта по расстоянию до его зон.
package geofence

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// Policy - правило выбора зоны при нескольких совпадениях
type Policy string

const (
	// PolicyFirstMatch: первая зона с нарушением danger прекращает перебор,
	// среди WARNING побеждает первая по порядку
	PolicyFirstMatch Policy = "first-match"
	// PolicyNearest: перебираются все зоны, при равной тяжести побеждает ближайшая
	PolicyNearest Policy = "nearest"
)

// ParsePolicy разбирает значение опции danger_threshold_policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyFirstMatch, "":
		return PolicyFirstMatch, nil
	case PolicyNearest:
		return PolicyNearest, nil
	default:
		return "", fmt.Errorf("unknown danger threshold policy %q", s)
	}
}

// ZoneLookup отдает зоны субъекта в порядке хранилища
type ZoneLookup interface {
	Zones(subjectID string) []models.RestrictedZone
}

// Classification - итог оценки одной записи
type Classification struct {
	State models.RiskState
	// Zone - зона, определившая состояние; nil для OK
	Zone           *models.RestrictedZone
	DistanceMeters float64
	ZonesEvaluated int
}

// Classifier - чистая функция от записи и текущего snapshot зон
type Classifier struct {
	zones  ZoneLookup
	policy Policy
	now    func() time.Time
}

func NewClassifier(zones ZoneLookup, policy Policy) *Classifier {
	return &Classifier{zones: zones, policy: policy, now: time.Now}
}

// Evaluate считает состояние точки, не изменяя запись
func (c *Classifier) Evaluate(subjectID string, lat, lon float64) (Classification, error) {
	if err := validate(subjectID, lat, lon); err != nil {
		return Classification{}, err
	}
	return c.evaluate(subjectID, lat, lon, c.zones.Zones(subjectID)), nil
}

// Classify проставляет в записи RiskState, TriggerZone и OccurredAt.
// На время оценки зоны прикрепляются к записи и затем очищаются.
func (c *Classifier) Classify(rec *models.LocationRecord) (Classification, error) {
	if err := validate(rec.SubjectID, rec.Latitude, rec.Longitude); err != nil {
		return Classification{}, err
	}

	rec.AttachedZones = c.zones.Zones(rec.SubjectID)
	res := c.evaluate(rec.SubjectID, rec.Latitude, rec.Longitude, rec.AttachedZones)
	rec.AttachedZones = nil

	rec.RiskState = res.State
	rec.TriggerZone = res.Zone
	if rec.OccurredAt.IsZero() {
		if rec.ObservedAt.IsZero() {
			rec.OccurredAt = c.now().UTC()
		} else {
			rec.OccurredAt = rec.ObservedAt
		}
	}
	return res, nil
}

func (c *Classifier) evaluate(subjectID string, lat, lon float64, zones []models.RestrictedZone) Classification {
	res := Classification{State: models.RiskOK}

	for i := range zones {
		z := &zones[i]
		if z.SubjectID != subjectID {
			continue
		}
		danger, warning, ok := radii(z)
		if !ok {
			continue
		}
		res.ZonesEvaluated++

		d := Distance(lat, lon, z.CenterLatitude, z.CenterLongitude)

		var state models.RiskState
		switch {
		case d < danger:
			state = models.RiskDanger
		case d < warning:
			state = models.RiskWarning
		default:
			continue
		}

		if c.policy == PolicyNearest {
			if state.Severity() > res.State.Severity() ||
				(state == res.State && d < res.DistanceMeters) {
				res.State, res.Zone, res.DistanceMeters = state, copyZone(z), d
			}
			continue
		}

		if state == models.RiskDanger {
			res.State, res.Zone, res.DistanceMeters = state, copyZone(z), d
			break
		}
		if res.State == models.RiskOK {
			res.State, res.Zone, res.DistanceMeters = state, copyZone(z), d
		}
	}
	return res
}

// radii возвращает пригодные пороги зоны. Зоны с нечисловыми или отрицательными
// радиусами пропускаются; если danger больше warning, warning поднимается до danger.
func radii(z *models.RestrictedZone) (danger, warning float64, ok bool) {
	danger, warning = z.DangerRadiusM, z.WarningRadiusM
	if !finite(danger) || !finite(warning) || danger < 0 || warning < 0 {
		return 0, 0, false
	}
	if danger > warning {
		warning = danger
	}
	return danger, warning, true
}

func validate(subjectID string, lat, lon float64) error {
	switch {
	case subjectID == "":
		return &models.ClassificationError{Reason: "missing subject_id"}
	case !finite(lat) || !finite(lon):
		return &models.ClassificationError{SubjectID: subjectID, Reason: "coordinates are not finite"}
	case lat < -90 || lat > 90:
		return &models.ClassificationError{SubjectID: subjectID, Reason: fmt.Sprintf("latitude %v out of range", lat)}
	case lon < -180 || lon > 180:
		return &models.ClassificationError{SubjectID: subjectID, Reason: fmt.Sprintf("longitude %v out of range", lon)}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func copyZone(z *models.RestrictedZone) *models.RestrictedZone {
	cp := *z
	return &cp
}
