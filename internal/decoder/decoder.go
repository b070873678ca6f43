// Package decoder превращает сырые байты транспорта в LocationRecord.
package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

// Форматы observed_at: RFC 3339 и isoformat() без смещения (трактуется как UTC)
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Decode разбирает JSON-сообщение. Проверяется только форма объекта:
// subject_id, latitude и longitude должны присутствовать и приводиться к нужным типам.
// Диапазоны координат повторно проверяет классификатор.
// Если observed_at отсутствует, используется now.
func Decode(payload []byte, now time.Time) (*models.LocationRecord, error) {
	if !utf8.Valid(payload) {
		return nil, &models.DecodeError{Reason: "payload is not valid utf-8"}
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, &models.DecodeError{Reason: "payload is not a json object", Err: err}
	}
	if fields == nil {
		return nil, &models.DecodeError{Reason: "payload is null"}
	}
	// после объекта допускаются только пробелы
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &models.DecodeError{Reason: "trailing data after json object"}
	}

	subjectID, err := stringField(fields, "subject_id")
	if err != nil {
		return nil, err
	}
	lat, err := numberField(fields, "latitude")
	if err != nil {
		return nil, err
	}
	lon, err := numberField(fields, "longitude")
	if err != nil {
		return nil, err
	}

	rec := &models.LocationRecord{
		SubjectID:  subjectID,
		Latitude:   lat,
		Longitude:  lon,
		ObservedAt: now.UTC(),
	}

	if raw, ok := fields["observed_at"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, &models.DecodeError{Reason: "observed_at must be a string"}
		}
		ts, err := parseTimestamp(s)
		if err != nil {
			return nil, &models.DecodeError{Reason: "observed_at is not ISO-8601", Err: err}
		}
		rec.ObservedAt = ts
		rec.HasObservedAt = true
	}

	return rec, nil
}

// subject_id в разных источниках бывает строкой или числом
func stringField(fields map[string]any, name string) (string, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return "", &models.DecodeError{Reason: name + " is required"}
	}
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", &models.DecodeError{Reason: name + " is empty"}
		}
		return s, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", &models.DecodeError{Reason: fmt.Sprintf("%s has unsupported type %T", name, raw)}
	}
}

func numberField(fields map[string]any, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return 0, &models.DecodeError{Reason: name + " is required"}
	}
	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, &models.DecodeError{Reason: fmt.Sprintf("%s has unsupported type %T", name, raw)}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &models.DecodeError{Reason: name + " is not numeric", Err: err}
	}
	return f, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
